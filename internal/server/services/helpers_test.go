package services

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/portfolio/internal/logging"
	"github.com/dmitrijs2005/portfolio/internal/server/auth"
	"github.com/dmitrijs2005/portfolio/internal/server/config"
	"github.com/dmitrijs2005/portfolio/internal/server/notify"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/memory"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/repomanager"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	ownerEmail = "owner@example.com"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type outbox struct {
	mu   sync.Mutex
	msgs []notify.Message
	err  error
}

func (o *outbox) Send(_ context.Context, msg notify.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.msgs = append(o.msgs, msg)
	return nil
}

func (o *outbox) sentTo(addr string) []notify.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []notify.Message
	for _, m := range o.msgs {
		if m.To == addr {
			out = append(out, m)
		}
	}
	return out
}

var codeRe = regexp.MustCompile(`>(\d{6})<`)

// lastCode extracts the code from the newest OTP email sent to addr.
func (o *outbox) lastCode(t *testing.T, addr string) string {
	t.Helper()
	msgs := o.sentTo(addr)
	for i := len(msgs) - 1; i >= 0; i-- {
		if m := codeRe.FindStringSubmatch(msgs[i].HTML); m != nil {
			return m[1]
		}
	}
	t.Fatalf("no otp email sent to %s", addr)
	return ""
}

type userFixture struct {
	svc    *UserService
	rm     *memory.InMemoryRepositoryManager
	clock  *testClock
	mail   *outbox
	issuer *auth.Issuer
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:  testSecret,
		TokenTTL:   7 * 24 * time.Hour,
		OTPTTL:     10 * time.Minute,
		BcryptCost: bcrypt.MinCost,
		AdminEmail: ownerEmail,
	}
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	return newUserFixtureWith(t, memory.NewInMemoryRepositoryManager())
}

func newUserFixtureWith(t *testing.T, rm repomanager.RepositoryManager) *userFixture {
	t.Helper()
	cfg := testConfig()
	clock := &testClock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	mail := &outbox{}
	log := discardLogger()

	issuer := auth.NewIssuer([]byte(cfg.SecretKey), cfg.TokenTTL, auth.WithClock(clock.Now))
	notifier := notify.NewNotifier(mail, log, time.Second, cfg.OTPTTL)

	svc := NewUserService(nil, rm, cfg, issuer, notifier, log)
	svc.now = clock.Now

	f := &userFixture{svc: svc, clock: clock, mail: mail, issuer: issuer}
	if mem, ok := rm.(*memory.InMemoryRepositoryManager); ok {
		f.rm = mem
	}
	return f
}
