package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/portfolio/internal/logging"
	"github.com/dmitrijs2005/portfolio/internal/server/auth"
	"github.com/dmitrijs2005/portfolio/internal/server/config"
	"github.com/dmitrijs2005/portfolio/internal/server/notify"
	"github.com/dmitrijs2005/portfolio/internal/server/repositories/memory"
	"github.com/dmitrijs2005/portfolio/internal/server/services"
	"github.com/dmitrijs2005/portfolio/internal/server/storage"
)

const (
	testSecret    = "0123456789abcdef0123456789abcdef"
	adminEmail    = "owner@example.com"
	adminPassword = "owner-password"
)

type outbox struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (o *outbox) Send(_ context.Context, msg notify.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, msg)
	return nil
}

var codeRe = regexp.MustCompile(`>(\d{6})<`)

func (o *outbox) lastCode(t *testing.T, to string) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := len(o.msgs) - 1; i >= 0; i-- {
		if o.msgs[i].To != to {
			continue
		}
		if m := codeRe.FindStringSubmatch(o.msgs[i].HTML); m != nil {
			return m[1]
		}
	}
	t.Fatalf("no otp sent to %s", to)
	return ""
}

type testEnv struct {
	api     *API
	handler http.Handler
	users   *services.UserService
	rm      *memory.InMemoryRepositoryManager
	store   *storage.MemoryStore
	mail    *outbox
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()

	cfg := &config.Config{
		SecretKey:  testSecret,
		TokenTTL:   7 * 24 * time.Hour,
		OTPTTL:     10 * time.Minute,
		BcryptCost: bcrypt.MinCost,
		AdminEmail: adminEmail,
	}
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	rm := memory.NewInMemoryRepositoryManager()
	mail := &outbox{}
	store := storage.NewMemoryStore("http://objects.local")

	issuer := auth.NewIssuer([]byte(cfg.SecretKey), cfg.TokenTTL)
	us := services.NewUserService(nil, rm, cfg, issuer, notify.NewNotifier(mail, log, time.Second, cfg.OTPTTL), log)
	cs := services.NewContentService(nil, rm)
	ups := services.NewUploadService(store, 1024, time.Minute)

	if opts.Environment == "" {
		opts.Environment = "test"
	}
	api := NewAPI(us, cs, ups, log, NewMetrics(), opts)

	return &testEnv{api: api, handler: api.Routes(), users: us, rm: rm, store: store, mail: mail}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	_, _, err := e.users.EnsureAdmin(ctx, "Owner", adminEmail, adminPassword)
	require.NoError(t, err)
	res, err := e.users.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)
	return res.Token
}

func (e *testEnv) userToken(t *testing.T, email string) string {
	t.Helper()
	res, err := e.users.Register(context.Background(), "User", email, "user-password")
	require.NoError(t, err)
	return res.Token
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var out apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &out), rec.Body.String())
	return out
}
