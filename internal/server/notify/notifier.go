package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/portfolio/internal/logging"
)

const (
	otpSubject        = "Portfolio Admin Login - OTP Verification"
	loginAlertSubject = "Portfolio Admin - New Login Detected"
)

// Notifier renders and sends the auth emails.
type Notifier struct {
	mailer  Mailer
	log     logging.Logger
	timeout time.Duration
	otpTTL  time.Duration
	now     func() time.Time
}

func NewNotifier(m Mailer, log logging.Logger, timeout, otpTTL time.Duration) *Notifier {
	return &Notifier{mailer: m, log: log, timeout: timeout, otpTTL: otpTTL, now: time.Now}
}

// SendOTP delivers code to email and reports whether the transport accepted it.
func (n *Notifier) SendOTP(ctx context.Context, email, code string) bool {
	body, err := render(otpTemplate, struct {
		Code    string
		Minutes int
	}{Code: code, Minutes: int(n.otpTTL.Minutes())})
	if err != nil {
		n.log.Error(ctx, "render otp email", "error", err)
		return false
	}
	return n.send(ctx, Message{To: email, Subject: otpSubject, HTML: body})
}

// SendLoginAlert tells the operator that actorEmail started a login from ip.
func (n *Notifier) SendLoginAlert(ctx context.Context, adminEmail, actorEmail, ip string) bool {
	if ip == "" {
		ip = "Unknown"
	}
	body, err := render(loginAlertTemplate, struct {
		Email string
		Time  string
		IP    string
	}{Email: actorEmail, Time: n.now().UTC().Format(time.RFC1123), IP: ip})
	if err != nil {
		n.log.Error(ctx, "render login alert", "error", err)
		return false
	}
	return n.send(ctx, Message{To: adminEmail, Subject: loginAlertSubject, HTML: body})
}

// send ignores request cancellation; the attempt is bounded by n.timeout only.
func (n *Notifier) send(ctx context.Context, msg Message) bool {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.mailer.Send(sendCtx, msg); err != nil {
		n.log.Warn(ctx, "email delivery failed", "to", msg.To, "subject", msg.Subject, "error", err)
		return false
	}
	n.log.Info(ctx, "email sent", "to", msg.To, "subject", msg.Subject)
	return true
}
