package notify

import (
	"bufio"
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSMTP accepts a single session and records what the client sent.
type fakeSMTP struct {
	ln       net.Listener
	mu       sync.Mutex
	commands []string
	data     string
	done     chan struct{}
}

func startFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeSMTP{ln: ln, done: make(chan struct{})}
	t.Cleanup(func() { ln.Close() })

	go s.serve()
	return s
}

func (s *fakeSMTP) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTP) serve() {
	defer close(s.done)
	conn, err := s.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	r := bufio.NewReader(conn)
	reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }
	reply("220 localhost ESMTP")

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		s.mu.Lock()
		s.commands = append(s.commands, line)
		s.mu.Unlock()

		switch verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0]); verb {
		case "EHLO":
			reply("250-localhost")
			reply("250 AUTH PLAIN")
		case "AUTH":
			reply("235 2.7.0 Authentication successful")
		case "DATA":
			reply("354 Go ahead")
			var body strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				body.WriteString(l)
			}
			s.mu.Lock()
			s.data = body.String()
			s.mu.Unlock()
			reply("250 OK")
		case "QUIT":
			reply("221 Bye")
			return
		default:
			reply("250 OK")
		}
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	srv := startFakeSMTP(t)
	m := NewSMTPMailer("127.0.0.1", srv.port(), "me@example.com", "app-password", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := m.Send(ctx, Message{To: "you@example.com", Subject: "Hello", HTML: "<p>hi</p>"})
	require.NoError(t, err)
	<-srv.done

	srv.mu.Lock()
	defer srv.mu.Unlock()

	joined := strings.Join(srv.commands, "\n")
	assert.Contains(t, joined, "AUTH PLAIN")
	assert.Contains(t, joined, "MAIL FROM:<me@example.com>")
	assert.Contains(t, joined, "RCPT TO:<you@example.com>")

	assert.Contains(t, srv.data, "Subject: Hello\r\n")
	assert.Contains(t, srv.data, "Content-Type: text/html")
	assert.Contains(t, srv.data, "<p>hi</p>")
}

func TestSMTPMailer_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	m := NewSMTPMailer("127.0.0.1", port, "u", "p", "from@example.com")
	err = m.Send(context.Background(), Message{To: "x@example.com", Subject: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp dial")
}

func TestSMTPMailer_RejectsHeaderInjection(t *testing.T) {
	m := NewSMTPMailer("127.0.0.1", 2525, "u", "p", "")
	err := m.Send(context.Background(), Message{To: "a@example.com\r\nBcc: evil@example.com", Subject: "s"})
	assert.Error(t, err)
}

func TestSMTPMailer_Compose(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com", 465, "user@example.com", "p", "Portfolio <noreply@example.com>")
	raw := string(m.compose(Message{To: "a@example.com", Subject: "Subj", HTML: "<b>x</b>"}))

	assert.True(t, strings.HasPrefix(raw, "From: Portfolio <noreply@example.com>\r\n"))
	assert.Contains(t, raw, "To: a@example.com\r\n")
	assert.Contains(t, raw, "MIME-Version: 1.0\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<b>x</b>"))
}
