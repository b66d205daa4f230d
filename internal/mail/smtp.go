package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPSender sends mail through a single SMTP relay. Dial and send are
// bounded by the context deadline (falling back to a fixed timeout) so a
// slow relay cannot stall the request pool.
type SMTPSender struct {
	host     string
	port     int
	from     string
	auth     smtp.Auth
	sendWait time.Duration
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		from:     from,
		auth:     auth,
		sendWait: 10 * time.Second,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	deadline := time.Now().Add(s.sendWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	addr := net.JoinHostPort(s.host, fmt.Sprintf("%d", s.port))
	conn, err := net.DialTimeout("tcp", addr, time.Until(deadline))
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrDeliveryFailed, addr, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(deadline)

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return fmt.Errorf("%w: handshake: %v", ErrDeliveryFailed, err)
	}
	defer client.Close()

	if s.auth != nil {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
				return fmt.Errorf("%w: starttls: %v", ErrDeliveryFailed, err)
			}
		}
		if err := client.Auth(s.auth); err != nil {
			return fmt.Errorf("%w: auth: %v", ErrDeliveryFailed, err)
		}
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("%w: mail from: %v", ErrDeliveryFailed, err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("%w: rcpt to: %v", ErrDeliveryFailed, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: data: %v", ErrDeliveryFailed, err)
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("%w: write: %v", ErrDeliveryFailed, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrDeliveryFailed, err)
	}

	return client.Quit()
}
