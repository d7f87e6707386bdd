// Package email implements the customer notification collaborator over SMTP.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/danang-express/delivery-system/internal/api/metrics"
)

// Config holds SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Notifier sends plain-text e-mail through an SMTP relay.
// It implements ports.Notifier.
type Notifier struct {
	addr string
	from string
	auth smtp.Auth
	log  zerolog.Logger

	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewNotifier(cfg Config, log zerolog.Logger) *Notifier {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &Notifier{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
		log:  log,
		send: smtp.SendMail,
	}
}

// Send delivers one message. The context is honoured up front; the SMTP
// exchange itself relies on the relay's own timeouts.
func (n *Notifier) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(n.from, to, subject, body)
	if err := n.send(n.addr, n.auth, n.from, []string{to}, msg); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	n.log.Debug().Str("to", to).Str("subject", subject).Msg("notification sent")
	return nil
}

// buildMessage assembles an RFC 5322 message with CRLF line endings.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
