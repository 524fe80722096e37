package notify

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/phuslu/log"

	"github.com/example/parkctl/internal/actions"
)

// reservationsURL is appended to every mail so the recipient can jump
// straight to the booking overview.
const reservationsURL = "https://share.parkanizer.com/reservations-list"

// MailConfig holds the SMTP settings for the mail notifier.
type MailConfig struct {
	Host     string   `toml:"host" validate:"required,hostname|ip"`
	Port     int      `toml:"port" validate:"required,min=1,max=65535"`
	Username string   `toml:"username"`
	Password string   `toml:"password"`
	From     string   `toml:"from" validate:"required,email"`
	FromName string   `toml:"from_name"`
	To       []string `toml:"to" validate:"required,min=1,dive,email"`
	UseTLS   bool     `toml:"use_tls"`
}

// MailNotifier delivers action results over SMTP. Delivery errors are
// logged and swallowed so a broken mail server never fails a booking.
type MailNotifier struct {
	cfg MailConfig
}

func NewMailNotifier(cfg MailConfig) *MailNotifier {
	if cfg.FromName == "" {
		cfg.FromName = "parkctl"
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &MailNotifier{cfg: cfg}
}

func (n *MailNotifier) Notify(event actions.Event, result actions.Result) {
	subject := fmt.Sprintf("parkctl: %s %s", result.Kind(), result.Status())
	body := Format(result) + "\n" + reservationsURL + "\n"

	for _, to := range n.cfg.To {
		if err := n.send(to, subject, body); err != nil {
			log.Error().Err(err).Str("to", to).Str("event", string(event)).Msg("mail delivery failed")
			continue
		}
		log.Debug().Str("to", to).Str("action", string(result.Kind())).Msg("mail sent")
	}
}

func (n *MailNotifier) send(to, subject, body string) error {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", n.cfg.FromName, n.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if n.cfg.UseTLS {
		return n.sendWithTLS(addr, auth, to, msg.String())
	}
	return smtp.SendMail(addr, auth, n.cfg.From, []string{to}, []byte(msg.String()))
}

// sendWithTLS dials an implicit-TLS endpoint first and falls back to a
// plain dial with a STARTTLS upgrade, which covers both common server
// setups on ports 465 and 587.
func (n *MailNotifier) sendWithTLS(addr string, auth smtp.Auth, to, msg string) error {
	host := strings.Split(addr, ":")[0]

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return n.sendWithSTARTTLS(addr, auth, to, msg)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	return n.deliver(client, auth, to, msg)
}

func (n *MailNotifier) sendWithSTARTTLS(addr string, auth smtp.Auth, to, msg string) error {
	host := strings.Split(addr, ":")[0]

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}

	return n.deliver(client, auth, to, msg)
}

func (n *MailNotifier) deliver(client *smtp.Client, auth smtp.Auth, to, msg string) error {
	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(n.cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}
	return client.Quit()
}
