// Package mailer sends transactional email, primarily login OTPs. In
// development (no SMTP host configured) messages are logged to the
// console instead of sent.
package mailer

import (
	"fmt"
	"log"

	"saudapakka/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer represents an email sender.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// consoleMailer prints mail to the log; the dev default.
type consoleMailer struct{}

// New builds a Mailer from SMTP_* environment variables, falling back
// to console output when SMTP_HOST is unset.
func New() Mailer {
	host := config.GetEnv("SMTP_HOST", "")
	if host == "" {
		log.Println("SMTP_HOST not set, using console mailer")
		return consoleMailer{}
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(
			host,
			config.GetIntEnv("SMTP_PORT", 587),
			config.GetEnv("SMTP_USERNAME", ""),
			config.GetEnv("SMTP_PASSWORD", ""),
		),
		from: config.GetEnv("SMTP_FROM", "no-reply@saudapakka.local"),
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

func (consoleMailer) Send(to, subject, body string) error {
	log.Printf("[mail] to=%s subject=%q\n%s", to, subject, body)
	return nil
}
