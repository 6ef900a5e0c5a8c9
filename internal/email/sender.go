// Package email delivers contact-form messages to the support mailbox over
// SMTP. Transactional purchase mail goes through internal/mailer instead.
package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type Sender interface {
	SendContactMessage(toSupport, fromName, fromEmail, subject, body string) error
}

type SMTPSender struct {
	cfg    Config
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg Config) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// SendContactMessage forwards one contact-form submission. The visitor's
// address goes into Reply-To so support answers land in the right inbox.
func (s *SMTPSender) SendContactMessage(toSupport, fromName, fromEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	m.SetHeader("To", toSupport)
	m.SetHeader("Reply-To", fromEmail)
	m.SetHeader("Subject", fmt.Sprintf("[Contact] %s", subject))
	m.SetBody("text/plain", fmt.Sprintf("From: %s <%s>\n\n%s", fromName, fromEmail, body))

	return s.dialer.DialAndSend(m)
}
