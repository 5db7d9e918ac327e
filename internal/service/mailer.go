package service

import (
	"ambasphere-backend/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers a single email. The SMTP implementation is swapped out in
// tests.
type Mailer interface {
	Send(recipient, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer() Mailer {
	return &smtpMailer{
		dialer: config.NewMailDialer(),
		from:   config.SMTPSender(),
	}
}

func (m *smtpMailer) Send(recipient, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}
