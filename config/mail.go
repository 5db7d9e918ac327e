package config

import "gopkg.in/gomail.v2"

// SMTPSender is the From address on every outgoing mail.
func SMTPSender() string {
	return GetEnv("SMTP_FROM", "no-reply@ambasphere.local")
}

// NewMailDialer builds the SMTP dialer from the environment.
func NewMailDialer() *gomail.Dialer {
	return gomail.NewDialer(
		GetEnv("SMTP_HOST", "localhost"),
		GetEnvAsInt("SMTP_PORT", 587),
		GetEnv("SMTP_USER", ""),
		GetEnv("SMTP_PASSWORD", ""),
	)
}
