// Package mailer delivers the alert email over SMTP.
package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends plain-text alerts from the configured sender account to the
// configured receiver.
type Mailer struct {
	dialer   *gomail.Dialer
	sender   string
	receiver string
}

// New builds a mailer for the given SMTP account. On port 587 the dialer
// negotiates STARTTLS before authenticating.
func New(host string, port int, sender, password, receiver string) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, sender, password),
		sender:   sender,
		receiver: receiver,
	}
}

// Send delivers one message. Dial, auth and delivery problems all surface
// through the returned error.
func (m *Mailer) Send(subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", m.receiver)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	return m.dialer.DialAndSend(msg)
}
