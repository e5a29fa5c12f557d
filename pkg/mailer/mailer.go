// Package mailer delivers transactional email. Without an SMTP relay
// configured it logs the message instead, so dev environments work
// without mail infrastructure.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

type Mailer interface {
	Send(to, subject, body string) error
}

func New(smtpAddr, from string, log zerolog.Logger) Mailer {
	if smtpAddr == "" {
		return &LogMailer{Log: log}
	}
	return &SMTPMailer{Addr: smtpAddr, From: from}
}

// SMTPMailer submits through a relay that accepts unauthenticated
// connections from the app network.
type SMTPMailer struct {
	Addr string
	From string
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	return smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg))
}

type LogMailer struct {
	Log zerolog.Logger
}

func (m *LogMailer) Send(to, subject, body string) error {
	m.Log.Info().Str("to", to).Str("subject", subject).Msg("mail (log delivery)")
	return nil
}
