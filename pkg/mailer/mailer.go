// Package mailer sends HTML mail over SMTP.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gala/config"

	"github.com/wneessen/go-mail"
)

type Attachment struct {
	Name string
	Data []byte
}

// Message is rendered from an HTML template at send time.
type Message struct {
	To          string
	Subject     string
	Template    *template.Template
	Data        any
	Attachments []Attachment
}

type Sender interface {
	Send(ctx context.Context, msgs ...Message) error
}

// SMTP delivers messages through one authenticated SMTP connection per call.
type SMTP struct {
	cfg config.MailConfig
}

func NewSMTP(cfg config.MailConfig) *SMTP {
	return &SMTP{cfg: cfg}
}

func (s *SMTP) Send(ctx context.Context, msgs ...Message) error {
	built := make([]*mail.Msg, 0, len(msgs))
	for _, m := range msgs {
		msg, err := s.build(m)
		if err != nil {
			return err
		}
		built = append(built, msg)
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, built...); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTP) build(m Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("from %q: %w", s.cfg.From, err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("to %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	if err := msg.SetBodyHTMLTemplate(m.Template, m.Data); err != nil {
		return nil, fmt.Errorf("render %q: %w", m.Subject, err)
	}
	for _, a := range m.Attachments {
		if err := msg.AttachReader(a.Name, bytes.NewReader(a.Data)); err != nil {
			return nil, fmt.Errorf("attach %q: %w", a.Name, err)
		}
	}
	return msg, nil
}

// Render executes m's template; used for previews and tests.
func Render(m Message) (string, error) {
	var buf bytes.Buffer
	if err := m.Template.Execute(&buf, m.Data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
