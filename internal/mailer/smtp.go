package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/DyutiRaman/psyche-connect-app/internal/config"
)

// SMTPSender relays through an SMTP server, e.g. Gmail with an app password.
type SMTPSender struct {
	cfg config.SMTP
}

func NewSMTPSender(cfg config.SMTP) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("mailer.NewSMTPSender: smtp host is required")
	}

	return &SMTPSender{cfg: cfg}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	const op = "mailer.SMTPSender.Send"

	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("%s: from: %w", op, err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("%s: to: %w", op, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
