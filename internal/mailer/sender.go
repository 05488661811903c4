package mailer

import (
	"fmt"

	"github.com/DyutiRaman/psyche-connect-app/internal/config"
)

// NewSender returns the relay selected by cfg.Provider.
func NewSender(cfg config.Mail) (Sender, error) {
	switch cfg.Provider {
	case config.ProviderSMTP:
		return NewSMTPSender(cfg.SMTP)
	case config.ProviderResend:
		return NewResendSender(cfg.ResendAPIKey)
	default:
		return nil, fmt.Errorf("mailer.NewSender: unsupported provider %q", cfg.Provider)
	}
}
