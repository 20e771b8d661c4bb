package mailer

import (
	"github.com/diagnosis/hbnb-listings/pkg/logger"
)

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendWelcome(toEmail, toName string) error {
	logger.Info("[DEV MAIL] Welcome Email",
		"to", toEmail,
		"name", toName,
		"subject", "Welcome to HBnB",
	)
	return nil
}
