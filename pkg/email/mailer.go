// Package email dispatches transactional mail over SMTP. OTP delivery is
// the only required artifact of the auth flow: a send failure must fail
// the whole request, so errors are returned rather than logged away.
package email

import (
	"fmt"
	"time"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"gopkg.in/gomail.v2"
)

type Mailer interface {
	SendOTP(to, code string, validFor time.Duration) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(config utils.EmailConfig) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
	}
}

func (m *smtpMailer) SendOTP(to, code string, validFor time.Duration) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your verification code")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Your verification code is <b>%s</b>.</p><p>It expires in %d minutes.</p>",
		code, int(validFor.Minutes()),
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send OTP mail to %s: %w", to, err)
	}
	return nil
}
