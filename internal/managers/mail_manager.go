// Mail delivery goes through Mailgun, with bodies rendered by Hermes.
package managers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/matcornic/hermes/v2"
	log "github.com/sirupsen/logrus"
)

// MailMgr is the mail collaborator: activation codes and password reset
// links. Delivery is fire-and-forget from the caller's perspective; a
// failure surfaces as an error on the triggering request and nothing is
// retried.
type MailMgr interface {
	SendActivationMail(email, username, code string) error
	SendResetMail(email, link string) error
}

// MailManager is the Mailgun-backed MailMgr. Outside production it logs
// and skips actual delivery.
type MailManager struct {
	Hermes  *hermes.Hermes
	Mailgun *mailgun.MailgunImpl
}

var environment string

// SendActivationMail mails the 4-digit activation code to a pending
// registration.
func (mm *MailManager) SendActivationMail(email, username, code string) error {
	if environment != "production" {
		log.Info("Skipping activation mail in development mode")
		return nil
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Name: username,
			Intros: []string{
				"Welcome to our store! We're very excited to have you on board.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "To activate your account, enter the following code together with your activation token:",
					InviteCode:   code,
				},
			},
			Outros: []string{
				"The code expires in a few minutes. If it does, simply register again.",
			},
		},
	}

	return mm.send(email, "Activate your account", mailBody)
}

// SendResetMail mails a password reset link.
func (mm *MailManager) SendResetMail(email, link string) error {
	if environment != "production" {
		log.Info("Skipping reset mail in development mode")
		return nil
	}

	mailBody := hermes.Email{
		Body: hermes.Body{
			Intros: []string{
				"A password reset was requested for your account.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to choose a new password:",
					Button: hermes.Button{
						Text: "Reset password",
						Link: link,
					},
				},
			},
			Outros: []string{
				"If you did not request a reset, you can safely ignore this mail.",
			},
		},
	}

	return mm.send(email, "Reset your password", mailBody)
}

func (mm *MailManager) send(email, subject string, mailBody hermes.Email) error {
	emailBody, err := mm.Hermes.GenerateHTML(mailBody)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(2*time.Second))
	defer cancel()

	from := fmt.Sprintf("Commerce Core <no-reply@%s>", os.Getenv("MAILGUN_DOMAIN"))
	message := mm.Mailgun.NewMessage(from, subject, "", email)
	message.SetHtml(emailBody)

	if _, _, err = mm.Mailgun.Send(ctx, message); err != nil {
		log.Warning("Error sending mail: " + err.Error())
		return err
	}
	log.Debug("Mail sent to ", email)

	return nil
}

// NewMailManager initializes the Mailgun client and the Hermes renderer
// from the environment.
func NewMailManager() MailMgr {
	log.Info("Initializing mail manager")
	environment = os.Getenv("ENVIRONMENT")

	if environment != "production" {
		log.Info("Running in development mode, email will not be sent to users")
	}

	apiKey := os.Getenv("MAILGUN_API_KEY")
	domain := os.Getenv("MAILGUN_DOMAIN")
	mailgunInstance := mailgun.NewMailgun(domain, apiKey)

	mm := &MailManager{
		Hermes: &hermes.Hermes{
			Theme:         new(hermes.Default),
			TextDirection: hermes.TDLeftToRight,
			Product: hermes.Product{
				Name: "Commerce Core",
				Link: os.Getenv("STOREFRONT_URL"),
			},
		},
		Mailgun: mailgunInstance,
	}

	log.Info("Initialized mail manager")
	return mm
}
