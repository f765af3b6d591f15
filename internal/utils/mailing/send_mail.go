package mailing

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"Potluck-Backend/domain"
	"Potluck-Backend/internal/utils"
	"Potluck-Backend/pkg/potluck"

	"gopkg.in/gomail.v2"
)

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	// Notifier tells a host about activity on their event.
	Notifier interface {
		NotifyNewRSVP(host domain.Identity, event potluck.Event, item potluck.Item) error
	}

	mailNotifier struct {
		config MailConfig
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// NewMailNotifier returns nil when SMTP is not configured.
func NewMailNotifier() Notifier {
	config := LoadMailConfig()
	if config.SMTPHost == "" || config.SMTPEmail == "" {
		return nil
	}
	return &mailNotifier{config: config}
}

func send(emailConfig MailConfig, toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	if emailConfig.SMTPSender != "" {
		mailer.SetAddressHeader("From", emailConfig.SMTPEmail, emailConfig.SMTPSender)
	} else {
		mailer.SetHeader("From", emailConfig.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)
	port, err := strconv.Atoi(emailConfig.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		emailConfig.SMTPHost,
		port,
		emailConfig.SMTPEmail,
		emailConfig.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func (m *mailNotifier) NotifyNewRSVP(host domain.Identity, event potluck.Event, item potluck.Item) error {
	if host.Email == "" {
		return nil
	}
	subject := fmt.Sprintf("%s signed up for %s", item.Person, event.Name)
	return send(m.config, host.Email, subject, RSVPBody(m.config.AppURL, event, item))
}

// RSVPBody renders the notification email for a new RSVP.
func RSVPBody(appURL string, event potluck.Event, item potluck.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>%s</strong> is coming to <strong>%s</strong> on %s",
		html.EscapeString(item.Person),
		html.EscapeString(event.Name),
		html.EscapeString(event.Date),
	)
	if guests := potluck.EffectiveGuestCount(item.GuestCount); guests > 1 {
		fmt.Fprintf(&b, " with a party of %d", guests)
	}
	b.WriteString(".</p>")
	fmt.Fprintf(&b, "<p>Bringing: %s</p>", html.EscapeString(potluck.FormatDishList(potluck.DishNames(item))))
	if item.Notes != "" {
		fmt.Fprintf(&b, "<p>Notes: %s</p>", html.EscapeString(item.Notes))
	}
	fmt.Fprintf(&b, `<p><a href="%s?id=%s">View event</a></p>`, html.EscapeString(appURL), html.EscapeString(event.ID))
	return b.String()
}
