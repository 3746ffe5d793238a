package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Mailgun sends messages through one Mailgun domain.
type Mailgun struct {
	client *mg.MailgunImpl
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), Sender: sender}
}

// Send delivers one message. html may be empty; tags label it in Mailgun analytics.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string, tags ...string) error {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	if len(tags) > 0 {
		if err := msg.AddTag(tags...); err != nil {
			return err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, _, err := m.client.Send(ctx, msg)
	return err
}
