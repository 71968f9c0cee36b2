package mailer

import (
	"context"
	"errors"
	"fmt"

	"site_cms/internal/config"
	"site_cms/internal/domain/models"

	"github.com/wneessen/go-mail"
)

var ErrDisabled = errors.New("mailer is not configured")

type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       string
}

func New(cfg config.MailConfig) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		to:       cfg.To,
	}
}

func (m *Mailer) Enabled() bool {
	return m.host != "" && m.from != "" && m.to != ""
}

// SendContact forwards a contact form submission to the site inbox.
func (m *Mailer) SendContact(ctx context.Context, msg models.ContactMessage) error {
	const op = "mailer.Mailer.SendContact"

	if !m.Enabled() {
		return fmt.Errorf("%s: %w", op, ErrDisabled)
	}

	message, err := m.contactMessage(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if m.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.username),
			mail.WithPassword(m.password),
		)
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (m *Mailer) contactMessage(msg models.ContactMessage) (*mail.Msg, error) {
	message := mail.NewMsg()
	if err := message.From(m.from); err != nil {
		return nil, err
	}
	if err := message.To(m.to); err != nil {
		return nil, err
	}
	if err := message.ReplyTo(msg.Email); err != nil {
		return nil, err
	}

	message.Subject("Contact form: " + msg.Subject)
	message.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(
		"Name: %s\nEmail: %s\nSubject: %s\n\n%s\n",
		msg.Name, msg.Email, msg.Subject, msg.Message,
	))

	return message, nil
}
