package utils

import (
	"context"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"

	"tourlms/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailMessage is a single HTML email
type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer sends emails. Callers decide whether a failure matters.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// Mail is the configured mailer. It logs instead of sending until InitMailer runs.
var Mail Mailer = logMailer{}

// InitMailer picks the mailer for MAIL_PROVIDER
func InitMailer(cfg *config.Config) {
	Mail = NewMailer(cfg)
}

// NewMailer builds the mailer for MAIL_PROVIDER: smtp, sendgrid or none
func NewMailer(cfg *config.Config) Mailer {
	switch cfg.MailProvider {
	case "smtp":
		return &smtpMailer{
			host:     cfg.SMTPHost,
			port:     cfg.SMTPPort,
			from:     cfg.EmailSender,
			password: cfg.Password,
			appName:  cfg.AppName,
		}
	case "sendgrid":
		return &sendgridMailer{
			client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
			from:   sgmail.NewEmail(cfg.AppName, cfg.EmailSender),
		}
	default:
		return logMailer{}
	}
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	password string
	appName  string
}

// message renders msg as an RFC 5322 HTML message
func (m *smtpMailer) message(msg EmailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.appName, m.from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

func (m *smtpMailer) Send(_ context.Context, msg EmailMessage) error {
	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, msg.To, m.message(msg)); err != nil {
		return fmt.Errorf("smtp send %q: %w", msg.Subject, err)
	}
	return nil
}

type sendgridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

func (m *sendgridMailer) Send(ctx context.Context, msg EmailMessage) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail("", to))
	}

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(m.from)
	v3.AddPersonalizations(p)
	v3.AddContent(sgmail.NewContent("text/html", msg.HTML))

	res, err := m.client.SendWithContext(ctx, v3)
	if err != nil {
		return fmt.Errorf("sendgrid send %q: %w", msg.Subject, err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid send %q: status %d: %s", msg.Subject, res.StatusCode, res.Body)
	}
	return nil
}

// logMailer is used when no provider is configured
type logMailer struct{}

func (logMailer) Send(_ context.Context, msg EmailMessage) error {
	Log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("email not configured, skipping send")
	return nil
}
