package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/mrz1836/postmark"
)

// EmailConfig holds the Postmark delivery settings.
type EmailConfig struct {
	Enabled     bool   `env:"EMAIL_ENABLED" envDefault:"false"` // Enabled toggles the sink.
	ServerToken string `env:"POSTMARK_SERVER_TOKEN"`            // ServerToken authenticates against the Postmark server API.
	From        string `env:"EMAIL_FROM"`                       // From is the verified sender signature.
	To          string `env:"EMAIL_TO"`                         // To receives the visit notifications.
}

// postmarkClient is the slice of the Postmark API the sink needs,
// extracted for testability.
type postmarkClient interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// EmailSink mails visit events through Postmark.
type EmailSink struct {
	client postmarkClient
	from   string
	to     string
}

// NewEmailSink creates an email sink from config.
func NewEmailSink(cfg EmailConfig) *EmailSink {
	return &EmailSink{
		client: postmark.NewClient(cfg.ServerToken, ""),
		from:   cfg.From,
		to:     cfg.To,
	}
}

// NewEmailSinkWithClient creates an email sink with a custom client,
// used in tests.
func NewEmailSinkWithClient(client postmarkClient, from, to string) *EmailSink {
	return &EmailSink{client: client, from: from, to: to}
}

func (s *EmailSink) Name() string { return "email" }

func (s *EmailSink) Notify(ctx context.Context, rec Record) error {
	subject := fmt.Sprintf("Returning visitor from %s", rec.Geo.Country)
	if rec.Tracking.IsUnique {
		subject = fmt.Sprintf("New visitor from %s", rec.Geo.Country)
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     s.from,
		To:       s.to,
		Subject:  subject,
		Tag:      "visit-notification",
		HTMLBody: formatEmailHTML(rec),
	})
	if err != nil {
		return fmt.Errorf("email delivery: %w", err)
	}
	if resp.ErrorCode != 0 {
		return fmt.Errorf("email delivery: postmark error %d: %s", resp.ErrorCode, resp.Message)
	}
	return nil
}

func formatEmailHTML(rec Record) string {
	row := func(label, value string) string {
		return fmt.Sprintf("<tr><td><b>%s</b></td><td>%s</td></tr>", label, html.EscapeString(value))
	}

	var b strings.Builder
	b.WriteString("<table>")
	b.WriteString(row("Location", fmt.Sprintf("%s %s, %s", rec.Geo.Flag, rec.Geo.Country, rec.Geo.City)))
	b.WriteString(row("IP", rec.Request.IP))
	b.WriteString(row("ISP", rec.Geo.ISP))
	b.WriteString(row("Device", fmt.Sprintf("%s, %s %s", rec.Device.OS, rec.Device.Browser, rec.Device.BrowserVersion)))
	b.WriteString(row("Page", rec.Request.Path))
	if rec.Request.Referrer != "" {
		b.WriteString(row("Referrer", rec.Request.Referrer))
	}
	b.WriteString(row("Visit", fmt.Sprintf("#%d", rec.Tracking.VisitCount)))
	b.WriteString(row("Trust", fmt.Sprintf("%s (%d)", rec.Session.TrustLevel, rec.Session.TrustScore)))
	b.WriteString(row("Fingerprint", rec.Session.Fingerprint))
	b.WriteString("</table>")
	return b.String()
}
