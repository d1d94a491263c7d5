package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrymomot/visitrack/pkg/webhook"
)

// DiscordConfig holds the Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `env:"DISCORD_ENABLED" envDefault:"false"` // Enabled toggles the sink.
	WebhookURL string `env:"DISCORD_WEBHOOK_URL"`                // WebhookURL is the channel webhook endpoint.
	Username   string `env:"DISCORD_USERNAME" envDefault:"visitrack"`
}

// DiscordSink posts visit events as embeds to a Discord channel
// webhook.
type DiscordSink struct {
	webhookURL string
	username   string
	sender     *webhook.Sender
}

// NewDiscordSink creates a Discord sink from config.
func NewDiscordSink(cfg DiscordConfig, sender *webhook.Sender) *DiscordSink {
	if sender == nil {
		sender = webhook.NewSender()
	}
	return &DiscordSink{
		webhookURL: cfg.WebhookURL,
		username:   cfg.Username,
		sender:     sender,
	}
}

func (s *DiscordSink) Name() string { return "discord" }

type discordPayload struct {
	Username string         `json:"username,omitempty"`
	Embeds   []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title     string         `json:"title"`
	Color     int            `json:"color"`
	Timestamp string         `json:"timestamp"`
	Fields    []discordField `json:"fields"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Embed accent colors: green for unique visits, grey for returning.
const (
	discordColorUnique    = 0x2ECC71
	discordColorReturning = 0x95A5A6
)

func (s *DiscordSink) Notify(ctx context.Context, rec Record) error {
	title := "Returning visitor"
	color := discordColorReturning
	if rec.Tracking.IsUnique {
		title = "New visitor"
		color = discordColorUnique
	}

	fields := []discordField{
		{Name: "Location", Value: fmt.Sprintf("%s %s, %s", rec.Geo.Flag, rec.Geo.Country, rec.Geo.City), Inline: true},
		{Name: "IP", Value: rec.Request.IP, Inline: true},
		{Name: "ISP", Value: rec.Geo.ISP, Inline: true},
		{Name: "Device", Value: fmt.Sprintf("%s · %s %s", rec.Device.OS, rec.Device.Browser, rec.Device.BrowserVersion), Inline: true},
		{Name: "Page", Value: rec.Request.Path, Inline: true},
		{Name: "Visit", Value: fmt.Sprintf("#%d · trust %s", rec.Tracking.VisitCount, rec.Session.TrustLevel), Inline: true},
	}
	if rec.Request.Referrer != "" {
		fields = append(fields, discordField{Name: "Referrer", Value: rec.Request.Referrer})
	}
	if rec.Device.Bot {
		fields = append(fields, discordField{Name: "Bot", Value: rec.Device.BotName, Inline: true})
	}

	payload := discordPayload{
		Username: s.username,
		Embeds: []discordEmbed{{
			Title:     title,
			Color:     color,
			Timestamp: rec.Timestamp.Format(time.RFC3339),
			Fields:    fields,
		}},
	}

	if err := s.sender.Send(ctx, s.webhookURL, payload); err != nil {
		return fmt.Errorf("discord delivery: %w", err)
	}
	return nil
}
