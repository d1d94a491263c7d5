package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/dmitrymomot/visitrack/pkg/webhook"
)

const defaultTelegramAPI = "https://api.telegram.org"

// TelegramConfig holds Telegram bot credentials.
type TelegramConfig struct {
	Enabled  bool   `env:"TELEGRAM_ENABLED" envDefault:"false"` // Enabled toggles the sink.
	BotToken string `env:"TELEGRAM_BOT_TOKEN"`                  // BotToken is the bot API token from @BotFather.
	ChatID   string `env:"TELEGRAM_CHAT_ID"`                    // ChatID is the destination chat or channel.
	APIURL   string `env:"TELEGRAM_API_URL"`                    // APIURL overrides the bot API base, used in tests.
}

// TelegramSink posts visit events as HTML-formatted messages through
// the Telegram bot API.
type TelegramSink struct {
	apiURL string
	token  string
	chatID string
	sender *webhook.Sender
}

// NewTelegramSink creates a Telegram sink from config.
func NewTelegramSink(cfg TelegramConfig, sender *webhook.Sender) *TelegramSink {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultTelegramAPI
	}
	if sender == nil {
		sender = webhook.NewSender()
	}
	return &TelegramSink{
		apiURL: strings.TrimSuffix(apiURL, "/"),
		token:  cfg.BotToken,
		chatID: cfg.ChatID,
		sender: sender,
	}
}

func (s *TelegramSink) Name() string { return "telegram" }

type telegramMessage struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

func (s *TelegramSink) Notify(ctx context.Context, rec Record) error {
	msg := telegramMessage{
		ChatID:                s.chatID,
		Text:                  formatTelegramText(rec),
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	}

	sendURL := fmt.Sprintf("%s/bot%s/sendMessage", s.apiURL, s.token)
	if err := s.sender.Send(ctx, sendURL, msg); err != nil {
		return fmt.Errorf("telegram delivery: %w", err)
	}
	return nil
}

func formatTelegramText(rec Record) string {
	var b strings.Builder

	if rec.Tracking.IsUnique {
		b.WriteString("🆕 <b>New visitor</b>\n")
	} else {
		b.WriteString("🔁 <b>Returning visitor</b>\n")
	}

	fmt.Fprintf(&b, "%s <b>%s</b>, %s\n",
		rec.Geo.Flag, html.EscapeString(rec.Geo.Country), html.EscapeString(rec.Geo.City))
	fmt.Fprintf(&b, "🌐 <code>%s</code> · %s\n",
		html.EscapeString(rec.Request.IP), html.EscapeString(rec.Geo.ISP))
	fmt.Fprintf(&b, "💻 %s · %s %s\n",
		html.EscapeString(rec.Device.OS), html.EscapeString(rec.Device.Browser), html.EscapeString(rec.Device.BrowserVersion))
	fmt.Fprintf(&b, "📄 <code>%s</code>\n", html.EscapeString(rec.Request.Path))

	if rec.Request.Referrer != "" {
		fmt.Fprintf(&b, "↩️ %s\n", html.EscapeString(rec.Request.Referrer))
	}
	if rec.Device.Bot {
		fmt.Fprintf(&b, "🤖 bot: %s\n", html.EscapeString(rec.Device.BotName))
	}
	if rec.Geo.Threat.Suspicious {
		fmt.Fprintf(&b, "⚠️ %s\n", html.EscapeString(strings.Join(rec.Geo.Threat.Indicators, ", ")))
	}

	fmt.Fprintf(&b, "🔢 visit #%d · trust %s (%d)",
		rec.Tracking.VisitCount, rec.Session.TrustLevel, rec.Session.TrustScore)

	return b.String()
}
