package notify

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/visitrack/pkg/webhook"
)

// DatastoreConfig holds the settings for the generic JSON datastore
// endpoint.
type DatastoreConfig struct {
	Enabled bool   `env:"DATASTORE_ENABLED" envDefault:"false"` // Enabled toggles the sink.
	URL     string `env:"DATASTORE_URL"`                        // URL receives the raw event as a JSON POST.
	APIKey  string `env:"DATASTORE_API_KEY"`                    // APIKey is sent as the X-API-Key header when set.
}

// DatastoreSink forwards the raw visit event to an external HTTP
// datastore as JSON.
type DatastoreSink struct {
	url    string
	apiKey string
	sender *webhook.Sender
}

// NewDatastoreSink creates a datastore sink from config.
func NewDatastoreSink(cfg DatastoreConfig, sender *webhook.Sender) *DatastoreSink {
	if sender == nil {
		sender = webhook.NewSender()
	}
	return &DatastoreSink{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		sender: sender,
	}
}

func (s *DatastoreSink) Name() string { return "datastore" }

func (s *DatastoreSink) Notify(ctx context.Context, rec Record) error {
	opts := []webhook.SendOption{}
	if s.apiKey != "" {
		opts = append(opts, webhook.WithHeader("X-API-Key", s.apiKey))
	}

	if err := s.sender.Send(ctx, s.url, rec, opts...); err != nil {
		return fmt.Errorf("datastore delivery: %w", err)
	}
	return nil
}
