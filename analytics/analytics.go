// Package analytics reports conversion events to Google Analytics 4 through
// the Measurement Protocol. Tracking is best effort: a site without a
// measurement ID gets a no-op tracker.
package analytics

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Event is a single analytics event.
type Event struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
	// ClientID identifies the browser (the _ga cookie client id). Empty
	// values are replaced by a random id at send time.
	ClientID string `json:"-"`
}

// DemoRequestConversion is the conversion fired after a demo request reaches
// the CRM.
func DemoRequestConversion(clientID string) Event {
	return Event{
		Name: "generate_lead",
		Params: map[string]string{
			"event_category": "engagement",
			"event_label":    "demo_request",
		},
		ClientID: clientID,
	}
}

// Tracker sends events. Implementations must be safe for concurrent use.
type Tracker interface {
	Track(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

// Track implements Tracker.
func (Nop) Track(context.Context, Event) error { return nil }

// Config selects the tracker at startup.
type Config struct {
	MeasurementID string
	APISecret     string
}

// Configured reports whether both GA4 identifiers are present.
func (c Config) Configured() bool {
	return c.MeasurementID != "" && c.APISecret != ""
}

// New returns a Measurement Protocol tracker when cfg is complete and a Nop
// tracker otherwise.
func New(cfg Config, client *http.Client, logger *zap.SugaredLogger) Tracker {
	if !cfg.Configured() {
		return Nop{}
	}
	return NewMeasurementProtocol(cfg, client, logger)
}

// ClientIDFromCookie extracts the client id from a GA "_ga" cookie value
// ("GA1.1.1234567890.1700000000" -> "1234567890.1700000000").
func ClientIDFromCookie(value string) string {
	parts := strings.Split(value, ".")
	if len(parts) < 4 {
		return ""
	}
	return strings.Join(parts[len(parts)-2:], ".")
}
