package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultEndpoint is the GA4 Measurement Protocol collection URL.
const DefaultEndpoint = "https://www.google-analytics.com/mp/collect"

// MeasurementProtocol posts events to GA4.
type MeasurementProtocol struct {
	Endpoint string

	cfg    Config
	client *http.Client
	logger *zap.SugaredLogger
}

type mpPayload struct {
	ClientID string  `json:"client_id"`
	Events   []Event `json:"events"`
}

// NewMeasurementProtocol returns a GA4 tracker. A nil client gets a 5s timeout.
func NewMeasurementProtocol(cfg Config, client *http.Client, logger *zap.SugaredLogger) *MeasurementProtocol {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &MeasurementProtocol{
		Endpoint: DefaultEndpoint,
		cfg:      cfg,
		client:   client,
		logger:   logger,
	}
}

// Track sends e as a single-event batch.
func (m *MeasurementProtocol) Track(ctx context.Context, e Event) error {
	clientID := e.ClientID
	if clientID == "" {
		clientID = uuid.NewString()
	}
	body, err := json.Marshal(mpPayload{ClientID: clientID, Events: []Event{e}})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	u, err := url.Parse(m.Endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("measurement_id", m.cfg.MeasurementID)
	q.Set("api_secret", m.cfg.APISecret)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send event %s: %w", e.Name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send event %s: unexpected status %d", e.Name, resp.StatusCode)
	}
	m.logger.Debugw("analytics event sent", "event", e.Name, "client_id", clientID)
	return nil
}
