package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewReturnsNopWhenUnconfigured(t *testing.T) {
	tests := []Config{
		{},
		{MeasurementID: "G-123"},
		{APISecret: "secret"},
	}
	for _, cfg := range tests {
		if _, ok := New(cfg, nil, nil).(Nop); !ok {
			t.Errorf("New(%+v) should return Nop", cfg)
		}
	}
	if _, ok := New(Config{MeasurementID: "G-1", APISecret: "s"}, nil, nil).(*MeasurementProtocol); !ok {
		t.Error("New with full config should return *MeasurementProtocol")
	}
}

func TestMeasurementProtocolTrack(t *testing.T) {
	var (
		gotQuery   map[string]string
		gotPayload mpPayload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotQuery = map[string]string{
			"measurement_id": r.URL.Query().Get("measurement_id"),
			"api_secret":     r.URL.Query().Get("api_secret"),
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	mp := NewMeasurementProtocol(Config{MeasurementID: "G-TEST", APISecret: "shh"}, srv.Client(), nil)
	mp.Endpoint = srv.URL + "/mp/collect"

	if err := mp.Track(context.Background(), DemoRequestConversion("123.456")); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if gotQuery["measurement_id"] != "G-TEST" || gotQuery["api_secret"] != "shh" {
		t.Errorf("query = %v", gotQuery)
	}
	if gotPayload.ClientID != "123.456" {
		t.Errorf("client_id = %q, want 123.456", gotPayload.ClientID)
	}
	if len(gotPayload.Events) != 1 || gotPayload.Events[0].Name != "generate_lead" {
		t.Fatalf("events = %+v", gotPayload.Events)
	}
	if gotPayload.Events[0].Params["event_label"] != "demo_request" {
		t.Errorf("event_label = %q, want demo_request", gotPayload.Events[0].Params["event_label"])
	}
}

func TestMeasurementProtocolGeneratesClientID(t *testing.T) {
	var payload mpPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	mp := NewMeasurementProtocol(Config{MeasurementID: "G", APISecret: "s"}, srv.Client(), nil)
	mp.Endpoint = srv.URL
	if err := mp.Track(context.Background(), Event{Name: "page_view"}); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if payload.ClientID == "" {
		t.Error("expected a generated client_id")
	}
}

func TestMeasurementProtocolErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	mp := NewMeasurementProtocol(Config{MeasurementID: "G", APISecret: "s"}, srv.Client(), nil)
	mp.Endpoint = srv.URL
	if err := mp.Track(context.Background(), Event{Name: "x"}); err == nil {
		t.Error("expected error on 400 response")
	}
}

func TestClientIDFromCookie(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"GA1.1.1234567890.1700000000", "1234567890.1700000000"},
		{"GA1.2.99.88", "99.88"},
		{"garbage", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ClientIDFromCookie(tt.in); got != tt.want {
			t.Errorf("ClientIDFromCookie(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
