package lead

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFieldsMapping(t *testing.T) {
	r := validRequest()
	r.HowDidYouHear = "Conference"
	want := []Field{
		{"firstname", "Maria"},
		{"lastname", "Elena Gomez"},
		{"email", "maria@school.org"},
		{"company", "PS 123"},
		{"jobtitle", "Principal"},
		{"numemployees", "Under 500"},
		{"how_did_you_hear_about_us", "Conference"},
		{"hs_lead_status", "NEW"},
	}
	if diff := cmp.Diff(want, Fields(r)); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsOmitsEmptySource(t *testing.T) {
	for _, f := range Fields(validRequest()) {
		if f.Name == "how_did_you_hear_about_us" {
			t.Errorf("unexpected field %q when source is empty", f.Name)
		}
	}
}

func TestNewSubmissionContext(t *testing.T) {
	s := NewSubmission(validRequest(), PageContext{PageURI: "https://example.com/contact/", TrackingCookie: "abc"})
	want := SubmissionContext{PageURI: "https://example.com/contact/", PageName: PageName, HUTK: "abc"}
	if s.Context != want {
		t.Errorf("Context = %+v, want %+v", s.Context, want)
	}
}

func TestNewSubmitterSelectsStrategy(t *testing.T) {
	if _, ok := NewSubmitter(Config{PortalID: "1"}, nil).(*LocalSubmitter); !ok {
		t.Error("NewSubmitter without form id should return *LocalSubmitter")
	}
	if _, ok := NewSubmitter(Config{PortalID: "1", FormID: "f"}, nil).(*HubSpotSubmitter); !ok {
		t.Error("NewSubmitter with both ids should return *HubSpotSubmitter")
	}
}

func TestLocalSubmitterSucceeds(t *testing.T) {
	res := NewLocalSubmitter(nil).Submit(context.Background(), validRequest(), PageContext{})
	if !res.Success || res.Error != "" {
		t.Errorf("Submit = %+v, want success", res)
	}
}

func TestHubSpotSubmitterURL(t *testing.T) {
	s := NewHubSpotSubmitter(Config{PortalID: "123", FormID: "abc-def"}, nil, nil)
	want := "https://api.hsforms.com/submissions/v3/integration/submit/123/abc-def"
	if got := s.URL(); got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestHubSpotSubmitterAccepted(t *testing.T) {
	var (
		gotPath string
		got     Submission
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewHubSpotSubmitter(Config{PortalID: "42", FormID: "form"}, srv.Client(), nil)
	s.Endpoint = srv.URL + "/submit"

	res := s.Submit(context.Background(), validRequest(), PageContext{PageURI: "https://example.com/contact/"})
	if !res.Success {
		t.Fatalf("Submit = %+v, want success", res)
	}
	if gotPath != "/submit/42/form" {
		t.Errorf("path = %q", gotPath)
	}
	if got.Context.PageName != PageName {
		t.Errorf("pageName = %q", got.Context.PageName)
	}
	if got.Context.HUTK != "" {
		t.Errorf("hutk = %q, want empty", got.Context.HUTK)
	}
	if diff := cmp.Diff(Fields(validRequest()), got.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestHubSpotSubmitterRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"bad email"}`))
	}))
	defer srv.Close()

	s := NewHubSpotSubmitter(Config{PortalID: "1", FormID: "f"}, srv.Client(), nil)
	s.Endpoint = srv.URL

	res := s.Submit(context.Background(), validRequest(), PageContext{})
	if res.Success || res.Error != MsgRejected {
		t.Errorf("Submit = %+v, want rejected", res)
	}
}

func TestHubSpotSubmitterNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewHubSpotSubmitter(Config{PortalID: "1", FormID: "f"}, nil, nil)
	s.Endpoint = url

	res := s.Submit(context.Background(), validRequest(), PageContext{})
	if res.Success || res.Error != MsgNetworkError {
		t.Errorf("Submit = %+v, want network error", res)
	}
}
