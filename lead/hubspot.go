package lead

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the HubSpot Forms v3 submit URL; portal and form ids
	// are appended as path segments.
	DefaultEndpoint = "https://api.hsforms.com/submissions/v3/integration/submit"

	// PageName labels every submission in HubSpot.
	PageName = "BrainBridge - Request a Demo"

	// TrackingCookie is the HubSpot visitor cookie forwarded as hutk.
	TrackingCookie = "hubspotutk"

	// LeadStatusNew is sent as hs_lead_status for every new lead.
	LeadStatusNew = "NEW"

	// DefaultTimeout bounds a single submission.
	DefaultTimeout = 10 * time.Second
)

// Messages shown to the visitor when a submission fails.
const (
	MsgRejected     = "Failed to submit form. Please try again."
	MsgNetworkError = "Network error. Please check your connection and try again."
)

// Field is one HubSpot form field.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SubmissionContext describes where the form was filled in.
type SubmissionContext struct {
	PageURI  string `json:"pageUri"`
	PageName string `json:"pageName"`
	HUTK     string `json:"hutk,omitempty"`
}

// Submission is the JSON body posted to HubSpot.
type Submission struct {
	Fields  []Field           `json:"fields"`
	Context SubmissionContext `json:"context"`
}

// PageContext carries request details that end up in the submission context.
type PageContext struct {
	PageURI        string
	TrackingCookie string
}

// Result is what every submission returns. Error is a message safe to show
// the visitor; the underlying cause is only logged.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Fields maps r onto HubSpot's field names.
func Fields(r DemoRequest) []Field {
	first, last := SplitName(r.Name)
	fields := []Field{
		{Name: "firstname", Value: first},
		{Name: "lastname", Value: last},
		{Name: "email", Value: r.Email},
		{Name: "company", Value: r.Organization},
		{Name: "jobtitle", Value: r.Role},
		{Name: "numemployees", Value: r.StudentCount},
	}
	if r.HowDidYouHear != "" {
		fields = append(fields, Field{Name: "how_did_you_hear_about_us", Value: r.HowDidYouHear})
	}
	return append(fields, Field{Name: "hs_lead_status", Value: LeadStatusNew})
}

// NewSubmission builds the HubSpot payload for r.
func NewSubmission(r DemoRequest, page PageContext) Submission {
	return Submission{
		Fields: Fields(r),
		Context: SubmissionContext{
			PageURI:  page.PageURI,
			PageName: PageName,
			HUTK:     page.TrackingCookie,
		},
	}
}

// Submitter delivers a validated request. It never returns an error:
// failures are reported through Result.
type Submitter interface {
	Submit(ctx context.Context, r DemoRequest, page PageContext) Result
}

// Config holds the HubSpot identifiers. Both are required for live
// submissions.
type Config struct {
	PortalID string
	FormID   string
	Timeout  time.Duration
}

// Configured reports whether both identifiers are set.
func (c Config) Configured() bool {
	return c.PortalID != "" && c.FormID != ""
}

// NewSubmitter picks the submission strategy once, at startup.
func NewSubmitter(cfg Config, logger *zap.SugaredLogger) Submitter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if !cfg.Configured() {
		logger.Warnw("hubspot not configured, demo requests will only be logged")
		return &LocalSubmitter{logger: logger}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewHubSpotSubmitter(cfg, &http.Client{Timeout: timeout}, logger)
}

// LocalSubmitter logs the payload and reports success. It keeps the form
// usable in environments without CRM credentials.
type LocalSubmitter struct {
	logger *zap.SugaredLogger
}

// NewLocalSubmitter returns a logging-only submitter.
func NewLocalSubmitter(logger *zap.SugaredLogger) *LocalSubmitter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LocalSubmitter{logger: logger}
}

// Submit implements Submitter.
func (s *LocalSubmitter) Submit(_ context.Context, r DemoRequest, page PageContext) Result {
	s.logger.Infow("hubspot not configured, demo request logged only",
		"submission", NewSubmission(r, page),
	)
	return Result{Success: true}
}

// HubSpotSubmitter posts submissions to the HubSpot Forms API.
type HubSpotSubmitter struct {
	Endpoint string

	cfg    Config
	client *http.Client
	logger *zap.SugaredLogger
}

// NewHubSpotSubmitter returns a live submitter.
func NewHubSpotSubmitter(cfg Config, client *http.Client, logger *zap.SugaredLogger) *HubSpotSubmitter {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &HubSpotSubmitter{
		Endpoint: DefaultEndpoint,
		cfg:      cfg,
		client:   client,
		logger:   logger,
	}
}

// URL returns the submit URL for the configured portal and form.
func (s *HubSpotSubmitter) URL() string {
	return fmt.Sprintf("%s/%s/%s", s.Endpoint, s.cfg.PortalID, s.cfg.FormID)
}

// Submit implements Submitter. It makes exactly one attempt.
func (s *HubSpotSubmitter) Submit(ctx context.Context, r DemoRequest, page PageContext) Result {
	id := uuid.NewString()
	log := s.logger.With("submission_id", id)

	body, err := json.Marshal(NewSubmission(r, page))
	if err != nil {
		log.Errorw("hubspot submission encode failed", "error", err)
		return Result{Error: MsgNetworkError}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL(), bytes.NewReader(body))
	if err != nil {
		log.Errorw("hubspot submission request failed", "error", err)
		return Result{Error: MsgNetworkError}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Errorw("hubspot submission error", "error", err)
		return Result{Error: MsgNetworkError}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail map[string]interface{}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(raw, &detail); err != nil {
			detail = map[string]interface{}{}
		}
		log.Errorw("hubspot submission failed", "status", resp.StatusCode, "response", detail)
		return Result{Error: MsgRejected}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	log.Infow("hubspot submission accepted", "status", resp.StatusCode)
	return Result{Success: true}
}
