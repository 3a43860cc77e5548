package lead

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/brainbridge/site/analytics"
)

// State is the lifecycle position of a Form.
type State int

// A form starts in Editing. Submit moves it through Validating into
// Submitting, then to Succeeded, or back to Editing on failure.
const (
	Editing State = iota
	Validating
	Submitting
	Succeeded
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Validating:
		return "validating"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

var (
	// ErrInFlight is returned when Submit is called while a submission is
	// already running.
	ErrInFlight = errors.New("lead: submission already in progress")
	// ErrSubmitted is returned when Submit is called on a form that already
	// succeeded. A new Form is needed to submit again.
	ErrSubmitted = errors.New("lead: form already submitted")
)

// Form owns the state of one demo-request form instance.
type Form struct {
	submitter Submitter
	tracker   analytics.Tracker
	logger    *zap.SugaredLogger

	mu        sync.Mutex
	state     State
	values    DemoRequest
	errors    FieldErrors
	submitErr string
	tracked   bool
}

// NewForm returns an empty form in the Editing state. A nil tracker
// disables the conversion event.
func NewForm(submitter Submitter, tracker analytics.Tracker, logger *zap.SugaredLogger) *Form {
	if tracker == nil {
		tracker = analytics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Form{submitter: submitter, tracker: tracker, logger: logger}
}

// Set replaces all field values and clears pending errors.
func (f *Form) Set(r DemoRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = r
	f.errors = nil
}

// SetField updates one field and clears that field's error.
func (f *Form) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch name {
	case FieldName:
		f.values.Name = value
	case FieldEmail:
		f.values.Email = value
	case FieldOrganization:
		f.values.Organization = value
	case FieldRole:
		f.values.Role = value
	case FieldStudentCount:
		f.values.StudentCount = value
	case FieldHowDidYouHear:
		f.values.HowDidYouHear = value
	default:
		return
	}
	delete(f.errors, name)
}

// Values returns the current field values. They survive a failed submission.
func (f *Form) Values() DemoRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the field errors of the last validation.
func (f *Form) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// SubmitError returns the message of the last failed submission.
func (f *Form) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitErr
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit validates the form and, when valid, hands it to the submitter.
// Validation problems are returned as FieldErrors with no network call.
// A rejected submission returns its Result with a nil error and leaves the
// form in Editing with its values intact.
func (f *Form) Submit(ctx context.Context, page PageContext, clientID string) (Result, error) {
	f.mu.Lock()
	switch f.state {
	case Succeeded:
		f.mu.Unlock()
		return Result{}, ErrSubmitted
	case Submitting, Validating:
		f.mu.Unlock()
		return Result{}, ErrInFlight
	}
	f.submitErr = ""
	f.state = Validating
	if errs := Validate(f.values); len(errs) > 0 {
		f.errors = errs
		f.state = Editing
		f.mu.Unlock()
		return Result{}, errs
	}
	f.errors = nil
	f.state = Submitting
	values := f.values
	f.mu.Unlock()

	res := f.submitter.Submit(ctx, values, page)

	f.mu.Lock()
	if !res.Success {
		if res.Error == "" {
			res.Error = "Something went wrong. Please try again."
		}
		f.submitErr = res.Error
		f.state = Editing
		f.mu.Unlock()
		return res, nil
	}
	f.state = Succeeded
	fire := !f.tracked
	f.tracked = true
	f.mu.Unlock()

	if fire {
		if err := f.tracker.Track(ctx, analytics.DemoRequestConversion(clientID)); err != nil {
			f.logger.Warnw("conversion tracking failed", "error", err)
		}
	}
	return res, nil
}
