// Package lead turns the "request a demo" form into a HubSpot CRM lead.
// It validates the form, maps it onto HubSpot's field schema, and submits
// it once, falling back to a logging-only mode when HubSpot is not
// configured.
package lead

import (
	"regexp"
	"sort"
	"strings"
)

// DemoRequest is the contact form as entered by the visitor.
type DemoRequest struct {
	Name          string `json:"name" form:"name"`
	Email         string `json:"email" form:"email"`
	Organization  string `json:"organization" form:"organization"`
	Role          string `json:"role" form:"role"`
	StudentCount  string `json:"studentCount" form:"studentCount"`
	HowDidYouHear string `json:"howDidYouHear,omitempty" form:"howDidYouHear"`
}

// Option is one selectable value of an enumerated form field.
type Option struct {
	Value string
	Label string
}

// Roles lists the accepted role values.
var Roles = []Option{
	{"Principal", "Principal"},
	{"Assistant Principal", "Assistant Principal"},
	{"Counselor", "School Counselor"},
	{"Attendance Coordinator", "Attendance Coordinator"},
	{"Success Mentor", "Success Mentor / Youth Advocate"},
	{"CBO Director", "CBO Director"},
	{"Community School Director", "Community School Director"},
	{"District Administrator", "District Administrator"},
	{"Other", "Other"},
}

// StudentCounts lists the accepted student-count buckets.
var StudentCounts = []Option{
	{"Under 500", "Under 500"},
	{"500-1000", "500 - 1,000"},
	{"1000-2500", "1,000 - 2,500"},
	{"2500-5000", "2,500 - 5,000"},
	{"5000+", "5,000+"},
}

// Sources lists the suggested "how did you hear about us" answers.
var Sources = []Option{
	{"Google Search", "Google Search"},
	{"Colleague Referral", "Colleague Referral"},
	{"Conference", "Conference / Event"},
	{"Social Media", "Social Media"},
	{"Other", "Other"},
}

// Form field names, shared by validation errors and form decoding.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldOrganization  = "organization"
	FieldRole          = "role"
	FieldStudentCount  = "studentCount"
	FieldHowDidYouHear = "howDidYouHear"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a form field name to a message shown next to it.
type FieldErrors map[string]string

// Error implements error.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fe[k]
	}
	return "invalid demo request: " + strings.Join(parts, "; ")
}

// Validate checks every field and returns all problems at once. A nil
// result means the request may be submitted.
func Validate(r DemoRequest) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(r.Name) == "" {
		errs[FieldName] = "Name is required"
	}

	switch {
	case strings.TrimSpace(r.Email) == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(r.Email):
		errs[FieldEmail] = "Please enter a valid email"
	}

	if strings.TrimSpace(r.Organization) == "" {
		errs[FieldOrganization] = "Organization is required"
	}

	if !hasOption(Roles, r.Role) {
		errs[FieldRole] = "Please select your role"
	}

	if !hasOption(StudentCounts, r.StudentCount) {
		errs[FieldStudentCount] = "Please select student count"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func hasOption(opts []Option, value string) bool {
	if value == "" {
		return false
	}
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// SplitName splits a full name on whitespace: the first token is the first
// name and the remaining tokens, joined by single spaces, the last name.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
