package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/brainbridge/site/lead"
)

// ContactFormData is the state of the demo form as shown to the visitor.
type ContactFormData struct {
	Values      lead.DemoRequest
	Errors      lead.FieldErrors
	SubmitError string
	CSRFToken   string
}

// ContactForm renders the "request a demo" form.
func ContactForm(data ContactFormData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="contact"><h1>Request a Demo</h1>`)
		w.raw(`<p>See how BrainBridge helps your team reach every student who is missing school.</p>`)
		if data.SubmitError != "" {
			w.raw(`<div class="alert alert-error" role="alert">`)
			w.text(data.SubmitError)
			w.raw(`</div>`)
		}
		w.raw(`<form method="post" action="/contact/" novalidate>`)
		w.raw(`<input type="hidden" name="_csrf" value="`)
		w.text(data.CSRFToken)
		w.raw(`">`)

		textInput(w, data, lead.FieldName, "Full Name", "text", data.Values.Name, true)
		textInput(w, data, lead.FieldEmail, "Work Email", "email", data.Values.Email, true)
		textInput(w, data, lead.FieldOrganization, "School / Organization", "text", data.Values.Organization, true)
		selectInput(w, data, lead.FieldRole, "Your Role", "Select your role", lead.Roles, data.Values.Role, true)
		selectInput(w, data, lead.FieldStudentCount, "Number of Students", "Select student count", lead.StudentCounts, data.Values.StudentCount, true)
		selectInput(w, data, lead.FieldHowDidYouHear, "How did you hear about us?", "Select an option", lead.Sources, data.Values.HowDidYouHear, false)

		w.raw(`<button type="submit" class="button">Request Demo</button></form></section>`)
		return w.err
	})
}

// ContactThanks is shown after a successful submission.
func ContactThanks() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="contact contact-success"><h1>Thank you!</h1>`)
		w.raw(`<p>We've received your request and will be in touch within one business day to schedule your demo.</p>`)
		w.raw(`<p><a href="/blog/">Read the BrainBridge blog</a></p></section>`)
		return w.err
	})
}

func textInput(w *writer, data ContactFormData, name, label, kind, value string, required bool) {
	fieldOpen(w, name, label, required)
	w.raw(`<input id="`)
	w.text(name)
	w.raw(`" name="`)
	w.text(name)
	w.raw(`" type="`)
	w.text(kind)
	w.raw(`" value="`)
	w.text(value)
	w.raw(`"`)
	if required {
		w.raw(` required`)
	}
	fieldInvalid(w, data, name)
	w.raw(`>`)
	fieldClose(w, data, name)
}

func selectInput(w *writer, data ContactFormData, name, label, placeholder string, opts []lead.Option, value string, required bool) {
	fieldOpen(w, name, label, required)
	w.raw(`<select id="`)
	w.text(name)
	w.raw(`" name="`)
	w.text(name)
	w.raw(`"`)
	if required {
		w.raw(` required`)
	}
	fieldInvalid(w, data, name)
	w.raw(`><option value="">`)
	w.text(placeholder)
	w.raw(`</option>`)
	for _, o := range opts {
		w.raw(`<option value="`)
		w.text(o.Value)
		w.raw(`"`)
		if o.Value == value {
			w.raw(` selected`)
		}
		w.raw(`>`)
		w.text(o.Label)
		w.raw(`</option>`)
	}
	w.raw(`</select>`)
	fieldClose(w, data, name)
}

func fieldOpen(w *writer, name, label string, required bool) {
	w.raw(`<div class="field"><label for="`)
	w.text(name)
	w.raw(`">`)
	w.text(label)
	if required {
		w.raw(` <span aria-hidden="true">*</span>`)
	}
	w.raw(`</label>`)
}

func fieldInvalid(w *writer, data ContactFormData, name string) {
	if _, ok := data.Errors[name]; ok {
		w.raw(` aria-invalid="true" aria-describedby="`)
		w.text(name)
		w.raw(`-error"`)
	}
}

func fieldClose(w *writer, data ContactFormData, name string) {
	if msg, ok := data.Errors[name]; ok {
		w.raw(`<p class="field-error" id="`)
		w.text(name)
		w.raw(`-error">`)
		w.text(msg)
		w.raw(`</p>`)
	}
	w.raw(`</div>`)
}
