// Package contactform implements the state machine behind the portfolio
// contact form: field values, per-field errors, and submission status. A UI
// layer renders the form from this state and calls Submit; the package knows
// only the endpoint's wire contract, nothing about storage or rate limiting.
package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Status is the submission state of the form.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrBusy is returned by Submit while a previous submission is still in
// flight or the success state is still showing. Inputs are disabled in both
// states, which is what prevents duplicate submissions.
var ErrBusy = errors.New("contactform: submission already in progress")

const defaultResetDelay = 5 * time.Second

// envelope is the response body shape of POST /api/contact.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// Form owns the contact form state. Safe for concurrent use; the automatic
// success→idle reset runs on a background timer.
type Form struct {
	endpoint   string
	client     *http.Client
	resetDelay time.Duration

	mu            sync.Mutex
	name          string
	email         string
	message       string
	status        Status
	serverMessage string
	fieldErrors   map[string][]string
	resetTimer    *time.Timer
}

// Option configures a Form.
type Option func(*Form)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Form) { f.client = c }
}

// WithResetDelay overrides how long the success state shows before the form
// returns to idle.
func WithResetDelay(d time.Duration) Option {
	return func(f *Form) { f.resetDelay = d }
}

// New creates an idle Form that submits to the given endpoint URL.
func New(endpoint string, opts ...Option) *Form {
	f := &Form{
		endpoint:   endpoint,
		client:     &http.Client{Timeout: 15 * time.Second},
		resetDelay: defaultResetDelay,
		status:     StatusIdle,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetName updates the name field. Ignored while inputs are disabled.
func (f *Form) SetName(v string) { f.setField(&f.name, v) }

// SetEmail updates the email field. Ignored while inputs are disabled.
func (f *Form) SetEmail(v string) { f.setField(&f.email, v) }

// SetMessage updates the message field. Ignored while inputs are disabled.
func (f *Form) SetMessage(v string) { f.setField(&f.message, v) }

func (f *Form) setField(field *string, v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disabledLocked() {
		return
	}
	*field = v
}

// Values returns the current field values.
func (f *Form) Values() (name, email, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name, f.email, f.message
}

// Status returns the current submission status.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// ServerMessage returns the last status text to show in the form's live
// region.
func (f *Form) ServerMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.serverMessage
}

// FieldErrors returns a copy of the per-field error messages to render
// inline under each input.
func (f *Form) FieldErrors() map[string][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]string, len(f.fieldErrors))
	for k, v := range f.fieldErrors {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// InputsDisabled reports whether the fields and submit control should be
// disabled (while loading, and while the success state shows).
func (f *Form) InputsDisabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disabledLocked()
}

func (f *Form) disabledLocked() bool {
	return f.status == StatusLoading || f.status == StatusSuccess
}

// Submit sends the current trimmed field values to the endpoint and updates
// the form state with the outcome. Server-side rejections (validation, rate
// limit, failures) land in the form state, not in the returned error; the
// only error returned is ErrBusy when a submission is already in flight.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.disabledLocked() {
		f.mu.Unlock()
		return ErrBusy
	}
	// A fresh attempt clears the previous outcome, including error state.
	f.fieldErrors = nil
	f.serverMessage = ""
	f.status = StatusLoading
	payload := map[string]string{
		"name":    strings.TrimSpace(f.name),
		"email":   strings.TrimSpace(f.email),
		"message": strings.TrimSpace(f.message),
	}
	f.mu.Unlock()

	body, err := json.Marshal(payload)
	if err != nil {
		f.fail("Network error. Please check your connection.")
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		f.fail("Network error. Please check your connection.")
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		f.fail("Network error. Please check your connection.")
		return nil
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		f.fail("Network error. Please check your connection.")
		return nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.mu.Lock()
		f.fieldErrors = env.Errors
		f.serverMessage = env.Message
		if f.serverMessage == "" {
			f.serverMessage = "Something went wrong."
		}
		f.status = StatusError
		f.mu.Unlock()
		return nil
	}

	f.mu.Lock()
	f.serverMessage = env.Message
	f.status = StatusSuccess
	f.name = ""
	f.email = ""
	f.message = ""
	f.scheduleResetLocked()
	f.mu.Unlock()
	return nil
}

// fail puts the form into the error state with the given message.
func (f *Form) fail(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.serverMessage = msg
	f.status = StatusError
}

// scheduleResetLocked arms the success→idle timer. Caller holds f.mu.
func (f *Form) scheduleResetLocked() {
	if f.resetTimer != nil {
		f.resetTimer.Stop()
	}
	f.resetTimer = time.AfterFunc(f.resetDelay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.status == StatusSuccess {
			f.status = StatusIdle
		}
	})
}

// Close stops the pending reset timer, if any. The form is unusable after
// Close only in the sense that a showing success state will no longer
// auto-reset.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resetTimer != nil {
		f.resetTimer.Stop()
		f.resetTimer = nil
	}
}
