package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/ratelimit"
	"github.com/portfolio/backend/internal/service"
	"github.com/portfolio/backend/internal/validation"
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
	limiter        *ratelimit.Limiter
}

// NewContactHandler creates a ContactHandler with the given service and
// rate limiter. Both are owned by the caller; the limiter's sweep lifecycle
// is managed at process level, not here.
func NewContactHandler(contactService service.ContactService, limiter *ratelimit.Limiter) *ContactHandler {
	return &ContactHandler{contactService: contactService, limiter: limiter}
}

// contactResponse is the envelope returned by POST /api/contact for every
// outcome. Errors is present only on validation failure.
type contactResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Errors  validation.FieldErrors `json:"errors,omitempty"`
}

// Submit handles POST /api/contact. Pipeline, short-circuiting on the first
// failure: identify client → rate limit → parse body → validate → persist.
// Persistence is only ever attempted after validation fully succeeds.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	clientID := ratelimit.ClientID(r)
	if !h.limiter.Allow(clientID) {
		writeJSON(w, http.StatusTooManyRequests, contactResponse{
			Message: "Too many requests. Please try again in a minute.",
		})
		return
	}

	var in validation.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{
			Message: "Invalid request body.",
		})
		return
	}

	norm, fieldErrs := validation.ValidateContact(in)
	if fieldErrs != nil {
		writeJSON(w, http.StatusBadRequest, contactResponse{
			Message: "Validation failed.",
			Errors:  fieldErrs,
		})
		return
	}

	msg := &model.ContactMessage{
		Name:    norm.Name,
		Email:   norm.Email,
		Message: norm.Message,
	}
	if err := h.contactService.Submit(r.Context(), msg); err != nil {
		// Full detail stays in the log; the client only gets a generic
		// failure, never driver or connection-string internals.
		slog.Error("contact submission failed", "error", err, "client", clientID)
		writeJSON(w, http.StatusInternalServerError, contactResponse{
			Message: "Something went wrong. Please try again later.",
		})
		return
	}

	writeJSON(w, http.StatusOK, contactResponse{
		Success: true,
		Message: "Message sent successfully",
	})
}
