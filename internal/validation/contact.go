// Package validation defines the acceptance rules for contact form
// submissions. The rules are declared as struct tags on ContactInput and
// evaluated by one shared validator, so the rule set stays data-driven and
// testable in isolation.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ContactInput is the shape of a contact form submission. The validate tags
// are the rule table; lengths are counted in runes after trimming.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

// FieldErrors maps a field name (wire name, e.g. "email") to one or more
// human-readable reasons the field was rejected.
type FieldErrors map[string][]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report wire names ("email"), not Go field names ("Email").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages maps field name + failed rule to the message shown to the user.
var messages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
		"min":      "Name must be at least 2 characters",
		"max":      "Name cannot exceed 100 characters",
	},
	"email": {
		"required": "Email is required",
		"email":    "Please enter a valid email address",
		"max":      "Email cannot exceed 254 characters",
	},
	"message": {
		"required": "Message is required",
		"min":      "Message must be at least 10 characters",
		"max":      "Message cannot exceed 2000 characters",
	},
}

// Normalize trims all fields and lower-cases the email. Idempotent:
// normalizing an already-normalized input returns it unchanged.
func Normalize(in ContactInput) ContactInput {
	return ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Message: strings.TrimSpace(in.Message),
	}
}

// ValidateContact normalizes in and checks every rule. All three fields are
// validated independently and every violation is collected, so the caller
// can surface all field errors in one round trip. On success the normalized
// input is returned with a nil FieldErrors.
func ValidateContact(in ContactInput) (ContactInput, FieldErrors) {
	norm := Normalize(in)

	err := validate.Struct(norm)
	if err == nil {
		return norm, nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Only reachable if the struct itself is invalid, which it never is.
		return norm, FieldErrors{"": {"invalid submission"}}
	}

	fieldErrs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		msg := messages[field][fe.Tag()]
		if msg == "" {
			msg = field + " is invalid"
		}
		fieldErrs[field] = append(fieldErrs[field], msg)
	}
	return norm, fieldErrs
}
