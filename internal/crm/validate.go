package crm

import (
	"fmt"
	"net/mail"
	"strings"
)

// Field names reported by ValidationError.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldEmail     = "email"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every field that failed validation, in form order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s %s", f.Field, f.Reason))
	}
	return "invalid contact: " + strings.Join(parts, ", ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks the normalized input. It returns a *ValidationError or nil.
func (n NewContact) Validate() error {
	n = n.Normalize()
	var errs []FieldError
	if n.FirstName == "" {
		errs = append(errs, FieldError{Field: FieldFirstName, Reason: "is required"})
	}
	if n.LastName == "" {
		errs = append(errs, FieldError{Field: FieldLastName, Reason: "is required"})
	}
	if n.Email == "" {
		errs = append(errs, FieldError{Field: FieldEmail, Reason: "is required"})
	} else if !validEmail(n.Email) {
		errs = append(errs, FieldError{Field: FieldEmail, Reason: "is not a valid address"})
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// validEmail accepts a bare addr-spec with a dotted domain. Display names
// ("Ada <ada@x.com>") are rejected.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
