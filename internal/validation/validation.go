package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// FieldError describes a single violation attributed to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the result of validating a request payload. A nil or empty
// Errors means the payload is valid.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Add appends a violation for the given field.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Details returns a field-indexed map suitable for the error envelope's
// details payload. Multiple violations on the same field are concatenated
// in order of occurrence.
func (e Errors) Details() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	details := make(map[string][]string, len(e))
	for _, fe := range e {
		details[fe.Field] = append(details[fe.Field], fe.Message)
	}
	return details
}

// StringLength validates that value, after trimming surrounding whitespace,
// is between min and max characters. Lengths count runes, not bytes, so
// accented input is measured the way the limits are worded. The field label
// is used in messages.
func StringLength(errs *Errors, field, label, value string, min, max int) {
	length := utf8.RuneCountInString(strings.TrimSpace(value))
	if length < min {
		errs.Add(field, fmt.Sprintf("%s deve ter no mínimo %d caracteres", label, min))
		return
	}
	if length > max {
		errs.Add(field, fmt.Sprintf("%s deve ter no máximo %d caracteres", label, max))
	}
}

// OptionalStringLength is StringLength for optional fields: a nil or empty
// value passes without further checks.
func OptionalStringLength(errs *Errors, field, label string, value *string, min, max int) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}
	StringLength(errs, field, label, *value, min, max)
}

// Email validates that value is a plain address of at most max characters.
// The parsed address must equal the input, so display-name forms like
// "Jane <jane@x.com>" are rejected, and the domain must contain a dot. The
// accepted string becomes a unique key, so anything looser would let the
// same mailbox register under several spellings.
func Email(errs *Errors, field, value string, max int) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.Add(field, "Email é obrigatório")
		return
	}
	if utf8.RuneCountInString(value) > max {
		errs.Add(field, fmt.Sprintf("Email deve ter no máximo %d caracteres", max))
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		errs.Add(field, "Email inválido")
		return
	}
	domain := value[strings.LastIndex(value, "@")+1:]
	if !strings.Contains(domain, ".") {
		errs.Add(field, "Email inválido")
	}
}

// UUIDField validates that value parses as a UUID and returns the parsed ID.
func UUIDField(errs *Errors, field, label, value string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		errs.Add(field, fmt.Sprintf("%s inválido", label))
		return uuid.Nil
	}
	return id
}

// OneOf validates that value is one of the allowed enum values.
func OneOf(errs *Errors, field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	errs.Add(field, "Status inválido")
}
