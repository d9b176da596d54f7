// Package validate checks request payloads before they reach the store.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/bio/internal/domain"
	"github.com/MrSnakeDoc/bio/internal/normalize"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// ValidationError lists every rejected field of a payload.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ImportPayload is the minimal shape an imported document must have: every
// top-level section present and not null.
type ImportPayload struct {
	Profile       json.RawMessage `json:"profile" validate:"present"`
	LinkGroups    json.RawMessage `json:"linkGroups" validate:"present"`
	Customization json.RawMessage `json:"customization" validate:"present"`
	Socials       json.RawMessage `json:"socials" validate:"present"`
	Palettes      json.RawMessage `json:"palettes" validate:"present"`
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
			raw, ok := fl.Field().Interface().(json.RawMessage)
			if !ok {
				return !fl.Field().IsZero()
			}
			trimmed := bytes.TrimSpace(raw)
			return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernamePattern.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct validates v against its `validate` tags. Rule violations are
// returned as a *ValidationError.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Field(),
			Msg:   message(fe.Field(), fe.Tag(), fe.Param()),
		})
	}
	return out
}

// Import checks an import file and decodes it into the client shape.
// Either wire or client shaped collections are accepted.
func Import(data []byte) (domain.Document, error) {
	var payload ImportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.Document{}, &ValidationError{Fields: []FieldError{
			{Field: "document", Msg: fmt.Sprintf("document is not a JSON object: %v", err)},
		}}
	}
	if err := Struct(payload); err != nil {
		return domain.Document{}, err
	}

	doc, err := normalize.DecodeDocument(data)
	if err != nil {
		return domain.Document{}, &ValidationError{Fields: []FieldError{
			{Field: "document", Msg: err.Error()},
		}}
	}
	return doc, nil
}

func message(field, tag, param string) string {
	switch tag {
	case "required", "present":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and digits", field)
	case "username":
		return fmt.Sprintf("%s may only contain letters, digits, '.', '_' and '-'", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, tag)
	}
}
