package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Error is returned by Validate and by the repository when a record fails
// field validation before it reaches storage.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *Error) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

func NewError(fields ...FieldError) *Error {
	return &Error{Fields: fields}
}

// Merge combines two validation errors, keeping the first message per field.
func Merge(a, b *Error) *Error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}

	out := &Error{Fields: append([]FieldError{}, a.Fields...)}
	seen := make(map[string]bool, len(a.Fields))
	for _, f := range a.Fields {
		seen[f.Field] = true
	}
	for _, f := range b.Fields {
		if !seen[f.Field] {
			out.Fields = append(out.Fields, f)
			seen[f.Field] = true
		}
	}
	return out
}

func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})
		_ = validate.RegisterValidation("notblank", notBlank)
	})
	return validate
}

func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	switch f.Kind() {
	case reflect.String:
		return strings.TrimSpace(f.String()) != ""
	case reflect.Pointer, reflect.Interface:
		if f.IsNil() {
			return false
		}
		return strings.TrimSpace(f.Elem().String()) != ""
	default:
		return !f.IsZero()
	}
}

// Validate runs the struct's `validate` tags and returns *Error on failure.
// Field names in messages come from the `label` tag.
func Validate(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return formatValidationErrors(verrs)
}

func formatValidationErrors(verrs validator.ValidationErrors) *Error {
	fields := make([]FieldError, 0, len(verrs))

	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   toFieldName(fe.StructField()),
			Rule:    fe.Tag(),
			Message: buildMessage(fe.Field(), fe),
		})
	}

	return &Error{Fields: fields}
}

func toFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(label string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return `Please give a value to "` + label + `"`
	case "number", "numeric":
		return `Please give a whole number for "` + label + `"`
	}

	return `"` + label + `" is invalid (` + fe.Tag() + ")"
}
