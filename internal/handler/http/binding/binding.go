// Package binding decodes JSON request bodies into DTOs and validates them
// with go-playground/validator, reporting failures as entity.ValidationErrors
// keyed by JSON field name.
package binding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"articles-admin/internal/common/optional"
	"articles-admin/internal/domain/entity"
)

var (
	// ErrMalformedBody is returned when the body is not a single JSON object
	// matching the DTO shape.
	ErrMalformedBody = errors.New("malformed JSON body")

	// ErrBodyTooLarge is returned when the body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

const (
	// MsgInvalid is reported for tags without a dedicated message.
	MsgInvalid = "This value is not valid."
	// MsgExtraField is reported for a property the DTO does not declare.
	MsgExtraField = "This field was not expected."
)

// Binder decodes and validates request DTOs. It is safe for concurrent use.
type Binder struct {
	validate *validator.Validate
}

// New returns a Binder with JSON field naming, optional.Field support and the
// notblank rule registered.
func New() *Binder {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(optional.Field[string]).Ptr()
	}, optional.Field[string]{})
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		return f.Interface().(optional.Field[int64]).Ptr()
	}, optional.Field[int64]{})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() == reflect.String {
			return strings.TrimSpace(fl.Field().String()) != ""
		}
		return !fl.Field().IsZero()
	})

	return &Binder{validate: v}
}

// Bind decodes the JSON body of r into dst and validates it.
func (b *Binder) Bind(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return b.Validate(dst)
}

// Validate runs struct validation and converts failures to entity.ValidationErrors.
func (b *Binder) Validate(dst any) error {
	err := b.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", dst, err)
	}

	out := make(entity.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, entity.ValidationError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// DecodeJSON decodes exactly one JSON value from the body of r into dst.
//
// Type mismatches on named fields and undeclared properties are reported as
// entity.ValidationErrors so they surface as 422 like other field failures.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrMalformedBody
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return ErrBodyTooLarge
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return entity.ValidationErrors{{
				Field:   typeErr.Field,
				Message: "This value should be of type " + kindName(typeErr.Type) + ".",
			}}
		}
		if field, ok := unknownField(err); ok {
			return entity.ValidationErrors{{Field: field, Message: MsgExtraField}}
		}
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after JSON object", ErrMalformedBody)
	}
	return nil
}

// unknownField extracts the property name from the decoder's
// `json: unknown field "name"` error, which has no typed form.
func unknownField(err error) (string, bool) {
	quoted, ok := strings.CutPrefix(err.Error(), "json: unknown field ")
	if !ok {
		return "", false
	}
	name, uerr := strconv.Unquote(quoted)
	return name, uerr == nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return entity.MsgNotBlank
	case "max":
		var n int
		if _, err := fmt.Sscanf(fe.Param(), "%d", &n); err == nil {
			return entity.MsgTooLong(n)
		}
	case "gt":
		if fe.Param() == "0" {
			return entity.MsgPositive
		}
	}
	return MsgInvalid
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Bool:
		return "bool"
	case reflect.String:
		return "string"
	default:
		return t.Kind().String()
	}
}
