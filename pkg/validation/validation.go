package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	dErrors "issuer-verifier/pkg/domain-errors"
	s "issuer-verifier/pkg/string"
)

var defaultValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// AllRequiredFieldsPresent reports whether every named field is present in
// data with a value that is neither nil nor the empty string.
//
// data must be a record: a map keyed by strings, or a struct (or pointer to
// struct) whose fields are addressed by their JSON names. Anything else,
// including nil, yields false.
func AllRequiredFieldsPresent(data any, fields ...string) bool {
	if data == nil {
		return false
	}
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}

	var lookup func(name string) (reflect.Value, bool)
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String || v.IsNil() {
			return false
		}
		lookup = func(name string) (reflect.Value, bool) {
			val := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
			return val, val.IsValid()
		}
	case reflect.Struct:
		index := structFields(v.Type())
		lookup = func(name string) (reflect.Value, bool) {
			i, ok := index[name]
			if !ok {
				return reflect.Value{}, false
			}
			return v.Field(i), true
		}
	default:
		return false
	}

	for _, field := range fields {
		val, ok := lookup(field)
		if !ok || isAbsent(val) {
			return false
		}
	}
	return true
}

// Required returns a validation error carrying msg when any field is missing.
func Required(data any, msg string, fields ...string) error {
	if !AllRequiredFieldsPresent(data, fields...) {
		return dErrors.New(dErrors.CodeValidation, msg)
	}
	return nil
}

// Struct validates a tagged struct and returns a domain error naming the
// first offending field.
func Struct(req any) error {
	if err := defaultValidator.Struct(req); err != nil {
		return dErrors.New(dErrors.CodeValidation, ErrorMessage(err))
	}
	return nil
}

// ErrorMessage converts a validator error into a human-readable message.
func ErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "invalid configuration"
	}

	fe := validationErrs[0]
	field := s.ToSnakeCase(fe.StructField())

	switch fe.ActualTag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid url", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func structFields(t reflect.Type) map[string]int {
	index := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			if tagName, _, _ := strings.Cut(tag, ","); tagName == "-" {
				continue
			} else if tagName != "" {
				name = tagName
			}
		}
		index[name] = i
	}
	return index
}

func isAbsent(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return true
		}
		if v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
			return isAbsent(v.Elem())
		}
	case reflect.String:
		return v.Len() == 0
	}
	return false
}
