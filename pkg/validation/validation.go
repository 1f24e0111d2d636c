// Package validation wraps go-playground/validator with JSON field names
// so failures read in terms of the wire format callers actually send.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks struct tags and renders failures as readable errors.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that reports JSON field names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Struct validates s. Tag violations come back as a single error listing
// every offending field; other failures are returned unchanged.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fieldPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must have %s values", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s values", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s values", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be > %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		if strings.Contains(fe.Tag(), "|") {
			return describeOr(field, fe.Tag())
		}
		return fmt.Sprintf("%s failed %s", field, fe.ActualTag())
	}
}

// describeOr renders an OR tag such as "len=1|len=4". Alternatives that
// all bound the length collapse to "must have 1 or 4 values".
func describeOr(field, tag string) string {
	alts := strings.Split(tag, "|")
	params := make([]string, 0, len(alts))

	for _, alt := range alts {
		name, param, _ := strings.Cut(alt, "=")
		if name != "len" {
			return fmt.Sprintf("%s must satisfy one of [%s]", field, strings.Join(alts, ", "))
		}
		params = append(params, param)
	}

	return fmt.Sprintf("%s must have %s values", field, strings.Join(params, " or "))
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
