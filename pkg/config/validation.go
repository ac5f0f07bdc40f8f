package config

import (
	"reflect"

	sserr "github.com/StricklySoft/stricklysoft-enrichers/pkg/errors"
)

// Validator is implemented by configuration structs that need checks
// beyond `required` tags. Validate runs after required fields pass.
// Errors that are already [*sserr.Error] are returned unchanged; other
// errors are wrapped with [sserr.CodeValidation].
type Validator interface {
	Validate() error
}

func validate(cfg any, rv reflect.Value) error {
	if err := validateRequired(rv); err != nil {
		return err
	}

	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		if _, isSSErr := sserr.AsError(err); isSSErr {
			return err
		}
		return sserr.Wrap(err, sserr.CodeValidation, "config: custom validation failed")
	}
	return nil
}

// validateRequired checks `required:"true"` fields, reporting the name
// of the first empty one.
func validateRequired(rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		if sf.Tag.Get("required") == "true" && field.IsZero() {
			return sserr.Newf(sserr.CodeValidationRequired,
				"config: required field %q is empty", sf.Name).
				WithDetail("field", sf.Name)
		}
	}
	return nil
}
