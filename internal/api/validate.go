package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
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
	return v
}

// validateRequest checks req's validate tags. Failures become a single 400
// naming the missing and the invalid fields.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var missing, invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "attributes missing ("+strings.Join(missing, ", ")+")")
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid attributes ("+strings.Join(invalid, ", ")+")")
	}
	return badRequest(strings.Join(parts, "; "))
}
