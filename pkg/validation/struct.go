package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/finance-calculators/pkg/mathutil"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON names so messages match request payloads.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})

		if err := validate.RegisterValidation("finite", isFinite); err != nil {
			panic(fmt.Sprintf("failed to register finite validation: %v", err))
		}
	})
	return validate
}

func isFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return mathutil.IsFinite(field.Float())
	}
	return true
}

// Struct validates the `validate` tags of an input struct. The first
// violated constraint is returned as an *InvalidInputError.
func Struct(input interface{}) error {
	err := instance().Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return NewInvalidInput(fe.Field(), describe(fe))
	}
	return fmt.Errorf("failed to validate %T: %w", input, err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "finite":
		return "must be a finite number"
	case "required":
		return "is required"
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lt":
		return "must be < " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of [" + strings.ReplaceAll(fe.Param(), " ", ", ") + "]"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
