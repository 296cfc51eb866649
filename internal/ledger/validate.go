package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

// initValidator creates the validator with the decimal rules used by ledger inputs.
func initValidator() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal is a struct, so it is checked through the field value
	// rather than a registered custom type func.
	if err := vld.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		return ok && value.IsPositive()
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'positive_decimal': %w", err)
	}

	return vld, nil
}

// validateStruct checks a struct's validate tags. Failures wrap ErrValidation
// and name the first offending field.
func validateStruct(payload any) error {
	validateOnce.Do(func() {
		validate, errValidate = initValidator()
	})
	if errValidate != nil {
		return fmt.Errorf("%w: %w", ErrValidation, errValidate)
	}

	if err := validate.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s", ErrValidation, describeFieldError(fe))
		}
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("'%s' is required", fe.Namespace())
	case "positive_decimal":
		return fmt.Sprintf("'%s' must be a positive amount", fe.Namespace())
	case "max":
		return fmt.Sprintf("'%s' must be at most %s characters", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("'%s' failed the '%s' rule", fe.Namespace(), fe.Tag())
	}
}
