// Package validator wraps go-playground/validator for two callers:
// echo request binding and the notes schema check that gates every
// model output before sanitation.
package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	return &CustomValidator{v: validator.New()}
}

// Validate performs struct validation. The first failing field is
// reported in a readable form instead of the library's full dump.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		first := fields[0]
		return fmt.Errorf("field %s failed on the %s rule", first.Namespace(), first.Tag())
	}
	return err
}
