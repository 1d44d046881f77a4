package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-analyzer/errors"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()
	return &CustomValidator{v: v}
}

// Validate performs struct validation; failures surface as an
// invalid-payload application error so handlers can pass them straight to
// the error writer
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.v.Struct(i); err != nil {
		return errors.ErrInvalidPayload().WithDetail("validation", err.Error())
	}
	return nil
}
