package cnpj

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validation tags registered by RegisterValidations.
const (
	TagDigits   = "cnpj_digits"
	TagChecksum = "cnpj"
)

// RegisterValidations installs the cnpj_digits and cnpj tags on v.
//
//	type query struct {
//		CNPJ string `validate:"required,cnpj_digits,cnpj"`
//	}
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(TagDigits, func(fl validator.FieldLevel) bool {
		return len(Clean(fl.Field().String())) == Length
	}); err != nil {
		return fmt.Errorf("cnpj: register %s: %w", TagDigits, err)
	}
	if err := v.RegisterValidation(TagChecksum, func(fl validator.FieldLevel) bool {
		return IsValid(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("cnpj: register %s: %w", TagChecksum, err)
	}
	return nil
}

// NewValidator returns a validator with the CNPJ tags installed.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		// Registration only fails for empty tags or nil funcs.
		panic(err)
	}
	return v
}
