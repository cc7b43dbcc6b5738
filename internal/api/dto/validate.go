package dto

import (
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/wakanda-gov/platform/pkg/util/errorutil"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Password policy: at least one lowercase, uppercase, digit and special
	// character. Length is a separate min=8 tag.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var lower, upper, digit, special bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			default:
				special = true
			}
		}
		return lower && upper && digit && special
	})
	return v
}

// Validate checks a request struct and converts violations into a
// VALIDATION_FAILED error with a field-level detail map.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewInternalError(err)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		details[fieldErr.Field()] = messageFor(fieldErr)
	}
	return apperrors.NewValidationError("Validation failed", details)
}

func messageFor(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "alphanum":
		return "must contain only letters and digits"
	case "min":
		return "is too short (minimum " + err.Param() + ")"
	case "max":
		return "is too long (maximum " + err.Param() + ")"
	case "password":
		return "must contain lowercase, uppercase, digit and special characters"
	case "oneof":
		return "must be one of " + err.Param()
	}
	return "is invalid"
}
