package handlers

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/staffing-engine/pkg/util"
)

var validate = validator.New()

// validateStruct runs tag validation and converts failures to a 400.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	details := map[string]any{}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
	}
	return apperrors.NewValidationError("invalid payload", details)
}
