// Package validator valida los DTOs de entrada con los tags `validate`.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/sucursales-api/internal/domain/entity"
)

// ErrorResponse un campo que no pasó la validación.
type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

var validate = validator.New()

func init() {
	_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return entity.ValidRole(fl.Field().String())
	})
	_ = validate.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		return entity.ValidLocation(fl.Field().String())
	})
}

// ValidateStruct devuelve los campos inválidos, o nil si data es válido.
func ValidateStruct(data interface{}) []*ErrorResponse {
	var out []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{FailedField: "body", Tag: "invalid"}}
	}
	for _, e := range verrs {
		out = append(out, &ErrorResponse{
			FailedField: e.StructNamespace(),
			Tag:         e.Tag(),
			Value:       e.Param(),
		})
	}
	return out
}

// Message resume los errores en un texto para ErrorResponse.Message.
func Message(errs []*ErrorResponse) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Value != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", e.FailedField, e.Tag, e.Value))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", e.FailedField, e.Tag))
	}
	return strings.Join(parts, "; ")
}
