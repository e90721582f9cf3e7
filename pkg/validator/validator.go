package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describe un campo que no pasó la validación.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// sku: sin espacios en blanco internos
	_ = validate.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || !strings.ContainsAny(s, " \t\n")
	})
}

// ValidateStruct valida data según sus tags `validate` y devuelve los campos inválidos (nil si ok).
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Tag: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}
