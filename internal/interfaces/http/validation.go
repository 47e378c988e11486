package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// nombres de campo según el tag json
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validateStruct aplica los tags `validate` del DTO; nil si todo es válido.
func validateStruct(in any) *dto.ErrorResponse {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	fields := make(map[string]any, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields[fe.Field()] = rule
		msgs = append(msgs, fe.Field()+": "+rule)
	}
	return &dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos (" + strings.Join(msgs, ", ") + ")",
		Details: fields,
	}
}
