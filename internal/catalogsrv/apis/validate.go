package apis

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

var validate = validator.New()

func init() {
	// report fields by their wire name so reason codes match the payload
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// validatePayload runs struct validation and converts the first failure
// into its enumerated reason code (error-empty-<field>).
func validatePayload(payload any) apperrors.Error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		return ErrValidation.Msg("error-empty-" + fieldErrs[0].Field())
	}
	return ErrValidation
}
