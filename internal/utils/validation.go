package contextutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs struct tag validation and converts failures into an
// ErrorCodeValidationFailed AppError listing every offending field.
func ValidateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return WrapError(err, "validation error")
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			details = append(details, fmt.Sprintf("%s: %s=%s (got %q)", fe.Field(), fe.Tag(), fe.Param(), fmt.Sprint(fe.Value())))
			continue
		}
		details = append(details, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}

	return NewAppError(ErrorCodeValidationFailed, SeverityWarn, "Validation failed", strings.Join(details, "; "))
}

// IsValidLanguageCode reports whether code looks like an ISO language code
// such as "fr", "pt" or "pt-BR".
func IsValidLanguageCode(code string) bool {
	if len(code) < 2 || len(code) > 10 {
		return false
	}
	for _, char := range code {
		if (char < 'a' || char > 'z') && (char < 'A' || char > 'Z') && (char < '0' || char > '9') && char != '-' {
			return false
		}
	}
	return true
}
