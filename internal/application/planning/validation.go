package planning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/vfrplanner-go/internal/domain/shared"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest checks a command's struct tags and reports the first
// failure as a shared.ValidationError
func ValidateRequest(request interface{}) error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	e := validationErrs[0]
	message := e.Tag()
	if e.Param() != "" {
		message = fmt.Sprintf("%s=%s", e.Tag(), e.Param())
	}
	return shared.NewValidationError(toSnakeCase(e.Field()), "failed validation: "+message)
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (s[i-1] < 'A' || s[i-1] > 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
