package validator

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/philly/postboard/internal/platform/apperror"
)

// ErrValidationFailed is the sentinel every validation failure matches.
var ErrValidationFailed = apperror.New(
	apperror.CodeValidationFailed,
	apperror.BusinessCodeMissingField,
	"request validation failed",
	http.StatusBadRequest,
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON names so errors match the request body.
		instance.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
	})
	return instance
}

// Struct validates v against its `validate` tags. On failure the returned
// error matches ErrValidationFailed and carries a field -> rule map as details.
func Struct(v any) error {
	err := get().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ErrValidationFailed.WithCause(err)
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return ErrValidationFailed.WithDetails(details)
}
