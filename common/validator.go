package common

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAndDecode decodes the JSON request body into payload and runs
// struct-tag validation. On failure it returns a 400 AppError carrying
// field-level detail.
func ValidateAndDecode(r *http.Request, payload interface{}) *AppError {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}

	if err := validate.Struct(payload); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return NewAppError(http.StatusBadRequest, "Invalid request payload", err)
		}

		details := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			details = append(details, fmt.Sprintf("field '%s' failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
		}
		return NewAppError(http.StatusBadRequest, strings.Join(details, "; "), err)
	}

	return nil
}
