package utils

import (
	"io"
	"net/http"

	"clinic-booking-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// ParseAndValidateRequestBody decodes the JSON body into dst and runs the
// struct validation tags.
func ParseAndValidateRequestBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := ValidateStruct(dst); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}
