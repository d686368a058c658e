package service

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/lcbot/internal/bot_errors"
)

func GenerateSecureRandomInt(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("min cannot be greater than max")
	}
	diff := big.NewInt(int64(max - min + 1))
	result, err := crand.Int(crand.Reader, diff)
	if err != nil {
		log.Errorf("unable to generate random int, %v", err)
		return 0, errors.Join(bot_errors.ErrInternal, err)
	}
	return int(result.Int64()) + min, nil
}

// custom function for translating validation error into user readable errors
func translateValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid url", e.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param())
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
	case "numeric":
		return fmt.Sprintf("%s must be a numeric value", e.Field())
	default:
		return fmt.Sprintf("Validation failed for %s with rule %s", e.Field(), e.Tag())
	}
}

// ValidateInput validates the input struct using the package validator.
// If validation fails, it logs and returns the first user-friendly error message.
// Returns nil if input is valid.
func ValidateInput(inp any) error {
	if validate == nil {
		InitializeServices()
	}
	if err := validate.Struct(inp); err != nil {
		var validationErrors validator.ValidationErrors
		// Check if the error is a set of validation errors
		if errors.As(err, &validationErrors) {
			if len(validationErrors) > 0 {
				// Grab and translate the first validation error for user feedback
				errorMessage := translateValidationError(validationErrors[0])
				log.Error(errorMessage)
				// Wrap the error with a custom invalid input error
				return fmt.Errorf("%w, %s", bot_errors.ErrInvalidInput, errorMessage)
			}
		}
		return fmt.Errorf("%w, %w", bot_errors.ErrInvalidInput, err)
	}
	// All good, input is valid
	return nil
}

// ClampLimit applies the default when limit is unset and rejects values above max
func ClampLimit(limit, def, max int) (int32, error) {
	if limit <= 0 {
		return int32(def), nil
	}
	if limit > max {
		return 0, fmt.Errorf(
			"%w, limit must be at most %d",
			bot_errors.ErrInvalidRequest,
			max,
		)
	}
	return int32(limit), nil
}
