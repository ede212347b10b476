package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/finquest/finquest/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("difficulty", validateDifficulty)
	_ = v.RegisterValidation("gametype", validateGameType)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map.
// This prevents leaking internal struct names and provides cleaner error messages.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Invalid email format"
		case "difficulty":
			errs[field] = "Invalid difficulty"
		case "gametype":
			errs[field] = "Unknown mini-game"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "lte":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidDifficulties defines the quest difficulty tiers accepted in filters.
var ValidDifficulties = map[string]bool{
	domain.DifficultyBeginner:     true,
	domain.DifficultyIntermediate: true,
	domain.DifficultyAdvanced:     true,
	domain.DifficultyExpert:       true,
}

func validateDifficulty(fl validator.FieldLevel) bool {
	difficulty := fl.Field().String()
	// Empty means no filter; 'required' covers the mandatory case.
	if difficulty == "" {
		return true
	}
	return ValidDifficulties[strings.ToLower(difficulty)]
}

func validateGameType(fl validator.FieldLevel) bool {
	gameType := fl.Field().String()
	if gameType == "" {
		return true
	}
	return domain.IsKnownGameType(strings.ToLower(gameType))
}
