package service

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ryabov/momentum/pkg/entity"
)

// Package-level validator with the custom field rules used by request
// payloads.
var (
	validate *validator.Validate
	once     sync.Once
)

const dateLayout = "2006-01-02"

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("action_type", func(fl validator.FieldLevel) bool {
			return entity.IsActionType(fl.Field().String())
		})
		validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			return entity.IsWeekday(fl.Field().String())
		})
		validate.RegisterValidation("date_string", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(dateLayout, fl.Field().String())
			return err == nil
		})
	})
}

// FieldError is one entry of the ordered validation failure list carried
// in a 422 response body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	return "Invalid input."
}

// ValidateStruct runs every declared rule and accumulates all failures in
// declaration order. Returns nil when the payload is valid.
func ValidateStruct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{{Field: "", Message: err.Error()}}
	}
	result := make(FieldErrors, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		result = append(result, FieldError{
			Field:   fieldName(fieldErr),
			Message: fieldMessage(fieldErr),
		})
	}
	return result
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "ActionPayload.StartDate"; drop the
	// struct prefix and lower the first letter to match the JSON keys.
	name := fe.StructNamespace()
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Must not be empty."
	case "email":
		return "Please enter a valid email."
	case "min":
		return "Must be at least " + fe.Param() + "."
	case "max":
		return "Must be at most " + fe.Param() + "."
	case "action_type":
		return "Invalid action type."
	case "weekday":
		return "Invalid weekday."
	case "date_string":
		return "Must be a yyyy-MM-dd date."
	default:
		return "Invalid value."
	}
}
