package dto

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/lac-hong-legacy/english_api/progress"
)

var validate *validator.Validate

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
)

func init() {
	validate = validator.New()
	// report fields by their JSON names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("email_or_username", ValidateEmailOrUsername)
	validate.RegisterValidation("skill", validateSkill)
}

func GetValidator() *validator.Validate {
	return validate
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

func ValidateEmailOrUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return emailRegex.MatchString(value) || usernameRegex.MatchString(value)
}

// validateSkill accepts an empty value; pair it with required when the skill is mandatory.
func validateSkill(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, ok := progress.ParseSkill(value)
	return ok
}

// ==================== VALIDATION ERRORS ====================

type ValidationError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"invalid email format"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code" example:"400"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  []ValidationError `json:"errors"`
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "email":
				message = "Invalid email format"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "gte":
				message = fieldError.Field() + " must be greater than or equal to " + fieldError.Param()
			case "lte":
				message = fieldError.Field() + " must be less than or equal to " + fieldError.Param()
			case "gt":
				message = fieldError.Field() + " must be greater than " + fieldError.Param()
			case "alphanum":
				message = fieldError.Field() + " must contain only letters and numbers"
			case "strong_password":
				message = "Password must contain at least 8 characters with uppercase, lowercase, number, and special character"
			case "email_or_username":
				message = fieldError.Field() + " must be an email or a username"
			case "skill":
				message = fieldError.Field() + " must be one of: vocab grammar listening speaking reading writing"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			case "dive":
				message = fieldError.Field() + " contains invalid items"
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
