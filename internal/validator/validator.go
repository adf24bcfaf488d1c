package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/cinema-ticketing/internal/domain"
)

var (
	hasSpecialRgx = regexp.MustCompile(`[!@#$%^&*]`)
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("password", validatePassword)
	validator.RegisterValidation("timeslot", validateTimeSlot)

	return validator
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.TimeSlot(fl.Field().Int()).Valid()
	default:
		return false
	}
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 || len(password) > 25 {
		return false
	}

	containsUpper, containsLower, containsDigit, containsSpecial := false, false, false, false

	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			containsUpper = true
		case unicode.IsLower(ch):
			containsLower = true
		case unicode.IsDigit(ch):
			containsDigit = true
		case hasSpecialRgx.MatchString(string(ch)):
			containsSpecial = true
		}
	}

	return containsUpper && containsLower && containsDigit && containsSpecial
}

const (
	ErrRequired  = "is required"
	ErrMinLength = "must be at least %s characters long"
	ErrMaxLength = "must be at most %s characters long"
	ErrMinValue  = "must be at least %s"
	ErrMaxValue  = "must be at most %s"
	ErrMinItems  = "must contain at least %s items"
	ErrMaxItems  = "must contain at most %s items"
	ErrAlphanum  = "must contain only letters and digits"
	ErrOneOf     = "must be one of [%s]"
	ErrTimeSlot  = "must be a time slot between 1 and 7"
	ErrPassword  = "must be at least 8 characters long and include at least one uppercase letter, one lowercase letter, " +
		"one number, and one special character (!@#$%^&*)."
	ErrInvalid = "is invalid"
)

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(boundMessage(err.Kind(), ErrMinLength, ErrMinItems, ErrMinValue), err.Param())
	case "max":
		return fmt.Sprintf(boundMessage(err.Kind(), ErrMaxLength, ErrMaxItems, ErrMaxValue), err.Param())
	case "alphanum":
		return ErrAlphanum
	case "oneof":
		return fmt.Sprintf(ErrOneOf, err.Param())
	case "timeslot":
		return ErrTimeSlot
	case "password":
		return ErrPassword
	default:
		return ErrInvalid
	}
}

func boundMessage(kind reflect.Kind, length, items, value string) string {
	switch kind {
	case reflect.String:
		return length
	case reflect.Slice, reflect.Array, reflect.Map:
		return items
	default:
		return value
	}
}
