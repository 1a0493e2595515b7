package validator

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"utsav/pkg/model"

	"github.com/go-playground/validator/v10"
)

// MaxPasswordBytes is the most bcrypt will hash. The struct tag counts
// characters, so multibyte passwords are checked again in bytes.
const MaxPasswordBytes = 72

const msgPasswordTooLong = "Password cannot exceed 72 characters"

type AuthValidator struct {
	validate *validator.Validate
}

func NewAuthValidator() *AuthValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &AuthValidator{validate: v}
}

// HasMissing reports whether any required field is blank.
func HasMissing(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// ValidateSignup returns one readable message per invalid field, in field order.
func (v *AuthValidator) ValidateSignup(req *model.SignupRequest) []string {
	var messages []string

	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return []string{err.Error()}
		}
		for _, fe := range validationErrs {
			messages = append(messages, signupMessage(fe))
		}
	}

	if len(req.Password) > MaxPasswordBytes && !slices.Contains(messages, msgPasswordTooLong) {
		messages = append(messages, msgPasswordTooLong)
	}
	return messages
}

func signupMessage(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "username.min":
		return "Username must be at least 3 characters long"
	case "username.max":
		return "Username cannot exceed 30 characters"
	case "email.email", "email.max":
		return "Please enter a valid email address"
	case "password.min":
		return "Password must be at least 6 characters long"
	case "password.max":
		return msgPasswordTooLong
	}
	if fe.Tag() == "required" {
		return "Please enter all fields"
	}
	return fe.Field() + " is invalid"
}
