package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	planserrors "utsav/internal/plans/errors"
	"utsav/pkg/model"

	"github.com/go-playground/validator/v10"
)

// MinPlanLength is the shortest completion accepted as a plan.
const MinPlanLength = 100

type PlanValidator struct {
	validate *validator.Validate
}

func NewPlanValidator() *PlanValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &PlanValidator{validate: v}
}

// Validate returns one message per invalid field, keyed by JSON name.
func (v *PlanValidator) Validate(req *model.EventPlanRequest) map[string]string {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return map[string]string{"request": err.Error()}
	}

	problems := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		problems[fe.Field()] = fieldMessage(fe)
	}
	return problems
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// ValidatePlan checks that text is long enough and mentions every required
// section, case-insensitively.
func ValidatePlan(text string) error {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinPlanLength {
		return planserrors.ErrPlanTooShort
	}

	lower := strings.ToLower(text)
	var missing []string
	for _, section := range model.PlanSections {
		if !strings.Contains(lower, strings.ToLower(section)) {
			missing = append(missing, section)
		}
	}
	if len(missing) > 0 {
		return &planserrors.IncompletePlanError{Missing: missing}
	}
	return nil
}
