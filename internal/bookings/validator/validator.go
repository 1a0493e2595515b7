package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	bookingserrors "utsav/internal/bookings/errors"
	"utsav/pkg/model"

	"github.com/go-playground/validator/v10"
)

var dateLayouts = []string{model.DateLayout, time.RFC3339, time.RFC3339Nano}

type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() *BookingValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &BookingValidator{validate: v}
}

// MissingFields returns the JSON names of required fields that are absent or blank.
func (v *BookingValidator) MissingFields(req *model.BookingRequest) []string {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []string{err.Error()}
	}

	missing := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	return missing
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(model.DateLayout, raw, loc); err == nil {
		return t, nil
	}
	for _, layout := range dateLayouts[1:] {
		if t, err := time.Parse(layout, raw); err == nil {
			local := t.In(loc)
			return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", bookingserrors.ErrInvalidDate, raw)
}

// CheckNotPast fails when date is before the start of today.
func CheckNotPast(date, startOfToday time.Time) error {
	if date.Before(startOfToday) {
		return bookingserrors.ErrPastDate
	}
	return nil
}

func CheckTimeSlot(slot string) error {
	if !model.IsTimeSlot(slot) {
		return fmt.Errorf("%w: %q", bookingserrors.ErrUnknownTimeSlot, slot)
	}
	return nil
}

func CheckPrice(price float64) error {
	if price < 0 {
		return bookingserrors.ErrNegativePrice
	}
	return nil
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
