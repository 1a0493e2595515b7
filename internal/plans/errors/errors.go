package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPlanTooShort = errors.New("generated plan is too short or empty")

	ErrCacheMiss = errors.New("plan not cached")
)

// IncompletePlanError names the required sections a generated plan lacks.
type IncompletePlanError struct {
	Missing []string
}

func (e *IncompletePlanError) Error() string {
	return fmt.Sprintf("Generated plan is incomplete. Missing: %s.", strings.Join(e.Missing, ", "))
}
