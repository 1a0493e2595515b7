package errors

import "errors"

var ErrNotFound = errors.New("hall not found")
