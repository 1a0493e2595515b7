package errors

import "errors"

// ErrUnsupportedText means a ticket line has characters the PDF core fonts
// cannot draw.
var ErrUnsupportedText = errors.New("ticket text is not representable in cp1252")
