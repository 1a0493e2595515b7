// Package sanitizer normalizes user supplied text before validation and storage.
//
// All functions are idempotent and never fail: invalid input becomes an empty
// string or is dropped from a slice.
//
// Normalization includes:
//   - Names and free text: collapse whitespace, trim leading/trailing spaces
//   - City keys: lowercase letters only - "New Delhi" becomes "newdelhi"
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
