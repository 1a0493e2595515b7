package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reNotLetters      = regexp.MustCompile(`[^\p{L}]+`)
	reFilenameUnsafe  = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	reMultiUnderscore = regexp.MustCompile(`_+`)
)

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CityKey reduces a city name to the key used for matching:
// "  New   Delhi " and "new-delhi" both become "newdelhi".
func CityKey(city string) string {
	p := Pipeline{
		trimAndLower,
		func(s string) string { return reNotLetters.ReplaceAllString(s, "") },
	}
	return p.Apply(city)
}

// FilenamePart keeps only characters that are safe inside a
// Content-Disposition filename.
func FilenamePart(s string) string {
	p := Pipeline{
		strings.TrimSpace,
		func(s string) string { return reFilenameUnsafe.ReplaceAllString(s, "_") },
		func(s string) string { return reMultiUnderscore.ReplaceAllString(s, "_") },
		func(s string) string { return strings.Trim(s, "_") },
	}
	return p.Apply(s)
}
