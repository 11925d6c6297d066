package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var sanitizer = bluemonday.UGCPolicy()

// Sanitize trims surrounding whitespace and strips unsafe HTML.
func Sanitize(input string) string {
	return strings.TrimSpace(sanitizer.Sanitize(strings.TrimSpace(input)))
}
