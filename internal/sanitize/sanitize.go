// Package sanitize strips markup from user-provided reminder text. Titles
// and descriptions are plain text end to end, so the policy removes all
// HTML rather than allowlisting tags.
package sanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for stripping markup.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text sanitizes a user-provided plain-text field by removing any HTML
// markup and trimming surrounding whitespace.
//
// This MUST be called on reminder titles and descriptions before storing
// them in the database.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(getPolicy().Sanitize(input))
}
