package cmd

import "github.com/microcosm-cc/bluemonday"

// Sanitize policies applied to rendered output.
const (
	SanitizeNone   = "none"
	SanitizeStrict = "strict"
	SanitizeUGC    = "ugc"
)

// sanitizer returns the HTML sanitizer for policy, or nil for none.
func sanitizer(policy string) func(string) string {
	switch policy {
	case SanitizeStrict:
		return bluemonday.StrictPolicy().Sanitize
	case SanitizeUGC:
		return bluemonday.UGCPolicy().Sanitize
	default:
		return nil
	}
}
