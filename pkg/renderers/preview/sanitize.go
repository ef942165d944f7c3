package preview

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips all markup from content text and escapes what is left,
// so the result can be emitted without further escaping.
func sanitizeText(raw string) string {
	if raw == "" {
		return ""
	}
	return textSanitizer().Sanitize(raw)
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
