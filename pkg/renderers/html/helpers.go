package html

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fb-" + trimmed
}

// sanitizeClassList drops the reserved fb- prefix from user supplied class
// lists so overrides cannot collide with generated ids.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "fb-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

// plainText strips markup from user authored text. The template escapes the
// result, so entities produced by the policy are decoded first.
func plainText(policy *bluemonday.Policy, raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(raw)))
}

func defaultTextPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
