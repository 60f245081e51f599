package catalog

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// PlainText turns the HTML fragments merchants paste into product
// descriptions into one line of text. Script and style bodies are dropped.
func PlainText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
		plainPolicy.AddSpaceWhenStrippingTag(true)
	})
	return strings.Join(strings.Fields(html.UnescapeString(plainPolicy.Sanitize(raw))), " ")
}
