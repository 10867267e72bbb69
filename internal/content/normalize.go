package content

import (
	"strings"
	"unicode"
)

const fence = "```"

// StripCodeFence removes a markdown code fence around a JSON document, e.g.
// "```json\n{...}\n```". Text that already starts with a JSON value only loses
// a dangling closing fence, so fences inside string values survive.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if s[0] == '{' || s[0] == '[' {
		return strings.TrimSpace(strings.TrimSuffix(s, fence))
	}

	start := strings.Index(s, fence)
	if start == -1 {
		return s
	}

	body := strings.TrimLeftFunc(s[start+len(fence):], unicode.IsLetter)
	if end := strings.LastIndex(body, fence); end != -1 {
		body = body[:end]
	}

	return strings.TrimSpace(body)
}
