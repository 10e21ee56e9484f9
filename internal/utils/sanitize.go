package utils

import (
	"regexp"
	"strings"
)

const fence = "```"

var (
	// a fence alone on its line, with an optional language tag such as ```json
	fenceLine = regexp.MustCompile("(?m)^[ \t]*```[A-Za-z0-9_+-]*[ \t\r]*$")
	// an opening fence that shares its line with the payload
	leadingFence = regexp.MustCompile("^```[A-Za-z0-9_+-]*")
)

// StripFences removes markdown code fences wrapping model output and trims
// surrounding whitespace. Only fences on their own line, or a pair wrapping
// the whole text, are removed; backticks inside the payload are kept.
// Text without fences is returned trimmed.
func StripFences(text string) string {
	text = strings.TrimSpace(fenceLine.ReplaceAllString(text, ""))
	if strings.HasPrefix(text, fence) {
		text = leadingFence.ReplaceAllString(text, "")
		text = strings.TrimSuffix(text, fence)
	}
	return strings.TrimSpace(text)
}

// ExtractJSON strips fences and any prose written before the payload. open
// is '[' for an array or '{' for an object. Text that already starts with a
// JSON array or object is returned as StripFences leaves it; otherwise it
// is cut at the first open delimiter that can begin the payload. Trailing
// text is left for the caller's parser.
func ExtractJSON(text string, open byte) string {
	text = StripFences(text)
	if text == "" || text[0] == '[' || text[0] == '{' {
		return text
	}
	for i := 0; i < len(text); i++ {
		if text[i] == open && opensPayload(text[i+1:], open) {
			return text[i:]
		}
	}
	return text
}

// opensPayload reports whether rest, the text after an open delimiter, can
// continue a JSON value of that kind.
func opensPayload(rest string, open byte) bool {
	rest = strings.TrimLeft(rest, " \t\r\n")
	if rest == "" {
		return true
	}
	switch open {
	case '[':
		return strings.IndexByte("{[]\"", rest[0]) >= 0
	case '{':
		return rest[0] == '"' || rest[0] == '}'
	default:
		return false
	}
}
