// README: Turns raw model text into a validated TripResponse or a typed failure.
package itinerary

import (
	"encoding/json"
	"strings"
	"unicode"
)

var fences = []string{"```", "~~~"}

// Sanitize strips surrounding whitespace and, when the text opens with a code
// fence, the fence markers and the language tag right after the opening fence.
// Without a closing fence everything after the opening one is kept.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	for _, fence := range fences {
		if !strings.HasPrefix(s, fence) {
			continue
		}
		body := strings.TrimLeft(s, fence[:1])
		body = strings.TrimLeftFunc(body, isLangTagRune)
		if end := strings.LastIndex(body, fence); end >= 0 {
			// A closing fence may be longer than three characters.
			body = strings.TrimRight(body[:end], fence[:1])
		}
		return strings.TrimSpace(body)
	}
	return s
}

func isLangTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '+'
}

// ParseResponse runs the full sanitize, parse, validate pipeline over model output.
// Failures keep the original raw text.
func ParseResponse(raw string) (TripResponse, error) {
	candidate := Sanitize(raw)

	var doc any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return TripResponse{}, &ResponseParseError{Raw: raw, Err: err}
	}

	resp, err := ValidateResponse([]byte(candidate))
	if err != nil {
		if verr, ok := err.(*ResponseValidationError); ok {
			verr.Raw = raw
		}
		return TripResponse{}, err
	}
	return resp, nil
}
