// Package jsonrepair recovers the longest usable prefix of a JSON array from
// model output that was cut off mid-stream.
package jsonrepair

import (
	"encoding/json"
	"errors"
	"strings"
)

// SalvageWindow bounds how many trailing characters are searched for a
// truncation point once the strict parse has failed.
const SalvageWindow = 500

const (
	arrayClose  = "]"
	objectClose = "}"
	elementSep  = ","
)

// ErrMalformedResponse is returned when no truncation point inside the
// salvage window yields a parseable array.
var ErrMalformedResponse = errors.New("malformed model response: no parseable JSON array")

// Result describes how an array was recovered.
type Result struct {
	Elements []json.RawMessage
	// Repaired is true when the input had to be truncated to parse.
	Repaired bool
}

// RepairArray parses text as a JSON array, truncating it when needed.
func RepairArray(text string) ([]json.RawMessage, error) {
	res, err := Repair(text)
	if err != nil {
		return nil, err
	}
	return res.Elements, nil
}

// Repair runs the repair search and reports whether truncation was needed.
//
// An input that does not end with "]" is first cut after its last "}" and
// closed. If that still fails, candidates text[:i] are tried for i walking
// backwards through the salvage window, each closed according to its last
// character, and the first one that parses is accepted.
func Repair(text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrMalformedResponse
	}

	repaired := false
	if !strings.HasSuffix(text, arrayClose) {
		if last := strings.LastIndex(text, objectClose); last > 0 {
			text = text[:last+1] + arrayClose
			repaired = true
		}
	}

	if elems, ok := parseArray(text); ok {
		return Result{Elements: elems, Repaired: repaired}, nil
	}

	lower := len(text) - SalvageWindow
	if lower < 0 {
		lower = 0
	}
	for i := len(text) - 1; i > lower; i-- {
		candidate, ok := closeCandidate(text[:i])
		if !ok {
			continue
		}
		if elems, ok := parseArray(candidate); ok {
			return Result{Elements: elems, Repaired: true}, nil
		}
	}

	return Result{}, ErrMalformedResponse
}

// closeCandidate applies the two repair shapes to a truncated prefix:
// a trailing "}" gets "]" appended and a trailing "," becomes "]". A prefix
// already ending in "]" is tried as is; anything else cannot close an array.
func closeCandidate(prefix string) (string, bool) {
	switch {
	case strings.HasSuffix(prefix, objectClose):
		return prefix + arrayClose, true
	case strings.HasSuffix(prefix, elementSep):
		return strings.TrimSuffix(prefix, elementSep) + arrayClose, true
	case strings.HasSuffix(prefix, arrayClose):
		return prefix, true
	default:
		return "", false
	}
}

func parseArray(text string) ([]json.RawMessage, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elems); err != nil {
		return nil, false
	}
	if elems == nil {
		// "null" decodes without error but is not an array
		return nil, false
	}
	return elems, true
}
