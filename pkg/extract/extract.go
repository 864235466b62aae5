// Package extract recovers JSON objects from free-form model output.
//
// The model is instructed to answer with pure JSON, but in practice it
// may wrap the object in commentary or code fences. The recovery
// strategies below are tried in order; they deliberately do not repair
// truncated or otherwise invalid JSON.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError reports that no strategy recovered a valid
// JSON object from the model output.
type MalformedResponseError struct {
	Cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

// JSON extracts a JSON object from raw. Attempts, first success wins:
//
//  1. raw parsed as-is
//  2. the interior of a ```json fenced block
//  3. the interior of any ``` fenced block
//  4. the span from the first '{' to the last '}'
//
// When every attempt fails the returned error is a
// *MalformedResponseError carrying the direct-parse error.
func JSON(raw string) (map[string]any, error) {
	obj, direct := parseObject(raw)
	if direct == nil {
		return obj, nil
	}

	if inner, ok := fencedBlock(raw, "```json"); ok {
		if obj, err := parseObject(inner); err == nil {
			return obj, nil
		}
	}
	if inner, ok := fencedBlock(raw, "```"); ok {
		if obj, err := parseObject(inner); err == nil {
			return obj, nil
		}
	}
	if span, ok := braceSpan(raw); ok {
		if obj, err := parseObject(span); err == nil {
			return obj, nil
		}
	}

	return nil, &MalformedResponseError{Cause: direct}
}

func parseObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// fencedBlock returns the text between the opening fence and the next
// closing ``` fence.
func fencedBlock(s, open string) (string, bool) {
	start := strings.Index(s, open)
	if start < 0 {
		return "", false
	}
	rest := s[start+len(open):]
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// braceSpan returns the outermost first-'{'-to-last-'}' substring.
// Only this single span is attempted; no backtracking across multiple
// candidate regions.
func braceSpan(s string) (string, bool) {
	first := strings.IndexByte(s, '{')
	last := strings.LastIndexByte(s, '}')
	if first < 0 || last <= first {
		return "", false
	}
	return s[first : last+1], true
}
