package scenario

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Extract evaluates a simple JSONPath expression against a JSON body.
// Supported: $.field, $.field.nested, $.array[0], $.array[0].field.
func Extract(body []byte, path string) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("body is not valid JSON: %w", err)
	}
	return extract(doc, path)
}

func extract(doc any, path string) (any, error) {
	if !strings.HasPrefix(path, "$") {
		return nil, fmt.Errorf("JSONPath must start with $: %q", path)
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(path, "$"), ".")

	current := doc
	for _, seg := range splitSegments(rest) {
		if seg == "" {
			continue
		}

		// Array index notation: field[0] or [0]
		if idx := strings.Index(seg, "["); idx >= 0 {
			field := seg[:idx]
			indexStr := strings.TrimSuffix(seg[idx+1:], "]")

			if field != "" {
				val, err := getField(current, field)
				if err != nil {
					return nil, err
				}
				current = val
			}

			arrIdx, err := strconv.Atoi(indexStr)
			if err != nil {
				return nil, fmt.Errorf("invalid array index in %q: %w", seg, err)
			}
			arr, ok := current.([]any)
			if !ok {
				return nil, fmt.Errorf("%q is not an array", field)
			}
			if arrIdx < 0 || arrIdx >= len(arr) {
				return nil, fmt.Errorf("index %d out of bounds in %q", arrIdx, seg)
			}
			current = arr[arrIdx]
			continue
		}

		val, err := getField(current, seg)
		if err != nil {
			return nil, err
		}
		current = val
	}

	return current, nil
}

// splitSegments splits a path like "field.nested[0].name" into segments,
// keeping bracketed indices attached to their field.
func splitSegments(path string) []string {
	var segments []string
	var current strings.Builder
	depth := 0

	for _, ch := range path {
		switch ch {
		case '[':
			depth++
			current.WriteRune(ch)
		case ']':
			depth--
			current.WriteRune(ch)
		case '.':
			if depth == 0 {
				segments = append(segments, current.String())
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		segments = append(segments, current.String())
	}
	return segments
}

func getField(doc any, field string) (any, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cannot access field %q on %T", field, doc)
	}
	val, ok := m[field]
	if !ok {
		return nil, fmt.Errorf("field %q not found", field)
	}
	return val, nil
}
