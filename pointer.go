package jsonschemer

import (
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// escapeToken escapes a single JSON Pointer reference token per RFC 6901.
func escapeToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// unescapeToken reverses escapeToken. Order matters: ~1 before ~0, so that
// "~01" round-trips to "~1" and not "/".
func unescapeToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// parsePointer splits a JSON Pointer string into unescaped reference tokens.
// The empty pointer addresses the document root and yields no tokens.
func parsePointer(pointer string) []string {
	if pointer == "" {
		return nil
	}
	return jsonpointer.Parse(pointer)
}

// applyPointer walks an instance value along pointer tokens. A missing key or an
// out-of-range index fails with ErrInvalidJSONPointer.
func applyPointer(value any, pointer string) (any, error) {
	if pointer == "" {
		return value, nil
	}
	result, err := jsonpointer.Get(value, pointer)
	if err != nil {
		return nil, ErrInvalidJSONPointer
	}
	return result, nil
}

func isJSONPointer(s string) bool {
	return s == "" || strings.HasPrefix(s, "/")
}
