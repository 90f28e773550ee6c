package jsonschemer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-json-experiment/json/jsontext"
)

// DecodeInstance decodes raw JSON into the instance value model used by Validate:
// nil, bool, int64, float64, string, []any and map[string]any. Numbers without a
// fraction or exponent that fit a signed 64-bit integer decode as int64, everything
// else as float64.
func DecodeInstance(data []byte) (any, error) {
	dec := jsontext.NewDecoder(strings.NewReader(string(data)))
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJSONUnmarshal, err)
	}
	return v, nil
}

func decodeValue(dec *jsontext.Decoder) (any, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	switch tok.Kind() {
	case 'n':
		return nil, nil
	case 't':
		return true, nil
	case 'f':
		return false, nil
	case '"':
		return tok.String(), nil
	case '0':
		raw := tok.String()
		if !strings.ContainsAny(raw, ".eE") {
			if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
				return i, nil
			}
		}
		return strconv.ParseFloat(raw, 64)
	case '{':
		obj := map[string]any{}
		for dec.PeekKind() != '}' {
			key, err := dec.ReadToken()
			if err != nil {
				return nil, err
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj[key.String()] = val
		}
		_, err := dec.ReadToken()
		return obj, err
	case '[':
		arr := []any{}
		for dec.PeekKind() != ']' {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		_, err := dec.ReadToken()
		return arr, err
	default:
		return nil, ErrJSONUnmarshal
	}
}

// getDataType reports the JSON Schema type name of an instance value.
// Integer-valued floats count as "integer" so that 1.0 satisfies {"type":"integer"}.
func getDataType(v any) string {
	switch value := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32:
		if float64(value) == math.Floor(float64(value)) {
			return "integer"
		}
		return "number"
	case float64:
		if value == math.Floor(value) {
			return "integer"
		}
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

// toFloat converts any JSON numeric instance to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func isNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// deepEqual compares two instance values structurally: arrays are ordered, object
// key order is ignored, and numbers compare by value across int/float variants.
func deepEqual(a, b any) bool {
	if na, ok := toFloat(a); ok {
		nb, ok := toFloat(b)
		return ok && na == nb
	}
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bval, exists := bv[k]
			if !exists || !deepEqual(v, bval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// codePointLength counts Unicode code points, the length measure of
// maxLength/minLength.
func codePointLength(s string) int {
	return utf8.RuneCountInString(s)
}

func mergeStringMaps(dst, src map[string]bool) {
	for k, v := range src {
		if v {
			dst[k] = true
		}
	}
}

func mergeIntMaps(dst, src map[int]bool) {
	for k, v := range src {
		if v {
			dst[k] = true
		}
	}
}

// replace interpolates {name} placeholders in evaluation messages.
func replace(message string, params map[string]any) string {
	if len(params) == 0 {
		return message
	}
	out := message
	for key, value := range params {
		out = strings.ReplaceAll(out, "{"+key+"}", fmt.Sprint(value))
	}
	return out
}
