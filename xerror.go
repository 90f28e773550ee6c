package jsonschemer

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
)

// resolveErrorMessage renders a keyword failure, honoring the schema's x-error
// overlay. An x-error string covers every error of the schema and its keywords;
// a map is consulted by keyword first, then "^" for errors of the schema
// itself, then "*" as fallback. Messages interpolate %{...} variables.
func resolveErrorMessage(result *EvaluationResult, err *EvaluationError) string {
	custom, ok := lookupXError(result.schema, err.Keyword)
	if !ok {
		return err.Error()
	}
	return interpolateXError(custom, result, err)
}

func lookupXError(schema *Schema, keyword string) (string, bool) {
	if schema == nil || schema.XError == nil {
		return "", false
	}
	switch xerr := schema.XError.(type) {
	case string:
		return xerr, true
	case map[string]any:
		if message, ok := xerr[keyword].(string); ok {
			return message, true
		}
		if keyword == "schema" {
			if message, ok := xerr["^"].(string); ok {
				return message, true
			}
		}
		if message, ok := xerr["*"].(string); ok {
			return message, true
		}
	}
	return "", false
}

func interpolateXError(message string, result *EvaluationResult, err *EvaluationError) string {
	replacer := strings.NewReplacer(
		"%{instance}", encodeInstance(result.instance),
		"%{instanceLocation}", result.InstanceLocation(),
		"%{formattedInstanceLocation}", formatInstanceLocation(result.InstanceLocation()),
		"%{keywordValue}", encodeInstance(keywordValue(result.schema, err.Keyword)),
		"%{keywordLocation}", result.KeywordLocation()+"/"+escapeToken(err.Keyword),
		"%{absoluteKeywordLocation}", result.AbsoluteKeywordLocation(),
		"%{details}", encodeInstance(err.Details),
	)
	return replacer.Replace(message)
}

func encodeInstance(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}

func formatInstanceLocation(location string) string {
	if location == "" {
		return "root"
	}
	return "`" + location + "`"
}

func keywordValue(schema *Schema, keyword string) any {
	if obj, ok := schema.value.(map[string]any); ok {
		return obj[keyword]
	}
	return schema.value
}
