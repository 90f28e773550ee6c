package jsonschemer

import "strings"

// evaluateType checks the instance against the type keyword.
// According to the JSON Schema Draft 2020-12:
//   - The value of "type" MUST be either a string or an array of unique strings.
//   - A number is an "integer" iff it equals its floor, so 1.0 is an integer.
//   - The array form validates if any listed type matches.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-type
func evaluateType(schema *Schema, instance any) *EvaluationError {
	actual := getDataType(instance)

	for _, expected := range schema.Type {
		if typeMatches(expected, actual) {
			return nil
		}
	}

	if len(schema.Type) == 1 {
		return NewEvaluationError("type", "type_mismatch", "Value is {actual} but should be {expected}", map[string]any{
			"actual":   actual,
			"expected": schema.Type[0],
		})
	}
	return NewEvaluationError("type", "type_mismatch", "Value is {actual} but should be one of {expected}", map[string]any{
		"actual":   actual,
		"expected": strings.Join(schema.Type, ", "),
	})
}

func typeMatches(expected, actual string) bool {
	if expected == actual {
		return true
	}
	// Integer-valued numbers satisfy "number" too.
	return expected == "number" && actual == "integer"
}
