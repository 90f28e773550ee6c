package jsonschemer

import "strconv"

// evaluateContains checks that enough array elements match the contains
// subschema.
// According to the JSON Schema Draft 2020-12:
//   - Every element is evaluated; the annotation is the array of matching
//     indexes.
//   - Validity requires at least max(1, minContains) matches; when minContains
//     is 0 the array is always valid but the annotation is still produced.
//   - maxContains bounds the match count from above.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-contains
func evaluateContains(schema *Schema, array []any, ctx *evalContext, iloc, kloc *Location, evaluatedItems map[int]bool) ([]*EvaluationResult, []any, *EvaluationError) {
	results := []*EvaluationResult{}
	matched := []any{}

	for i, item := range array {
		result, _, _ := schema.Contains.evaluate(item, ctx,
			iloc.Join(strconv.Itoa(i)),
			kloc.Join("contains"))
		if result != nil {
			results = append(results, result)
			if result.IsValid() {
				matched = append(matched, i)
				evaluatedItems[i] = true
			}
		}
	}

	minContains := 1
	if schema.MinContains != nil {
		minContains = int(*schema.MinContains)
	}

	if minContains > 0 && len(matched) < minContains {
		code, message := "contains_mismatch", "Array should contain at least one matching item"
		if schema.MinContains != nil {
			code, message = "min_contains_mismatch", "Array should contain at least {min_contains} matching items"
		}
		return results, matched, NewEvaluationError("contains", code, message, map[string]any{
			"min_contains": minContains,
			"count":        len(matched),
		})
	}

	if schema.MaxContains != nil && len(matched) > int(*schema.MaxContains) {
		return results, matched, NewEvaluationError("maxContains", "max_contains_mismatch", "Array should contain at most {max_contains} matching items", map[string]any{
			"max_contains": int(*schema.MaxContains),
			"count":        len(matched),
		})
	}

	return results, matched, nil
}
