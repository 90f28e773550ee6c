package jsonschemer

import (
	"strconv"
	"strings"
)

// evaluateItems validates the array elements past the prefixItems offset
// against the items subschema.
// According to the JSON Schema Draft 2020-12:
//   - The value of "items" MUST be a valid JSON Schema (booleans included).
//   - Evaluation starts at the index following the prefixItems annotation.
//   - The annotation is true when any element was evaluated.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-items
func evaluateItems(schema *Schema, array []any, ctx *evalContext, iloc, kloc *Location, evaluatedItems map[int]bool) ([]*EvaluationResult, bool, *EvaluationError) {
	var invalidIndexes []string
	results := []*EvaluationResult{}

	startIndex := len(schema.PrefixItems)
	evaluated := false

	for i := startIndex; i < len(array); i++ {
		result, _, _ := schema.Items.evaluate(array[i], ctx,
			iloc.Join(strconv.Itoa(i)),
			kloc.Join("items"))
		evaluated = true
		if result != nil {
			if result.IsValid() {
				evaluatedItems[i] = true
			} else {
				results = append(results, result)
				invalidIndexes = append(invalidIndexes, strconv.Itoa(i))
			}
		}
	}

	switch len(invalidIndexes) {
	case 0:
		return results, evaluated, nil
	case 1:
		return results, evaluated, NewEvaluationError("items", "item_mismatch", "Item at index {index} does not match the schema", map[string]any{
			"index": invalidIndexes[0],
		})
	default:
		return results, evaluated, NewEvaluationError("items", "items_mismatch", "Items at indexes {indexes} do not match the schema", map[string]any{
			"indexes": strings.Join(invalidIndexes, ", "),
		})
	}
}
