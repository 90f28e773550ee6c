package jsonschemer

import (
	"strconv"
	"strings"
)

// evaluateUnevaluatedItems applies its subschema to every array index no valid
// adjacent or nested applicator evaluated.
// According to the JSON Schema Draft 2020-12:
//   - It reads the annotations of prefixItems, items, contains and prior
//     unevaluatedItems, collected across all valid sibling and descendant
//     results at the same instance location.
//   - It runs after every other keyword of its schema.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-unevaluateditems
func evaluateUnevaluatedItems(schema *Schema, array []any, ctx *evalContext, iloc, kloc *Location, parent *EvaluationResult, evaluatedItems map[int]bool) ([]*EvaluationResult, *EvaluationError) {
	var invalidIndexes []string
	var unevaluated []string
	results := []*EvaluationResult{}

	for i, item := range array {
		if evaluatedItems[i] {
			continue
		}
		result, _, _ := schema.UnevaluatedItems.evaluate(item, ctx,
			iloc.Join(strconv.Itoa(i)),
			kloc.Join("unevaluatedItems"))
		if result != nil {
			if result.IsValid() {
				evaluatedItems[i] = true
			} else {
				results = append(results, result)
				invalidIndexes = append(invalidIndexes, strconv.Itoa(i))
			}
		}
		unevaluated = append(unevaluated, strconv.Itoa(i))
	}

	if len(unevaluated) > 0 {
		parent.AddAnnotation("unevaluatedItems", true)
	}

	switch len(invalidIndexes) {
	case 0:
		return results, nil
	case 1:
		return results, NewEvaluationError("unevaluatedItems", "unevaluated_item_mismatch", "Unevaluated item at index {index} does not match the schema", map[string]any{
			"index": invalidIndexes[0],
		})
	default:
		return results, NewEvaluationError("unevaluatedItems", "unevaluated_items_mismatch", "Unevaluated items at indexes {indexes} do not match the schema", map[string]any{
			"indexes": strings.Join(invalidIndexes, ", "),
		})
	}
}
