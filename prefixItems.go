package jsonschemer

import (
	"strconv"
	"strings"
)

// evaluatePrefixItems validates each array element against the schema at the
// same index of prefixItems.
// According to the JSON Schema Draft 2020-12:
//   - The value of "prefixItems" MUST be a non-empty array of valid JSON Schemas.
//   - Only the prefix up to the length of "prefixItems" is constrained.
//   - The annotation is the largest index validated, -1 when the array is empty,
//     or true when every element was covered.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-prefixitems
func evaluatePrefixItems(schema *Schema, array []any, ctx *evalContext, iloc, kloc *Location, evaluatedItems map[int]bool) ([]*EvaluationResult, any, *EvaluationError) {
	var invalidIndexes []string
	results := []*EvaluationResult{}
	lastValidated := -1

	for i, itemSchema := range schema.PrefixItems {
		if i >= len(array) {
			break
		}
		result, _, _ := itemSchema.evaluate(array[i], ctx,
			iloc.Join(strconv.Itoa(i)),
			kloc.Join("prefixItems").Join(strconv.Itoa(i)))
		if result != nil {
			results = append(results, result)
			if result.IsValid() {
				evaluatedItems[i] = true
			} else {
				invalidIndexes = append(invalidIndexes, strconv.Itoa(i))
			}
		}
		lastValidated = i
	}

	var annotation any = lastValidated
	if lastValidated == len(array)-1 && len(array) > 0 {
		annotation = true
	}

	switch len(invalidIndexes) {
	case 0:
		return results, annotation, nil
	case 1:
		return results, annotation, NewEvaluationError("prefixItems", "prefix_item_mismatch", "Item at index {index} does not match the prefixItems schema", map[string]any{
			"index": invalidIndexes[0],
		})
	default:
		return results, annotation, NewEvaluationError("prefixItems", "prefix_items_mismatch", "Items at indexes {indexes} do not match the prefixItems schemas", map[string]any{
			"indexes": strings.Join(invalidIndexes, ", "),
		})
	}
}
