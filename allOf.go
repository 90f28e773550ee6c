package jsonschemer

import (
	"strconv"
	"strings"
)

// evaluateAllOf validates the instance against every subschema of allOf.
// Annotations from every valid branch feed the unevaluated keywords.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-allof
func evaluateAllOf(schema *Schema, instance any, ctx *evalContext, iloc, kloc *Location, evaluatedProps map[string]bool, evaluatedItems map[int]bool) ([]*EvaluationResult, *EvaluationError) {
	var invalidIndexes []string
	results := []*EvaluationResult{}

	for i, subSchema := range schema.AllOf {
		if subSchema == nil {
			continue
		}
		result, props, items := subSchema.evaluate(instance, ctx,
			iloc, kloc.Join("allOf").Join(strconv.Itoa(i)))
		if result != nil {
			results = append(results, result)
			if result.IsValid() {
				mergeStringMaps(evaluatedProps, props)
				mergeIntMaps(evaluatedItems, items)
			} else {
				invalidIndexes = append(invalidIndexes, strconv.Itoa(i))
			}
		}
	}

	switch len(invalidIndexes) {
	case 0:
		return results, nil
	case 1:
		return results, NewEvaluationError("allOf", "all_of_item_mismatch", "Value does not match the subschema at index {index}", map[string]any{
			"index": invalidIndexes[0],
		})
	default:
		return results, NewEvaluationError("allOf", "all_of_items_mismatch", "Value does not match the subschemas at indexes {indexes}", map[string]any{
			"indexes": strings.Join(invalidIndexes, ", "),
		})
	}
}
