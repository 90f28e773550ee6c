package jsonschemer

import (
	"strconv"
	"strings"
)

// evaluateOneOf validates the instance against the subschemas of oneOf and
// passes when exactly one matches. With two or more matches the result is
// invalid and the caller marks it ignoreNested, so classic output reports the
// oneOf keyword itself rather than a confusing nested tree.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-oneof
func evaluateOneOf(schema *Schema, instance any, ctx *evalContext, iloc, kloc *Location, evaluatedProps map[string]bool, evaluatedItems map[int]bool) ([]*EvaluationResult, *EvaluationError, bool) {
	var validIndexes []string
	results := []*EvaluationResult{}
	var matchedProps map[string]bool
	var matchedItems map[int]bool

	for i, subSchema := range schema.OneOf {
		if subSchema == nil {
			continue
		}
		result, props, items := subSchema.evaluate(instance, ctx,
			iloc, kloc.Join("oneOf").Join(strconv.Itoa(i)))
		if result != nil {
			results = append(results, result)
			if result.IsValid() {
				validIndexes = append(validIndexes, strconv.Itoa(i))
				matchedProps = props
				matchedItems = items
			}
		}
	}

	switch len(validIndexes) {
	case 1:
		mergeStringMaps(evaluatedProps, matchedProps)
		mergeIntMaps(evaluatedItems, matchedItems)
		return results, nil, false
	case 0:
		return results, NewEvaluationError("oneOf", "one_of_mismatch", "Value does not match exactly one of the subschemas"), false
	default:
		return results, NewEvaluationError("oneOf", "one_of_multiple_matches", "Value matches the subschemas at indexes {matches} but should match exactly one", map[string]any{
			"matches": strings.Join(validIndexes, ", "),
		}), true
	}
}
