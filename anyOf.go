package jsonschemer

import "strconv"

// evaluateAnyOf validates the instance against the subschemas of anyOf and
// passes when at least one matches. Annotations from every valid branch feed
// the unevaluated keywords.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-anyof
func evaluateAnyOf(schema *Schema, instance any, ctx *evalContext, iloc, kloc *Location, evaluatedProps map[string]bool, evaluatedItems map[int]bool) ([]*EvaluationResult, *EvaluationError) {
	results := []*EvaluationResult{}
	anyValid := false

	for i, subSchema := range schema.AnyOf {
		if subSchema == nil {
			continue
		}
		result, props, items := subSchema.evaluate(instance, ctx,
			iloc, kloc.Join("anyOf").Join(strconv.Itoa(i)))
		if result != nil {
			results = append(results, result)
			if result.IsValid() {
				anyValid = true
				mergeStringMaps(evaluatedProps, props)
				mergeIntMaps(evaluatedItems, items)
			}
		}
	}

	if anyValid {
		return results, nil
	}
	return results, NewEvaluationError("anyOf", "any_of_mismatch", "Value does not match any of the subschemas")
}
