package jsonschemer

import "strings"

// evaluateUnevaluatedProperties applies its subschema to every property no
// valid adjacent or nested applicator evaluated, symmetrically to
// unevaluatedItems over the annotations of properties, patternProperties,
// additionalProperties and prior unevaluatedProperties.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-unevaluatedproperties
func evaluateUnevaluatedProperties(schema *Schema, object map[string]any, ctx *evalContext, iloc, kloc *Location, parent *EvaluationResult, evaluatedProps map[string]bool) ([]*EvaluationResult, *EvaluationError) {
	var invalidKeys []string
	evaluatedKeys := []string{}
	results := []*EvaluationResult{}

	for _, key := range sortedKeys(object) {
		if evaluatedProps[key] {
			continue
		}
		result, _, _ := schema.UnevaluatedProperties.evaluate(object[key], ctx,
			iloc.Join(key),
			kloc.Join("unevaluatedProperties"))
		if result != nil {
			if result.IsValid() {
				evaluatedProps[key] = true
				evaluatedKeys = append(evaluatedKeys, key)
			} else {
				results = append(results, result)
				invalidKeys = append(invalidKeys, key)
			}
		}
	}

	if len(evaluatedKeys) > 0 {
		parent.AddAnnotation("unevaluatedProperties", evaluatedKeys)
	}

	switch len(invalidKeys) {
	case 0:
		return results, nil
	case 1:
		return results, NewEvaluationError("unevaluatedProperties", "unevaluated_property_mismatch", "Unevaluated property {property} does not match the schema", map[string]any{
			"property": invalidKeys[0],
		})
	default:
		return results, NewEvaluationError("unevaluatedProperties", "unevaluated_properties_mismatch", "Unevaluated properties {properties} do not match the schema", map[string]any{
			"properties": strings.Join(invalidKeys, ", "),
		})
	}
}
