package jsonschemer

import "strings"

// evaluatePropertyNames validates every property name of the instance, as a
// string, against the propertyNames subschema.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-propertynames
func evaluatePropertyNames(schema *Schema, object map[string]any, ctx *evalContext, iloc, kloc *Location) ([]*EvaluationResult, *EvaluationError) {
	var invalidKeys []string
	results := []*EvaluationResult{}

	for _, key := range sortedKeys(object) {
		result, _, _ := schema.PropertyNames.evaluate(key, ctx,
			iloc.Join(key),
			kloc.Join("propertyNames"))
		if result != nil && !result.IsValid() {
			results = append(results, result)
			invalidKeys = append(invalidKeys, key)
		}
	}

	switch len(invalidKeys) {
	case 0:
		return results, nil
	case 1:
		return results, NewEvaluationError("propertyNames", "property_name_mismatch", "Property name {property} does not match the schema", map[string]any{
			"property": invalidKeys[0],
		})
	default:
		return results, NewEvaluationError("propertyNames", "property_names_mismatch", "Property names {properties} do not match the schema", map[string]any{
			"properties": strings.Join(invalidKeys, ", "),
		})
	}
}
