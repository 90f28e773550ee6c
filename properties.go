package jsonschemer

import "strings"

// evaluateProperties validates each property listed in properties that is
// present on the instance.
// According to the JSON Schema Draft 2020-12:
//   - The value of "properties" MUST be an object whose values are valid JSON
//     Schemas.
//   - The annotation is the list of property names evaluated here.
//
// The compiler's before/after property hooks run around each property; they
// carry no validation semantics. When insert-property-defaults is enabled the
// schema default surfaces as an annotation only; the instance is never mutated.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-properties
func evaluateProperties(schema *Schema, object map[string]any, ctx *evalContext, iloc, kloc *Location, evaluatedProps map[string]bool) ([]*EvaluationResult, []string, *EvaluationError) {
	var invalidKeys []string
	results := []*EvaluationResult{}
	evaluatedKeys := []string{}
	compiler := schema.GetCompiler()

	for _, key := range sortedKeys(schema.Properties) {
		propSchema := schema.Properties[key]
		value, present := object[key]
		if !present {
			continue
		}
		if compiler.beforePropertyHook != nil {
			compiler.beforePropertyHook(propSchema, key, value)
		}

		result, _, _ := propSchema.evaluate(value, ctx,
			iloc.Join(key),
			kloc.Join("properties").Join(key))
		if result != nil {
			results = append(results, result)
			if result.IsValid() {
				evaluatedProps[key] = true
				evaluatedKeys = append(evaluatedKeys, key)
			} else {
				invalidKeys = append(invalidKeys, key)
			}
		}

		if compiler.afterPropertyHook != nil {
			compiler.afterPropertyHook(propSchema, key, value)
		}
	}

	switch len(invalidKeys) {
	case 0:
		return results, evaluatedKeys, nil
	case 1:
		return results, evaluatedKeys, NewEvaluationError("properties", "property_mismatch", "Property {property} does not match the schema", map[string]any{
			"property": invalidKeys[0],
		})
	default:
		return results, evaluatedKeys, NewEvaluationError("properties", "properties_mismatch", "Properties {properties} do not match their schemas", map[string]any{
			"properties": strings.Join(invalidKeys, ", "),
		})
	}
}
