package jsonschemer

import "strings"

// evaluateDependentSchemas validates the whole instance against each dependent
// subschema whose trigger property is present.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-dependentschemas
func evaluateDependentSchemas(schema *Schema, instance any, ctx *evalContext, iloc, kloc *Location, evaluatedProps map[string]bool, evaluatedItems map[int]bool) ([]*EvaluationResult, *EvaluationError) {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil, nil
	}

	var invalidKeys []string
	results := []*EvaluationResult{}

	for _, key := range sortedKeys(schema.DependentSchemas) {
		if _, present := object[key]; !present {
			continue
		}
		subSchema := schema.DependentSchemas[key]
		result, props, items := subSchema.evaluate(instance, ctx,
			iloc, kloc.Join("dependentSchemas").Join(key))
		if result != nil {
			results = append(results, result)
			if result.IsValid() {
				mergeStringMaps(evaluatedProps, props)
				mergeIntMaps(evaluatedItems, items)
			} else {
				invalidKeys = append(invalidKeys, key)
			}
		}
	}

	switch len(invalidKeys) {
	case 0:
		return results, nil
	case 1:
		return results, NewEvaluationError("dependentSchemas", "dependent_schema_mismatch", "Value does not match the schema dependent on property {property}", map[string]any{
			"property": invalidKeys[0],
		})
	default:
		return results, NewEvaluationError("dependentSchemas", "dependent_schemas_mismatch", "Value does not match the schemas dependent on properties {properties}", map[string]any{
			"properties": strings.Join(invalidKeys, ", "),
		})
	}
}
