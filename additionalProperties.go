package jsonschemer

import "strings"

// evaluateAdditionalProperties validates every instance property not covered by
// the properties or patternProperties keywords of the same schema. The
// annotation is the set of keys evaluated here.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-additionalproperties
func evaluateAdditionalProperties(schema *Schema, object map[string]any, ctx *evalContext, iloc, kloc *Location, evaluatedProps map[string]bool) ([]*EvaluationResult, []string, *EvaluationError) {
	var invalidKeys []string
	results := []*EvaluationResult{}
	evaluatedKeys := []string{}

	for _, key := range sortedKeys(object) {
		if schema.coveredByAdjacentApplicators(key) {
			continue
		}
		result, _, _ := schema.AdditionalProperties.evaluate(object[key], ctx,
			iloc.Join(key),
			kloc.Join("additionalProperties"))
		if result != nil {
			results = append(results, result)
			if result.IsValid() {
				evaluatedProps[key] = true
				evaluatedKeys = append(evaluatedKeys, key)
			} else {
				invalidKeys = append(invalidKeys, key)
			}
		}
	}

	switch len(invalidKeys) {
	case 0:
		return results, evaluatedKeys, nil
	case 1:
		return results, evaluatedKeys, NewEvaluationError("additionalProperties", "additional_property_mismatch", "Additional property {property} does not match the schema", map[string]any{
			"property": invalidKeys[0],
		})
	default:
		return results, evaluatedKeys, NewEvaluationError("additionalProperties", "additional_properties_mismatch", "Additional properties {properties} do not match the schema", map[string]any{
			"properties": strings.Join(invalidKeys, ", "),
		})
	}
}

// coveredByAdjacentApplicators reports whether a key belongs to the annotations
// properties or patternProperties would leave on this same schema.
func (s *Schema) coveredByAdjacentApplicators(key string) bool {
	if _, listed := s.Properties[key]; listed {
		return true
	}
	for pattern, re := range s.compiledPatterns {
		if _, active := s.PatternProperties[pattern]; active && re.MatchString(key) {
			return true
		}
	}
	return false
}
