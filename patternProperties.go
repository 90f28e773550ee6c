package jsonschemer

import "strings"

// evaluatePatternProperties validates every instance property whose name
// matches one of the patternProperties regexes; patterns match anywhere in the
// key. The annotation is the set of keys evaluated here.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-patternproperties
func evaluatePatternProperties(schema *Schema, object map[string]any, ctx *evalContext, iloc, kloc *Location, evaluatedProps map[string]bool) ([]*EvaluationResult, []string, *EvaluationError) {
	var invalidKeys []string
	results := []*EvaluationResult{}
	evaluatedKeys := []string{}

	for _, pattern := range sortedKeys(schema.PatternProperties) {
		re := schema.compiledPatterns[pattern]
		if re == nil {
			continue
		}
		subSchema := schema.PatternProperties[pattern]
		for _, key := range sortedKeys(object) {
			if !re.MatchString(key) {
				continue
			}
			result, _, _ := subSchema.evaluate(object[key], ctx,
				iloc.Join(key),
				kloc.Join("patternProperties").Join(pattern))
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
	}

	switch len(invalidKeys) {
	case 0:
		return results, evaluatedKeys, nil
	case 1:
		return results, evaluatedKeys, NewEvaluationError("patternProperties", "pattern_property_mismatch", "Property {property} does not match its pattern schema", map[string]any{
			"property": invalidKeys[0],
		})
	default:
		return results, evaluatedKeys, NewEvaluationError("patternProperties", "pattern_properties_mismatch", "Properties {properties} do not match their pattern schemas", map[string]any{
			"properties": strings.Join(invalidKeys, ", "),
		})
	}
}
