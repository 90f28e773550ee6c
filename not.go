package jsonschemer

// evaluateNot validates the instance against the not subschema and inverts the
// outcome. Annotations from the inverted evaluation are discarded.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-not
func evaluateNot(schema *Schema, instance any, ctx *evalContext, iloc, kloc *Location) (*EvaluationResult, *EvaluationError) {
	result, _, _ := schema.Not.evaluate(instance, ctx, iloc, kloc.Join("not"))
	if result != nil && result.IsValid() {
		return result, NewEvaluationError("not", "not_mismatch", "Value should not match the schema")
	}
	return result, nil
}
