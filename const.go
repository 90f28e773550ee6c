package jsonschemer

// evaluateConst checks the instance against the const keyword using the same
// structural equality as enum.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-const
func evaluateConst(schema *Schema, instance any) *EvaluationError {
	if deepEqual(instance, schema.Const.Value) {
		return nil
	}
	return NewEvaluationError("const", "const_mismatch", "Value does not equal the required constant", map[string]any{
		"expected": schema.Const.Value,
	})
}
