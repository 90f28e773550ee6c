package jsonschemer

// evaluateEnum checks the instance against the enum keyword.
// According to the JSON Schema Draft 2020-12:
//   - The value of "enum" MUST be an array; an instance validates if it is
//     structurally equal to one of its elements.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-enum
func evaluateEnum(schema *Schema, instance any) *EvaluationError {
	for _, candidate := range schema.Enum {
		if deepEqual(instance, candidate) {
			return nil
		}
	}
	return NewEvaluationError("enum", "enum_mismatch", "Value is not one of the allowed values", map[string]any{
		"allowed": schema.Enum,
	})
}
