package jsonschemer

// evaluateFormat checks the instance against the format keyword.
// According to the JSON Schema Draft 2020-12:
//   - Under the format-annotation vocabulary the format is collected as an
//     annotation and never fails the instance.
//   - Assertion behavior is switched on by the format-assertion vocabulary or
//     the compiler's SetAssertFormat option, which swaps this evaluator into
//     asserting mode.
//   - Compiler-registered custom formats take precedence over the built-in
//     registry; unknown format names never cause failure.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-format
func evaluateFormat(schema *Schema, instance any) *EvaluationError {
	formatName := *schema.Format
	compiler := schema.GetCompiler()
	assert := compiler.AssertFormat || schema.dialect.AssertsFormat()

	var validator func(any) bool
	if def := compiler.lookupCustomFormat(formatName); def != nil {
		if def.Type != "" && !formatTypeMatches(getDataType(instance), def.Type) {
			return nil
		}
		validator = def.Validate
	} else if builtin, ok := Formats[formatName]; ok {
		validator = builtin
	}

	if validator == nil {
		return nil
	}
	if !validator(instance) && assert {
		return NewEvaluationError("format", "format_mismatch", "Value does not match the format {format}", map[string]any{
			"format": formatName,
		})
	}
	return nil
}

func formatTypeMatches(valueType, requiredType string) bool {
	if requiredType == "" || valueType == requiredType {
		return true
	}
	return requiredType == "number" && valueType == "integer"
}
