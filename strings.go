package jsonschemer

// String keywords measure length in Unicode code points, not bytes or UTF-16
// units: a single-code-point emoji satisfies {"maxLength": 1}.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-validation-keywords-for-str

func evaluateMaxLength(schema *Schema, instance any) *EvaluationError {
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	if float64(codePointLength(s)) > *schema.MaxLength {
		return NewEvaluationError("maxLength", "max_length_mismatch", "Value should be at most {max_length} characters", map[string]any{
			"max_length": int(*schema.MaxLength),
		})
	}
	return nil
}

func evaluateMinLength(schema *Schema, instance any) *EvaluationError {
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	if float64(codePointLength(s)) < *schema.MinLength {
		return NewEvaluationError("minLength", "min_length_mismatch", "Value should be at least {min_length} characters", map[string]any{
			"min_length": int(*schema.MinLength),
		})
	}
	return nil
}

// evaluatePattern matches the compiled pattern anywhere in the string; patterns
// are not anchored.
func evaluatePattern(schema *Schema, instance any) *EvaluationError {
	s, ok := instance.(string)
	if !ok {
		return nil
	}
	if schema.compiledStringPattern == nil || schema.compiledStringPattern.MatchString(s) {
		return nil
	}
	return NewEvaluationError("pattern", "pattern_mismatch", "Value does not match the pattern {pattern}", map[string]any{
		"pattern": *schema.Pattern,
	})
}
