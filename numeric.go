package jsonschemer

import "fmt"

// evaluateNumeric checks multipleOf, maximum, exclusiveMaximum, minimum and
// exclusiveMinimum. Comparisons run on exact decimals so 8.61 is a multiple of
// 0.01 and bounds compare as real numbers, not binary floats.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-validation-keywords-for-num
func evaluateNumeric(schema *Schema, instance any) []*EvaluationError {
	if !isNumber(instance) {
		return nil
	}
	value := NewRat(fmt.Sprint(instance))
	if value == nil {
		return nil
	}

	var errs []*EvaluationError

	if schema.MultipleOf != nil && !value.IsMultipleOf(schema.MultipleOf) {
		errs = append(errs, NewEvaluationError("multipleOf", "multiple_of_mismatch", "Value should be a multiple of {multiple_of}", map[string]any{
			"multiple_of": FormatRat(schema.MultipleOf),
		}))
	}
	if schema.Maximum != nil && value.Cmp(schema.Maximum.Rat) > 0 {
		errs = append(errs, NewEvaluationError("maximum", "maximum_mismatch", "Value should be at most {maximum}", map[string]any{
			"maximum": FormatRat(schema.Maximum),
		}))
	}
	if schema.ExclusiveMaximum != nil && value.Cmp(schema.ExclusiveMaximum.Rat) >= 0 {
		errs = append(errs, NewEvaluationError("exclusiveMaximum", "exclusive_maximum_mismatch", "Value should be less than {exclusive_maximum}", map[string]any{
			"exclusive_maximum": FormatRat(schema.ExclusiveMaximum),
		}))
	}
	if schema.Minimum != nil && value.Cmp(schema.Minimum.Rat) < 0 {
		errs = append(errs, NewEvaluationError("minimum", "minimum_mismatch", "Value should be at least {minimum}", map[string]any{
			"minimum": FormatRat(schema.Minimum),
		}))
	}
	if schema.ExclusiveMinimum != nil && value.Cmp(schema.ExclusiveMinimum.Rat) <= 0 {
		errs = append(errs, NewEvaluationError("exclusiveMinimum", "exclusive_minimum_mismatch", "Value should be greater than {exclusive_minimum}", map[string]any{
			"exclusive_minimum": FormatRat(schema.ExclusiveMinimum),
		}))
	}
	return errs
}
