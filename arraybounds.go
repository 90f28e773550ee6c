package jsonschemer

// Array bound keywords: maxItems, minItems and uniqueItems.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-validation-keywords-for-arr

func evaluateMaxItems(schema *Schema, array []any) *EvaluationError {
	if float64(len(array)) > *schema.MaxItems {
		return NewEvaluationError("maxItems", "max_items_mismatch", "Array should have at most {max_items} items", map[string]any{
			"max_items": int(*schema.MaxItems),
			"count":     len(array),
		})
	}
	return nil
}

func evaluateMinItems(schema *Schema, array []any) *EvaluationError {
	if float64(len(array)) < *schema.MinItems {
		return NewEvaluationError("minItems", "min_items_mismatch", "Array should have at least {min_items} items", map[string]any{
			"min_items": int(*schema.MinItems),
			"count":     len(array),
		})
	}
	return nil
}

// evaluateUniqueItems applies deep equality across the whole array.
func evaluateUniqueItems(schema *Schema, array []any) *EvaluationError {
	if !*schema.UniqueItems || len(array) < 2 {
		return nil
	}
	for i := 0; i < len(array); i++ {
		for j := i + 1; j < len(array); j++ {
			if deepEqual(array[i], array[j]) {
				return NewEvaluationError("uniqueItems", "unique_items_mismatch", "Array items at index {first} and {second} are equal", map[string]any{
					"first":  i,
					"second": j,
				})
			}
		}
	}
	return nil
}
