package jsonschemer

import "strings"

// Object bound keywords: maxProperties, minProperties, required and
// dependentRequired.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-validation-keywords-for-obj

func evaluateMaxProperties(schema *Schema, object map[string]any) *EvaluationError {
	if float64(len(object)) > *schema.MaxProperties {
		return NewEvaluationError("maxProperties", "max_properties_mismatch", "Object should have at most {max_properties} properties", map[string]any{
			"max_properties": int(*schema.MaxProperties),
			"count":          len(object),
		})
	}
	return nil
}

func evaluateMinProperties(schema *Schema, object map[string]any) *EvaluationError {
	if float64(len(object)) < *schema.MinProperties {
		return NewEvaluationError("minProperties", "min_properties_mismatch", "Object should have at least {min_properties} properties", map[string]any{
			"min_properties": int(*schema.MinProperties),
			"count":          len(object),
		})
	}
	return nil
}

// evaluateRequired reports properties listed in required but absent from the
// instance. Under access mode "read", properties whose schema is writeOnly are
// exempt; under "write", readOnly properties are.
func evaluateRequired(schema *Schema, object map[string]any, mode AccessMode) *EvaluationError {
	var missing []string
	for _, key := range schema.Required {
		if _, exists := object[key]; exists {
			continue
		}
		if mode != AccessModeNone {
			if prop, ok := schema.Properties[key]; ok && prop != nil {
				if mode == AccessModeRead && prop.WriteOnly != nil && *prop.WriteOnly {
					continue
				}
				if mode == AccessModeWrite && prop.ReadOnly != nil && *prop.ReadOnly {
					continue
				}
			}
		}
		missing = append(missing, key)
	}
	if len(missing) == 0 {
		return nil
	}
	return NewEvaluationError("required", "required_mismatch", "Object is missing required properties: {missing}", map[string]any{
		"missing": strings.Join(missing, ", "),
	}).WithDetails(map[string]any{"missing_keys": missing})
}

// evaluateDependentRequired checks that for each listed property present on the
// instance, its dependent property names are present too.
func evaluateDependentRequired(schema *Schema, object map[string]any) *EvaluationError {
	for _, key := range sortedKeys(schema.DependentRequired) {
		if _, present := object[key]; !present {
			continue
		}
		var missing []string
		for _, dep := range schema.DependentRequired[key] {
			if _, exists := object[dep]; !exists {
				missing = append(missing, dep)
			}
		}
		if len(missing) > 0 {
			return NewEvaluationError("dependentRequired", "dependent_required_mismatch", "Property {property} requires properties: {missing}", map[string]any{
				"property": key,
				"missing":  strings.Join(missing, ", "),
			}).WithDetails(map[string]any{"missing_keys": missing})
		}
	}
	return nil
}
