package jsonschemer

// evaluateDiscriminator implements the OpenAPI 3.1 discriminator: the named
// property selects exactly one target schema, replacing the oneOf/anyOf branch
// trials. The mapping routes a property value to a schema reference; unmapped
// values resolve to #/components/schemas/{value}.
//
// When the selected target folds back into this schema through allOf/$ref, the
// single-entry skip flag on the context breaks the recursion: the target is
// entered once with discriminator dispatch suppressed.
func evaluateDiscriminator(schema *Schema, instance any, ctx *evalContext, iloc, kloc *Location, evaluatedProps map[string]bool, evaluatedItems map[int]bool) (*EvaluationResult, *EvaluationError, bool) {
	object, ok := instance.(map[string]any)
	if !ok {
		return nil, nil, false
	}

	propertyName := schema.Discriminator.PropertyName
	raw, present := object[propertyName]
	if !present {
		return nil, NewEvaluationError("discriminator", "discriminator_missing_property", "Object is missing the discriminator property {property}", map[string]any{
			"property": propertyName,
		}), true
	}
	value, ok := raw.(string)
	if !ok {
		return nil, NewEvaluationError("discriminator", "discriminator_invalid_property", "Discriminator property {property} must be a string", map[string]any{
			"property": propertyName,
		}), true
	}

	ref, mapped := schema.Discriminator.Mapping[value]
	if !mapped {
		ref = "#/components/schemas/" + escapeToken(value)
	}

	target, err := schema.resolveRef(ref)
	if err != nil {
		return nil, NewEvaluationError("discriminator", "discriminator_unknown_value", "Discriminator value {value} does not select a known schema", map[string]any{
			"value": value,
		}), true
	}

	saved := ctx.skipDiscriminatorFor
	ctx.skipDiscriminatorFor = schema
	result, props, items := target.evaluate(instance, ctx, iloc, kloc.Join("discriminator"))
	ctx.skipDiscriminatorFor = saved

	if result != nil && !result.IsValid() {
		return result, NewEvaluationError("discriminator", "discriminator_mismatch", "Value does not match the schema selected by discriminator value {value}", map[string]any{
			"value": value,
		}), true
	}
	mergeStringMaps(evaluatedProps, props)
	mergeIntMaps(evaluatedItems, items)
	return result, nil, true
}
