package jsonschemer

// evaluateConditional applies if/then/else.
// According to the JSON Schema Draft 2020-12:
//   - "if" never fails the instance on its own; its outcome is carried as an
//     annotation on the parent result.
//   - "then" applies only when "if" matched, "else" only when it did not.
//   - Annotations from "if" count toward the unevaluated keywords whenever it
//     matched, regardless of then/else.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-core#name-if-then-else
func evaluateConditional(schema *Schema, instance any, ctx *evalContext, iloc, kloc *Location, parent *EvaluationResult, evaluatedProps map[string]bool, evaluatedItems map[int]bool) ([]*EvaluationResult, *EvaluationError) {
	if schema.If == nil {
		// Without "if" there is nothing to match; then/else do not apply.
		return nil, nil
	}
	results := []*EvaluationResult{}
	ifMatched := true

	if schema.If != nil {
		ifResult, props, items := schema.If.evaluate(instance, ctx, iloc, kloc.Join("if"))
		if ifResult != nil {
			ifMatched = ifResult.IsValid()
			parent.AddAnnotation("if", ifMatched)
			if ifMatched {
				results = append(results, ifResult)
				mergeStringMaps(evaluatedProps, props)
				mergeIntMaps(evaluatedItems, items)
			}
		}
	}

	if ifMatched && schema.Then != nil {
		thenResult, props, items := schema.Then.evaluate(instance, ctx, iloc, kloc.Join("then"))
		if thenResult != nil {
			results = append(results, thenResult)
			if thenResult.IsValid() {
				mergeStringMaps(evaluatedProps, props)
				mergeIntMaps(evaluatedItems, items)
			} else {
				return results, NewEvaluationError("then", "then_mismatch", "Value does not match the schema required when the condition matches")
			}
		}
	}

	if !ifMatched && schema.Else != nil {
		elseResult, props, items := schema.Else.evaluate(instance, ctx, iloc, kloc.Join("else"))
		if elseResult != nil {
			results = append(results, elseResult)
			if elseResult.IsValid() {
				mergeStringMaps(evaluatedProps, props)
				mergeIntMaps(evaluatedItems, items)
			} else {
				return results, NewEvaluationError("else", "else_mismatch", "Value does not match the schema required when the condition does not match")
			}
		}
	}

	return results, nil
}
