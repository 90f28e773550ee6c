package jsonschemer

// Validate checks the instance against the schema and returns the full result
// tree. Validation never fails with a Go error; schema and configuration
// problems surface at compile time.
func (s *Schema) Validate(instance any) *EvaluationResult {
	return s.validate(instance, s.GetCompiler().accessMode, false)
}

// ValidateWithAccessMode validates with an explicit access mode, so required
// can exclude writeOnly properties on reads and readOnly properties on writes.
func (s *Schema) ValidateWithAccessMode(instance any, mode AccessMode) *EvaluationResult {
	return s.validate(instance, mode, false)
}

// IsValid reports validity only, short-circuiting on the first failure.
func (s *Schema) IsValid(instance any) bool {
	return s.validate(instance, s.GetCompiler().accessMode, true).Valid
}

func (s *Schema) validate(instance any, mode AccessMode, shortCircuit bool) *EvaluationResult {
	ctx := newEvalContext(mode)
	ctx.shortCircuit = shortCircuit
	result, _, _ := s.evaluate(instance, ctx, NewLocation(), NewLocation())
	return result
}

// evaluate applies every active keyword of this schema node to the instance.
// It returns the result node plus the property and index sets evaluated by this
// schema and its successful subschemas, which feed unevaluatedProperties and
// unevaluatedItems upstream.
func (s *Schema) evaluate(instance any, ctx *evalContext, iloc, kloc *Location) (*EvaluationResult, map[string]bool, map[int]bool) {
	ctx.scope.Push(s)
	defer ctx.scope.Pop()

	// The discriminator skip applies to exactly one re-entry of the schema
	// that dispatched.
	skipDiscriminator := ctx.skipDiscriminatorFor == s
	if skipDiscriminator {
		ctx.skipDiscriminatorFor = nil
	}

	result := newEvaluationResult(s, instance, iloc, kloc)
	evaluatedProps := make(map[string]bool)
	evaluatedItems := make(map[int]bool)

	if s.Boolean != nil {
		if err := s.evaluateBoolean(instance, evaluatedProps, evaluatedItems); err != nil {
			result.AddError(err)
		}
		return result, evaluatedProps, evaluatedItems
	}

	d := s.dialect
	bail := func() bool { return ctx.shortCircuit && !result.Valid }

	// Core vocabulary: $ref applies first and is non-exclusive with siblings.
	if s.ResolvedRef != nil {
		refResult, props, items := s.ResolvedRef.evaluate(instance, ctx, iloc, kloc.Join("$ref"))
		if refResult != nil {
			result.AddDetail(refResult)
			if !refResult.IsValid() {
				result.AddError(NewEvaluationError("$ref", "ref_mismatch", "Value does not match the reference schema"))
			} else {
				mergeStringMaps(evaluatedProps, props)
				mergeIntMaps(evaluatedItems, items)
			}
		}
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}
	}

	if s.ResolvedDynamicRef != nil {
		target := s.ResolvedDynamicRef
		if _, fragment := splitRef(s.DynamicRef); !isJSONPointer(fragment) && target.DynamicAnchor == fragment && fragment != "" {
			if dynamic := lookupDynamicAnchor(ctx.scope, fragment); dynamic != nil {
				target = dynamic
			}
		}
		dynResult, props, items := target.evaluate(instance, ctx, iloc, kloc.Join("$dynamicRef"))
		if dynResult != nil {
			result.AddDetail(dynResult)
			if !dynResult.IsValid() {
				result.AddError(NewEvaluationError("$dynamicRef", "dynamic_ref_mismatch", "Value does not match the dynamic reference schema"))
			} else {
				mergeStringMaps(evaluatedProps, props)
				mergeIntMaps(evaluatedItems, items)
			}
		}
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}
	}

	// OpenAPI discriminator dispatch replaces oneOf/anyOf branch trials.
	discriminatorHandled := false
	if d.IsOpenAPI() && s.Discriminator != nil && !skipDiscriminator {
		discResult, discError, handled := evaluateDiscriminator(s, instance, ctx, iloc, kloc, evaluatedProps, evaluatedItems)
		discriminatorHandled = handled
		if discResult != nil {
			result.AddDetail(discResult)
		}
		if discError != nil {
			result.AddError(discError)
		}
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}
	}

	if d.HasVocabulary(VocabValidation) {
		if s.Type != nil {
			if err := evaluateType(s, instance); err != nil {
				result.AddError(err)
			}
		}
		if s.Enum != nil {
			if err := evaluateEnum(s, instance); err != nil {
				result.AddError(err)
			}
		}
		if s.Const != nil {
			if err := evaluateConst(s, instance); err != nil {
				result.AddError(err)
			}
		}
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}

		if s.MultipleOf != nil || s.Maximum != nil || s.ExclusiveMaximum != nil || s.Minimum != nil || s.ExclusiveMinimum != nil {
			for _, err := range evaluateNumeric(s, instance) {
				result.AddError(err)
			}
		}
		if s.MaxLength != nil {
			if err := evaluateMaxLength(s, instance); err != nil {
				result.AddError(err)
			}
		}
		if s.MinLength != nil {
			if err := evaluateMinLength(s, instance); err != nil {
				result.AddError(err)
			}
		}
		if s.Pattern != nil {
			if err := evaluatePattern(s, instance); err != nil {
				result.AddError(err)
			}
		}
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}
	}

	if d.HasVocabulary(VocabApplicator) {
		if s.AllOf != nil {
			results, err := evaluateAllOf(s, instance, ctx, iloc, kloc, evaluatedProps, evaluatedItems)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			if err != nil {
				result.AddError(err)
			}
		}
		if s.AnyOf != nil && !discriminatorHandled {
			results, err := evaluateAnyOf(s, instance, ctx, iloc, kloc, evaluatedProps, evaluatedItems)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			if err != nil {
				result.AddError(err)
			}
		}
		if s.OneOf != nil && !discriminatorHandled {
			results, err, multipleMatches := evaluateOneOf(s, instance, ctx, iloc, kloc, evaluatedProps, evaluatedItems)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			if err != nil {
				result.AddError(err)
				result.IgnoreNested = result.IgnoreNested || multipleMatches
			}
		}
		if s.Not != nil {
			notResult, err := evaluateNot(s, instance, ctx, iloc, kloc)
			if notResult != nil {
				result.AddDetail(notResult)
			}
			if err != nil {
				result.AddError(err)
			}
		}
		if s.If != nil || s.Then != nil || s.Else != nil {
			results, err := evaluateConditional(s, instance, ctx, iloc, kloc, result, evaluatedProps, evaluatedItems)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			if err != nil {
				result.AddError(err)
			}
		}
		if s.DependentSchemas != nil {
			results, err := evaluateDependentSchemas(s, instance, ctx, iloc, kloc, evaluatedProps, evaluatedItems)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			if err != nil {
				result.AddError(err)
			}
		}
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}
	}

	if array, ok := instance.([]any); ok {
		s.evaluateArrayKeywords(array, ctx, iloc, kloc, result, evaluatedItems)
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}
	}

	if object, ok := instance.(map[string]any); ok {
		s.evaluateObjectKeywords(object, ctx, iloc, kloc, result, evaluatedProps)
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}
	}

	if s.Format != nil && d.HasVocabulary(VocabFormatAnnotation) {
		if err := evaluateFormat(s, instance); err != nil {
			result.AddError(err)
		} else {
			result.AddAnnotation("format", *s.Format)
		}
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}
	}

	if d.HasVocabulary(VocabContent) && (s.ContentEncoding != nil || s.ContentMediaType != nil || s.ContentSchema != nil) {
		contentResult, err := evaluateContent(s, instance, ctx, iloc, kloc, result)
		if contentResult != nil {
			result.AddDetail(contentResult)
		}
		if err != nil {
			result.AddError(err)
		}
		if bail() {
			return result, evaluatedProps, evaluatedItems
		}
	}

	// Unevaluated keywords run last: they read everything their siblings left.
	if d.HasVocabulary(VocabUnevaluated) {
		if s.UnevaluatedProperties != nil {
			if object, ok := instance.(map[string]any); ok {
				results, err := evaluateUnevaluatedProperties(s, object, ctx, iloc, kloc, result, evaluatedProps)
				for _, sub := range results {
					result.AddDetail(sub)
				}
				if err != nil {
					result.AddError(err)
				}
			}
		}
		if s.UnevaluatedItems != nil {
			if array, ok := instance.([]any); ok {
				results, err := evaluateUnevaluatedItems(s, array, ctx, iloc, kloc, result, evaluatedItems)
				for _, sub := range results {
					result.AddDetail(sub)
				}
				if err != nil {
					result.AddError(err)
				}
			}
		}
	}

	return result, evaluatedProps, evaluatedItems
}

// evaluateArrayKeywords groups the array applicators and bounds.
func (s *Schema) evaluateArrayKeywords(array []any, ctx *evalContext, iloc, kloc *Location, result *EvaluationResult, evaluatedItems map[int]bool) {
	d := s.dialect
	if d.HasVocabulary(VocabApplicator) {
		if len(s.PrefixItems) > 0 {
			results, annotation, err := evaluatePrefixItems(s, array, ctx, iloc, kloc, evaluatedItems)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			result.AddAnnotation("prefixItems", annotation)
			if err != nil {
				result.AddError(err)
			}
		}
		if s.Items != nil {
			results, evaluated, err := evaluateItems(s, array, ctx, iloc, kloc, evaluatedItems)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			if evaluated {
				result.AddAnnotation("items", true)
			}
			if err != nil {
				result.AddError(err)
			}
		}
		if s.Contains != nil {
			// Per-item results stay off the tree: contains failures report the
			// keyword itself, matching the ignore-nested behavior of oneOf.
			_, indices, err := evaluateContains(s, array, ctx, iloc, kloc, evaluatedItems)
			result.AddAnnotation("contains", indices)
			if err != nil {
				result.AddError(err)
			}
		}
	}
	if d.HasVocabulary(VocabValidation) {
		if s.MaxItems != nil {
			if err := evaluateMaxItems(s, array); err != nil {
				result.AddError(err)
			}
		}
		if s.MinItems != nil {
			if err := evaluateMinItems(s, array); err != nil {
				result.AddError(err)
			}
		}
		if s.UniqueItems != nil {
			if err := evaluateUniqueItems(s, array); err != nil {
				result.AddError(err)
			}
		}
	}
}

// evaluateObjectKeywords groups the object applicators and bounds.
func (s *Schema) evaluateObjectKeywords(object map[string]any, ctx *evalContext, iloc, kloc *Location, result *EvaluationResult, evaluatedProps map[string]bool) {
	d := s.dialect
	if d.HasVocabulary(VocabApplicator) {
		if s.Properties != nil {
			results, keys, err := evaluateProperties(s, object, ctx, iloc, kloc, evaluatedProps)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			result.AddAnnotation("properties", keys)
			if err != nil {
				result.AddError(err)
			}
		}
		if s.PatternProperties != nil {
			results, keys, err := evaluatePatternProperties(s, object, ctx, iloc, kloc, evaluatedProps)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			result.AddAnnotation("patternProperties", keys)
			if err != nil {
				result.AddError(err)
			}
		}
		if s.AdditionalProperties != nil {
			results, keys, err := evaluateAdditionalProperties(s, object, ctx, iloc, kloc, evaluatedProps)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			result.AddAnnotation("additionalProperties", keys)
			if err != nil {
				result.AddError(err)
			}
		}
		if s.PropertyNames != nil {
			results, err := evaluatePropertyNames(s, object, ctx, iloc, kloc)
			for _, sub := range results {
				result.AddDetail(sub)
			}
			if err != nil {
				result.AddError(err)
			}
		}
	}
	if d.HasVocabulary(VocabValidation) {
		if s.MaxProperties != nil {
			if err := evaluateMaxProperties(s, object); err != nil {
				result.AddError(err)
			}
		}
		if s.MinProperties != nil {
			if err := evaluateMinProperties(s, object); err != nil {
				result.AddError(err)
			}
		}
		if len(s.Required) > 0 {
			if err := evaluateRequired(s, object, ctx.accessMode); err != nil {
				result.AddError(err)
			}
		}
		if len(s.DependentRequired) > 0 {
			if err := evaluateDependentRequired(s, object); err != nil {
				result.AddError(err)
			}
		}
	}
}

// evaluateBoolean handles the two boolean schemas: true accepts everything and
// marks it evaluated, false rejects everything.
func (s *Schema) evaluateBoolean(instance any, evaluatedProps map[string]bool, evaluatedItems map[int]bool) *EvaluationError {
	if *s.Boolean {
		switch v := instance.(type) {
		case map[string]any:
			for key := range v {
				evaluatedProps[key] = true
			}
		case []any:
			for index := range v {
				evaluatedItems[index] = true
			}
		}
		return nil
	}
	return NewEvaluationError("schema", "false_schema_mismatch", "No values are allowed because the schema is set to 'false'")
}
