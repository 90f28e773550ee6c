package jsonschemer

// evaluateContent handles contentEncoding, contentMediaType and contentSchema.
// According to the JSON Schema Draft 2020-12 these are annotations: the decoded
// and parsed values are surfaced on the parent result, and failures only fail
// the instance when the compiler enables content validation.
//
// Reference: https://json-schema.org/draft/2020-12/json-schema-validation#name-a-vocabulary-for-the-conten
func evaluateContent(schema *Schema, instance any, ctx *evalContext, iloc, kloc *Location, parent *EvaluationResult) (*EvaluationResult, *EvaluationError) {
	value, ok := instance.(string)
	if !ok {
		return nil, nil
	}
	compiler := schema.GetCompiler()
	assert := compiler.contentValidation

	decoded := []byte(value)
	if schema.ContentEncoding != nil {
		parent.AddAnnotation("contentEncoding", *schema.ContentEncoding)
		decoder, registered := compiler.Decoders[*schema.ContentEncoding]
		if !registered {
			return nil, nil
		}
		var err error
		decoded, err = decoder(value)
		if err != nil {
			if assert {
				return nil, NewEvaluationError("contentEncoding", "content_encoding_mismatch", "Value could not be decoded as {encoding}", map[string]any{
					"encoding": *schema.ContentEncoding,
				})
			}
			return nil, nil
		}
	}

	var parsed any = string(decoded)
	if schema.ContentMediaType != nil {
		parent.AddAnnotation("contentMediaType", *schema.ContentMediaType)
		unmarshal, registered := compiler.MediaTypes[*schema.ContentMediaType]
		if !registered {
			return nil, nil
		}
		var err error
		parsed, err = unmarshal(decoded)
		if err != nil {
			if assert {
				return nil, NewEvaluationError("contentMediaType", "content_media_type_mismatch", "Value could not be parsed as {media_type}", map[string]any{
					"media_type": *schema.ContentMediaType,
				})
			}
			return nil, nil
		}
		parent.AddAnnotation("contentSchema", parsed)
	}

	if schema.ContentSchema != nil && schema.ContentMediaType != nil {
		result, _, _ := schema.ContentSchema.evaluate(parsed, ctx, iloc, kloc.Join("contentSchema"))
		if result != nil && !result.IsValid() && assert {
			return result, NewEvaluationError("contentSchema", "content_schema_mismatch", "Decoded content does not match the schema")
		}
		if assert {
			return result, nil
		}
	}
	return nil, nil
}
