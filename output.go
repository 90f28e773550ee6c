package jsonschemer

import "strings"

// Output format names accepted by ValidateOutput.
const (
	OutputFlag     = "flag"
	OutputBasic    = "basic"
	OutputDetailed = "detailed"
	OutputVerbose  = "verbose"
	OutputClassic  = "classic"
)

// Flag is the minimal output shape.
type Flag struct {
	Valid bool `json:"valid"`
}

// OutputUnit is one entry of the basic, detailed and verbose shapes.
type OutputUnit struct {
	Valid                   bool           `json:"valid"`
	KeywordLocation         string         `json:"keywordLocation"`
	AbsoluteKeywordLocation string         `json:"absoluteKeywordLocation,omitempty"`
	InstanceLocation        string         `json:"instanceLocation"`
	Error                   string         `json:"error,omitempty"`
	Annotations             map[string]any `json:"annotations,omitempty"`
	Details                 []*OutputUnit  `json:"details,omitempty"`
}

// Output is the top-level object of the basic, detailed and verbose shapes.
type Output struct {
	Valid                   bool           `json:"valid"`
	KeywordLocation         string         `json:"keywordLocation"`
	AbsoluteKeywordLocation string         `json:"absoluteKeywordLocation,omitempty"`
	InstanceLocation        string         `json:"instanceLocation"`
	Annotations             map[string]any `json:"annotations,omitempty"`
	Errors                  []*OutputUnit  `json:"errors,omitempty"`
	Details                 []*OutputUnit  `json:"details,omitempty"`
}

// ClassicError is one entry of the classic output shape.
type ClassicError struct {
	Data          any            `json:"data"`
	DataPointer   string         `json:"data_pointer"`
	Schema        any            `json:"schema"`
	SchemaPointer string         `json:"schema_pointer"`
	RootSchema    any            `json:"root_schema"`
	Type          string         `json:"type"`
	Error         string         `json:"error"`
	Details       map[string]any `json:"details,omitempty"`
}

// ClassicResult is the classic output shape.
type ClassicResult struct {
	Valid  bool            `json:"valid"`
	Errors []*ClassicError `json:"errors"`
}

// ValidateOutput validates and shapes the result as flag, basic, detailed,
// verbose or classic. The flag shape short-circuits on the first failure.
func (s *Schema) ValidateOutput(instance any, outputFormat string) (any, error) {
	switch outputFormat {
	case OutputFlag:
		return &Flag{Valid: s.IsValid(instance)}, nil
	case OutputBasic:
		return s.Validate(instance).ToBasic(), nil
	case OutputDetailed:
		return s.Validate(instance).ToDetailed(), nil
	case OutputVerbose:
		return s.Validate(instance).ToVerbose(), nil
	case OutputClassic:
		return s.Validate(instance).ToClassic(), nil
	default:
		return nil, ErrUnknownOutputFormat
	}
}

// ToFlag reduces the result tree to validity only.
func (r *EvaluationResult) ToFlag() *Flag {
	return &Flag{Valid: r.Valid}
}

// ToBasic flattens the result tree into the list of deepest leaf units sharing
// the root's validity. Structural errors whose invalid children already report
// the cause are left out; valid trees list every node carrying annotations.
func (r *EvaluationResult) ToBasic() *Output {
	out := &Output{
		Valid:                   r.Valid,
		KeywordLocation:         r.KeywordLocation(),
		AbsoluteKeywordLocation: r.AbsoluteKeywordLocation(),
		InstanceLocation:        r.InstanceLocation(),
		Annotations:             r.Annotations,
	}
	var units []*OutputUnit
	r.collectBasicUnits(&units, r.Valid)
	if r.Valid {
		out.Details = units
	} else {
		out.Errors = units
	}
	return out
}

func (r *EvaluationResult) collectBasicUnits(units *[]*OutputUnit, rootValid bool) {
	hasInvalidChild := false
	for _, detail := range r.Details {
		if !detail.Valid {
			hasInvalidChild = true
			break
		}
	}
	for _, keyword := range sortedKeys(r.Errors) {
		if rootValid {
			break
		}
		if hasInvalidChild && isStructuralKeyword(keyword) {
			continue
		}
		err := r.Errors[keyword]
		*units = append(*units, &OutputUnit{
			Valid:                   false,
			KeywordLocation:         r.KeywordLocation() + "/" + escapeToken(keyword),
			AbsoluteKeywordLocation: r.AbsoluteKeywordLocation(),
			InstanceLocation:        r.InstanceLocation(),
			Error:                   resolveErrorMessage(r, err),
		})
	}
	if rootValid && len(r.Annotations) > 0 {
		*units = append(*units, &OutputUnit{
			Valid:                   true,
			KeywordLocation:         r.KeywordLocation(),
			AbsoluteKeywordLocation: r.AbsoluteKeywordLocation(),
			InstanceLocation:        r.InstanceLocation(),
			Annotations:             r.Annotations,
		})
	}
	for _, detail := range r.Details {
		if detail.Valid == rootValid {
			detail.collectBasicUnits(units, rootValid)
		}
	}
}

// ToDetailed prunes the result tree: branches of the opposite validity drop
// out, and chains with a single surviving child collapse.
func (r *EvaluationResult) ToDetailed() *Output {
	unit := r.toDetailedUnit(r.Valid)
	out := &Output{
		Valid:            r.Valid,
		KeywordLocation:  r.KeywordLocation(),
		InstanceLocation: r.InstanceLocation(),
	}
	if unit != nil {
		out.AbsoluteKeywordLocation = unit.AbsoluteKeywordLocation
		out.Annotations = unit.Annotations
		if r.Valid {
			out.Details = unit.Details
		} else {
			if unit.Error != "" && len(unit.Details) == 0 {
				out.Errors = []*OutputUnit{unit}
			} else {
				out.Errors = unit.Details
			}
		}
	}
	return out
}

func (r *EvaluationResult) toDetailedUnit(rootValid bool) *OutputUnit {
	unit := &OutputUnit{
		Valid:                   r.Valid,
		KeywordLocation:         r.KeywordLocation(),
		AbsoluteKeywordLocation: r.AbsoluteKeywordLocation(),
		InstanceLocation:        r.InstanceLocation(),
	}

	var children []*OutputUnit
	for _, detail := range r.Details {
		if detail.Valid != rootValid {
			continue
		}
		child := detail.toDetailedUnit(rootValid)
		if child != nil {
			children = append(children, child)
		}
	}

	if rootValid {
		unit.Annotations = r.Annotations
	} else {
		// Structural errors restate what the surviving children already say;
		// dropping them here is what lets single-child chains collapse.
		var messages []string
		for _, keyword := range sortedKeys(r.Errors) {
			if len(children) > 0 && isStructuralKeyword(keyword) {
				continue
			}
			messages = append(messages, resolveErrorMessage(r, r.Errors[keyword]))
		}
		unit.Error = strings.Join(messages, "; ")
	}

	// Collapse chains with a single surviving child and nothing of their own.
	if len(children) == 1 && unit.Error == "" && len(unit.Annotations) == 0 {
		return children[0]
	}
	unit.Details = children
	return unit
}

// ToVerbose mirrors the full result structure.
func (r *EvaluationResult) ToVerbose() *Output {
	unit := r.toVerboseUnit()
	return &Output{
		Valid:                   unit.Valid,
		KeywordLocation:         unit.KeywordLocation,
		AbsoluteKeywordLocation: unit.AbsoluteKeywordLocation,
		InstanceLocation:        unit.InstanceLocation,
		Annotations:             unit.Annotations,
		Details:                 unit.Details,
	}
}

func (r *EvaluationResult) toVerboseUnit() *OutputUnit {
	unit := &OutputUnit{
		Valid:                   r.Valid,
		KeywordLocation:         r.KeywordLocation(),
		AbsoluteKeywordLocation: r.AbsoluteKeywordLocation(),
		InstanceLocation:        r.InstanceLocation(),
		Annotations:             r.Annotations,
	}
	var messages []string
	for _, keyword := range sortedKeys(r.Errors) {
		messages = append(messages, resolveErrorMessage(r, r.Errors[keyword]))
	}
	unit.Error = strings.Join(messages, "; ")
	for _, detail := range r.Details {
		unit.Details = append(unit.Details, detail.toVerboseUnit())
	}
	return unit
}

// ToClassic flattens the result tree into the classic error list: descent goes
// into invalid children unless ignoreNested, and a node then emits its own
// errors, skipping structural ones once a descendant contributed an entry. A
// node that adds nothing either way reports itself as a "schema" entry.
func (r *EvaluationResult) ToClassic() *ClassicResult {
	result := &ClassicResult{Valid: r.Valid, Errors: []*ClassicError{}}
	if !r.Valid {
		r.collectClassicErrors(&result.Errors)
	}
	return result
}

func (r *EvaluationResult) collectClassicErrors(out *[]*ClassicError) {
	before := len(*out)
	if !r.IgnoreNested {
		for _, detail := range r.Details {
			if !detail.Valid {
				detail.collectClassicErrors(out)
			}
		}
	}
	descended := len(*out) > before

	for _, keyword := range sortedKeys(r.Errors) {
		err := r.Errors[keyword]
		// Structural errors only restate what nested entries already explain.
		if descended && isStructuralKeyword(keyword) {
			continue
		}
		*out = append(*out, &ClassicError{
			Data:          r.instance,
			DataPointer:   r.InstanceLocation(),
			Schema:        r.schema.value,
			SchemaPointer: r.schema.SchemaPointer(),
			RootSchema:    r.schema.GetRoot().value,
			Type:          classicTag(keyword, err),
			Error:         resolveErrorMessage(r, err),
			Details:       err.Details,
		})
	}

	if len(*out) == before {
		// Invalid with no local errors: nested failures were suppressed, report
		// this unit itself.
		*out = append(*out, &ClassicError{
			Data:          r.instance,
			DataPointer:   r.InstanceLocation(),
			Schema:        r.schema.value,
			SchemaPointer: r.schema.SchemaPointer(),
			RootSchema:    r.schema.GetRoot().value,
			Type:          "schema",
			Error:         "value does not match the schema",
		})
	}
}

// isStructuralKeyword reports keywords whose classic entries duplicate their
// nested results.
func isStructuralKeyword(keyword string) bool {
	switch keyword {
	case "properties", "patternProperties", "additionalProperties",
		"items", "prefixItems", "unevaluatedItems", "unevaluatedProperties",
		"allOf", "anyOf", "oneOf", "dependentSchemas", "then", "else",
		"$ref", "$dynamicRef", "propertyNames", "discriminator":
		return true
	}
	return false
}

// classicTag produces the short tag of a classic entry: the expected type for
// the type keyword, the lowercased keyword name otherwise.
func classicTag(keyword string, err *EvaluationError) string {
	if keyword == "type" {
		if expected, ok := err.Params["expected"].(string); ok {
			return expected
		}
		return "type"
	}
	return strings.ToLower(keyword)
}
