package jsonschemer

import "github.com/kaptinlin/go-i18n"

// EvaluationError describes one keyword failure. Message carries {name}
// placeholders interpolated from Params, so localized catalogs can reuse them.
type EvaluationError struct {
	Keyword string         `json:"keyword"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`

	// Details carries structured failure data, such as missing_keys for required.
	Details map[string]any `json:"details,omitempty"`
}

// NewEvaluationError creates an evaluation error.
func NewEvaluationError(keyword string, code string, message string, params ...map[string]any) *EvaluationError {
	e := &EvaluationError{Keyword: keyword, Code: code, Message: message}
	if len(params) > 0 {
		e.Params = params[0]
	}
	return e
}

// WithDetails attaches structured failure data.
func (e *EvaluationError) WithDetails(details map[string]any) *EvaluationError {
	e.Details = details
	return e
}

func (e *EvaluationError) Error() string {
	return replace(e.Message, e.Params)
}

// Localize renders the error through a message catalog.
func (e *EvaluationError) Localize(localizer *i18n.Localizer) string {
	if localizer != nil {
		return localizer.Get(e.Code, i18n.Vars(e.Params))
	}
	return e.Error()
}

// EvaluationResult is one node of the result tree built by Validate.
type EvaluationResult struct {
	schema   *Schema
	instance any

	instanceLocation *Location
	keywordLocation  *Location

	Valid       bool
	Errors      map[string]*EvaluationError
	Annotations map[string]any
	Details     []*EvaluationResult

	// IgnoreNested suppresses descent into nested results in classic output;
	// oneOf sets it when several branches match. contains does not set it: its
	// per-item results are never attached to the tree.
	IgnoreNested bool
}

func newEvaluationResult(schema *Schema, instance any, iloc, kloc *Location) *EvaluationResult {
	r := &EvaluationResult{
		schema:           schema,
		instance:         instance,
		instanceLocation: iloc,
		keywordLocation:  kloc,
		Valid:            true,
	}
	r.collectMetaAnnotations()
	return r
}

// Schema returns the schema node this result was produced by.
func (r *EvaluationResult) Schema() *Schema { return r.schema }

// Instance returns the instance fragment this result covers.
func (r *EvaluationResult) Instance() any { return r.instance }

// InstanceLocation returns the pointer into the instance.
func (r *EvaluationResult) InstanceLocation() string { return r.instanceLocation.String() }

// KeywordLocation returns the evaluation-path pointer into the schema.
func (r *EvaluationResult) KeywordLocation() string { return r.keywordLocation.String() }

// AbsoluteKeywordLocation returns the schema's base URI plus resource pointer.
func (r *EvaluationResult) AbsoluteKeywordLocation() string {
	return r.schema.AbsoluteKeywordLocation()
}

// IsValid reports the validity of this subtree.
func (r *EvaluationResult) IsValid() bool { return r.Valid }

// AddError records a keyword failure and flips validity.
func (r *EvaluationResult) AddError(err *EvaluationError) *EvaluationResult {
	if r.Errors == nil {
		r.Errors = make(map[string]*EvaluationError)
	}
	r.Valid = false
	r.Errors[err.Keyword] = err
	return r
}

// AddDetail attaches a nested result.
func (r *EvaluationResult) AddDetail(detail *EvaluationResult) *EvaluationResult {
	r.Details = append(r.Details, detail)
	return r
}

// AddAnnotation records a keyword annotation.
func (r *EvaluationResult) AddAnnotation(keyword string, annotation any) *EvaluationResult {
	if r.Annotations == nil {
		r.Annotations = make(map[string]any)
	}
	r.Annotations[keyword] = annotation
	return r
}

// collectMetaAnnotations surfaces the meta-data vocabulary keywords.
func (r *EvaluationResult) collectMetaAnnotations() {
	s := r.schema
	if s == nil || !s.dialect.HasVocabulary(VocabMetaData) {
		return
	}
	if s.Title != nil {
		r.AddAnnotation("title", *s.Title)
	}
	if s.Description != nil {
		r.AddAnnotation("description", *s.Description)
	}
	if s.HasDefault {
		r.AddAnnotation("default", s.Default)
	}
	if s.Deprecated != nil {
		r.AddAnnotation("deprecated", *s.Deprecated)
	}
	if s.ReadOnly != nil {
		r.AddAnnotation("readOnly", *s.ReadOnly)
	}
	if s.WriteOnly != nil {
		r.AddAnnotation("writeOnly", *s.WriteOnly)
	}
	if s.Examples != nil {
		r.AddAnnotation("examples", s.Examples)
	}
}

// DynamicScope is the stack of schema resources active during one validation.
// $dynamicRef searches it from outermost to innermost.
type DynamicScope struct {
	schemas []*Schema
}

// NewDynamicScope creates an empty dynamic scope.
func NewDynamicScope() *DynamicScope {
	return &DynamicScope{schemas: make([]*Schema, 0, 8)}
}

// Push adds a schema on schema entry.
func (ds *DynamicScope) Push(schema *Schema) {
	ds.schemas = append(ds.schemas, schema)
}

// Pop removes the top schema on schema exit.
func (ds *DynamicScope) Pop() *Schema {
	if len(ds.schemas) == 0 {
		return nil
	}
	last := len(ds.schemas) - 1
	schema := ds.schemas[last]
	ds.schemas = ds.schemas[:last]
	return schema
}

// Peek returns the top schema without removing it.
func (ds *DynamicScope) Peek() *Schema {
	if len(ds.schemas) == 0 {
		return nil
	}
	return ds.schemas[len(ds.schemas)-1]
}

// evalContext is owned by a single top-level Validate call.
type evalContext struct {
	scope        *DynamicScope
	shortCircuit bool
	accessMode   AccessMode

	// skipDiscriminatorFor suppresses discriminator dispatch for exactly one
	// re-entry of the named schema, breaking the allOf/$ref recursion back
	// into a dispatching parent.
	skipDiscriminatorFor *Schema
}

func newEvalContext(accessMode AccessMode) *evalContext {
	return &evalContext{scope: NewDynamicScope(), accessMode: accessMode}
}
