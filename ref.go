package jsonschemer

import (
	"fmt"
	"net/url"
	"strconv"
)

// resolveReferences walks the compiled tree and binds every $ref and
// $dynamicRef to its target. Resolution failures surface here, at compile time;
// the only references validation resolves are discriminator targets.
func (s *Schema) resolveReferences() error {
	if s.Ref != "" && s.ResolvedRef == nil {
		target, err := s.resolveRef(s.Ref)
		if err != nil {
			return err
		}
		s.ResolvedRef = target
	}
	if s.DynamicRef != "" && s.ResolvedDynamicRef == nil {
		// The lexical target is the compile-time binding; the dynamic-scope walk
		// happens per validation.
		target, err := s.resolveRef(s.DynamicRef)
		if err != nil {
			return err
		}
		s.ResolvedDynamicRef = target
	}

	var firstErr error
	s.eachSubschema(func(sub *Schema) {
		if firstErr == nil {
			firstErr = sub.resolveReferences()
		}
	})
	return firstErr
}

// resolveRef resolves a reference URI to a schema. Lookup precedence: the
// root's lexical table, the table with the fragment emptied, then the
// compiler's GetSchema, which consults the embedded meta-schema registry
// before the scheme loaders; a loader is never asked for a URI the registry
// holds.
func (s *Schema) resolveRef(ref string) (*Schema, error) {
	if ref == "#" {
		return s.resourceRootSchema(), nil
	}

	uri := resolveURI(s.baseURI, ref)
	base, fragment := splitRef(uri)

	root := s.GetRoot()
	if target, ok := root.lexicalResources[uri]; ok {
		return target, nil
	}
	if target, ok := root.lexicalResources[base]; ok {
		if fragment == "" {
			return target, nil
		}
		return target.resolveFragment(fragment)
	}

	// Not lexical to this document: fetch and consult the compiled result.
	target, err := s.GetCompiler().GetSchema(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRef, ref)
	}
	return target, nil
}

// resourceRootSchema returns the nearest enclosing resource root, the target
// of a bare "#".
func (s *Schema) resourceRootSchema() *Schema {
	for node := s; node != nil; node = node.parent {
		if node.isResourceRoot || node.parent == nil {
			return node
		}
	}
	return s
}

// resolveFragment resolves an anchor or JSON Pointer fragment within this
// schema's resource.
func (s *Schema) resolveFragment(fragment string) (*Schema, error) {
	if decoded, err := url.PathUnescape(fragment); err == nil {
		fragment = decoded
	}
	if isJSONPointer(fragment) {
		return s.resolveJSONPointer(fragment)
	}
	root := s.GetRoot()
	if target, ok := root.lexicalResources[withFragment(s.baseURI, fragment)]; ok {
		return target, nil
	}
	return nil, fmt.Errorf("%w: #%s", ErrUnknownRef, fragment)
}

// resolveJSONPointer navigates a pointer through keyword projections: applicator
// arrays by index, property maps by key, single subschemas by keyword name, and
// unknown-keyword containers generically.
func (s *Schema) resolveJSONPointer(pointer string) (*Schema, error) {
	if pointer == "" || pointer == "/" {
		return s, nil
	}

	current := s
	tokens := parsePointer(pointer)
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		switch token {
		case "properties", "patternProperties", "dependentSchemas", "$defs", "definitions":
			m := current.schemaMapFor(token)
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("%w: %s ends at %s", ErrInvalidRefPointer, pointer, token)
			}
			i++
			next, ok := m[tokens[i]]
			if !ok {
				return current.resolveExtraPointer(tokens[i-1:], pointer)
			}
			current = next
		case "prefixItems", "allOf", "anyOf", "oneOf":
			list := current.schemaListFor(token)
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("%w: %s ends at %s", ErrInvalidRefPointer, pointer, token)
			}
			i++
			index, err := strconv.Atoi(tokens[i])
			if err != nil || index < 0 || index >= len(list) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidRefPointer, pointer)
			}
			current = list[index]
		case "items", "contains", "additionalProperties", "propertyNames",
			"not", "if", "then", "else", "unevaluatedItems", "unevaluatedProperties", "contentSchema":
			next := current.singleSchemaFor(token)
			if next == nil {
				return nil, fmt.Errorf("%w: %s", ErrInvalidRefPointer, pointer)
			}
			current = next
		default:
			return current.resolveExtraPointer(tokens[i:], pointer)
		}
	}
	return current, nil
}

// resolveExtraPointer walks raw unknown-keyword values generically and compiles
// the landing value as a schema bound to the current node.
func (s *Schema) resolveExtraPointer(tokens []string, pointer string) (*Schema, error) {
	obj, ok := s.value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRefPointer, pointer)
	}

	var current any = obj
	for _, token := range tokens {
		switch v := current.(type) {
		case map[string]any:
			next, exists := v[token]
			if !exists {
				return nil, fmt.Errorf("%w: %s", ErrInvalidRefPointer, pointer)
			}
			current = next
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(v) {
				return nil, fmt.Errorf("%w: %s", ErrInvalidRefPointer, pointer)
			}
			current = v[index]
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidRefPointer, pointer)
		}
	}

	switch current.(type) {
	case map[string]any, bool:
	default:
		return nil, fmt.Errorf("%w: %s does not identify a schema", ErrInvalidRefPointer, pointer)
	}

	key := joinTokens(tokens)
	s.extrasMu.Lock()
	if compiled, ok := s.extrasCompiled[key]; ok {
		s.extrasMu.Unlock()
		return compiled, nil
	}
	compiled, err := parseSchema(s.GetCompiler(), current, s, s.baseURI,
		s.schemaPointer+key, s.resourcePointer+key)
	if err != nil {
		s.extrasMu.Unlock()
		return nil, err
	}
	if s.extrasCompiled == nil {
		s.extrasCompiled = make(map[string]*Schema)
	}
	s.extrasCompiled[key] = compiled
	// Reference resolution can navigate back into this container; the cache
	// entry above makes that re-entry terminate.
	s.extrasMu.Unlock()

	if err := compiled.resolveReferences(); err != nil {
		return nil, err
	}
	return compiled, nil
}

func joinTokens(tokens []string) string {
	out := ""
	for _, t := range tokens {
		out += "/" + escapeToken(t)
	}
	return out
}

func (s *Schema) schemaMapFor(keyword string) map[string]*Schema {
	switch keyword {
	case "properties":
		return s.Properties
	case "patternProperties":
		return s.PatternProperties
	case "dependentSchemas":
		return s.DependentSchemas
	case "$defs", "definitions":
		return s.Defs
	}
	return nil
}

func (s *Schema) schemaListFor(keyword string) []*Schema {
	switch keyword {
	case "prefixItems":
		return s.PrefixItems
	case "allOf":
		return s.AllOf
	case "anyOf":
		return s.AnyOf
	case "oneOf":
		return s.OneOf
	}
	return nil
}

func (s *Schema) singleSchemaFor(keyword string) *Schema {
	switch keyword {
	case "items":
		return s.Items
	case "contains":
		return s.Contains
	case "additionalProperties":
		return s.AdditionalProperties
	case "propertyNames":
		return s.PropertyNames
	case "not":
		return s.Not
	case "if":
		return s.If
	case "then":
		return s.Then
	case "else":
		return s.Else
	case "unevaluatedItems":
		return s.UnevaluatedItems
	case "unevaluatedProperties":
		return s.UnevaluatedProperties
	case "contentSchema":
		return s.ContentSchema
	}
	return nil
}

// lookupDynamicAnchor walks the dynamic scope from outermost to innermost and
// returns the first resource whose dynamic table carries the anchor.
func lookupDynamicAnchor(scope *DynamicScope, anchor string) *Schema {
	for _, ancestor := range scope.schemas {
		root := ancestor.GetRoot()
		if target, ok := root.dynamicResources[withFragment(ancestor.baseURI, anchor)]; ok {
			return target
		}
	}
	return nil
}

// Bundle produces a single self-contained schema document: every resource
// reached through external references is embedded under $defs keyed by its
// absolute URI, with its $id intact so references keep resolving lexically.
func (s *Schema) Bundle() (map[string]any, error) {
	rootObj, ok := s.value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: boolean schemas cannot be bundled", ErrInvalidSchemaType)
	}

	bundled := make(map[string]any, len(rootObj)+1)
	for k, v := range rootObj {
		bundled[k] = v
	}

	external := map[string]*Schema{}
	collectExternalResources(s, s.GetRoot(), external, map[*Schema]bool{})
	if len(external) == 0 {
		return bundled, nil
	}

	defs := map[string]any{}
	if existing, ok := bundled["$defs"].(map[string]any); ok {
		for k, v := range existing {
			defs[k] = v
		}
	}
	for uri, resource := range external {
		obj, ok := resource.value.(map[string]any)
		if !ok {
			defs[uri] = resource.value
			continue
		}
		copied := make(map[string]any, len(obj)+1)
		for k, v := range obj {
			copied[k] = v
		}
		copied["$id"] = uri
		defs[uri] = copied
	}
	bundled["$defs"] = defs
	return bundled, nil
}

func collectExternalResources(s *Schema, root *Schema, external map[string]*Schema, seen map[*Schema]bool) {
	if s == nil || seen[s] {
		return
	}
	seen[s] = true

	for _, target := range []*Schema{s.ResolvedRef, s.ResolvedDynamicRef} {
		if target == nil {
			continue
		}
		if target.GetRoot() != root {
			resource := target.resourceRootSchema()
			if _, tracked := external[resource.baseURI]; !tracked {
				external[resource.baseURI] = resource
				collectExternalResources(resource, resource.GetRoot(), external, seen)
			}
		} else {
			collectExternalResources(target, root, external, seen)
		}
	}

	s.eachSubschema(func(sub *Schema) {
		collectExternalResources(sub, root, external, seen)
	})
}
