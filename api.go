package jsonschemer

import "github.com/kaptinlin/go-i18n"

// Compile compiles a schema document with the default compiler.
func Compile(data []byte, uris ...string) (*Schema, error) {
	return defaultCompiler.Compile(data, uris...)
}

// CompileString compiles a schema from a JSON string with the default compiler.
func CompileString(source string, uris ...string) (*Schema, error) {
	return defaultCompiler.Compile([]byte(source), uris...)
}

// CompileValue compiles an in-memory schema value with the default compiler.
func CompileValue(value any, uris ...string) (*Schema, error) {
	return defaultCompiler.CompileValue(value, uris...)
}

// CompileFile compiles a schema file with the default compiler; the file's
// path becomes its file:// base URI.
func CompileFile(path string) (*Schema, error) {
	return defaultCompiler.CompileFile(path)
}

// GetDetailedErrors collects the leaf error messages of the result tree keyed
// by instance location. Pass a localizer for translated messages.
func (r *EvaluationResult) GetDetailedErrors(localizer ...*i18n.Localizer) map[string]string {
	var loc *i18n.Localizer
	if len(localizer) > 0 {
		loc = localizer[0]
	}
	collected := make(map[string]string)
	r.collectDetailedErrors(collected, loc)
	return collected
}

func (r *EvaluationResult) collectDetailedErrors(collected map[string]string, localizer *i18n.Localizer) {
	hasInvalidChild := false
	for _, detail := range r.Details {
		if !detail.Valid {
			hasInvalidChild = true
			detail.collectDetailedErrors(collected, localizer)
		}
	}
	if hasInvalidChild {
		return
	}
	for _, keyword := range sortedKeys(r.Errors) {
		err := r.Errors[keyword]
		if localizer != nil {
			collected[r.InstanceLocation()] = err.Localize(localizer)
		} else {
			collected[r.InstanceLocation()] = resolveErrorMessage(r, err)
		}
	}
}
