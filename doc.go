// Package jsonschemer validates JSON documents against JSON Schema Draft
// 2020-12 and the OpenAPI 3.1 schema dialect.
//
// A schema document compiles once into an immutable Schema that is safe to
// share across goroutines:
//
//	compiler := jsonschemer.NewCompiler()
//	schema, err := compiler.Compile([]byte(`{"type":"integer","minimum":0}`))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !schema.IsValid(int64(42)) {
//		result := schema.Validate(int64(-1))
//		classic := result.ToClassic()
//		fmt.Println(classic.Errors[0].Error)
//	}
//
// Validation produces a result tree shaped into any of the flag, basic,
// detailed, verbose or classic output formats. References ($ref, $anchor,
// $dynamicRef, $dynamicAnchor) resolve across documents through pluggable
// scheme loaders, with the draft meta-schemas embedded so nothing standard
// requires the network. Formats are annotations by default and assertions on
// request; regex patterns compile under a native or ECMA-262 dialect; x-error
// values override reported messages.
package jsonschemer
