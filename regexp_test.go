package jsonschemer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcmaDigitClassIsASCIIOnly(t *testing.T) {
	re, err := ecmaRegexpResolver(`^\d+$`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("123"))
	assert.False(t, re.MatchString("١٢٣"), "Arabic-Indic digits are not ECMA \\d")
}

func TestEcmaWordAndSpaceClasses(t *testing.T) {
	word, err := ecmaRegexpResolver(`^\w+$`)
	require.NoError(t, err)
	assert.True(t, word.MatchString("ab_9"))
	assert.False(t, word.MatchString("héllo"))

	space, err := ecmaRegexpResolver(`^\s$`)
	require.NoError(t, err)
	assert.True(t, space.MatchString(" "))
	assert.True(t, space.MatchString(" "), "NBSP is ECMA whitespace")
	assert.True(t, space.MatchString("　"))
	assert.False(t, space.MatchString("x"))

	nonSpace, err := ecmaRegexpResolver(`^\S$`)
	require.NoError(t, err)
	assert.True(t, nonSpace.MatchString("x"))
	assert.False(t, nonSpace.MatchString(" "))
}

func TestEcmaDollarAnchorsEndOfString(t *testing.T) {
	re, err := ecmaRegexpResolver(`end$`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("the end"))
	assert.False(t, re.MatchString("the end\n"), "no newline tolerance")
}

func TestEcmaDollarInsideClassIsLiteral(t *testing.T) {
	re, err := ecmaRegexpResolver(`^[$]+$`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("$$"))
}

func TestEcmaUnicodePropertyLongNames(t *testing.T) {
	re, err := ecmaRegexpResolver(`^\p{Letter}+$`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("héllo"))
	assert.False(t, re.MatchString("a1"))

	re, err = ecmaRegexpResolver(`^\p{lowercase letter}+$`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("abc"))
	assert.False(t, re.MatchString("ABC"))

	re, err = ecmaRegexpResolver(`^\p{Decimal-Number}+$`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("٣"), "\\p{Nd} spans all scripts")
}

func TestEcmaControlEscape(t *testing.T) {
	re, err := ecmaRegexpResolver(`\cJ`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("\n"))

	re, err = ecmaRegexpResolver(`\cj`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("\n"), "control letters are uppercased")
}

func TestEcmaRejectsInvalidEscapes(t *testing.T) {
	_, err := ecmaRegexpResolver(`\a`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEcmaRegexp)
}

func TestNativeDialectPassesThrough(t *testing.T) {
	re, err := nativeRegexpResolver(`^\d+$`)
	require.NoError(t, err)
	assert.True(t, re.MatchString("42"))

	_, err = nativeRegexpResolver(`(unclosed`)
	assert.ErrorIs(t, err, ErrInvalidRegexpResolution)
}

func TestRegexpCacheReuse(t *testing.T) {
	cache := newRegexpCache()
	first, err := cache.resolve("^a+$", nativeRegexpResolver)
	require.NoError(t, err)
	second, err := cache.resolve("^a+$", nativeRegexpResolver)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestCompilerEcmaDialect(t *testing.T) {
	compiler := NewCompiler().SetRegexpResolver(RegexpDialectEcma)
	schema, err := compiler.Compile([]byte(`{"pattern":"^\\d+$"}`))
	require.NoError(t, err)
	assert.True(t, schema.IsValid("123"))
	assert.False(t, schema.IsValid("١٢٣"))

	_, err = compiler.Compile([]byte(`{"pattern":"\\a"}`))
	assert.ErrorIs(t, err, ErrInvalidEcmaRegexp)
}

func TestInvalidPatternFailsCompile(t *testing.T) {
	_, err := NewCompiler().Compile([]byte(`{"patternProperties":{"(bad":{}}}`))
	assert.ErrorIs(t, err, ErrInvalidRegexpResolution)
}
