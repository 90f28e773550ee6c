package jsonschemer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateFormat(t *testing.T) {
	assert.True(t, IsDate("2023-04-28"))
	assert.True(t, IsDate("2024-02-29"))
	assert.False(t, IsDate("2023-02-29"))
	assert.False(t, IsDate("1900-02-29"))
	assert.True(t, IsDate("2000-02-29"))
	assert.False(t, IsDate("2023-13-01"))
	assert.False(t, IsDate("2023-00-10"))
	assert.False(t, IsDate("2023-4-28"))
	assert.True(t, IsDate(42), "non-strings always pass")
}

func TestTimeFormat(t *testing.T) {
	assert.True(t, IsTime("12:30:45Z"))
	assert.True(t, IsTime("12:30:45.123z"))
	assert.True(t, IsTime("12:30:45+05:30"))
	assert.False(t, IsTime("12:30:45"))
	assert.False(t, IsTime("24:00:00Z"))
	assert.False(t, IsTime("12:60:00Z"))

	// A leap second only exists at 23:59:60 UTC.
	assert.True(t, IsTime("23:59:60Z"))
	assert.False(t, IsTime("12:59:60Z"))
	assert.True(t, IsTime("15:59:60-08:00"))
	assert.False(t, IsTime("15:59:60-07:00"))
}

func TestDateTimeFormat(t *testing.T) {
	assert.True(t, IsDateTime("2023-04-28T12:30:45Z"))
	assert.True(t, IsDateTime("2023-04-28t12:30:45+01:00"))
	assert.False(t, IsDateTime("2023-04-28 12:30:45Z"))
	assert.False(t, IsDateTime("2023-04-28"))
}

func TestDurationFormat(t *testing.T) {
	assert.True(t, IsDuration("P1Y2M3DT4H5M6S"))
	assert.True(t, IsDuration("PT1S"))
	assert.True(t, IsDuration("P4W"))
	assert.False(t, IsDuration("P4W1D"), "weeks cannot combine with other units")
	assert.False(t, IsDuration("P"))
	assert.False(t, IsDuration("PT"))
	assert.False(t, IsDuration("P1S"), "seconds belong after T")
	assert.False(t, IsDuration("1Y"))
}

func TestEmailFormat(t *testing.T) {
	assert.True(t, IsEmail("user@example.com"))
	assert.True(t, IsEmail(`"quoted local"@example.com`))
	assert.True(t, IsEmail("user@[192.168.0.1]"))
	assert.True(t, IsEmail("user@[IPv6:::1]"))
	assert.False(t, IsEmail(".leading@example.com"))
	assert.False(t, IsEmail("trailing.@example.com"))
	assert.False(t, IsEmail("dou..ble@example.com"))
	assert.False(t, IsEmail("noat.example.com"))
	assert.False(t, IsEmail("unicodé@example.com"))
	assert.True(t, IsIDNEmail("unicodé@example.com"))
}

func TestHostnameFormat(t *testing.T) {
	assert.True(t, IsHostname("example.com"))
	assert.True(t, IsHostname("ex-ample.com."))
	assert.False(t, IsHostname("-example.com"))
	assert.False(t, IsHostname("example-.com"))
	assert.False(t, IsHostname("under_score.com"))
	assert.False(t, IsHostname("café.com"))
	assert.False(t, IsHostname(""))

	long := ""
	for i := 0; i < 64; i++ {
		long += "a"
	}
	assert.False(t, IsHostname(long+".com"), "label longer than 63")

	assert.True(t, IsIDNHostname("café.com"))
	assert.True(t, IsIDNHostname("实例.测试"))
}

func TestIPFormats(t *testing.T) {
	assert.True(t, IsIPV4("192.168.0.1"))
	assert.False(t, IsIPV4("192.168.0.256"))
	assert.False(t, IsIPV4("192.168.0.01"), "leading zeros rejected")
	assert.False(t, IsIPV4("::1"))

	assert.True(t, IsIPV6("::1"))
	assert.True(t, IsIPV6("2001:db8::8a2e:370:7334"))
	assert.False(t, IsIPV6("192.168.0.1"))
	assert.False(t, IsIPV6("not-an-ip"))
}

func TestURIFormats(t *testing.T) {
	assert.True(t, IsURI("https://example.com/path?q=1#frag"))
	assert.True(t, IsURI("urn:isbn:0451450523"))
	assert.False(t, IsURI("/relative/only"))
	assert.False(t, IsURI("https://example.com/valéur"))
	assert.True(t, IsIRI("https://example.com/valéur"))

	assert.True(t, IsURIReference("/relative/only"))
	assert.True(t, IsURIReference("#frag"))
	assert.False(t, IsURIReference("has space"))
}

func TestURITemplateFormat(t *testing.T) {
	assert.True(t, IsURITemplate("http://example.com/{id}"))
	assert.True(t, IsURITemplate("http://example.com/plain"))
	assert.False(t, IsURITemplate("http://example.com/{unclosed"))
	assert.False(t, IsURITemplate("http://example.com/{}"))
	assert.False(t, IsURITemplate("http://example.com/{a{b}}"))
}

func TestJSONPointerFormats(t *testing.T) {
	assert.True(t, IsJSONPointerFormat(""))
	assert.True(t, IsJSONPointerFormat("/a/b~0c/~1d"))
	assert.False(t, IsJSONPointerFormat("a/b"))
	assert.False(t, IsJSONPointerFormat("/bad~2escape"))

	assert.True(t, IsRelativeJSONPointer("0"))
	assert.True(t, IsRelativeJSONPointer("1/a"))
	assert.True(t, IsRelativeJSONPointer("2#"))
	assert.False(t, IsRelativeJSONPointer("01"))
	assert.False(t, IsRelativeJSONPointer("/a"))
}

func TestUUIDFormat(t *testing.T) {
	assert.True(t, IsUUID("550e8400-e29b-41d4-a716-446655440000"))
	assert.False(t, IsUUID("550e8400e29b41d4a716446655440000"), "canonical form only")
	assert.False(t, IsUUID("not-a-uuid"))
}

func TestRegexFormat(t *testing.T) {
	assert.True(t, IsRegex("^ab+c$"))
	assert.False(t, IsRegex("(unclosed"))
	assert.False(t, IsRegex(`\a`), "ECMA rejects \\a")
}

func TestUnknownFormatNeverFails(t *testing.T) {
	compiler := NewCompiler().SetAssertFormat(true)
	schema, err := compiler.Compile([]byte(`{"format":"no-such-format"}`))
	assert.NoError(t, err)
	assert.True(t, schema.IsValid("anything"))
}
