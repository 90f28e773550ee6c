// Format predicates partly derived from https://github.com/santhosh-tekuri/jsonschema
package jsonschemer

import (
	"net"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/idna"
)

// Formats is the registry of built-in format predicates. Keys are format names,
// values know how to validate one format. Non-string instances always pass, per
// the format-annotation vocabulary.
var Formats = map[string]func(any) bool{
	"date-time":             IsDateTime,
	"date":                  IsDate,
	"time":                  IsTime,
	"duration":              IsDuration,
	"hostname":              IsHostname,
	"idn-hostname":          IsIDNHostname,
	"email":                 IsEmail,
	"idn-email":             IsIDNEmail,
	"ipv4":                  IsIPV4,
	"ipv6":                  IsIPV6,
	"uri":                   IsURI,
	"uri-reference":         IsURIReference,
	"iri":                   IsIRI,
	"iri-reference":         IsIRIReference,
	"uri-template":          IsURITemplate,
	"json-pointer":          IsJSONPointerFormat,
	"relative-json-pointer": IsRelativeJSONPointer,
	"uuid":                  IsUUID,
	"regex":                 IsRegex,
	"unknown":               func(any) bool { return true },
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// IsDate tells whether the value is a full-date per RFC 3339, section 5.6,
// including real calendar day counts and leap years.
func IsDate(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isDateString(s)
}

func isDateString(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	year, ok1 := parseDigits(s[0:4])
	month, ok2 := parseDigits(s[5:7])
	day, ok3 := parseDigits(s[8:10])
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	daysInMonth := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	max := daysInMonth[month-1]
	if month == 2 && isLeapYear(year) {
		max = 29
	}
	return day <= max
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func parseDigits(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// IsTime tells whether the value is a full-time per RFC 3339, section 5.6. A
// leap second is accepted only when the time normalizes to 23:59:60 UTC.
func IsTime(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isTimeString(s)
}

func isTimeString(s string) bool {
	if len(s) < 9 {
		return false
	}
	if s[2] != ':' || s[5] != ':' {
		return false
	}
	hour, ok1 := parseDigits(s[0:2])
	minute, ok2 := parseDigits(s[3:5])
	second, ok3 := parseDigits(s[6:8])
	if !ok1 || !ok2 || !ok3 {
		return false
	}
	if hour > 23 || minute > 59 || second > 60 {
		return false
	}

	rest := s[8:]
	if len(rest) > 0 && rest[0] == '.' {
		j := 1
		for j < len(rest) && rest[j] >= '0' && rest[j] <= '9' {
			j++
		}
		if j == 1 {
			return false
		}
		rest = rest[j:]
	}
	if len(rest) == 0 {
		return false
	}

	var offsetMinutes int
	switch rest[0] {
	case 'Z', 'z':
		if len(rest) != 1 {
			return false
		}
	case '+', '-':
		if len(rest) != 6 || rest[3] != ':' {
			return false
		}
		oh, ok1 := parseDigits(rest[1:3])
		om, ok2 := parseDigits(rest[4:6])
		if !ok1 || !ok2 || oh > 23 || om > 59 {
			return false
		}
		offsetMinutes = oh*60 + om
		if rest[0] == '-' {
			offsetMinutes = -offsetMinutes
		}
	default:
		return false
	}

	if second == 60 {
		utc := hour*60 + minute - offsetMinutes
		utc = ((utc % 1440) + 1440) % 1440
		return utc == 23*60+59
	}
	return true
}

// IsDateTime tells whether the value is a date-time per RFC 3339, section 5.6.
func IsDateTime(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	if len(s) < 11 || (s[10] != 'T' && s[10] != 't') {
		return false
	}
	return isDateString(s[:10]) && isTimeString(s[11:])
}

// IsDuration tells whether the value is an ISO 8601 duration as profiled in RFC
// 3339, appendix A. A week component cannot combine with any other unit.
func IsDuration(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	if len(s) < 2 || s[0] != 'P' {
		return false
	}
	s = s[1:]

	parseUnits := func(str string, units string) (string, int, bool) {
		count := 0
		lastIndex := -1
		for len(str) > 0 && str[0] >= '0' && str[0] <= '9' {
			j := 0
			for j < len(str) && str[j] >= '0' && str[j] <= '9' {
				j++
			}
			if j == len(str) {
				return str, count, false
			}
			index := strings.IndexByte(units, str[j])
			if index < 0 || index <= lastIndex {
				return str, count, false
			}
			lastIndex = index
			count++
			str = str[j+1:]
		}
		return str, count, true
	}

	if strings.ContainsRune(s, 'W') {
		rest, count, ok := parseUnits(s, "W")
		return ok && count == 1 && rest == ""
	}

	rest, dateCount, ok := parseUnits(s, "YMD")
	if !ok {
		return false
	}
	timeCount := 0
	if len(rest) > 0 {
		if rest[0] != 'T' {
			return false
		}
		rest, timeCount, ok = parseUnits(rest[1:], "HMS")
		if !ok || rest != "" || timeCount == 0 {
			return false
		}
	}
	return dateCount+timeCount > 0
}

// IsHostname tells whether the value is a valid representation for an internet
// hostname per RFC 1034, section 3.5 and RFC 1123, section 2.1.
func IsHostname(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isHostnameString(s)
}

func isHostnameString(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if len(s) == 0 || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if len(label) == 0 || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, c := range label {
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			default:
				return false
			}
		}
		// A-labels must decode, and the decoded U-label cannot itself carry
		// hyphens in positions 3 and 4.
		if len(label) >= 4 && strings.EqualFold(label[:4], "xn--") {
			decoded, err := idna.Punycode.ToUnicode(label)
			if err != nil {
				return false
			}
			if len(decoded) >= 4 && decoded[2] == '-' && decoded[3] == '-' {
				return false
			}
		}
	}
	return true
}

// IsIDNHostname tells whether the value is a valid internationalized hostname:
// the UTS#46 mapping to ASCII must succeed and its result must pass the plain
// hostname rules.
func IsIDNHostname(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isIDNHostnameString(s)
}

var idnProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(true),
	idna.VerifyDNSLength(true),
)

func isIDNHostnameString(s string) bool {
	if s == "" {
		return false
	}
	ascii, err := idnProfile.ToASCII(s)
	if err != nil {
		return false
	}
	return isHostnameString(ascii)
}

// IsEmail tells whether the value is an ASCII email address per RFC 5321: a
// dot-atom or quoted local part, and a hostname, IP literal or IPv6 literal
// domain.
func IsEmail(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isEmailString(s, false)
}

// IsIDNEmail is the internationalized variant of IsEmail: Unicode is allowed in
// the local part, and the domain is validated as an IDN.
func IsIDNEmail(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isEmailString(s, true)
}

func isEmailString(s string, idn bool) bool {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]

	if strings.HasPrefix(local, `"`) && strings.HasSuffix(local, `"`) && len(local) >= 2 {
		if !isQuotedLocalPart(local[1:len(local)-1], idn) {
			return false
		}
	} else if !isDotAtomLocalPart(local, idn) {
		return false
	}

	if strings.HasPrefix(domain, "[") && strings.HasSuffix(domain, "]") {
		literal := domain[1 : len(domain)-1]
		if strings.HasPrefix(literal, "IPv6:") {
			return IsIPV6(strings.TrimPrefix(literal, "IPv6:"))
		}
		return IsIPV4(literal)
	}
	if idn {
		return isIDNHostnameString(domain)
	}
	return isHostnameString(domain)
}

func isDotAtomLocalPart(local string, idn bool) bool {
	if local == "" || strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	for _, c := range local {
		if c > 127 {
			if idn {
				continue
			}
			return false
		}
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("!#$%&'*+-/=?^_`{|}~.", c):
		default:
			return false
		}
	}
	return true
}

func isQuotedLocalPart(content string, idn bool) bool {
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case c == '\\':
			i++
			if i >= len(content) {
				return false
			}
		case c == '"':
			return false
		case c < 32 && c != '\t':
			return false
		case c > 127 && !idn:
			return false
		}
	}
	return true
}

// IsIPV4 tells whether the value is an IPv4 address in dotted-quad form.
func IsIPV4(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	groups := strings.Split(s, ".")
	if len(groups) != 4 {
		return false
	}
	for _, group := range groups {
		// Reject leading zeros, which the socket library would accept as octal.
		if len(group) > 1 && group[0] == '0' {
			return false
		}
	}
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}

// IsIPV6 tells whether the value is an IPv6 address per the socket library.
func IsIPV6(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	if !strings.Contains(s, ":") {
		return false
	}
	return net.ParseIP(s) != nil
}

// IsURI tells whether the value is an absolute URI with ASCII-only characters.
func IsURI(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isASCII(s) && isIRIString(s)
}

// IsURIReference tells whether the value is a URI or a relative reference.
func IsURIReference(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isASCII(s) && isIRIReferenceString(s)
}

// IsIRI is the internationalized variant of IsURI.
func IsIRI(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isIRIString(s)
}

// IsIRIReference is the internationalized variant of IsURIReference.
func IsIRIReference(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isIRIReferenceString(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}

func isIRIString(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && !strings.ContainsAny(s, " \\")
}

func isIRIReferenceString(s string) bool {
	_, err := url.Parse(s)
	return err == nil && !strings.ContainsAny(s, " \\")
}

// IsURITemplate tells whether the value is a URI template per RFC 6570: braces
// must balance, not nest, and carry a non-empty expression.
func IsURITemplate(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	depth := 0
	exprLen := 0
	for _, c := range s {
		switch c {
		case '{':
			depth++
			exprLen = 0
			if depth > 1 {
				return false
			}
		case '}':
			if depth != 1 || exprLen == 0 {
				return false
			}
			depth--
		default:
			if depth == 1 {
				exprLen++
			}
		}
	}
	return depth == 0
}

// IsJSONPointerFormat tells whether the value is a JSON Pointer per RFC 6901.
func IsJSONPointerFormat(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	return isJSONPointerString(s)
}

func isJSONPointerString(s string) bool {
	if s == "" {
		return true
	}
	if !strings.HasPrefix(s, "/") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] == '~' {
			if i+1 >= len(s) || (s[i+1] != '0' && s[i+1] != '1') {
				return false
			}
		}
	}
	return true
}

// IsRelativeJSONPointer tells whether the value is a relative JSON Pointer: a
// non-negative integer without leading zeros, then "#" or a JSON Pointer.
func IsRelativeJSONPointer(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return false
	}
	if i > 1 && s[0] == '0' {
		return false
	}
	rest := s[i:]
	if rest == "#" {
		return true
	}
	return isJSONPointerString(rest)
}

// IsUUID tells whether the value is a canonical RFC 4122 UUID string.
func IsUUID(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// IsRegex tells whether the value is a valid regular expression under the ECMA
// dialect rules.
func IsRegex(v any) bool {
	s, ok := asString(v)
	if !ok {
		return true
	}
	_, err := ecmaRegexpResolver(s)
	return err == nil
}

// IsInteger tells whether the value is integer-valued, used by format type
// gating and the type keyword.
func IsInteger(v any) bool {
	return getDataType(v) == "integer"
}
