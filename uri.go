package jsonschemer

import (
	"net/url"
	"strings"
)

// isValidURI reports whether a string parses as an absolute URI.
func isValidURI(uri string) bool {
	u, err := url.Parse(uri)
	return err == nil && u.Scheme != ""
}

func isAbsoluteURI(uri string) bool {
	return isValidURI(uri)
}

// splitRef separates a reference into its fragmentless URI and fragment parts.
func splitRef(ref string) (baseURI string, fragment string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return ref, ""
}

// fragmentless strips the fragment from a URI.
func fragmentless(uri string) string {
	base, _ := splitRef(uri)
	return base
}

// withFragment replaces the fragment of a URI. An empty fragment produces the
// fragmentless form.
func withFragment(uri string, fragment string) string {
	base, _ := splitRef(uri)
	if fragment == "" {
		return base
	}
	return base + "#" + fragment
}

// resolveURI resolves a reference against a base URI per RFC 3986. A
// fragment-only reference applied to an opaque base (for example a urn:) yields
// the base with its fragment replaced, which net/url cannot express.
func resolveURI(base string, ref string) string {
	if base == "" {
		return ref
	}
	if strings.HasPrefix(ref, "#") {
		return withFragment(base, ref[1:])
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	if baseURL.Opaque != "" {
		// Opaque bases only support fragment-only references, handled above.
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// getURLScheme extracts the scheme used to pick a loader.
func getURLScheme(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return u.Scheme
}

// fileURIToPath converts a file:// URI into a filesystem path. URIs with a host
// are rejected; Windows drive paths such as file:///C:/tmp are unwrapped.
func fileURIToPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", ErrInvalidFileURI
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", ErrInvalidFileURI
	}
	p := u.Path
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	if p == "" {
		return "", ErrInvalidFileURI
	}
	return p, nil
}

// pathToFileURI builds the file:// base URI for a schema loaded from disk.
func pathToFileURI(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}
