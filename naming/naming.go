// Package naming extracts and sanitizes type and property names from RDF
// URIs and DTDL identifiers so they satisfy target schema naming rules:
// letters, digits and underscores only, starting with a letter, bounded
// length.
package naming

import (
	"strings"
)

// Maximum name lengths accepted by the target schema per source family.
const (
	MaxLengthRDF  = 128
	MaxLengthDTDL = 90
)

// LocalName extracts the local name from a URI: the segment after the last
// "#", or after the last "/" when there is no fragment. A URI with neither
// separator is returned whole.
func LocalName(uri string) string {
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		return uri[i+1:]
	}
	if i := strings.LastIndex(strings.TrimRight(uri, "/"), "/"); i >= 0 {
		return strings.TrimRight(uri, "/")[i+1:]
	}
	return uri
}

// Namespace returns the portion of a URI before its local name, including
// the trailing separator. Returns "" when the URI has no separator.
func Namespace(uri string) string {
	if i := strings.LastIndex(uri, "#"); i >= 0 {
		return uri[:i+1]
	}
	trimmed := strings.TrimRight(uri, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[:i+1]
	}
	return ""
}

// Sanitize rewrites a raw name into a valid target schema name. Characters
// outside [A-Za-z0-9_] become underscores, a leading non-letter gets an "n"
// prefix, and the result is truncated to maxLen. An empty input yields
// "unnamed".
func Sanitize(name string, maxLen int) string {
	if name == "" {
		return "unnamed"
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	s := b.String()
	if !isLetter(s[0]) {
		s = "n" + s
	}
	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// SanitizeRDF sanitizes a name under the RDF length bound.
func SanitizeRDF(name string) string { return Sanitize(name, MaxLengthRDF) }

// SanitizeDTDL sanitizes a name under the DTDL length bound.
func SanitizeDTDL(name string) string { return Sanitize(name, MaxLengthDTDL) }

// IsValid reports whether a name already satisfies target schema rules for
// the given length bound.
func IsValid(name string, maxLen int) bool {
	if name == "" || (maxLen > 0 && len(name) > maxLen) {
		return false
	}
	if !isLetter(name[0]) {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isLetter(c) && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
