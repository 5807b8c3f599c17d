package uri

import "strings"

// Ref is a request target: either a string path (absolute or provider-relative) or
// an already resolved URI.
type Ref interface {
	string | URI
}

// Resolve produces the fully-qualified request URI for ref.
//
//   - A URI is returned unchanged.
//   - A string beginning with http:// or https:// (any case) is parsed on its own;
//     base is not consulted and may be nil.
//   - Any other string is relative to base. A nil base yields a *ConfigurationError.
//     The text after the first '?' replaces base's query verbatim, one leading '/'
//     is stripped, and the remainder is appended to base's path as-is. An empty
//     relative path appends nothing. A '%' that does not start a valid escape is
//     kept as literal text.
//
// '#' is treated differently on each side of the '?'. In the path it is literal
// text and serializes as %23. The query is installed verbatim, so a '#' there
// ends the query when the result is serialized and reparsed: "users?a=b#c" yields
// RawQuery "a=b#c", which String renders as "...users?a=b#c" with fragment "c".
//
// base is never modified.
func Resolve[R Ref](ref R, base *URI) (URI, error) {
	switch v := any(ref).(type) {
	case URI:
		return v, nil
	case string:
		return resolvePath(v, base)
	}
	panic("unreachable")
}

// IsAbsolute reports whether path starts with http:// or https://, ignoring case.
func IsAbsolute(path string) bool {
	return hasPrefixFold(path, "http://") || hasPrefixFold(path, "https://")
}

func resolvePath(path string, base *URI) (URI, error) {
	if IsAbsolute(path) {
		return Parse(path)
	}

	if base == nil {
		return URI{}, &ConfigurationError{
			Message: missingBaseMessage,
			Path:    path,
			Err:     ErrMissingBaseURI,
		}
	}

	resolved := base.Clone()

	if before, after, found := strings.Cut(path, "?"); found {
		path = before
		resolved = resolved.WithQuery(after)
	}

	path = strings.TrimPrefix(path, "/")

	return resolved.AppendPath(path), nil
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
