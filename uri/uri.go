package uri

import (
	"errors"
	"net/url"
	"strings"
)

// errNotAbsolute is wrapped in a ParseError when a string lacks a scheme or host.
var errNotAbsolute = errors.New("absolute URI with scheme and host required")

// URI is an absolute request URI (scheme, host, path, query).
//
// URI has value semantics. Copying it clones it, and every mutator returns a new
// URI, leaving the receiver unchanged. The zero value is an empty URI.
type URI struct {
	u url.URL
}

// Parse parses an absolute URI. The string must carry both a scheme and a host.
// The scheme is normalized to lower case.
func Parse(raw string) (URI, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return URI{}, &ParseError{Raw: raw, Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return URI{}, &ParseError{Raw: raw, Err: errNotAbsolute}
	}
	return URI{u: *parsed}, nil
}

// MustParse is like Parse but panics on error. Intended for constants such as a
// provider's base API URI.
func MustParse(raw string) URI {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// FromURL copies a *url.URL into a URI. A nil URL yields the zero URI.
func FromURL(u *url.URL) URI {
	if u == nil {
		return URI{}
	}
	return URI{u: *u}
}

// Clone returns a copy of u. Equivalent to assignment; provided for readability at
// call sites that hand a base URI to code that derives from it.
func (u URI) Clone() URI {
	return u
}

// IsZero reports whether u is the zero URI.
func (u URI) IsZero() bool {
	return u.u == url.URL{}
}

// Scheme returns the (lower-case) scheme
func (u URI) Scheme() string {
	return u.u.Scheme
}

// Host returns the host, including the port if present
func (u URI) Host() string {
	return u.u.Host
}

// Path returns the decoded path
func (u URI) Path() string {
	return u.u.Path
}

// EscapedPath returns the path in its escaped form
func (u URI) EscapedPath() string {
	return u.u.EscapedPath()
}

// RawQuery returns the encoded query string without the leading '?'
func (u URI) RawQuery() string {
	return u.u.RawQuery
}

// Query returns the parsed query values. The returned map is a fresh copy.
func (u URI) Query() url.Values {
	return u.u.Query()
}

// URL returns a new *url.URL equal to u, suitable for http.NewRequest and friends.
func (u URI) URL() *url.URL {
	c := u.u
	return &c
}

// String returns the serialized URI
func (u URI) String() string {
	return u.u.String()
}

// WithPath returns a copy of u with its path replaced by the decoded path p.
func (u URI) WithPath(p string) URI {
	u.u.Path = p
	u.u.RawPath = ""
	return u
}

// WithQuery returns a copy of u with its query replaced verbatim by rawQuery.
// rawQuery must already be encoded and must not carry the leading '?'.
func (u URI) WithQuery(rawQuery string) URI {
	u.u.RawQuery = rawQuery
	u.u.ForceQuery = false
	return u
}

// AppendPath returns a copy of u with the escaped segment appended to the existing
// escaped path by plain concatenation. No separator is inserted.
//
// If the joined path is not validly escaped (e.g. "100%" or "a%zz"), segment is
// appended as literal text instead, so each '%' serializes as %25.
func (u URI) AppendPath(escaped string) URI {
	if escaped == "" {
		return u
	}

	joined := u.u.EscapedPath() + escaped
	if u.u.Host != "" && !strings.HasPrefix(joined, "/") {
		joined = "/" + joined
	}

	decoded, err := url.PathUnescape(joined)
	if err != nil {
		literal := u.u.Path + escaped
		if u.u.Host != "" && !strings.HasPrefix(literal, "/") {
			literal = "/" + literal
		}
		u.u.Path = literal
		u.u.RawPath = ""
		return u
	}

	u.u.Path = decoded
	u.u.RawPath = joined
	return u
}
