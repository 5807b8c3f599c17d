package uri

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Absolute(t *testing.T) {
	base := MustParse("https://api.example.com/v1/")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "https", path: "https://other.example.com/x?y=z", want: "https://other.example.com/x?y=z"},
		{name: "http", path: "http://other.example.com/", want: "http://other.example.com/"},
		{name: "mixed case", path: "HtTpS://other.example.com/x", want: "https://other.example.com/x"},
		{name: "upper case http", path: "HTTP://other.example.com", want: "http://other.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBase, err := Resolve(tt.path, &base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, withBase.String())

			withoutBase, err := Resolve(tt.path, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, withoutBase.String())
		})
	}
}

func TestResolve_AbsoluteMalformed(t *testing.T) {
	_, err := Resolve("https://example.com/%zz", nil)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.False(t, errors.Is(err, ErrMissingBaseURI))
}

func TestResolve_RelativeWithoutBase(t *testing.T) {
	for _, path := range []string{"users", "/users/123", "users?active=true", "", "?a=b", "ftp://example.com/file"} {
		t.Run(path, func(t *testing.T) {
			_, err := Resolve(path, nil)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "an absolute URI must be supplied when no base API URI is configured.", cfgErr.Error())
			assert.Equal(t, path, cfgErr.Path)
			assert.ErrorIs(t, err, ErrMissingBaseURI)
		})
	}
}

func TestResolve_Relative(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		path      string
		want      string
		wantPath  string
		wantQuery string
	}{
		{
			name:      "query split",
			base:      "https://api.example.com/v1/",
			path:      "users?active=true",
			want:      "https://api.example.com/v1/users?active=true",
			wantPath:  "/v1/users",
			wantQuery: "active=true",
		},
		{
			name:     "leading slash stripped once",
			base:     "https://api.example.com/v1/",
			path:     "/users/123",
			want:     "https://api.example.com/v1/users/123",
			wantPath: "/v1/users/123",
		},
		{
			name:     "only one leading slash stripped",
			base:     "https://api.example.com/v1/",
			path:     "//users",
			want:     "https://api.example.com/v1//users",
			wantPath: "/v1//users",
		},
		{
			name:      "split on first question mark only",
			base:      "https://api.example.com/v1/",
			path:      "search?q=a?b&x=1",
			want:      "https://api.example.com/v1/search?q=a?b&x=1",
			wantPath:  "/v1/search",
			wantQuery: "q=a?b&x=1",
		},
		{
			name:      "query replaces base query",
			base:      "https://api.example.com/v1/?format=json",
			path:      "users?page=2",
			want:      "https://api.example.com/v1/users?page=2",
			wantPath:  "/v1/users",
			wantQuery: "page=2",
		},
		{
			name:      "no question mark keeps base query",
			base:      "https://api.example.com/v1/?format=json",
			path:      "users",
			want:      "https://api.example.com/v1/users?format=json",
			wantPath:  "/v1/users",
			wantQuery: "format=json",
		},
		{
			name:     "empty path appends nothing",
			base:     "https://api.example.com/v1/",
			path:     "",
			want:     "https://api.example.com/v1/",
			wantPath: "/v1/",
		},
		{
			name:      "query only",
			base:      "https://api.example.com/v1/",
			path:      "?page=3",
			want:      "https://api.example.com/v1/?page=3",
			wantPath:  "/v1/",
			wantQuery: "page=3",
		},
		{
			name:     "slash only",
			base:     "https://api.example.com/v1/",
			path:     "/",
			want:     "https://api.example.com/v1/",
			wantPath: "/v1/",
		},
		{
			name:     "plain concatenation without separator",
			base:     "https://api.example.com/v1",
			path:     "users",
			want:     "https://api.example.com/v1users",
			wantPath: "/v1users",
		},
		{
			name:     "literal percent sign",
			base:     "https://api.example.com/v1/",
			path:     "search/100%",
			want:     "https://api.example.com/v1/search/100%25",
			wantPath: "/v1/search/100%",
		},
		{
			name:     "invalid escape kept literal",
			base:     "https://api.example.com/v1/",
			path:     "users%zz",
			want:     "https://api.example.com/v1/users%25zz",
			wantPath: "/v1/users%zz",
		},
		{
			name:     "hash in path is literal",
			base:     "https://api.example.com/v1/",
			path:     "tags/c#",
			want:     "https://api.example.com/v1/tags/c%23",
			wantPath: "/v1/tags/c#",
		},
		{
			name:     "non-http scheme treated as relative",
			base:     "https://api.example.com/",
			path:     "ftp://x",
			want:     "https://api.example.com/ftp://x",
			wantPath: "/ftp://x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := MustParse(tt.base)
			before := base.String()

			got, err := Resolve(tt.path, &base)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.wantPath, got.Path())
			assert.Equal(t, tt.wantQuery, got.RawQuery())
			assert.Equal(t, before, base.String(), "base URI must not be mutated")
		})
	}
}

func TestResolve_HashInQueryIsVerbatim(t *testing.T) {
	base := MustParse("https://api.example.com/v1/")

	got, err := Resolve("users?a=b#c", &base)
	require.NoError(t, err)
	assert.Equal(t, "a=b#c", got.RawQuery())
	assert.Equal(t, "https://api.example.com/v1/users?a=b#c", got.String())

	reparsed, err := url.Parse(got.String())
	require.NoError(t, err)
	assert.Equal(t, "a=b", reparsed.RawQuery)
	assert.Equal(t, "c", reparsed.Fragment)
}

func TestResolve_URIReturnedUnchanged(t *testing.T) {
	target := MustParse("https://elsewhere.example.com/a?b=c")

	got, err := Resolve(target, nil)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	base := MustParse("https://api.example.com/v1/")
	got, err = Resolve(target, &base)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestResolve_NoAliasing(t *testing.T) {
	base := MustParse("https://api.example.com/v1/?token=abc")
	captured := base.Clone()

	resolved, err := Resolve("users?active=true", &base)
	require.NoError(t, err)

	mutated := resolved.WithPath("/changed").WithQuery("x=y")
	again := mutated.AppendPath("more")

	assert.Equal(t, "https://api.example.com/changedmore?x=y", again.String())
	assert.Equal(t, captured, base)
	assert.Equal(t, "https://api.example.com/v1/users?active=true", resolved.String())
}

func TestIsAbsolute(t *testing.T) {
	tests := map[string]bool{
		"http://a":   true,
		"https://a":  true,
		"HTTPS://a":  true,
		"Http://a":   true,
		"http:/a":    false,
		"https:":     false,
		"/users":     false,
		"":           false,
		"ftp://a":    false,
		"httpx://a":  false,
		"users/http": false,
	}

	for input, want := range tests {
		if got := IsAbsolute(input); got != want {
			t.Errorf("IsAbsolute(%q) = %v, want %v", input, got, want)
		}
	}
}
