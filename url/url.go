// Package url splits raw "scheme://host[/path]" strings into their parts.
//
// Only the scheme, host and path are recognised. Ports, query strings,
// fragments, userinfo and percent-encoding are not interpreted: a '?' or '#'
// is ordinary path content.
package url

import (
	"fmt"
	"strings"

	httperrors "github.com/genryu22/learn-browser/errors"
)

const schemeSeparator = "://"

// Scheme selects the transport and its default port
type Scheme int

const (
	SchemeHttp Scheme = iota
	SchemeHttps
)

func (s Scheme) String() string {
	switch s {
	case SchemeHttp:
		return "http"
	case SchemeHttps:
		return "https"
	default:
		return fmt.Sprintf("scheme(%d)", int(s))
	}
}

// DefaultPort returns the fixed port used for the scheme.
func (s Scheme) DefaultPort() uint16 {
	if s == SchemeHttps {
		return 443
	}
	return 80
}

// Url is a parsed URL. Path always starts with '/'.
type Url struct {
	Scheme Scheme
	Host   string
	Path   string
}

// Parse splits raw into scheme, host and path.
func Parse(raw string) (Url, error) {
	schemeName, rest, found := strings.Cut(raw, schemeSeparator)
	if !found {
		return Url{}, httperrors.NewUrlError(
			httperrors.KindMissingScheme,
			"invalid URL: missing scheme",
			raw,
		)
	}

	scheme, err := parseScheme(schemeName)
	if err != nil {
		return Url{}, err
	}

	host, path, hasPath := strings.Cut(rest, "/")
	if hasPath {
		path = "/" + path
	} else {
		path = "/"
	}

	return Url{
		Scheme: scheme,
		Host:   host,
		Path:   path,
	}, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(raw string) Url {
	u, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}

func parseScheme(name string) (Scheme, error) {
	switch name {
	case "http":
		return SchemeHttp, nil
	case "https":
		return SchemeHttps, nil
	default:
		return 0, httperrors.NewUrlError(
			httperrors.KindUnsupportedScheme,
			fmt.Sprintf("unsupported scheme: %s", name),
			name,
		)
	}
}

// String reassembles the URL.
func (u Url) String() string {
	return u.Scheme.String() + schemeSeparator + u.Host + u.Path
}
