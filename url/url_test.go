package url

import (
	"errors"
	"testing"

	httperrors "github.com/genryu22/learn-browser/errors"
)

func TestParse_WithPath(t *testing.T) {
	u, err := Parse("http://example.com/path/to/resource")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if u.Scheme != SchemeHttp {
		t.Errorf("Expected SchemeHttp, got %v", u.Scheme)
	}
	if u.Host != "example.com" {
		t.Errorf("Expected host %q, got %q", "example.com", u.Host)
	}
	if u.Path != "/path/to/resource" {
		t.Errorf("Expected path %q, got %q", "/path/to/resource", u.Path)
	}
}

func TestParse_WithoutPath(t *testing.T) {
	u, err := Parse("http://google.com")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if u.Host != "google.com" {
		t.Errorf("Expected host %q, got %q", "google.com", u.Host)
	}
	if u.Path != "/" {
		t.Errorf("Expected path %q, got %q", "/", u.Path)
	}
}

func TestParse_Https(t *testing.T) {
	u, err := Parse("https://browser.engineering/examples/xiyouji.html")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if u.Scheme != SchemeHttps {
		t.Errorf("Expected SchemeHttps, got %v", u.Scheme)
	}
	if u.Scheme.DefaultPort() != 443 {
		t.Errorf("Expected port 443, got %d", u.Scheme.DefaultPort())
	}
	if u.Path != "/examples/xiyouji.html" {
		t.Errorf("Expected path %q, got %q", "/examples/xiyouji.html", u.Path)
	}
}

func TestParse_PathShapes(t *testing.T) {
	tests := []struct {
		raw  string
		host string
		path string
	}{
		{"http://host", "host", "/"},
		{"http://host/", "host", "/"},
		{"http://host/a/b", "host", "/a/b"},
		{"http://host//double", "host", "//double"},
		{"http://host/search?q=go#top", "host", "/search?q=go#top"},
		{"http://host?q=1", "host?q=1", "/"},
		{"http:///only-path", "", "/only-path"},
		{"http://", "", "/"},
		{"http://host:8080/x", "host:8080", "/x"},
		{"http://a://b", "a:", "//b"},
	}

	for _, tt := range tests {
		u, err := Parse(tt.raw)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.raw, err)
			continue
		}
		if u.Host != tt.host {
			t.Errorf("%s: expected host %q, got %q", tt.raw, tt.host, u.Host)
		}
		if u.Path != tt.path {
			t.Errorf("%s: expected path %q, got %q", tt.raw, tt.path, u.Path)
		}
	}
}

func TestParse_MissingScheme(t *testing.T) {
	for _, raw := range []string{"invalid-url", "", "example.com/path", "http:/example.com", "http//x"} {
		_, err := Parse(raw)
		if err == nil {
			t.Errorf("%q: expected error", raw)
			continue
		}
		if !errors.Is(err, httperrors.ErrMissingScheme) {
			t.Errorf("%q: expected MissingScheme, got %v", raw, err)
		}
	}
}

func TestParse_UnsupportedScheme(t *testing.T) {
	for _, scheme := range []string{"ftp", "HTTP", "Https", "file", ""} {
		_, err := Parse(scheme + "://example.com")
		if err == nil {
			t.Errorf("%q: expected error", scheme)
			continue
		}

		var httpErr *httperrors.HttpError
		if !errors.As(err, &httpErr) {
			t.Fatalf("Expected *httperrors.HttpError, got %T", err)
		}
		if httpErr.Kind != httperrors.KindUnsupportedScheme {
			t.Errorf("%q: expected KindUnsupportedScheme, got %v", scheme, httpErr.Kind)
		}
		if httpErr.Value != scheme {
			t.Errorf("Expected offending scheme %q, got %q", scheme, httpErr.Value)
		}
	}
}

func TestParse_UnsupportedScheme_Message(t *testing.T) {
	_, err := Parse("ftp://example.com")
	if err == nil {
		t.Fatal("Expected error")
	}

	var httpErr *httperrors.HttpError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Expected *httperrors.HttpError, got %T", err)
	}
	if httpErr.Message != "unsupported scheme: ftp" {
		t.Errorf("Expected message %q, got %q", "unsupported scheme: ftp", httpErr.Message)
	}
}

func TestUrl_String(t *testing.T) {
	for _, raw := range []string{"http://example.com/", "https://host/a/b?c"} {
		u := MustParse(raw)
		if u.String() != raw {
			t.Errorf("Expected %q, got %q", raw, u.String())
		}
	}

	if got := MustParse("http://host").String(); got != "http://host/" {
		t.Errorf("Expected %q, got %q", "http://host/", got)
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for invalid URL")
		}
	}()
	MustParse("no-scheme")
}

func TestScheme_String(t *testing.T) {
	if SchemeHttp.String() != "http" {
		t.Errorf("Expected %q, got %q", "http", SchemeHttp.String())
	}
	if SchemeHttps.String() != "https" {
		t.Errorf("Expected %q, got %q", "https", SchemeHttps.String())
	}
	if SchemeHttp.DefaultPort() != 80 {
		t.Errorf("Expected port 80, got %d", SchemeHttp.DefaultPort())
	}
}
