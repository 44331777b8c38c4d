package markup

import "testing"

func TestStrip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<a>x</a>", "x"},
		{"", ""},
		{"no tags", "no tags"},
		{"<html><body><p>Hello, <b>World</b>!</p></body></html>", "Hello, World!"},
		{"before <unclosed tag and more", "before "},
		{"stray > closer", "stray  closer"},
		{"a &lt; b &amp; c", "a &lt; b &amp; c"},
		{"<p>西遊記</p>", "西遊記"},
		{"<a href=\"x\">link</a>\n<br/>line", "link\nline"},
		{"a\xffb<i>c</i>", "a\xffbc"},
		{"<b>\xe8\xa5</b>\xbf", "\xe8\xa5\xbf"},
	}

	for _, tt := range tests {
		if got := Strip(tt.in); got != tt.want {
			t.Errorf("Strip(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestStrip_Idempotent(t *testing.T) {
	inputs := []string{
		"<html><head><title>t</title></head><body>text</body></html>",
		"plain text",
		"<<nested>> text",
		"tail <open",
	}

	for _, in := range inputs {
		once := Strip(in)
		if twice := Strip(once); twice != once {
			t.Errorf("Strip not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello..."},
		{"西遊記の物語", 3, "西遊記..."},
		{"abc", 0, "..."},
		{"", 3, ""},
		{"abc", -1, "..."},
	}

	for _, tt := range tests {
		if got := Preview(tt.in, tt.n); got != tt.want {
			t.Errorf("Preview(%q, %d): expected %q, got %q", tt.in, tt.n, tt.want, got)
		}
	}
}
