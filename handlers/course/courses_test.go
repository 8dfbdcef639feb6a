package course

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Modern Web Development":      "modern-web-development",
		"  Spaced   Out  ":            "spaced-out",
		"C++ & Go: A Comparison!":     "c-go-a-comparison",
		"already-slugged":             "already-slugged",
		"Numbers 101":                 "numbers-101",
		"Trailing punctuation...":     "trailing-punctuation",
		"ÜNICODE dröps to separators": "nicode-dr-ps-to-separators",
	}

	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
