package strings

import "testing"

func TestNormalizeNewlines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "crlf", input: "a\r\nb", want: "a\nb"},
		{name: "cr", input: "a\rb", want: "a\nb"},
		{name: "mixed", input: "a\r\nb\rc\n", want: "a\nb\nc\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeNewlines(tc.input); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimTrailingNewlines(t *testing.T) {
	if got := TrimTrailingNewlines("a\n\r\n"); got != "a" {
		t.Fatalf("expected %q, got %q", "a", got)
	}
	if got := TrimTrailingNewlines("a\nb"); got != "a\nb" {
		t.Fatalf("expected inner newline kept, got %q", got)
	}
}

func TestOneLine(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "buy  milk", want: "buy  milk"},
		{name: "newline", input: "a\nb", want: "a b"},
		{name: "crlf is one space", input: "a\r\nb", want: "a b"},
		{name: "tab", input: "a\tb", want: "a b"},
		{name: "empty", input: "", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OneLine(tc.input); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEscapeMarkdownInline(t *testing.T) {
	if got := EscapeMarkdownInline("*bold* [link]"); got != `\*bold\* \[link\]` {
		t.Fatalf("unexpected escape %q", got)
	}
	if got := EscapeMarkdownInline("plain"); got != "plain" {
		t.Fatalf("unexpected escape %q", got)
	}
}
