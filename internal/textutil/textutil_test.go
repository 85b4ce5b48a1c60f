package textutil

import "testing"

func TestFlattenLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello", "Hello"},
		{"lf", "a\nb", "a b"},
		{"crlf is one break", "a\r\nb", "a b"},
		{"cr", "a\rb", "a b"},
		{"consecutive breaks", "a\n\nb", "a  b"},
		{"vertical tab and form feed", "a\vb\fc", "a b c"},
		{"next line", "a\u0085b", "a b"},
		{"line separator", "a\u2028b", "a b"},
		{"paragraph separator", "a\u2029b", "a b"},
		{"spacing kept", "  a\tb  ", "  a\tb  "},
		{"trailing break", "end\n", "end "},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlattenLineBreaks(tt.in)
			if got != tt.want {
				t.Fatalf("FlattenLineBreaks(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if HasLineBreak(got) {
				t.Fatalf("result %q still has a line break", got)
			}
		})
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"demo", "demo"},
		{"  spaced  ", "spaced"},
		{"a/b\\c:d*e", "a-b-c-d-e"},
		{`what?"<>|`, "what"},
		{"tab\there", "tab here"},
		{"trailing...", "trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
