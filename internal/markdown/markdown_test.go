package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"plain paragraph", "Hello there", []string{"<p>Hello there</p>"}},
		{"hard wrap", "line one\nline two", []string{"line one<br", "line two"}},
		{"heading id", "# About Me", []string{`<h1 id="about-me">About Me</h1>`}},
		{"strikethrough", "~~old~~", []string{"<del>old</del>"}},
		{"autolink", "see https://example.com", []string{`<a href="https://example.com">`}},
		{"raw html", "<b>bold</b>", []string{"<b>bold</b>"}},
		{"code block", "```go\nfunc main() {}\n```", []string{"<pre", "main"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ToHTML(%q) = %q, missing %q", tt.source, got, w)
				}
			}
		})
	}
}

func TestToHTMLEmpty(t *testing.T) {
	got, err := ToHTML("")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if got != "" {
		t.Errorf("ToHTML(\"\") = %q, want empty", got)
	}
}
