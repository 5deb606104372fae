package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tp := New()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "normal text",
			input:    "hello world",
			contains: []string{"<p>hello world</p>"},
		},
		{
			name:     "bold text",
			input:    "**hello**",
			contains: []string{"<strong>hello</strong>"},
		},
		{
			name:     "strikethrough text",
			input:    "~~hello~~",
			contains: []string{"<del>hello</del>"},
		},
		{
			name:     "inline code",
			input:    "`code`",
			contains: []string{"<code>code</code>"},
		},
		{
			name:     "fenced code keeps language class",
			input:    "```go\nfmt.Println()\n```",
			contains: []string{`<code class="language-go">`},
		},
		{
			name:     "autolink opens in new tab",
			input:    "see https://example.com",
			contains: []string{`href="https://example.com"`, "nofollow", `target="_blank"`},
		},
		{
			name:     "raw html is dropped",
			input:    "<script>alert(1)</script>hi",
			excludes: []string{"<script>", "alert(1)</script>"},
		},
		{
			name:     "javascript links are removed",
			input:    "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
		{
			name:     "images are reduced to alt text",
			input:    "![a cat](https://example.com/cat.png)",
			contains: []string{"a cat"},
			excludes: []string{"<img"},
		},
		{
			name:     "line breaks are kept",
			input:    "line one\nline two",
			contains: []string{"<br"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(tp.Render(tt.input))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tt.excludes {
				assert.NotContains(t, got, bad)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	tp := New()
	assert.Equal(t, "Hello world", tp.Excerpt("**Hello**\n\nworld", 0))
	assert.Equal(t, "It's a <test>", tp.Excerpt("It's a \\<test\\>", 0))

	long := strings.Repeat("word ", 100)
	got := tp.Excerpt(long, 20)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, len([]rune(got)), 21)
}
