package markdown

import (
	"bytes"
	stdhtml "html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/unforum-dev/unforum/shared/logger"
)

// TextProcessor renders thread and post content. Markdown is converted by
// goldmark and the result is always passed through a bluemonday policy.
type TextProcessor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(externalLinks{}, 100)),
		),
		goldmark.WithRendererOptions(html.WithHardWraps()),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify, extension.Table, extension.TaskList),
	)

	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("code")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &TextProcessor{md: md, policy: p}
}

// Render returns sanitized HTML. Content that fails to convert is shown
// escaped.
func (tp *TextProcessor) Render(text string) template.HTML {
	var buf bytes.Buffer
	if err := tp.md.Convert([]byte(text), &buf); err != nil {
		logger.Log.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(strings.TrimSpace(tp.policy.Sanitize(buf.String())))
}

// Excerpt is the plain-text start of the content, for list cards.
func (tp *TextProcessor) Excerpt(text string, max int) string {
	plain := stdhtml.UnescapeString(bluemonday.StrictPolicy().Sanitize(string(tp.Render(text))))
	plain = strings.Join(strings.Fields(plain), " ")
	runes := []rune(plain)
	if max <= 0 || len(runes) <= max {
		return plain
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
