// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package web

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdownRenderer turns post bodies into sanitized HTML.
//
// goldmark renders raw HTML blocks as-is; bluemonday strips everything the
// UGC policy does not allow afterwards.
type markdownRenderer struct {
	converter goldmark.Markdown
	policy    *bluemonday.Policy
}

func newMarkdownRenderer() *markdownRenderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")

	return &markdownRenderer{
		converter: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				html.WithUnsafe(),
			),
		),
		policy: policy,
	}
}

// Render returns the body as HTML. Bodies that fail to convert are shown
// escaped instead.
func (renderer *markdownRenderer) Render(source string) template.HTML {
	var buffer bytes.Buffer
	if err := renderer.converter.Convert([]byte(source), &buffer); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(renderer.policy.SanitizeBytes(buffer.Bytes()))
}
