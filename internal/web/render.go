// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mrfuxi/gae-blog/internal/core/post"
	"github.com/mrfuxi/gae-blog/internal/platform/ctxutil"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
	"github.com/mrfuxi/gae-blog/pkg/strutil"
)

// PreviewLength is the rune limit of post bodies on list pages.
const PreviewLength = 100

//go:embed templates static
var assets embed.FS

// Page names, one per file in templates/.
const (
	pageHome    = "home"
	pageBlog    = "blog"
	pagePost    = "post"
	pageLogin   = "login"
	pageAboutMe = "about_me"
	pageError   = "error"
)

// article is a post as rendered by the "article" template.
type article struct {
	Post  *post.Post
	Short bool
}

// editor configures the admin post editor. An empty Action posts the form
// to the current page.
type editor struct {
	Action string
}

// pageData is the root value every page template executes against.
type pageData struct {
	Identity sec.Identity
	Articles []article
	Article  article
	Editor   editor
	Error    string
	Username string
}

// renderer owns the parsed page templates.
type renderer struct {
	pages map[string]*template.Template
	base  *template.Template
}

// newRenderer parses the embedded templates. Each page gets its own clone of
// the shared partials so that "title" and "content" can be redefined.
func newRenderer() (*renderer, error) {
	markdown := newMarkdownRenderer()
	funcs := template.FuncMap{
		"truncate": func(body string) string { return strutil.TruncateChars(body, PreviewLength) },
		"markdown": markdown.Render,
	}

	base, err := template.New("").Funcs(funcs).ParseFS(assets, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: parse partials: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{pageHome, pageBlog, pagePost, pageLogin, pageAboutMe, pageError} {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if pages[name], err = clone.ParseFS(assets, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("web: parse page %s: %w", name, err)
		}
	}

	return &renderer{pages: pages, base: base}, nil
}

// page renders a full HTML page. The output is buffered so that a template
// failure still produces a clean 500.
func (renderer *renderer) page(writer http.ResponseWriter, request *http.Request, status int, name string, data pageData) {
	var buffer bytes.Buffer
	if err := renderer.pages[name].ExecuteTemplate(&buffer, "layout", data); err != nil {
		renderer.failed(writer, request, name, err)
		return
	}
	renderer.write(writer, status, buffer.Bytes())
}

// fragment renders a single article, as returned to the admin editor.
func (renderer *renderer) fragment(writer http.ResponseWriter, request *http.Request, status int, data article) {
	var buffer bytes.Buffer
	if err := renderer.base.ExecuteTemplate(&buffer, "article", data); err != nil {
		renderer.failed(writer, request, "article", err)
		return
	}
	renderer.write(writer, status, buffer.Bytes())
}

func (renderer *renderer) write(writer http.ResponseWriter, status int, body []byte) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = writer.Write(body)
}

func (renderer *renderer) failed(writer http.ResponseWriter, request *http.Request, name string, err error) {
	ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "template_render_failed",
		slog.String("template", name),
		slog.Any("error", err),
	)
	http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
