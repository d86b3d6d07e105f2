// Copyright (c) 2026 The gae-blog Authors. All rights reserved.

/*
Package web serves the HTML side of the blog.

Pages are rendered server-side from embedded templates. The admin editor on
the list and post pages talks to the same routes with form posts and receives
article fragments or plain HTML error bodies in return.

# Routes

  - GET    /                  : Home, the most recent posts
  - GET    /blog/             : Every post, newest first
  - POST   /blog/post/        : Create a post (admin)
  - GET    /blog/post/{slug}/ : A single post
  - POST   /blog/post/{slug}/ : Update a post (admin)
  - DELETE /blog/post/{slug}/ : Delete a post (admin)
  - GET    /login/, POST /login/, GET /logout/, GET /about_me/, GET /static/*
*/
package web

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mrfuxi/gae-blog/internal/core/post"
	"github.com/mrfuxi/gae-blog/internal/platform/apperr"
	"github.com/mrfuxi/gae-blog/internal/platform/constants"
	requestutil "github.com/mrfuxi/gae-blog/internal/platform/request"
	"github.com/mrfuxi/gae-blog/internal/platform/respond"
	"github.com/mrfuxi/gae-blog/internal/platform/sec"
	"github.com/mrfuxi/gae-blog/internal/platform/validate"
	"github.com/mrfuxi/gae-blog/internal/users/auth"
)

// FormErrorHeading prefixes the messages of a rejected post form.
const FormErrorHeading = "There are problems with the form:"

// SessionManager opens and closes browser sessions.
//
// [auth.Service] satisfies it.
type SessionManager interface {
	Login(ctx context.Context, username, password string) (*auth.LoginSession, error)
	Logout(ctx context.Context, claims *sec.AuthClaims) error
}

// Options tunes the HTML handler.
type Options struct {
	// CookieSecure marks the session cookie Secure. Disable only for plain
	// HTTP development setups.
	CookieSecure bool
}

// Handler renders the blog pages.
type Handler struct {
	posts    *post.Service
	sessions SessionManager
	renderer *renderer
	options  Options
}

// NewHandler parses the embedded templates and builds the handler.
func NewHandler(posts *post.Service, sessions SessionManager, options Options) (*Handler, error) {
	renderer, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &Handler{
		posts:    posts,
		sessions: sessions,
		renderer: renderer,
		options:  options,
	}, nil
}

// Routes returns a [chi.Router] serving the pages and embedded assets.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.home)
	router.Get("/blog/", handler.blog)
	router.Get("/about_me/", handler.aboutMe)

	router.Route("/blog/post", func(r chi.Router) {
		r.Post("/", handler.savePost)
		r.Get("/{slug}/", handler.showPost)
		r.Post("/{slug}/", handler.savePost)
		r.Delete("/{slug}/", handler.deletePost)
	})

	router.Get("/login/", handler.loginPage)
	router.Post("/login/", handler.login)
	router.Get("/logout/", handler.logout)

	static, _ := fs.Sub(assets, "static")
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		handler.errorPage(writer, request, apperr.NotFound("Page"))
	})

	return router
}

// # Read Pages

/*
Home lists the most recent posts.

GET /
*/
func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.posts.Recent(request.Context())
	if err != nil {
		handler.errorPage(writer, request, err)
		return
	}
	handler.renderList(writer, request, pageHome, posts)
}

/*
Blog lists every post.

GET /blog/
*/
func (handler *Handler) blog(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.posts.All(request.Context())
	if err != nil {
		handler.errorPage(writer, request, err)
		return
	}
	handler.renderList(writer, request, pageBlog, posts)
}

func (handler *Handler) renderList(writer http.ResponseWriter, request *http.Request, name string, posts []*post.Post) {
	articles := make([]article, 0, len(posts))
	for _, p := range posts {
		articles = append(articles, article{Post: p, Short: true})
	}

	handler.renderer.page(writer, request, http.StatusOK, name, pageData{
		Identity: requestutil.Identity(request),
		Articles: articles,
		Editor:   editor{Action: "/blog/post/"},
	})
}

/*
ShowPost renders a single post in full.

GET /blog/post/{slug}/

Response:
  - 200: The post page
  - 404: No post, or more than one, has this slug
*/
func (handler *Handler) showPost(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.posts.FindBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		handler.errorPage(writer, request, err)
		return
	}

	handler.renderer.page(writer, request, http.StatusOK, pagePost, pageData{
		Identity: requestutil.Identity(request),
		Article:  article{Post: found},
	})
}

func (handler *Handler) aboutMe(writer http.ResponseWriter, request *http.Request) {
	handler.renderer.page(writer, request, http.StatusOK, pageAboutMe, pageData{
		Identity: requestutil.Identity(request),
	})
}

// # Admin Writes

/*
SavePost creates a post (no slug) or updates the post at slug.

POST /blog/post/
POST /blog/post/{slug}/

Response:
  - 200: Article fragment, preview on create and full body on update
  - 400: Form problems or duplicate title, as an HTML snippet
  - 403: Caller is not an administrator
  - 404: No post at slug
*/
func (handler *Handler) savePost(writer http.ResponseWriter, request *http.Request) {
	who := requestutil.Identity(request)
	if !who.IsAdmin() {
		handler.writeError(writer, request, post.ErrForbidden)
		return
	}

	if err := requestutil.ParseForm(writer, request); err != nil {
		handler.writeError(writer, request, err)
		return
	}

	input := post.Input{
		Title: request.PostFormValue(post.FieldTitle),
		Body:  request.PostFormValue(post.FieldBody),
	}

	saved, created, err := handler.posts.Save(request.Context(), who, requestutil.Param(request, "slug"), input)
	if err != nil {
		handler.writeError(writer, request, err)
		return
	}

	handler.renderer.fragment(writer, request, http.StatusOK, article{Post: saved, Short: created})
}

/*
DeletePost removes the post at slug.

DELETE /blog/post/{slug}/

Response:
  - 204: Deleted
  - 403: Caller is not an administrator
  - 404: No post at slug
*/
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	err := handler.posts.Delete(request.Context(), requestutil.Identity(request), requestutil.Param(request, "slug"))
	if err != nil {
		handler.writeError(writer, request, err)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

// # Error Rendering

// writeError answers a write request. Not-found gets the full page; every
// other failure is a short HTML body the editor shows inline.
func (handler *Handler) writeError(writer http.ResponseWriter, request *http.Request, err error) {
	appError := respond.Resolve(request, err)
	if appError.HTTPStatus == http.StatusNotFound {
		handler.errorPage(writer, request, appError)
		return
	}

	body := template.HTMLEscapeString(appError.Message)
	if appError.Code == validate.ErrInvalidForm.Code {
		lines := []string{FormErrorHeading}
		for _, message := range appError.Messages() {
			lines = append(lines, template.HTMLEscapeString(message))
		}
		body = strings.Join(lines, "<br/>")
	}

	handler.renderer.write(writer, appError.HTTPStatus, []byte(body))
}

// errorPage renders err as a full page with its status code.
func (handler *Handler) errorPage(writer http.ResponseWriter, request *http.Request, err error) {
	appError := respond.Resolve(request, err)

	message := appError.Message
	if appError.HTTPStatus == http.StatusNotFound {
		message = "Page not found"
	}

	handler.renderer.page(writer, request, appError.HTTPStatus, pageError, pageData{
		Identity: requestutil.Identity(request),
		Error:    message,
	})
}

// sessionCookie builds the session cookie. An empty value with a negative
// MaxAge clears it.
func (handler *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     constants.SessionCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   handler.options.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
