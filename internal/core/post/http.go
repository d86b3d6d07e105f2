package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mrfuxi/gae-blog/internal/platform/request"
	"github.com/mrfuxi/gae-blog/internal/platform/respond"
	"github.com/mrfuxi/gae-blog/pkg/convert"
)

// # Handler Implementation

// Handler exposes posts over the JSON API.
type Handler struct {
	service *Service
}

// NewHandler constructs a new post [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the post endpoints.
//
// Reads are public. Writes are open at the routing level; the service
// rejects non-administrators with 403.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listPosts)
	router.Post("/", handler.createPost)
	router.Get("/{slug}", handler.getPost)
	router.Put("/{slug}", handler.updatePost)
	router.Delete("/{slug}", handler.deletePost)

	return router
}

func (handler *Handler) listPosts(writer http.ResponseWriter, request *http.Request) {
	list := handler.service.All
	if convert.ToBool(request.URL.Query().Get("recent")) {
		list = handler.service.Recent
	}

	posts, err := list(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if posts == nil {
		posts = []*Post{}
	}
	respond.OK(writer, posts)
}

func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	post, err := handler.service.FindBySlug(request.Context(), requestutil.Param(request, "slug"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) createPost(writer http.ResponseWriter, request *http.Request) {
	who := requestutil.Identity(request)

	// Authorization precedes body parsing
	if !who.IsAdmin() {
		respond.Error(writer, request, ErrForbidden)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Create(request.Context(), who, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, post)
}

func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	who := requestutil.Identity(request)

	// Authorization precedes body parsing
	if !who.IsAdmin() {
		respond.Error(writer, request, ErrForbidden)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Update(request.Context(), who, requestutil.Param(request, "slug"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, post)
}

func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.Identity(request), requestutil.Param(request, "slug")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
