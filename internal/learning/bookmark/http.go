package bookmark

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vocaboard/internal/access"
	requestutil "github.com/taibuivan/vocaboard/internal/platform/request"
	"github.com/taibuivan/vocaboard/internal/platform/respond"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

type Handler struct {
	service *Service
	roles   access.RoleSource
}

func NewHandler(service *Service, roles access.RoleSource) *Handler {
	return &Handler{service: service, roles: roles}
}

// RegisterRoutes mounts the bookmark routes. Bookmarks belong to students only.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(access.NewGate(handler.roles, sec.RoleStudent).Handler)

	router.Get("/", handler.listBookmarks)
	router.Post("/", handler.createBookmark)
	router.Delete("/{id}", handler.deleteBookmark)
}

func (handler *Handler) listBookmarks(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	list, err := handler.service.ListBookmarks(request.Context(), requestutil.Credential(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, list.Items, list.Meta(params))
}

func (handler *Handler) createBookmark(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookmark, err := handler.service.CreateBookmark(request.Context(), requestutil.Credential(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, bookmark)
}

func (handler *Handler) deleteBookmark(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBookmark(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
