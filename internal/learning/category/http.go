package category

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

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Any signed-in principal
	router.Get("/", handler.listCategories)
	router.Get("/{id}", handler.getCategory)

	// Authors only
	router.Group(func(authorRoute chi.Router) {
		authorRoute.Use(access.NewGate(handler.roles, sec.RoleTeacher, sec.RoleStaff, sec.RoleAdmin).Handler)

		authorRoute.Post("/", handler.createCategory)
		authorRoute.Put("/{id}", handler.updateCategory)
		authorRoute.Delete("/{id}", handler.deleteCategory)
	})
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	list, err := handler.service.ListCategories(request.Context(), requestutil.Credential(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list.Items, list.Meta(params))
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	category, err := handler.service.GetCategory(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.CreateCategory(request.Context(), requestutil.Credential(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, category)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.UpdateCategory(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCategory(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
