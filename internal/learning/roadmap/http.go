package roadmap

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
	router.Get("/", handler.listRoadmaps)
	router.Get("/{id}", handler.getRoadmap)

	router.Group(func(authorRoute chi.Router) {
		authorRoute.Use(access.NewGate(handler.roles, sec.RoleTeacher, sec.RoleStaff, sec.RoleAdmin).Handler)

		authorRoute.Post("/", handler.createRoadmap)
		authorRoute.Put("/{id}", handler.updateRoadmap)
		authorRoute.Delete("/{id}", handler.deleteRoadmap)
	})
}

func (handler *Handler) listRoadmaps(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		CategoryID: request.URL.Query().Get(FieldCategoryID),
	}

	list, err := handler.service.ListRoadmaps(request.Context(), requestutil.Credential(request), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list.Items, list.Meta(params))
}

func (handler *Handler) getRoadmap(writer http.ResponseWriter, request *http.Request) {
	roadmap, err := handler.service.GetRoadmap(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, roadmap)
}

func (handler *Handler) createRoadmap(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	roadmap, err := handler.service.CreateRoadmap(request.Context(), requestutil.Credential(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, roadmap)
}

func (handler *Handler) updateRoadmap(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	roadmap, err := handler.service.UpdateRoadmap(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, roadmap)
}

func (handler *Handler) deleteRoadmap(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteRoadmap(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
