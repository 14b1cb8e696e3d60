package topic

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
	router.Get("/", handler.listTopics)
	router.Get("/{id}", handler.getTopic)

	router.Group(func(authorRoute chi.Router) {
		authorRoute.Use(access.NewGate(handler.roles, sec.RoleTeacher, sec.RoleStaff, sec.RoleAdmin).Handler)

		authorRoute.Post("/", handler.createTopic)
		authorRoute.Put("/{id}", handler.updateTopic)
		authorRoute.Delete("/{id}", handler.deleteTopic)
	})
}

func (handler *Handler) listTopics(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{
		RoadmapID: request.URL.Query().Get(FieldRoadmapID),
	}

	list, err := handler.service.ListTopics(request.Context(), requestutil.Credential(request), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, list.Items, list.Meta(params))
}

func (handler *Handler) getTopic(writer http.ResponseWriter, request *http.Request) {
	topic, err := handler.service.GetTopic(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, topic)
}

func (handler *Handler) createTopic(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	topic, err := handler.service.CreateTopic(request.Context(), requestutil.Credential(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, topic)
}

func (handler *Handler) updateTopic(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	topic, err := handler.service.UpdateTopic(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, topic)
}

func (handler *Handler) deleteTopic(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteTopic(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
