package exercise

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
	router.With(access.NewGate(handler.roles, sec.RoleStudent).Handler).Post("/", handler.submitResult)
	router.With(access.NewGate(handler.roles, sec.RoleTeacher, sec.RoleParent, sec.RoleStaff, sec.RoleAdmin).Handler).Get("/", handler.listResults)
}

func (handler *Handler) submitResult(writer http.ResponseWriter, request *http.Request) {
	var submission Submission
	if err := requestutil.DecodeJSON(request, &submission); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.SubmitResult(request.Context(), requestutil.Credential(request), submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) listResults(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()
	filter := Filter{
		TopicID:   query.Get(FieldTopicID),
		StudentID: query.Get(FieldStudentID),
	}

	list, err := handler.service.ListResults(request.Context(), requestutil.Credential(request), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, list.Items, list.Meta(params))
}
