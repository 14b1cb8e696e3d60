package cms

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vocaboard/internal/platform/request"
	"github.com/taibuivan/vocaboard/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{collection}", handler.getCollection)
}

func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	collection, err := handler.service.Collection(request.Context(), requestutil.Param(request, FieldCollection), request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, collection)
}
