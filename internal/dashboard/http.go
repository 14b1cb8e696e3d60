package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/vocaboard/internal/platform/request"
	"github.com/taibuivan/vocaboard/internal/platform/respond"
)

type Handler struct {
	registry *Registry
}

func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.getBoard)
	router.Post("/{resource}/refresh", handler.refresh)
}

func (handler *Handler) getBoard(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, handler.registry.Board(userID).Snapshot())
}

func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	state, err := handler.registry.Refresh(request.Context(), userID, requestutil.Credential(request), requestutil.Param(request, "resource"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, state)
}
