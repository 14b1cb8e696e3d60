package generate

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vocaboard/internal/access"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	requestutil "github.com/taibuivan/vocaboard/internal/platform/request"
	"github.com/taibuivan/vocaboard/internal/platform/respond"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
)

// formOverhead leaves room for the text fields and multipart boundaries.
const formOverhead = 1 << 20

type Handler struct {
	service *Service
	roles   access.RoleSource
}

func NewHandler(service *Service, roles access.RoleSource) *Handler {
	return &Handler{service: service, roles: roles}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(access.NewGate(handler.roles, sec.RoleTeacher).Handler).Post("/", handler.generate)
}

/*
POST /api/v1/generate.

Request:
  - multipart/form-data: image (file), language, count

Response:
  - 200: Result
  - 400: missing or unsupported image
  - 413: image larger than the upload limit
*/
func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	if request.ContentLength > constants.MaxUploadBytes+formOverhead {
		respond.Error(writer, request, apperr.TooLarge("Image must be at most 8 MB"))
		return
	}
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes+formOverhead)

	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.TooLarge("Image must be at most 8 MB"))
			return
		}
		respond.Error(writer, request, apperr.ValidationError("Expected a multipart form with an image",
			apperr.FieldError{Field: FieldImage, Message: "An image is required"}))
		return
	}
	defer request.MultipartForm.RemoveAll()

	generateRequest := Request{
		Language: strings.TrimSpace(request.FormValue(FieldLanguage)),
		Count:    requestutil.FormInt(request, FieldCount, 0),
	}

	file, header, err := request.FormFile(FieldImage)
	if err == nil {
		defer file.Close()
		generateRequest.FileName = header.Filename
		generateRequest.ContentType = header.Header.Get(constants.HeaderContentType)
		generateRequest.Size = header.Size
		generateRequest.Image = file
	}

	result, err := handler.service.Generate(request.Context(), requestutil.Credential(request), generateRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
