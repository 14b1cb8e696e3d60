package generate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/taibuivan/vocaboard/internal/learning/topic"
	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/internal/platform/validate"
	"github.com/taibuivan/vocaboard/pkg/slice"
)

const endpoint = "ai/generate"

// sniffBytes is how much of the upload http.DetectContentType looks at.
const sniffBytes = 512

// Uploader is the part of the API client the service needs.
type Uploader interface {
	Upload(ctx context.Context, cred apiclient.Credential, path string, fields map[string]string, file apiclient.FilePart, out any) error
}

type Service struct {
	uploader Uploader
	logger   *slog.Logger
}

// NewService wires the generator. uploader should carry
// [constants.GenerateUpstreamTimeout] rather than the default timeout.
func NewService(uploader Uploader, logger *slog.Logger) *Service {
	return &Service{
		uploader: uploader,
		logger:   logger,
	}
}

// Generate forwards the image and returns the proposed words.
func (service *Service) Generate(ctx context.Context, cred apiclient.Credential, request Request) (Result, error) {
	if request.Size > constants.MaxUploadBytes {
		return Result{}, apperr.TooLarge("Image must be at most 8 MB")
	}

	// The declared part type is ignored; the bytes decide.
	var contentType string
	image := request.Image
	if image != nil {
		detected, rewound, err := sniff(image)
		if err != nil {
			return Result{}, apperr.ValidationError("Image could not be read",
				apperr.FieldError{Field: FieldImage, Message: "Image could not be read"})
		}
		contentType, image = detected, rewound
	}

	validator := &validate.Validator{}
	validator.Custom(FieldImage, image == nil || request.Size == 0, "An image is required")
	validator.Custom(FieldImage, image != nil && request.Size > 0 && !acceptedTypes[contentType], "Must be a PNG, JPEG, WebP or GIF image")
	validator.Range(FieldCount, request.Count, 0, MaxWords)
	validator.MaxLen(FieldLanguage, request.Language, 16)
	if err := validator.Err(); err != nil {
		return Result{}, err
	}

	fields := map[string]string{}
	if request.Language != "" {
		fields[FieldLanguage] = request.Language
	}
	if request.Count > 0 {
		fields[FieldCount] = strconv.Itoa(request.Count)
	}

	file := apiclient.FilePart{
		Field:       FieldImage,
		FileName:    request.FileName,
		ContentType: contentType,
		Content:     image,
	}

	var result Result
	if err := service.uploader.Upload(ctx, cred, endpoint, fields, file, &result); err != nil {
		return Result{}, err
	}

	// Generators occasionally emit empty rows
	result.Words = slice.Filter(result.Words, func(word topic.Word) bool {
		return strings.TrimSpace(word.Term) != ""
	})

	service.logger.InfoContext(ctx, "vocabulary_generated",
		slog.String("file_name", request.FileName),
		slog.String("content_type", contentType),
		slog.String("declared_type", request.ContentType),
		slog.Int64("bytes", request.Size),
		slog.Int("words", len(result.Words)),
	)
	return result, nil
}

// sniff detects the content type from the leading bytes and returns a reader
// that still yields the whole upload.
func sniff(image io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffBytes)
	read, err := io.ReadFull(image, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, err
	}
	head = head[:read]

	detected := http.DetectContentType(head)
	if base, _, found := strings.Cut(detected, ";"); found {
		detected = base
	}
	return strings.TrimSpace(detected), io.MultiReader(bytes.NewReader(head), image), nil
}
