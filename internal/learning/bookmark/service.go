package bookmark

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/validate"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListBookmarks returns the bookmarks of the credential's owner.
func (service *Service) ListBookmarks(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[Bookmark], error) {
	return service.repo.ListBookmarks(ctx, cred, params)
}

func (service *Service) CreateBookmark(ctx context.Context, cred apiclient.Credential, input Input) (Bookmark, error) {
	input.TopicID = strings.TrimSpace(input.TopicID)
	input.Term = strings.TrimSpace(input.Term)
	input.Note = strings.TrimSpace(input.Note)

	validator := &validate.Validator{}
	validator.ID(FieldTopicID, input.TopicID)
	validator.MaxLen(FieldTerm, input.Term, 100)
	validator.MaxLen(FieldNote, input.Note, 500)
	if err := validator.Err(); err != nil {
		return Bookmark{}, err
	}

	bookmark, err := service.repo.CreateBookmark(ctx, cred, input)
	if err != nil {
		return Bookmark{}, err
	}

	service.logger.InfoContext(ctx, "bookmark_created", slog.String("bookmark_id", bookmark.ID), slog.String("topic_id", input.TopicID))
	return bookmark, nil
}

func (service *Service) DeleteBookmark(ctx context.Context, cred apiclient.Credential, id string) error {
	if err := (&validate.Validator{}).ID(FieldID, id).Err(); err != nil {
		return err
	}

	if err := service.repo.DeleteBookmark(ctx, cred, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "bookmark_deleted", slog.String("bookmark_id", id))
	return nil
}
