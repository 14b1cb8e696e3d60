package exercise

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

// SubmitResult stores a finished exercise. The backend takes the student
// from the credential, so the submission carries no student id.
func (service *Service) SubmitResult(ctx context.Context, cred apiclient.Credential, submission Submission) (Result, error) {
	submission.TopicID = strings.TrimSpace(submission.TopicID)

	validator := &validate.Validator{}
	validator.ID(FieldTopicID, submission.TopicID)
	validator.Range(FieldTotal, submission.Total, 1, MaxQuestions)
	validator.Range(FieldScore, submission.Score, 0, max(submission.Total, 0))
	validator.Custom(FieldDuration, submission.DurationSeconds < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		return Result{}, err
	}

	result, err := service.repo.SubmitResult(ctx, cred, submission)
	if err != nil {
		return Result{}, err
	}

	service.logger.InfoContext(ctx, "exercise_result_submitted",
		slog.String("result_id", result.ID),
		slog.String("topic_id", submission.TopicID),
		slog.Int("score", submission.Score),
		slog.Int("total", submission.Total),
	)
	return result, nil
}

func (service *Service) ListResults(ctx context.Context, cred apiclient.Credential, filter Filter, params pagination.Params) (pagination.List[Result], error) {
	validator := &validate.Validator{}
	validator.OptionalID(FieldTopicID, filter.TopicID)
	validator.OptionalID(FieldStudentID, filter.StudentID)
	if err := validator.Err(); err != nil {
		return pagination.List[Result]{}, err
	}
	return service.repo.ListResults(ctx, cred, filter, params)
}
