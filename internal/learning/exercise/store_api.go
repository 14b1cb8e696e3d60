package exercise

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

const resourcePath = "exercise-results"

type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (repository *APIRepository) SubmitResult(ctx context.Context, cred apiclient.Credential, submission Submission) (Result, error) {
	var result Result
	err := repository.client.Post(ctx, cred, resourcePath, submission, &result)
	return result, err
}

func (repository *APIRepository) ListResults(ctx context.Context, cred apiclient.Credential, filter Filter, params pagination.Params) (pagination.List[Result], error) {
	query := params.Values()
	if filter.TopicID != "" {
		query.Set(FieldTopicID, filter.TopicID)
	}
	if filter.StudentID != "" {
		query.Set(FieldStudentID, filter.StudentID)
	}

	var list pagination.List[Result]
	err := repository.client.Get(ctx, cred, resourcePath, query, &list)
	return list, err
}
