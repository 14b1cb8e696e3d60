package exercise

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

type Repository interface {
	SubmitResult(ctx context.Context, cred apiclient.Credential, submission Submission) (Result, error)
	ListResults(ctx context.Context, cred apiclient.Credential, filter Filter, params pagination.Params) (pagination.List[Result], error)
}
