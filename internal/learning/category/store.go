package category

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

type Repository interface {
	ListCategories(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[Category], error)
	GetCategory(ctx context.Context, cred apiclient.Credential, id string) (Category, error)
	CreateCategory(ctx context.Context, cred apiclient.Credential, input Input) (Category, error)
	UpdateCategory(ctx context.Context, cred apiclient.Credential, id string, input Input) (Category, error)
	DeleteCategory(ctx context.Context, cred apiclient.Credential, id string) error
}
