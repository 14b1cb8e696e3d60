package category

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

const resourcePath = "categories"

// APIRepository reads and writes categories on the learning backend.
type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (repository *APIRepository) ListCategories(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[Category], error) {
	var list pagination.List[Category]
	err := repository.client.Get(ctx, cred, resourcePath, params.Values(), &list)
	return list, err
}

func (repository *APIRepository) GetCategory(ctx context.Context, cred apiclient.Credential, id string) (Category, error) {
	var category Category
	err := repository.client.Get(ctx, cred, resourcePath+"/"+id, nil, &category)
	return category, err
}

func (repository *APIRepository) CreateCategory(ctx context.Context, cred apiclient.Credential, input Input) (Category, error) {
	var category Category
	err := repository.client.Post(ctx, cred, resourcePath, input, &category)
	return category, err
}

func (repository *APIRepository) UpdateCategory(ctx context.Context, cred apiclient.Credential, id string, input Input) (Category, error) {
	var category Category
	err := repository.client.Put(ctx, cred, resourcePath+"/"+id, input, &category)
	return category, err
}

func (repository *APIRepository) DeleteCategory(ctx context.Context, cred apiclient.Credential, id string) error {
	return repository.client.Delete(ctx, cred, resourcePath+"/"+id, nil)
}
