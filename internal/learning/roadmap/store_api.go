package roadmap

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

const resourcePath = "roadmaps"

// APIRepository reads and writes roadmaps on the learning backend.
type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (repository *APIRepository) ListRoadmaps(ctx context.Context, cred apiclient.Credential, filter Filter, params pagination.Params) (pagination.List[Roadmap], error) {
	query := params.Values()
	if filter.CategoryID != "" {
		query.Set(FieldCategoryID, filter.CategoryID)
	}

	var list pagination.List[Roadmap]
	err := repository.client.Get(ctx, cred, resourcePath, query, &list)
	return list, err
}

func (repository *APIRepository) GetRoadmap(ctx context.Context, cred apiclient.Credential, id string) (Roadmap, error) {
	var roadmap Roadmap
	err := repository.client.Get(ctx, cred, resourcePath+"/"+id, nil, &roadmap)
	return roadmap, err
}

func (repository *APIRepository) CreateRoadmap(ctx context.Context, cred apiclient.Credential, input Input) (Roadmap, error) {
	var roadmap Roadmap
	err := repository.client.Post(ctx, cred, resourcePath, input, &roadmap)
	return roadmap, err
}

func (repository *APIRepository) UpdateRoadmap(ctx context.Context, cred apiclient.Credential, id string, input Input) (Roadmap, error) {
	var roadmap Roadmap
	err := repository.client.Put(ctx, cred, resourcePath+"/"+id, input, &roadmap)
	return roadmap, err
}

func (repository *APIRepository) DeleteRoadmap(ctx context.Context, cred apiclient.Credential, id string) error {
	return repository.client.Delete(ctx, cred, resourcePath+"/"+id, nil)
}
