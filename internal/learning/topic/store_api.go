package topic

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

const resourcePath = "topics"

// APIRepository reads and writes topics on the learning backend.
type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (repository *APIRepository) ListTopics(ctx context.Context, cred apiclient.Credential, filter Filter, params pagination.Params) (pagination.List[Topic], error) {
	query := params.Values()
	if filter.RoadmapID != "" {
		query.Set(FieldRoadmapID, filter.RoadmapID)
	}

	var list pagination.List[Topic]
	err := repository.client.Get(ctx, cred, resourcePath, query, &list)
	return list, err
}

func (repository *APIRepository) GetTopic(ctx context.Context, cred apiclient.Credential, id string) (Topic, error) {
	var topic Topic
	err := repository.client.Get(ctx, cred, resourcePath+"/"+id, nil, &topic)
	return topic, err
}

func (repository *APIRepository) CreateTopic(ctx context.Context, cred apiclient.Credential, input Input) (Topic, error) {
	var topic Topic
	err := repository.client.Post(ctx, cred, resourcePath, input, &topic)
	return topic, err
}

func (repository *APIRepository) UpdateTopic(ctx context.Context, cred apiclient.Credential, id string, input Input) (Topic, error) {
	var topic Topic
	err := repository.client.Put(ctx, cred, resourcePath+"/"+id, input, &topic)
	return topic, err
}

func (repository *APIRepository) DeleteTopic(ctx context.Context, cred apiclient.Credential, id string) error {
	return repository.client.Delete(ctx, cred, resourcePath+"/"+id, nil)
}
