package topic

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

type Repository interface {
	ListTopics(ctx context.Context, cred apiclient.Credential, filter Filter, params pagination.Params) (pagination.List[Topic], error)
	GetTopic(ctx context.Context, cred apiclient.Credential, id string) (Topic, error)
	CreateTopic(ctx context.Context, cred apiclient.Credential, input Input) (Topic, error)
	UpdateTopic(ctx context.Context, cred apiclient.Credential, id string, input Input) (Topic, error)
	DeleteTopic(ctx context.Context, cred apiclient.Credential, id string) error
}
