package roadmap

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

type Repository interface {
	ListRoadmaps(ctx context.Context, cred apiclient.Credential, filter Filter, params pagination.Params) (pagination.List[Roadmap], error)
	GetRoadmap(ctx context.Context, cred apiclient.Credential, id string) (Roadmap, error)
	CreateRoadmap(ctx context.Context, cred apiclient.Credential, input Input) (Roadmap, error)
	UpdateRoadmap(ctx context.Context, cred apiclient.Credential, id string, input Input) (Roadmap, error)
	DeleteRoadmap(ctx context.Context, cred apiclient.Credential, id string) error
}
