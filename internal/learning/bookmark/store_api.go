package bookmark

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

const resourcePath = "bookmarks"

type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (repository *APIRepository) ListBookmarks(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[Bookmark], error) {
	var list pagination.List[Bookmark]
	err := repository.client.Get(ctx, cred, resourcePath, params.Values(), &list)
	return list, err
}

func (repository *APIRepository) CreateBookmark(ctx context.Context, cred apiclient.Credential, input Input) (Bookmark, error) {
	var bookmark Bookmark
	err := repository.client.Post(ctx, cred, resourcePath, input, &bookmark)
	return bookmark, err
}

func (repository *APIRepository) DeleteBookmark(ctx context.Context, cred apiclient.Credential, id string) error {
	return repository.client.Delete(ctx, cred, resourcePath+"/"+id, nil)
}
