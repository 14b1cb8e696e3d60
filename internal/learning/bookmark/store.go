package bookmark

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

type Repository interface {
	ListBookmarks(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[Bookmark], error)
	CreateBookmark(ctx context.Context, cred apiclient.Credential, input Input) (Bookmark, error)
	DeleteBookmark(ctx context.Context, cred apiclient.Credential, id string) error
}
