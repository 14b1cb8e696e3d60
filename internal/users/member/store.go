package member

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

type Repository interface {
	ListTeachers(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[Member], error)
	UpdateRole(ctx context.Context, cred apiclient.Credential, id string, role sec.Role) (Member, error)
	Me(ctx context.Context, cred apiclient.Credential) (Member, error)
}
