package member

import (
	"context"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

const resourcePath = "users"

type APIRepository struct {
	client *apiclient.Client
}

func NewAPIRepository(client *apiclient.Client) *APIRepository {
	return &APIRepository{client: client}
}

func (repository *APIRepository) ListTeachers(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[Member], error) {
	var list pagination.List[Member]
	err := repository.client.Get(ctx, cred, resourcePath+"/teachers", params.Values(), &list)
	return list, err
}

func (repository *APIRepository) UpdateRole(ctx context.Context, cred apiclient.Credential, id string, role sec.Role) (Member, error) {
	var member Member
	err := repository.client.Patch(ctx, cred, resourcePath+"/"+id+"/role", RoleChange{Role: role.String()}, &member)
	return member, err
}

func (repository *APIRepository) Me(ctx context.Context, cred apiclient.Credential) (Member, error) {
	var member Member
	err := repository.client.Get(ctx, cred, resourcePath+"/me", nil, &member)
	return member, err
}
