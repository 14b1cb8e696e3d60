package member

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/internal/platform/validate"
	"github.com/taibuivan/vocaboard/pkg/pagination"
	"github.com/taibuivan/vocaboard/pkg/slice"
)

// RoleInvalidator forgets any remembered role of a user.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

// # Service Layer

// Service reads member accounts and applies role changes.
//
// A successful role change invalidates the resolver's memo for that user, so
// the next gated request observes the new role.
type Service struct {
	repo        Repository
	invalidator RoleInvalidator
	logger      *slog.Logger
}

func NewService(repo Repository, invalidator RoleInvalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
	}
}

// ListTeachers returns the teacher roster. Entries the backend reports under
// another role are dropped from the page; Total stays the backend's count,
// since rows filtered from other pages are unknown here.
func (service *Service) ListTeachers(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[Member], error) {
	list, err := service.repo.ListTeachers(ctx, cred, params)
	if err != nil {
		return pagination.List[Member]{}, err
	}

	teachers := slice.Filter(list.Items, func(m Member) bool {
		return m.Role == "" || m.Role == sec.RoleTeacher
	})
	if dropped := len(list.Items) - len(teachers); dropped > 0 {
		service.logger.WarnContext(ctx, "teacher_roster_filtered", slog.Int("dropped", dropped))
	}
	list.Items = teachers
	return list, nil
}

/*
UpdateRole assigns a new role to the user identified by id.

The role is validated against the enumeration before any request is sent.
*/
func (service *Service) UpdateRole(ctx context.Context, cred apiclient.Credential, id string, change RoleChange) (Member, error) {
	validator := &validate.Validator{}
	validator.ID(FieldID, id)
	validator.Role(FieldRole, change.Role)
	if err := validator.Err(); err != nil {
		return Member{}, err
	}

	role, _ := sec.ParseRole(change.Role)
	member, err := service.repo.UpdateRole(ctx, cred, id, role)
	if err != nil {
		return Member{}, err
	}

	if service.invalidator != nil {
		service.invalidator.Invalidate(ctx, id)
	}

	service.logger.InfoContext(ctx, "member_role_updated",
		slog.String("member_id", id),
		slog.String("member", member.Label()),
		slog.String("role", role.String()),
	)
	return member, nil
}

// Me returns the account behind cred.
func (service *Service) Me(ctx context.Context, cred apiclient.Credential) (Member, error) {
	return service.repo.Me(ctx, cred)
}
