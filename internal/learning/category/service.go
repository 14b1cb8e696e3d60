package category

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/validate"
	"github.com/taibuivan/vocaboard/pkg/pagination"
	"github.com/taibuivan/vocaboard/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCategories(ctx context.Context, cred apiclient.Credential, params pagination.Params) (pagination.List[Category], error) {
	return service.repo.ListCategories(ctx, cred, params)
}

func (service *Service) GetCategory(ctx context.Context, cred apiclient.Credential, id string) (Category, error) {
	if err := (&validate.Validator{}).ID(FieldID, id).Err(); err != nil {
		return Category{}, err
	}
	return service.repo.GetCategory(ctx, cred, id)
}

func (service *Service) CreateCategory(ctx context.Context, cred apiclient.Credential, input Input) (Category, error) {
	input = normalize(input)
	if err := validateInput(input); err != nil {
		return Category{}, err
	}

	category, err := service.repo.CreateCategory(ctx, cred, input)
	if err != nil {
		return Category{}, err
	}

	service.logger.InfoContext(ctx, "category_created", slog.String("category_id", category.ID), slog.String("slug", input.Slug))
	return category, nil
}

func (service *Service) UpdateCategory(ctx context.Context, cred apiclient.Credential, id string, input Input) (Category, error) {
	input = normalize(input)

	validator := &validate.Validator{}
	validator.ID(FieldID, id)
	if err := validateInto(validator, input).Err(); err != nil {
		return Category{}, err
	}

	category, err := service.repo.UpdateCategory(ctx, cred, id, input)
	if err != nil {
		return Category{}, err
	}

	service.logger.InfoContext(ctx, "category_updated", slog.String("category_id", id))
	return category, nil
}

func (service *Service) DeleteCategory(ctx context.Context, cred apiclient.Credential, id string) error {
	if err := (&validate.Validator{}).ID(FieldID, id).Err(); err != nil {
		return err
	}

	if err := service.repo.DeleteCategory(ctx, cred, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "category_deleted", slog.String("category_id", id))
	return nil
}

// normalize trims the payload and derives a slug from the name when none is given.
func normalize(input Input) Input {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Slug == "" {
		input.Slug = slug.From(input.Name)
	}
	return input
}

func validateInput(input Input) error {
	return validateInto(&validate.Validator{}, input).Err()
}

func validateInto(validator *validate.Validator, input Input) *validate.Validator {
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 120)
	validator.Slug(FieldSlug, input.Slug)
	validator.MaxLen(FieldDescription, input.Description, 1000)
	return validator
}
