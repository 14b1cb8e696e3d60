package roadmap

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/validate"
	"github.com/taibuivan/vocaboard/pkg/pagination"
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

func (service *Service) ListRoadmaps(ctx context.Context, cred apiclient.Credential, filter Filter, params pagination.Params) (pagination.List[Roadmap], error) {
	if err := (&validate.Validator{}).OptionalID(FieldCategoryID, filter.CategoryID).Err(); err != nil {
		return pagination.List[Roadmap]{}, err
	}
	return service.repo.ListRoadmaps(ctx, cred, filter, params)
}

func (service *Service) GetRoadmap(ctx context.Context, cred apiclient.Credential, id string) (Roadmap, error) {
	if err := (&validate.Validator{}).ID(FieldID, id).Err(); err != nil {
		return Roadmap{}, err
	}
	return service.repo.GetRoadmap(ctx, cred, id)
}

func (service *Service) CreateRoadmap(ctx context.Context, cred apiclient.Credential, input Input) (Roadmap, error) {
	input = normalize(input)
	if err := validateInput(&validate.Validator{}, input).Err(); err != nil {
		return Roadmap{}, err
	}

	roadmap, err := service.repo.CreateRoadmap(ctx, cred, input)
	if err != nil {
		return Roadmap{}, err
	}

	service.logger.InfoContext(ctx, "roadmap_created",
		slog.String("roadmap_id", roadmap.ID),
		slog.String("category_id", input.CategoryID),
	)
	return roadmap, nil
}

func (service *Service) UpdateRoadmap(ctx context.Context, cred apiclient.Credential, id string, input Input) (Roadmap, error) {
	input = normalize(input)

	validator := (&validate.Validator{}).ID(FieldID, id)
	if err := validateInput(validator, input).Err(); err != nil {
		return Roadmap{}, err
	}

	roadmap, err := service.repo.UpdateRoadmap(ctx, cred, id, input)
	if err != nil {
		return Roadmap{}, err
	}

	service.logger.InfoContext(ctx, "roadmap_updated", slog.String("roadmap_id", id))
	return roadmap, nil
}

func (service *Service) DeleteRoadmap(ctx context.Context, cred apiclient.Credential, id string) error {
	if err := (&validate.Validator{}).ID(FieldID, id).Err(); err != nil {
		return err
	}

	if err := service.repo.DeleteRoadmap(ctx, cred, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "roadmap_deleted", slog.String("roadmap_id", id))
	return nil
}

func normalize(input Input) Input {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Level = Level(strings.ToLower(strings.TrimSpace(string(input.Level))))
	if input.Level == "" {
		input.Level = LevelBeginner
	}
	return input
}

func validateInput(validator *validate.Validator, input Input) *validate.Validator {
	validator.ID(FieldCategoryID, input.CategoryID)
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 160)
	validator.MaxLen(FieldDescription, input.Description, 2000)
	validator.OneOf(FieldLevel, string(input.Level), string(LevelBeginner), string(LevelIntermediate), string(LevelAdvanced))
	return validator
}
