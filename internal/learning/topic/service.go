package topic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/validate"
	"github.com/taibuivan/vocaboard/pkg/pagination"
	"github.com/taibuivan/vocaboard/pkg/slice"
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

func (service *Service) ListTopics(ctx context.Context, cred apiclient.Credential, filter Filter, params pagination.Params) (pagination.List[Topic], error) {
	if err := (&validate.Validator{}).OptionalID(FieldRoadmapID, filter.RoadmapID).Err(); err != nil {
		return pagination.List[Topic]{}, err
	}
	return service.repo.ListTopics(ctx, cred, filter, params)
}

func (service *Service) GetTopic(ctx context.Context, cred apiclient.Credential, id string) (Topic, error) {
	if err := (&validate.Validator{}).ID(FieldID, id).Err(); err != nil {
		return Topic{}, err
	}
	return service.repo.GetTopic(ctx, cred, id)
}

func (service *Service) CreateTopic(ctx context.Context, cred apiclient.Credential, input Input) (Topic, error) {
	input = Normalize(input)
	if err := Validate(&validate.Validator{}, input).Err(); err != nil {
		return Topic{}, err
	}

	topic, err := service.repo.CreateTopic(ctx, cred, input)
	if err != nil {
		return Topic{}, err
	}

	service.logger.InfoContext(ctx, "topic_created",
		slog.String("topic_id", topic.ID),
		slog.String("roadmap_id", input.RoadmapID),
		slog.Int("words", len(input.Words)),
	)
	return topic, nil
}

func (service *Service) UpdateTopic(ctx context.Context, cred apiclient.Credential, id string, input Input) (Topic, error) {
	input = Normalize(input)

	validator := (&validate.Validator{}).ID(FieldID, id)
	if err := Validate(validator, input).Err(); err != nil {
		return Topic{}, err
	}

	topic, err := service.repo.UpdateTopic(ctx, cred, id, input)
	if err != nil {
		return Topic{}, err
	}

	service.logger.InfoContext(ctx, "topic_updated", slog.String("topic_id", id))
	return topic, nil
}

func (service *Service) DeleteTopic(ctx context.Context, cred apiclient.Credential, id string) error {
	if err := (&validate.Validator{}).ID(FieldID, id).Err(); err != nil {
		return err
	}

	if err := service.repo.DeleteTopic(ctx, cred, id); err != nil {
		return err
	}

	service.logger.WarnContext(ctx, "topic_deleted", slog.String("topic_id", id))
	return nil
}

// Normalize trims the payload, drops blank words and derives the slug.
func Normalize(input Input) Input {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Slug == "" {
		input.Slug = slug.From(input.Title)
	}

	input.Words = slice.Filter(slice.Map(input.Words, normalizeWord), func(word Word) bool {
		return word.Term != "" || word.Meaning != ""
	})
	return input
}

// Validate adds the topic rules to validator.
func Validate(validator *validate.Validator, input Input) *validate.Validator {
	validator.ID(FieldRoadmapID, input.RoadmapID)
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 160)
	validator.Slug(FieldSlug, input.Slug)
	validator.Custom(FieldOrder, input.Order < 0, "Must not be negative")
	validator.Custom(FieldWords, len(input.Words) > MaxWords, fmt.Sprintf("At most %d words per topic", MaxWords))

	for i, word := range input.Words {
		field := fmt.Sprintf("%s[%d]", FieldWords, i)
		validator.Required(field+".term", word.Term).MaxLen(field+".term", word.Term, 100)
		validator.Required(field+".meaning", word.Meaning).MaxLen(field+".meaning", word.Meaning, 300)
	}
	return validator
}

func normalizeWord(word Word) Word {
	word.Term = strings.TrimSpace(word.Term)
	word.Meaning = strings.TrimSpace(word.Meaning)
	word.Pronunciation = strings.TrimSpace(word.Pronunciation)
	word.PartOfSpeech = strings.ToLower(strings.TrimSpace(word.PartOfSpeech))
	word.Example = strings.TrimSpace(word.Example)
	return word
}
