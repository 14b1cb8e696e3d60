// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cms reads collections from the headless content backend.

The content backend is read-mostly and shared by every visitor, so calls use
the portal's static service token rather than the visitor's session, and
responses may be cached in Redis for [constants.ContentCacheTTL].
*/
package cms

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/internal/platform/validate"
)

// Collection is one content collection read.
type Collection struct {
	Name string          `json:"collection"`
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// forwardedParams are the query keys passed through to the content backend.
var forwardedParams = []string{"populate", "sort", "locale", "fields", "filters", "pagination"}

const FieldCollection = "collection"

// Service reads content collections.
type Service struct {
	client *apiclient.Client
	cred   apiclient.Credential
	cache  Cache
	logger *slog.Logger
}

// NewService returns a service bound to the content backend. A nil client
// means the backend is not configured and every read fails with 503.
func NewService(client *apiclient.Client, token string, cache Cache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = noCache{}
	}
	return &Service{
		client: client,
		cred:   apiclient.StaticCredential(token),
		cache:  cache,
		logger: logger,
	}
}

// Configured reports whether a content backend is wired.
func (service *Service) Configured() bool {
	return service.client != nil
}

// Collection fetches GET api/{name} from the content backend.
func (service *Service) Collection(ctx context.Context, name string, query url.Values) (Collection, error) {
	if !service.Configured() {
		return Collection{}, apperr.ServiceUnavailable("Content is not available")
	}

	name = strings.TrimSpace(name)
	if err := (&validate.Validator{}).Slug(FieldCollection, name).Err(); err != nil {
		return Collection{}, err
	}

	forwarded := filterQuery(query)
	key := name
	if encoded := forwarded.Encode(); encoded != "" {
		key += "?" + encoded
	}

	raw, hit, err := service.cache.Get(ctx, key)
	if err != nil {
		service.logger.WarnContext(ctx, "content_cache_get_failed", slog.String("key", key), slog.Any("error", err))
	}

	if !hit {
		var body json.RawMessage
		if err := service.client.Get(ctx, service.cred, name, forwarded, &body); err != nil {
			return Collection{}, err
		}
		raw = body

		if err := service.cache.Set(ctx, key, raw, constants.ContentCacheTTL); err != nil {
			service.logger.WarnContext(ctx, "content_cache_set_failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return split(name, raw)
}

// split separates the data and meta members of a content response. A body
// without a data member is returned whole as data.
func split(name string, raw []byte) (Collection, error) {
	if len(raw) == 0 {
		return Collection{Name: name, Data: json.RawMessage("null")}, nil
	}
	if !gjson.ValidBytes(raw) {
		return Collection{}, apperr.Upstream(0, "Content backend returned malformed JSON")
	}

	collection := Collection{Name: name, Data: json.RawMessage(raw)}
	if data := gjson.GetBytes(raw, "data"); data.Exists() {
		collection.Data = json.RawMessage(data.Raw)
		if meta := gjson.GetBytes(raw, "meta"); meta.Exists() {
			collection.Meta = json.RawMessage(meta.Raw)
		}
	}
	return collection, nil
}

func filterQuery(query url.Values) url.Values {
	forwarded := url.Values{}
	for key, values := range query {
		for _, prefix := range forwardedParams {
			if key == prefix || strings.HasPrefix(key, prefix+"[") {
				forwarded[key] = values
				break
			}
		}
	}
	return forwarded
}
