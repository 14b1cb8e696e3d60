// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vocaboard/internal/access"
	"github.com/taibuivan/vocaboard/internal/learning/category"
	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/ctxutil"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

// # Fixtures

type backend struct {
	calls  atomic.Int32
	status int
	body   string

	mu   sync.Mutex
	last *url.URL
	auth string
	sent []byte
}

func (b *backend) request() (*url.URL, string, []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.auth, b.sent
}

func newService(t *testing.T, status int, body string) (*category.Service, *backend) {
	t.Helper()
	fake := &backend{status: status, body: body}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		fake.calls.Add(1)
		sent, _ := io.ReadAll(request.Body)

		fake.mu.Lock()
		fake.last, fake.auth, fake.sent = request.URL, request.Header.Get("Authorization"), sent
		fake.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(fake.status)
		_, _ = io.WriteString(writer, fake.body)
	}))
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, "v1")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return category.NewService(category.NewAPIRepository(client), logger), fake
}

type fixedRole sec.Role

func (r fixedRole) Resolve(context.Context, apiclient.Credential) (access.Resolution, error) {
	return access.Resolution{Role: sec.Role(r), Known: true}, nil
}

func (r fixedRole) Routes() access.RouteMap { return access.DefaultRoutes() }

// # Service

/*
TestGetCategory_Success returns the backend body unchanged.
*/
func TestGetCategory_Success(t *testing.T) {
	service, fake := newService(t, http.StatusOK, `{"id":"1","name":"X"}`)

	got, err := service.GetCategory(context.Background(), apiclient.BearerCredential("T"), "1")
	require.NoError(t, err)
	assert.Equal(t, category.Category{ID: "1", Name: "X"}, got)

	last, auth, _ := fake.request()
	assert.Equal(t, "/v1/categories/1", last.Path)
	assert.Equal(t, "Bearer T", auth)

	encoded, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","name":"X"}`, string(encoded))
}

/*
TestGetCategory_ServerError returns an error value and logs; it never panics.
*/
func TestGetCategory_ServerError(t *testing.T) {
	var logs bytes.Buffer
	ctx := ctxutil.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&logs, nil)))

	service, _ := newService(t, http.StatusInternalServerError, `{"message":"db down"}`)

	got, err := service.GetCategory(ctx, apiclient.BearerCredential("T"), "1")
	assert.Equal(t, category.Category{}, got)
	assert.Equal(t, http.StatusInternalServerError, apperr.StatusOf(err))
	assert.Contains(t, logs.String(), "upstream_request_rejected")
}

/*
TestCreateCategory_DerivesSlug sends a slug built from the name.
*/
func TestCreateCategory_DerivesSlug(t *testing.T) {
	service, fake := newService(t, http.StatusCreated, `{"id":"9","name":"Động vật","slug":"dong-vat"}`)

	got, err := service.CreateCategory(context.Background(), apiclient.BearerCredential("T"), category.Input{Name: "  Động vật "})
	require.NoError(t, err)
	assert.Equal(t, "9", got.ID)

	_, _, body := fake.request()
	var sent category.Input
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, "Động vật", sent.Name)
	assert.Equal(t, "dong-vat", sent.Slug)
}

/*
TestValidation_NeverReachesNetwork rejects bad payloads locally.
*/
func TestValidation_NeverReachesNetwork(t *testing.T) {
	service, fake := newService(t, http.StatusOK, `{}`)
	ctx := context.Background()
	cred := apiclient.BearerCredential("T")

	_, err := service.CreateCategory(ctx, cred, category.Input{Name: ""})
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = service.UpdateCategory(ctx, cred, "../admin", category.Input{Name: "Travel"})
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	assert.Error(t, service.DeleteCategory(ctx, cred, ""))
	assert.Zero(t, fake.calls.Load())
}

/*
TestListCategories forwards paging and accepts a bare array.
*/
func TestListCategories(t *testing.T) {
	service, fake := newService(t, http.StatusOK, `[{"id":"1","name":"A"},{"id":"2","name":"B"}]`)

	list, err := service.ListCategories(context.Background(), apiclient.BearerCredential("T"), pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	last, _, _ := fake.request()
	assert.Equal(t, "2", last.Query().Get("page"))
	assert.Equal(t, "10", last.Query().Get("limit"))
}

// # HTTP

/*
TestRoutes_WritesAreGated lets authors create and stops every other role.
*/
func TestRoutes_WritesAreGated(t *testing.T) {
	tests := []struct {
		role sec.Role
		want int
	}{
		{sec.RoleTeacher, http.StatusCreated},
		{sec.RoleStaff, http.StatusCreated},
		{sec.RoleAdmin, http.StatusCreated},
		{sec.RoleStudent, http.StatusForbidden},
		{sec.RoleParent, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			service, _ := newService(t, http.StatusCreated, `{"id":"3","name":"Travel"}`)

			router := chi.NewRouter()
			router.Route("/categories", category.NewHandler(service, fixedRole(tt.role)).RegisterRoutes)

			request := httptest.NewRequest(http.MethodPost, "/categories/", bytes.NewBufferString(`{"name":"Travel"}`))
			request = request.WithContext(apiclient.WithCredential(request.Context(), apiclient.BearerCredential("T")))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}
