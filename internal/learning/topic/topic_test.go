// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package topic_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vocaboard/internal/access"
	"github.com/taibuivan/vocaboard/internal/learning/topic"
	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
)

// # Fixtures

type backend struct {
	mu    sync.Mutex
	calls int
	query string
	sent  []byte
}

func newService(t *testing.T, status int, body string) (*topic.Service, *backend) {
	t.Helper()
	fake := &backend{}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sent, _ := io.ReadAll(request.Body)

		fake.mu.Lock()
		fake.calls++
		fake.query, fake.sent = request.URL.RawQuery, sent
		fake.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = io.WriteString(writer, body)
	}))
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, "v1")
	require.NoError(t, err)
	return topic.NewService(topic.NewAPIRepository(client), slog.New(slog.NewTextHandler(io.Discard, nil))), fake
}

func (b *backend) snapshot() (int, string, []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls, b.query, b.sent
}

type fixedRole sec.Role

func (r fixedRole) Resolve(context.Context, apiclient.Credential) (access.Resolution, error) {
	return access.Resolution{Role: sec.Role(r), Known: true}, nil
}

func (r fixedRole) Routes() access.RouteMap { return access.DefaultRoutes() }

// # Normalize

/*
TestNormalize drops blank words and derives the slug from the title.
*/
func TestNormalize(t *testing.T) {
	got := topic.Normalize(topic.Input{
		Title: "  Fruits & Vegetables ",
		Words: []topic.Word{
			{Term: " apple ", Meaning: "quả táo", PartOfSpeech: "Noun"},
			{Term: "  ", Meaning: ""},
			{Term: "carrot", Meaning: "cà rốt"},
		},
	})

	assert.Equal(t, "Fruits & Vegetables", got.Title)
	assert.Equal(t, "fruits-vegetables", got.Slug)
	require.Len(t, got.Words, 2)
	assert.Equal(t, "apple", got.Words[0].Term)
	assert.Equal(t, "noun", got.Words[0].PartOfSpeech)
}

// # Service

/*
TestCreateTopic_ValidatesWords reports each incomplete word by index.
*/
func TestCreateTopic_ValidatesWords(t *testing.T) {
	service, fake := newService(t, http.StatusCreated, `{}`)

	_, err := service.CreateTopic(context.Background(), apiclient.BearerCredential("T"), topic.Input{
		RoadmapID: "r1",
		Title:     "Animals",
		Words:     []topic.Word{{Term: "cat"}},
	})

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "words[0].meaning", appErr.Details[0].Field)

	calls, _, _ := fake.snapshot()
	assert.Zero(t, calls)
}

/*
TestCreateTopic_TooManyWords caps the list size before any request.
*/
func TestCreateTopic_TooManyWords(t *testing.T) {
	service, _ := newService(t, http.StatusCreated, `{}`)

	words := make([]topic.Word, topic.MaxWords+1)
	for i := range words {
		words[i] = topic.Word{Term: "w", Meaning: "m"}
	}

	_, err := service.CreateTopic(context.Background(), apiclient.BearerCredential("T"), topic.Input{RoadmapID: "r1", Title: "Big", Words: words})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

/*
TestCreateTopic_SendsWords forwards the normalized payload.
*/
func TestCreateTopic_SendsWords(t *testing.T) {
	service, fake := newService(t, http.StatusCreated, `{"id":"t1","title":"Animals","words":[{"term":"cat","meaning":"con mèo"}]}`)

	got, err := service.CreateTopic(context.Background(), apiclient.BearerCredential("T"), topic.Input{
		RoadmapID: "r1",
		Title:     "Animals",
		Words:     []topic.Word{{Term: "cat ", Meaning: " con mèo"}},
	})
	require.NoError(t, err)
	require.Len(t, got.Words, 1)

	_, _, body := fake.snapshot()
	var sent topic.Input
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, "animals", sent.Slug)
	assert.Equal(t, []topic.Word{{Term: "cat", Meaning: "con mèo"}}, sent.Words)
}

/*
TestListTopics_FiltersByRoadmap passes the roadmap filter as a query parameter.
*/
func TestListTopics_FiltersByRoadmap(t *testing.T) {
	service, fake := newService(t, http.StatusOK, `{"items":[{"id":"t1","title":"A"}],"total":7}`)

	router := chi.NewRouter()
	router.Route("/topics", topic.NewHandler(service, fixedRole(sec.RoleStudent)).RegisterRoutes)

	request := httptest.NewRequest(http.MethodGet, "/topics/?roadmapId=r9", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	_, query, _ := fake.snapshot()
	assert.Contains(t, query, "roadmapId=r9")
	assert.Contains(t, recorder.Body.String(), `"total":7`)
}

// # HTTP

/*
TestRoutes_StudentCannotDelete keeps deletion behind the author gate.
*/
func TestRoutes_StudentCannotDelete(t *testing.T) {
	service, fake := newService(t, http.StatusNoContent, ``)

	router := chi.NewRouter()
	router.Route("/topics", topic.NewHandler(service, fixedRole(sec.RoleStudent)).RegisterRoutes)

	request := httptest.NewRequest(http.MethodDelete, "/topics/t1", bytes.NewReader(nil))
	request = request.WithContext(apiclient.WithCredential(request.Context(), apiclient.BearerCredential("T")))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.True(t, strings.Contains(recorder.Body.String(), "FORBIDDEN"))
	calls, _, _ := fake.snapshot()
	assert.Zero(t, calls)
}
