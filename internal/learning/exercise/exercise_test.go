// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package exercise_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vocaboard/internal/access"
	"github.com/taibuivan/vocaboard/internal/learning/exercise"
	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

// # Fixtures

type fakeRepository struct {
	mu        sync.Mutex
	submitted []exercise.Submission
	filters   []exercise.Filter
	err       error
}

func (f *fakeRepository) SubmitResult(_ context.Context, _ apiclient.Credential, submission exercise.Submission) (exercise.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return exercise.Result{}, f.err
	}
	f.submitted = append(f.submitted, submission)
	return exercise.Result{ID: "x1", TopicID: submission.TopicID, Score: submission.Score, Total: submission.Total}, nil
}

func (f *fakeRepository) ListResults(_ context.Context, _ apiclient.Credential, filter exercise.Filter, _ pagination.Params) (pagination.List[exercise.Result], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	return pagination.List[exercise.Result]{Items: []exercise.Result{{ID: "x1", TopicID: filter.TopicID}}, Total: 1}, f.err
}

type fixedRole sec.Role

func (r fixedRole) Resolve(context.Context, apiclient.Credential) (access.Resolution, error) {
	return access.Resolution{Role: sec.Role(r), Known: true}, nil
}

func (r fixedRole) Routes() access.RouteMap { return access.DefaultRoutes() }

func newService(repo exercise.Repository) *exercise.Service {
	return exercise.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// # Service

/*
TestSubmitResult_Validation rejects impossible scores before the backend.
*/
func TestSubmitResult_Validation(t *testing.T) {
	tests := []struct {
		name       string
		submission exercise.Submission
		field      string
	}{
		{"missing topic", exercise.Submission{Score: 1, Total: 2}, exercise.FieldTopicID},
		{"zero total", exercise.Submission{TopicID: "t1"}, exercise.FieldTotal},
		{"score above total", exercise.Submission{TopicID: "t1", Score: 11, Total: 10}, exercise.FieldScore},
		{"negative duration", exercise.Submission{TopicID: "t1", Score: 1, Total: 1, DurationSeconds: -5}, exercise.FieldDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			_, err := newService(repo).SubmitResult(context.Background(), apiclient.BearerCredential("T"), tt.submission)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			require.NotEmpty(t, appErr.Details)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
			assert.Empty(t, repo.submitted)
		})
	}
}

/*
TestSubmitResult_Success forwards the submission and returns the stored result.
*/
func TestSubmitResult_Success(t *testing.T) {
	repo := &fakeRepository{}

	got, err := newService(repo).SubmitResult(context.Background(), apiclient.BearerCredential("T"), exercise.Submission{TopicID: " t1 ", Score: 8, Total: 10})
	require.NoError(t, err)
	assert.Equal(t, 80, got.Percent())
	require.Len(t, repo.submitted, 1)
	assert.Equal(t, "t1", repo.submitted[0].TopicID)
}

/*
TestSubmitResult_UpstreamError returns the zero result with the backend error.
*/
func TestSubmitResult_UpstreamError(t *testing.T) {
	repo := &fakeRepository{err: apperr.Upstream(http.StatusConflict, "already submitted")}

	got, err := newService(repo).SubmitResult(context.Background(), apiclient.BearerCredential("T"), exercise.Submission{TopicID: "t1", Score: 1, Total: 1})
	assert.Equal(t, exercise.Result{}, got)
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))
}

/*
TestResult_Percent tolerates an empty exercise.
*/
func TestResult_Percent(t *testing.T) {
	assert.Zero(t, exercise.Result{}.Percent())
	assert.Equal(t, 33, exercise.Result{Score: 1, Total: 3}.Percent())
}

// # HTTP

/*
TestRoutes_Access lets only students submit and keeps students out of listings.
*/
func TestRoutes_Access(t *testing.T) {
	tests := []struct {
		role   sec.Role
		method string
		want   int
	}{
		{sec.RoleStudent, http.MethodPost, http.StatusCreated},
		{sec.RoleTeacher, http.MethodPost, http.StatusForbidden},
		{sec.RoleStudent, http.MethodGet, http.StatusForbidden},
		{sec.RoleParent, http.MethodGet, http.StatusOK},
		{sec.RoleTeacher, http.MethodGet, http.StatusOK},
		{sec.RoleAdmin, http.MethodGet, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.method, func(t *testing.T) {
			router := chi.NewRouter()
			router.Route("/exercise-results", exercise.NewHandler(newService(&fakeRepository{}), fixedRole(tt.role)).RegisterRoutes)

			request := httptest.NewRequest(tt.method, "/exercise-results/?topicId=t1&studentId=s1", bytes.NewBufferString(`{"topicId":"t1","score":3,"total":5}`))
			request = request.WithContext(apiclient.WithCredential(request.Context(), apiclient.BearerCredential("T")))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

/*
TestListResults_PassesFilter hands both query filters to the repository.
*/
func TestListResults_PassesFilter(t *testing.T) {
	repo := &fakeRepository{}
	router := chi.NewRouter()
	router.Route("/exercise-results", exercise.NewHandler(newService(repo), fixedRole(sec.RoleParent)).RegisterRoutes)

	request := httptest.NewRequest(http.MethodGet, "/exercise-results/?topicId=t1&studentId=s1", nil)
	request = request.WithContext(apiclient.WithCredential(request.Context(), apiclient.BearerCredential("T")))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, repo.filters, 1)
	assert.Equal(t, exercise.Filter{TopicID: "t1", StudentID: "s1"}, repo.filters[0])
}
