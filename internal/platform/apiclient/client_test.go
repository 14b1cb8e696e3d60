// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/ctxutil"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newClient(t *testing.T, handler http.HandlerFunc, opts ...apiclient.Option) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL, "v1", opts...)
	require.NoError(t, err)
	return client
}

/*
TestNew_RejectsBadBaseURL checks base URL validation.
*/
func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"ftp://example.com", "not a url", "https://"} {
		_, err := apiclient.New(raw, "v1")
		assert.Error(t, err, raw)
	}
}

/*
TestClient_Get_Success returns the decoded body unchanged and joins the version segment.
*/
func TestClient_Get_Success(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/v1/topics/1", request.URL.Path)
		assert.Equal(t, "2", request.URL.Query().Get("page"))
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"1","name":"X"}`))
	})

	var out item
	err := client.Get(context.Background(), apiclient.Anonymous, "topics/1", url.Values{"page": {"2"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, item{ID: "1", Name: "X"}, out)
}

/*
TestClient_BearerHeader verifies that every request carries the explicit credential.
*/
func TestClient_BearerHeader(t *testing.T) {
	var seen []string
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		seen = append(seen, request.Header.Get("Authorization"))
		writer.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	require.NoError(t, client.Get(ctx, apiclient.BearerCredential("T"), "topics", nil, nil))
	require.NoError(t, client.Delete(ctx, apiclient.BearerCredential("T"), "topics/1", nil))
	require.NoError(t, client.Get(ctx, apiclient.Anonymous, "topics", nil, nil))

	assert.Equal(t, []string{"Bearer T", "Bearer T", ""}, seen)
}

/*
TestClient_ForwardsRequestID propagates the inbound correlation ID.
*/
func TestClient_ForwardsRequestID(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "req-42", request.Header.Get("X-Request-ID"))
		writer.WriteHeader(http.StatusNoContent)
	})

	ctx := ctxutil.WithRequestID(context.Background(), "req-42")
	require.NoError(t, client.Get(ctx, apiclient.Anonymous, "health", nil, nil))
}

/*
TestClient_ErrorMapping covers the uniform failure taxonomy.
*/
func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		code    string
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"Token expired"}`, "UNAUTHORIZED", "Token expired"},
		{"unauthorized_empty", http.StatusUnauthorized, ``, "UNAUTHORIZED", "Session is not valid"},
		{"business_message", http.StatusConflict, `{"message":"Name already used"}`, "UPSTREAM_ERROR", "Name already used"},
		{"business_error_string", http.StatusBadRequest, `{"error":"Bad roadmap"}`, "UPSTREAM_ERROR", "Bad roadmap"},
		{"business_error_object", http.StatusForbidden, `{"error":{"status":403,"message":"Forbidden"}}`, "UPSTREAM_ERROR", "Forbidden"},
		{"server_error", http.StatusInternalServerError, `oops`, "UPSTREAM_ERROR", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(tt.status)
				_, _ = io.WriteString(writer, tt.body)
			})

			err := client.Get(context.Background(), apiclient.Anonymous, "topics", nil, &item{})
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.message, ae.Message)
			assert.Equal(t, tt.status, ae.HTTPStatus)
		})
	}
}

/*
TestClient_Timeout turns a slow backend into a gateway timeout.
*/
func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-release:
		case <-request.Context().Done():
		}
	}, apiclient.WithTimeout(50*time.Millisecond))
	defer close(release)

	err := client.Get(context.Background(), apiclient.Anonymous, "slow", nil, nil)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UPSTREAM_TIMEOUT", ae.Code)
}

/*
TestClient_Unreachable maps transport failures to 502.
*/
func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	client, err := apiclient.New(base, "")
	require.NoError(t, err)

	err = client.Get(context.Background(), apiclient.Anonymous, "topics", nil, nil)
	assert.Equal(t, http.StatusBadGateway, apperr.StatusOf(err))
}

/*
TestClient_PostEncodesJSON sends a JSON body and decodes the reply.
*/
func TestClient_PostEncodesJSON(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		var in item
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&in))
		in.ID = "new"
		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(in)
	})

	var out item
	require.NoError(t, client.Post(context.Background(), apiclient.Anonymous, "topics", item{Name: "Fruits"}, &out))
	assert.Equal(t, item{ID: "new", Name: "Fruits"}, out)
}

/*
TestClient_Upload sends a multipart form with one file part.
*/
func TestClient_Upload(t *testing.T) {
	client := newClient(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.NoError(t, request.ParseMultipartForm(1<<20))
		assert.Equal(t, "english", request.FormValue("language"))

		file, header, err := request.FormFile("image")
		if !assert.NoError(t, err) {
			writer.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()

		content, _ := io.ReadAll(file)
		assert.Equal(t, "board.png", header.Filename)
		assert.Equal(t, "PNGDATA", string(content))

		_, _ = writer.Write([]byte(`{"id":"g1","name":"ok"}`))
	})

	var out item
	err := client.Upload(context.Background(), apiclient.Anonymous, "ai/generate",
		map[string]string{"language": "english"},
		apiclient.FilePart{Field: "image", FileName: "board.png", ContentType: "image/png", Content: strings.NewReader("PNGDATA")},
		&out,
	)
	require.NoError(t, err)
	assert.Equal(t, "g1", out.ID)
}

/*
TestCredential_Context round-trips a credential through a context.
*/
func TestCredential_Context(t *testing.T) {
	ctx := context.Background()
	assert.True(t, apiclient.CredentialFrom(ctx).IsAnonymous())

	ctx = apiclient.WithCredential(ctx, apiclient.BearerCredential("abc"))
	token, err := apiclient.CredentialFrom(ctx).AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	assert.True(t, apiclient.BearerCredential("").IsAnonymous())
}
