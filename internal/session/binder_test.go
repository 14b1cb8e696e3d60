// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/session"
)

/*
TestBinder_BindAttachesBearer checks that every request issued after binding
carries the bound token, through any client built on the same credential.
*/
func TestBinder_BindAttachesBearer(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	backend := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		mu.Lock()
		seen = append(seen, request.Header.Get("Authorization"))
		mu.Unlock()
		writer.WriteHeader(http.StatusNoContent)
	}))
	defer backend.Close()

	topics, err := apiclient.New(backend.URL, "v1")
	require.NoError(t, err)
	bookmarks, err := apiclient.New(backend.URL, "v1")
	require.NoError(t, err)

	binder := session.NewBinder(nil)
	applied, err := binder.Bind(context.Background(), session.Static("T"))
	require.NoError(t, err)
	require.True(t, applied)

	ctx := context.Background()
	require.NoError(t, topics.Get(ctx, binder.Credential(), "topics", nil, nil))
	require.NoError(t, bookmarks.Post(ctx, binder.Credential(), "bookmarks", map[string]string{"topicId": "1"}, nil))

	assert.Equal(t, []string{"Bearer T", "Bearer T"}, seen)
}

/*
TestBinder_EmptyTokenKeepsPrevious verifies that an empty accessor result does not unset.
*/
func TestBinder_EmptyTokenKeepsPrevious(t *testing.T) {
	binder := session.NewBinder(nil)
	_, _ = binder.Bind(context.Background(), session.Static("first"))

	applied, err := binder.Bind(context.Background(), session.Static(""))
	require.NoError(t, err)
	assert.False(t, applied)

	token, err := binder.Credential().AccessToken()
	require.NoError(t, err)
	assert.Equal(t, "first", token)
}

/*
TestBinder_AccessorError leaves the credential untouched and reports the error.
*/
func TestBinder_AccessorError(t *testing.T) {
	binder := session.NewBinder(nil)
	_, _ = binder.Bind(context.Background(), session.Static("first"))

	failing := func(ctx context.Context) (string, error) { return "", errors.New("idp down") }
	applied, err := binder.Bind(context.Background(), failing)

	assert.Error(t, err)
	assert.False(t, applied)
	assert.True(t, binder.Bound())
}

/*
TestBinder_StaleBindDiscarded verifies that a slow accessor cannot overwrite a
credential bound by a newer accessor.
*/
func TestBinder_StaleBindDiscarded(t *testing.T) {
	binder := session.NewBinder(nil)

	release := make(chan struct{})
	started := make(chan struct{})
	slow := func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return "old", nil
	}

	done := make(chan bool)
	go func() {
		applied, _ := binder.Bind(context.Background(), slow)
		done <- applied
	}()

	<-started
	applied, err := binder.Bind(context.Background(), session.Static("new"))
	require.NoError(t, err)
	require.True(t, applied)

	close(release)
	assert.False(t, <-done)

	token, _ := binder.Credential().AccessToken()
	assert.Equal(t, "new", token)
}

/*
TestBinder_Clear unsets on sign-out and makes Token fail.
*/
func TestBinder_Clear(t *testing.T) {
	binder := session.NewBinder(nil)
	_, _ = binder.Bind(context.Background(), session.Static("T"))

	binder.Clear()

	assert.False(t, binder.Bound())
	assert.True(t, binder.Credential().IsAnonymous())
	_, err := binder.Token()
	assert.ErrorIs(t, err, session.ErrNoCredential)
}

/*
TestBinder_Watch rebinds whenever the accessor changes identity.
*/
func TestBinder_Watch(t *testing.T) {
	binder := session.NewBinder(nil)
	changes := make(chan session.Accessor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		binder.Watch(ctx, changes)
		close(stopped)
	}()

	changes <- session.Static("A")
	changes <- session.Static("B")
	close(changes)

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after channel close")
	}

	token, _ := binder.Credential().AccessToken()
	assert.Equal(t, "B", token)
}

/*
TestTokenFromRequest covers header, cookie and malformed inputs.
*/
func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"bearer_header", "Bearer abc", "", "abc"},
		{"lowercase_scheme", "bearer abc", "", "abc"},
		{"cookie_only", "", "cookie-token", "cookie-token"},
		{"header_wins", "Bearer abc", "cookie-token", "abc"},
		{"basic_scheme", "Basic Zm9vOmJhcg==", "", ""},
		{"no_space", "Bearer", "", ""},
		{"nothing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: "__session", Value: tt.cookie})
			}
			assert.Equal(t, tt.want, session.TokenFromRequest(request))
		})
	}
}
