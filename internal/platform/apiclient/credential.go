// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apiclient

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/ctxkey"
)

// # Credentials

// Credential is the explicit request-context object that authorizes a call.
//
// It is an immutable value: binding a new session produces a new Credential
// and never touches requests already in flight. The zero value is anonymous.
type Credential struct {
	source oauth2.TokenSource
}

// Anonymous sends no Authorization header.
var Anonymous = Credential{}

// BearerCredential wraps a session token. An empty token yields [Anonymous].
func BearerCredential(token string) Credential {
	if token == "" {
		return Anonymous
	}
	return Credential{source: oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})}
}

// StaticCredential wraps a long-lived service token such as the content backend's.
func StaticCredential(token string) Credential {
	return BearerCredential(token)
}

// FromTokenSource wraps any [oauth2.TokenSource]; nil yields [Anonymous].
func FromTokenSource(source oauth2.TokenSource) Credential {
	if source == nil {
		return Anonymous
	}
	return Credential{source: source}
}

// IsAnonymous reports whether the credential carries no token source.
func (c Credential) IsAnonymous() bool {
	return c.source == nil
}

// AccessToken returns the raw bearer token, or "" for anonymous credentials.
func (c Credential) AccessToken() (string, error) {
	if c.source == nil {
		return "", nil
	}
	token, err := c.source.Token()
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// apply sets the Authorization header on an outgoing request.
func (c Credential) apply(request *http.Request) error {
	if c.source == nil {
		return nil
	}

	token, err := c.source.Token()
	if err != nil {
		return &apperr.AppError{
			Code:       "UNAUTHORIZED",
			Message:    "Session credential is unavailable",
			HTTPStatus: http.StatusUnauthorized,
			Cause:      err,
		}
	}
	if token == nil || token.AccessToken == "" {
		return nil
	}

	token.SetAuthHeader(request)
	return nil
}

// # Context Binding

// WithCredential returns a new context carrying cred for downstream service calls.
func WithCredential(ctx context.Context, cred Credential) context.Context {
	return context.WithValue(ctx, ctxkey.KeyCredential, cred)
}

// CredentialFrom returns the credential bound to ctx, or [Anonymous].
func CredentialFrom(ctx context.Context) Credential {
	cred, ok := ctx.Value(ctxkey.KeyCredential).(Credential)
	if !ok {
		return Anonymous
	}
	return cred
}
