// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"net/http"
	"strings"

	"github.com/taibuivan/vocaboard/internal/platform/constants"
)

// # Request Accessors

// FromRequest returns the accessor for an inbound browser request.
//
// The identity provider sends the session either as a bearer header (API
// calls) or as the session cookie (page loads). The header wins when both are
// present. Malformed headers yield no session.
func FromRequest(request *http.Request) Accessor {
	return func(ctx context.Context) (string, error) {
		return TokenFromRequest(request), nil
	}
}

// TokenFromRequest extracts the raw session token from request.
func TokenFromRequest(request *http.Request) string {
	if header := request.Header.Get("Authorization"); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}

	if cookie, err := request.Cookie(constants.SessionCookieName); err == nil {
		return cookie.Value
	}

	return ""
}

// Static returns an accessor that always yields token.
func Static(token string) Accessor {
	return func(ctx context.Context) (string, error) {
		return token, nil
	}
}
