// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/ctxutil"
	"github.com/taibuivan/vocaboard/internal/platform/respond"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/internal/session"
)

// TokenVerifier checks an identity-provider session token.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.Principal, error)
}

// Authenticate binds the inbound session credential to the request.
//
// # Flow
//  1. Bind the request's session (bearer header or session cookie) on a fresh [session.Binder].
//  2. No session: the request proceeds anonymous.
//  3. Verify the token. A bad bearer header is rejected with 401; a bad cookie
//     is treated as signed out.
//  4. Inject the [*sec.Principal] and the bound [apiclient.Credential] into the context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			logger := ctxutil.GetLogger(ctx)

			// ── 1. Bind ──────────────────────────────────────────────────────
			binder := session.NewBinder(logger)
			if _, err := binder.Bind(ctx, session.FromRequest(request)); err != nil {
				respond.Error(writer, request, apperr.Internal(err))
				return
			}

			// ── 2. Anonymous Access ──────────────────────────────────────────
			if !binder.Bound() {
				if request.Header.Get("Authorization") != "" {
					respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
					return
				}
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Token Verification ────────────────────────────────────────
			token, _ := binder.Token()
			principal, err := verifier.VerifyToken(token.AccessToken)
			if err != nil {
				if request.Header.Get("Authorization") != "" {
					respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
					return
				}
				logger.DebugContext(ctx, "session_cookie_rejected", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ─────────────────────────────────────────
			ctx = ctxutil.WithPrincipal(ctx, principal)
			ctx = ctxutil.WithLogger(ctx, logger.With(slog.String("user_id", principal.UserID)))
			ctx = apiclient.WithCredential(ctx, binder.Credential())

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
