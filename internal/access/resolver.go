// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access decides where a principal may go.

It holds the single role → area table, the [Resolver] that asks the learning
backend for the principal's role, and the [Gate] that guards each protected
area.

# Flow

 1. A page load hits /dashboard: the Resolver fetches the role and redirects
    to the matching area (or "/").
 2. Every protected area re-checks membership with its own Gate before any
    protected content is served.

# Concurrency

Concurrent resolutions for the same session collapse onto one backend call.
A per-user generation counter makes sure a response that raced with an
invalidation (for example a role update) is never memoised.
*/
package access

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/internal/platform/ctxutil"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
)

// # Resolution

// Resolution is the outcome of a successful role lookup.
type Resolution struct {
	// Role is the normalized role value returned by the backend.
	Role sec.Role
	// Known is false when the backend returned no role or one outside the enumeration.
	Known bool
}

// currentUser is the subset of the current-user endpoint the resolver reads.
type currentUser struct {
	Role string `json:"role"`
}

// RoleSource is what a [Gate] needs from a resolver.
type RoleSource interface {
	Resolve(ctx context.Context, cred apiclient.Credential) (Resolution, error)
	Routes() RouteMap
}

// # Resolver

// Resolver maps the current principal to a role and a destination.
type Resolver struct {
	client *apiclient.Client
	routes RouteMap
	memo   RoleMemo
	logger *slog.Logger

	group       singleflight.Group
	mu          sync.Mutex
	generations map[string]uint64
}

// NewResolver constructs a [Resolver]. A nil memo disables memoisation.
func NewResolver(client *apiclient.Client, routes RouteMap, memo RoleMemo, logger *slog.Logger) *Resolver {
	if memo == nil {
		memo = noMemo{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if routes == nil {
		routes = DefaultRoutes()
	}

	return &Resolver{
		client:      client,
		routes:      routes,
		memo:        memo,
		logger:      logger,
		generations: make(map[string]uint64),
	}
}

// Routes returns the role route table the resolver redirects with.
func (resolver *Resolver) Routes() RouteMap {
	return resolver.routes
}

/*
Resolve asks the backend for the role of the principal behind cred.

Description: One GET to the current-user endpoint, shared by concurrent
callers for the same session. A fresh result is memoised for that session only.

Parameters:
  - ctx: context.Context (cancelling it abandons the wait, not the shared call)
  - cred: apiclient.Credential

Returns:
  - Resolution: role and whether it belongs to the enumeration
  - error: Unauthorized for anonymous credentials, or the upstream failure
*/
func (resolver *Resolver) Resolve(ctx context.Context, cred apiclient.Credential) (Resolution, error) {
	if cred.IsAnonymous() {
		return Resolution{}, apperr.Unauthorized("Authentication required")
	}

	userID, key, err := sessionKey(ctx, cred)
	if err != nil {
		return Resolution{}, apperr.Unauthorized("Session credential is unavailable")
	}
	owner := userID
	if owner == "" {
		owner = key
	}

	// ── 1. Session memo ──────────────────────────────────────────────────
	if role, ok, err := resolver.memo.Get(ctx, key); err != nil {
		resolver.logger.WarnContext(ctx, "role_memo_read_failed", slog.Any("error", err))
	} else if ok {
		return Resolution{Role: role, Known: true}, nil
	}

	// ── 2. Shared backend call ───────────────────────────────────────────
	generation := resolver.generation(owner)

	resolution, err := resolver.fetchShared(ctx, cred, flightKey(key, generation))
	if err != nil {
		return Resolution{}, err
	}

	// ── 3. Stale guard ───────────────────────────────────────────────────
	// Invalidated while in flight: the answer may predate the change, so ask again once.
	if resolver.generation(owner) != generation {
		resolver.logger.DebugContext(ctx, "role_resolution_stale_discarded", slog.String("user_id", userID))

		generation = resolver.generation(owner)
		resolution, err = resolver.fetchShared(ctx, cred, flightKey(key, generation))
		if err != nil {
			return Resolution{}, err
		}
		if resolver.generation(owner) != generation {
			return resolution, nil
		}
	}

	if resolution.Known {
		if err := resolver.memo.Set(ctx, userID, key, resolution.Role, memoTTL(ctx)); err != nil {
			resolver.logger.WarnContext(ctx, "role_memo_write_failed", slog.Any("error", err))
		}
	}

	return resolution, nil
}

/*
Redirect returns the destination for the principal behind cred.

Any failure is logged and degrades to the home route; it never surfaces a
technical error to the principal.
*/
func (resolver *Resolver) Redirect(ctx context.Context, cred apiclient.Credential) string {
	resolution, err := resolver.Resolve(ctx, cred)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "role_redirect_failed", slog.Any("error", err))
		return constants.HomePath
	}
	return resolver.routes.Destination(resolution.Role)
}

// Invalidate forgets the memoised role of every session of a user and marks
// any in-flight resolution for them as stale.
func (resolver *Resolver) Invalidate(ctx context.Context, userID string) {
	resolver.mu.Lock()
	resolver.generations[userID]++
	resolver.mu.Unlock()

	if err := resolver.memo.DeleteUser(ctx, userID); err != nil {
		resolver.logger.WarnContext(ctx, "role_memo_delete_failed", slog.Any("error", err))
	}
}

// # Internals

// fetchShared joins or starts the single in-flight lookup for key.
//
// The shared call runs detached from any one caller's cancellation and is
// bounded by the client's own timeout; each caller still stops waiting when
// its ctx ends.
func (resolver *Resolver) fetchShared(ctx context.Context, cred apiclient.Credential, key string) (Resolution, error) {
	detached := context.WithoutCancel(ctx)

	resultChan := resolver.group.DoChan(key, func() (interface{}, error) {
		return resolver.fetch(detached, cred)
	})

	select {
	case <-ctx.Done():
		return Resolution{}, apperr.GatewayTimeout(ctx.Err())
	case result := <-resultChan:
		if result.Err != nil {
			return Resolution{}, result.Err
		}
		return result.Val.(Resolution), nil
	}
}

// fetch issues exactly one GET to the current-user endpoint.
func (resolver *Resolver) fetch(ctx context.Context, cred apiclient.Credential) (Resolution, error) {
	var body currentUser
	if err := resolver.client.Get(ctx, cred, constants.CurrentUserEndpoint, nil, &body); err != nil {
		return Resolution{}, err
	}

	role, known := sec.ParseRole(body.Role)
	return Resolution{Role: role, Known: known}, nil
}

func (resolver *Resolver) generation(key string) uint64 {
	resolver.mu.Lock()
	defer resolver.mu.Unlock()
	return resolver.generations[key]
}

// sessionKey identifies one session for memo and de-duplication: the verified
// user id (empty when unknown) joined with a digest of the session token.
func sessionKey(ctx context.Context, cred apiclient.Credential) (userID, key string, err error) {
	token, err := cred.AccessToken()
	if err != nil {
		return "", "", err
	}
	digest := sha256.Sum256([]byte(token))
	key = hex.EncodeToString(digest[:])

	if principal := ctxutil.GetPrincipal(ctx); principal != nil && principal.UserID != "" {
		userID = principal.UserID
		return userID, userID + ":" + key, nil
	}
	return "", "tok:" + key, nil
}

// flightKey scopes a shared lookup to one generation so a lookup started
// before an invalidation is never joined after it.
func flightKey(key string, generation uint64) string {
	return key + "#" + strconv.FormatUint(generation, 10)
}

// memoTTL caps the memo lifetime at the session's own expiry.
func memoTTL(ctx context.Context) time.Duration {
	ttl := constants.RoleMemoMaxTTL

	principal := ctxutil.GetPrincipal(ctx)
	if principal == nil || principal.ExpiresAt.IsZero() {
		return ttl
	}

	if remaining := time.Until(principal.ExpiresAt); remaining < ttl {
		return remaining
	}
	return ttl
}
