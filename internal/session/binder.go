// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session binds identity-provider session credentials to the calls the
portal makes on a principal's behalf.

# Architecture

The identity provider owns the session: issuance, refresh and expiry. The
[Binder] only keeps a transient, never persisted copy of the current token and
hands out immutable [apiclient.Credential] snapshots. Callers pass a snapshot
explicitly to every service call; nothing is stored on the shared client.

# Lifecycle

  - Bind: on mount, and whenever the accessor changes identity.
  - Watch: drives Bind from a stream of accessor changes.
  - Clear: explicit unset on sign-out.
*/
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
)

// ErrNoCredential is returned by [Binder.Token] when nothing is bound.
var ErrNoCredential = errors.New("session: no credential bound")

// Accessor asynchronously obtains the current session credential from the
// identity provider. An empty string means "no session".
type Accessor func(ctx context.Context) (string, error)

// # Binder

// Binder holds the credential most recently obtained from an [Accessor].
//
// # Concurrency
//
// Binder is safe for concurrent use. Each Bind starts a new generation; a bind
// that completes after a newer one started is discarded, so a slow accessor
// can never overwrite a fresher credential.
type Binder struct {
	mu         sync.RWMutex
	token      string
	generation uint64
	logger     *slog.Logger
}

// NewBinder constructs an empty [Binder].
func NewBinder(logger *slog.Logger) *Binder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Binder{logger: logger}
}

// Bind asks accessor for the current credential and, if it is non-empty,
// makes it the bound credential.
//
// It reports whether the result was applied. Accessor errors are logged and
// leave the previous credential in place.
func (binder *Binder) Bind(ctx context.Context, accessor Accessor) (bool, error) {
	if accessor == nil {
		return false, errors.New("session: nil accessor")
	}

	// ── 1. Start a new generation ────────────────────────────────────────
	binder.mu.Lock()
	binder.generation++
	generation := binder.generation
	binder.mu.Unlock()

	// ── 2. Suspend on the identity provider ──────────────────────────────
	token, err := accessor(ctx)
	if err != nil {
		binder.logger.WarnContext(ctx, "session_bind_failed", slog.Any("error", err))
		return false, err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}

	// ── 3. Apply unless superseded ───────────────────────────────────────
	binder.mu.Lock()
	defer binder.mu.Unlock()

	if generation != binder.generation {
		binder.logger.DebugContext(ctx, "session_bind_stale_discarded",
			slog.Uint64("generation", generation),
			slog.Uint64("current_generation", binder.generation),
		)
		return false, nil
	}

	binder.token = token
	return true, nil
}

// Watch rebinds every time a new accessor arrives on changes. The first
// accessor on the channel plays the role of the initial mount. Watch returns
// when ctx is cancelled or changes is closed.
func (binder *Binder) Watch(ctx context.Context, changes <-chan Accessor) {
	for {
		select {
		case <-ctx.Done():
			return
		case accessor, ok := <-changes:
			if !ok {
				return
			}
			_, _ = binder.Bind(ctx, accessor)
		}
	}
}

// Clear drops the bound credential (sign-out) and invalidates in-flight binds.
func (binder *Binder) Clear() {
	binder.mu.Lock()
	defer binder.mu.Unlock()

	binder.generation++
	binder.token = ""
}

// Credential returns an immutable snapshot of the bound credential.
func (binder *Binder) Credential() apiclient.Credential {
	binder.mu.RLock()
	defer binder.mu.RUnlock()

	return apiclient.BearerCredential(binder.token)
}

// Bound reports whether a credential is currently bound.
func (binder *Binder) Bound() bool {
	binder.mu.RLock()
	defer binder.mu.RUnlock()

	return binder.token != ""
}

// Token implements [oauth2.TokenSource].
func (binder *Binder) Token() (*oauth2.Token, error) {
	binder.mu.RLock()
	defer binder.mu.RUnlock()

	if binder.token == "" {
		return nil, ErrNoCredential
	}
	return &oauth2.Token{AccessToken: binder.token, TokenType: "Bearer"}, nil
}
