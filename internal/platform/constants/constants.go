// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire portal.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Upstream Timing: Deadlines for calls made to the learning backend.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Session: Cookie names and memo lifetimes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "vocaboard-web"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// Larger than the upstream timeout so uploads to the generator can finish.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// GenerateRequestTimeout replaces GlobalRequestTimeout on the AI generation route.
	GenerateRequestTimeout = 50 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Upstream Timing

const (
	// DefaultUpstreamTimeout bounds a single call to the learning backend.
	DefaultUpstreamTimeout = 10 * time.Second

	// GenerateUpstreamTimeout bounds AI generation calls, which are much slower.
	GenerateUpstreamTimeout = 45 * time.Second

	// RoleResolveTimeout bounds how long a Route Gate waits in the pending state.
	RoleResolveTimeout = 5 * time.Second

	// ContentCacheTTL is how long a content collection read is reused.
	ContentCacheTTL = 1 * time.Minute

	// MaxUploadBytes is the largest image accepted for AI generation.
	MaxUploadBytes = 8 << 20
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session

const (
	// SessionCookieName is the cookie the identity provider sets in the browser.
	SessionCookieName = "__session"

	// RoleMemoMaxTTL caps how long a resolved role is memoised, even for long sessions.
	RoleMemoMaxTTL = 10 * time.Minute

	// BoardIdleTTL is how long an inactive principal's dashboard board is kept.
	BoardIdleTTL = 15 * time.Minute

	// BoardSweepInterval is how often idle boards are evicted.
	BoardSweepInterval = 1 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
)

// # Routes

const (
	// HomePath is where principals land when no better destination exists.
	HomePath = "/"

	// DashboardPath performs the role-based redirect.
	DashboardPath = "/dashboard"

	// CurrentUserEndpoint is the backend endpoint that reports the principal's role.
	CurrentUserEndpoint = "/users/me"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldNotice  = "notice"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldRole    = "role"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRoleMemo = "portal:role:"
	RedisPrefixContent  = "portal:cms:"
)
