// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/internal/platform/ctxutil"
	"github.com/taibuivan/vocaboard/internal/platform/respond"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
)

// # Gate Decisions

// Decision is the outcome of a gate check.
type Decision int

const (
	// Pending means the role is not known yet; nothing protected is served.
	Pending Decision = iota
	// Allow serves the protected area.
	Allow
	// Deny sends the principal elsewhere.
	Deny
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return "pending"
	}
}

// # Gate

// Gate guards one protected area. Every area uses the same implementation and
// differs only in its allowed-role set.
type Gate struct {
	source  RoleSource
	allowed sec.RoleSet
}

// NewGate builds a gate that admits the given roles.
func NewGate(source RoleSource, roles ...sec.Role) *Gate {
	return &Gate{source: source, allowed: sec.NewRoleSet(roles...)}
}

// Allowed returns the gate's allowed roles.
func (gate *Gate) Allowed() []sec.Role {
	return gate.allowed.Slice()
}

// Decide maps a resolution to a decision. A nil resolution is still pending.
func (gate *Gate) Decide(resolution *Resolution) Decision {
	if resolution == nil {
		return Pending
	}
	if resolution.Known && gate.allowed.Has(resolution.Role) {
		return Allow
	}
	return Deny
}

/*
Handler is the chi middleware form of the gate.

The request waits for role resolution (bounded by [constants.RoleResolveTimeout])
and reaches next only on [Allow]. Pages are redirected to the principal's own
area, or home when that is unknown; API callers get a JSON 403, or 401 when
there is no session.
*/
func (gate *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		logger := ctxutil.GetLogger(ctx)
		cred := apiclient.CredentialFrom(ctx)

		if cred.IsAnonymous() {
			gate.reject(writer, request, constants.HomePath, apperr.Unauthorized("Authentication required"))
			return
		}

		resolveCtx, cancel := context.WithTimeout(ctx, constants.RoleResolveTimeout)
		defer cancel()

		var resolution *Resolution
		if resolved, err := gate.source.Resolve(resolveCtx, cred); err != nil {
			logger.WarnContext(ctx, "gate_resolution_failed", slog.Any("error", err))
			if apperr.StatusOf(err) == http.StatusUnauthorized {
				gate.reject(writer, request, constants.HomePath, err)
				return
			}
		} else {
			resolution = &resolved
		}

		switch gate.Decide(resolution) {
		case Allow:
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRole(ctx, resolution.Role)))

		case Deny:
			logger.InfoContext(ctx, "gate_denied",
				slog.String("role", resolution.Role.String()),
				slog.String("path", request.URL.Path),
			)
			gate.reject(writer, request, gate.source.Routes().Destination(resolution.Role), apperr.Forbidden("Your role cannot access this area"))

		default:
			// Resolution never finished: degrade to home, never to protected content.
			gate.reject(writer, request, constants.HomePath, apperr.ServiceUnavailable("Role could not be resolved"))
		}
	})
}

// reject redirects page requests and answers API requests with the error envelope.
func (gate *Gate) reject(writer http.ResponseWriter, request *http.Request, destination string, err error) {
	if WantsPage(request) {
		respond.Redirect(writer, request, destination)
		return
	}
	respond.Error(writer, request, err)
}

// WantsPage reports whether the caller is a browser navigating to a page
// rather than a script calling the API.
func WantsPage(request *http.Request) bool {
	if strings.HasPrefix(request.URL.Path, "/api/") {
		return false
	}
	return strings.Contains(request.Header.Get(constants.HeaderAccept), "text/html")
}
