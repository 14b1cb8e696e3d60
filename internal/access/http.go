// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"net/http"

	"github.com/taibuivan/vocaboard/internal/platform/apiclient"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/internal/platform/respond"
)

// Handler serves the role redirect entry point.
type Handler struct {
	resolver *Resolver
}

// NewHandler constructs a [Handler].
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// Dashboard handles GET /dashboard by redirecting to the principal's area.
func (handler *Handler) Dashboard(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	cred := apiclient.CredentialFrom(ctx)

	if cred.IsAnonymous() {
		respond.Redirect(writer, request, constants.HomePath)
		return
	}

	respond.Redirect(writer, request, handler.resolver.Redirect(ctx, cred))
}
