// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package member exposes user accounts to the portal: the signed-in user's own
profile, the teacher roster and role assignment.

# Access

  - GET /me: any signed-in principal.
  - GET /teachers: staff and admin.
  - PATCH /users/{id}/role: admin only.
*/
package member

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vocaboard/internal/access"
	requestutil "github.com/taibuivan/vocaboard/internal/platform/request"
	"github.com/taibuivan/vocaboard/internal/platform/respond"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/pkg/pagination"
)

type Handler struct {
	service *Service
	roles   access.RoleSource
}

func NewHandler(service *Service, roles access.RoleSource) *Handler {
	return &Handler{service: service, roles: roles}
}

// RegisterRoutes mounts the member routes on an /api/v1 router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/me", handler.getMe)
	router.With(access.NewGate(handler.roles, sec.RoleStaff, sec.RoleAdmin).Handler).Get("/teachers", handler.listTeachers)
	router.With(access.NewGate(handler.roles, sec.RoleAdmin).Handler).Patch("/users/{id}/role", handler.updateRole)
}

/*
GET /api/v1/me.

Response:
  - 200: Member: the signed-in account
  - 401: not signed in
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredPrincipal(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.Me(request.Context(), requestutil.Credential(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

/*
GET /api/v1/teachers.

Request:
  - query: page, limit

Response:
  - 200: []Member with paging meta
  - 403: caller is neither staff nor admin
*/
func (handler *Handler) listTeachers(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	list, err := handler.service.ListTeachers(request.Context(), requestutil.Credential(request), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, list.Items, list.Meta(params))
}

/*
PATCH /api/v1/users/{id}/role.

Request:
  - body: RoleChange

Response:
  - 200: Member: the updated account
  - 400: unknown role or malformed id
  - 403: caller is not an admin
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	var change RoleChange
	if err := requestutil.DecodeJSON(request, &change); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.UpdateRole(request.Context(), requestutil.Credential(request), requestutil.Param(request, "id"), change)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}
