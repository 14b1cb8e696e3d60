// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package access

import (
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
)

// # Role Route Map

// RouteMap maps each role to the area a principal lands on.
//
// It is the single configuration table shared by the [Resolver] redirect and
// every [Gate] fallback.
type RouteMap map[sec.Role]string

// DefaultRoutes returns the portal's role → area table.
func DefaultRoutes() RouteMap {
	return RouteMap{
		sec.RoleAdmin:   "/admin",
		sec.RoleStudent: "/student",
		sec.RoleTeacher: "/teacher",
		sec.RoleStaff:   "/staff",
		sec.RoleParent:  "/parent",
	}
}

// Destination is total over any role value: unmapped, unknown or empty roles
// land on the home route.
func (routes RouteMap) Destination(role sec.Role) string {
	if path, ok := routes[role]; ok && path != "" {
		return path
	}
	return constants.HomePath
}

// # Protected Areas

// Area is one role-gated section of the portal.
type Area struct {
	Name    string
	Allowed []sec.Role
}

// Areas returns the allowed-role configuration for every protected area.
// The path of each area comes from [RouteMap] under the same name.
func Areas() []Area {
	return []Area{
		{Name: "admin", Allowed: []sec.Role{sec.RoleAdmin}},
		{Name: "student", Allowed: []sec.Role{sec.RoleStudent}},
		{Name: "teacher", Allowed: []sec.Role{sec.RoleTeacher, sec.RoleAdmin}},
		{Name: "staff", Allowed: []sec.Role{sec.RoleStaff, sec.RoleAdmin}},
		{Name: "parent", Allowed: []sec.Role{sec.RoleParent}},
	}
}
