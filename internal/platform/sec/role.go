// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// Role represents the single authorization attribute granted to a principal.
type Role string

const (
	// Manages every area and assigns roles
	RoleAdmin Role = "admin"

	// Works through roadmaps, exercises and bookmarks
	RoleStudent Role = "student"

	// Authors topics and reviews exercise results
	RoleTeacher Role = "teacher"

	// Runs school operations (teacher rosters, categories)
	RoleStaff Role = "staff"

	// Follows a child's progress
	RoleParent Role = "parent"
)

// Roles lists the full enumeration in a stable order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleStudent, RoleTeacher, RoleStaff, RoleParent}
}

// ParseRole normalizes a raw role value. The second result is false for values
// outside the enumeration, including the empty string.
func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	return role, role.Valid()
}

// Valid reports whether r belongs to the enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent, RoleTeacher, RoleStaff, RoleParent:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// # Role Sets

// RoleSet is an immutable membership set of roles.
type RoleSet struct {
	members map[Role]struct{}
}

// NewRoleSet builds a set from the given roles. Invalid roles are ignored.
func NewRoleSet(roles ...Role) RoleSet {
	members := make(map[Role]struct{}, len(roles))
	for _, role := range roles {
		if role.Valid() {
			members[role] = struct{}{}
		}
	}
	return RoleSet{members: members}
}

// Has reports whether role is a member of the set.
func (s RoleSet) Has(role Role) bool {
	_, ok := s.members[role]
	return ok
}

// Len returns the number of members.
func (s RoleSet) Len() int { return len(s.members) }

// Slice returns the members in enumeration order.
func (s RoleSet) Slice() []Role {
	out := make([]Role, 0, len(s.members))
	for _, role := range Roles() {
		if s.Has(role) {
			out = append(out, role)
		}
	}
	return out
}
