// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package member

import (
	"time"

	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/pkg/pointer"
)

// Member is a user account as the learning backend exposes it.
type Member struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	DisplayName *string    `json:"displayName,omitempty"`
	Email       string     `json:"email,omitempty"`
	Role        sec.Role   `json:"role"`
	AvatarURL   *string    `json:"avatarUrl,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Label returns the display name, falling back to the account name.
func (m Member) Label() string {
	return pointer.Fallback(m.DisplayName, m.Name)
}

// RoleChange is the body of a role update.
type RoleChange struct {
	Role string `json:"role"`
}

const (
	FieldID   = "id"
	FieldRole = "role"
)
