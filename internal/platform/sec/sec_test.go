// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vocaboard/internal/platform/sec"
)

func signToken(t *testing.T, key *rsa.PrivateKey, claims sec.SessionClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

/*
TestTokenVerifier_Valid verifies that a well-formed token yields its principal.
*/
func TestTokenVerifier_Valid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier := sec.NewTokenVerifierFromKey(&key.PublicKey, "https://idp.example.com")
	token := signToken(t, key, sec.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_123",
			Issuer:    "https://idp.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:  "Lan",
		Email: "lan@example.com",
	})

	principal, err := verifier.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user_123", principal.UserID)
	assert.Equal(t, "Lan", principal.Name)
	assert.Equal(t, "lan@example.com", principal.Email)
	assert.False(t, principal.ExpiresAt.IsZero())
}

/*
TestTokenVerifier_Rejects covers expired, foreign-issuer and foreign-key tokens.
*/
func TestTokenVerifier_Rejects(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier := sec.NewTokenVerifierFromKey(&key.PublicKey, "https://idp.example.com")
	valid := jwt.RegisteredClaims{
		Subject:   "user_123",
		Issuer:    "https://idp.example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	foreignIssuer := valid
	foreignIssuer.Issuer = "https://evil.example.com"

	noSubject := valid
	noSubject.Subject = ""

	tests := []struct {
		name  string
		token string
	}{
		{"expired", signToken(t, key, sec.SessionClaims{RegisteredClaims: expired})},
		{"foreign_issuer", signToken(t, key, sec.SessionClaims{RegisteredClaims: foreignIssuer})},
		{"foreign_key", signToken(t, otherKey, sec.SessionClaims{RegisteredClaims: valid})},
		{"no_subject", signToken(t, key, sec.SessionClaims{RegisteredClaims: noSubject})},
		{"garbage", "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.VerifyToken(tt.token)
			assert.Error(t, err)
		})
	}
}

/*
TestParseRole normalizes known roles and rejects everything else.
*/
func TestParseRole(t *testing.T) {
	for _, role := range sec.Roles() {
		parsed, ok := sec.ParseRole(" " + string(role) + " ")
		assert.True(t, ok)
		assert.Equal(t, role, parsed)
	}

	upper, ok := sec.ParseRole("TEACHER")
	assert.True(t, ok)
	assert.Equal(t, sec.RoleTeacher, upper)

	for _, raw := range []string{"", "moderator", "root"} {
		_, ok := sec.ParseRole(raw)
		assert.False(t, ok, raw)
	}
}

/*
TestRoleSet checks membership and ordering.
*/
func TestRoleSet(t *testing.T) {
	set := sec.NewRoleSet(sec.RoleStaff, sec.RoleAdmin, sec.Role("ghost"))

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has(sec.RoleAdmin))
	assert.False(t, set.Has(sec.RoleStudent))
	assert.False(t, set.Has(sec.Role("ghost")))
	assert.Equal(t, []sec.Role{sec.RoleAdmin, sec.RoleStaff}, set.Slice())
}
