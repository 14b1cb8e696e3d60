// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec verifies identity-provider session tokens and defines the
// role enumeration used for authorization.
//
// # Architecture
//
// The identity provider issues and refreshes sessions; the portal only checks
// the RS256 signature and reads who the principal is. The role claim inside a
// token is informational: the backend stays authoritative for roles and is
// asked through the access package.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of an identity-provider session token.
type SessionClaims struct {
	jwt.RegisteredClaims

	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	// Role mirrors the provider's public metadata and may be stale.
	Role string `json:"role,omitempty"`
}

// Principal is the authenticated actor the portal reasons about.
type Principal struct {
	UserID    string
	Name      string
	Email     string
	ExpiresAt time.Time
}

// TokenVerifier checks identity-provider session tokens using RS256.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
	leeway    time.Duration
}

// NewTokenVerifier reads the provider's PEM public key from disk.
func NewTokenVerifier(publicKeyPath, issuer string) (*TokenVerifier, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return NewTokenVerifierFromKey(publicKey, issuer), nil
}

// NewTokenVerifierFromKey builds a verifier around an already parsed key.
func NewTokenVerifierFromKey(publicKey *rsa.PublicKey, issuer string) *TokenVerifier {
	return &TokenVerifier{
		publicKey: publicKey,
		issuer:    issuer,
		leeway:    5 * time.Second,
	}
}

// VerifyToken checks the signature and validity of a session token and
// returns the principal it names.
func (verifier *TokenVerifier) VerifyToken(tokenString string) (*Principal, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithLeeway(verifier.leeway),
		jwt.WithExpirationRequired(),
	}
	if verifier.issuer != "" {
		options = append(options, jwt.WithIssuer(verifier.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return verifier.publicKey, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("sec: invalid token claims")
	}

	if claims.Subject == "" {
		return nil, errors.New("sec: token has no subject")
	}

	principal := &Principal{
		UserID: claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}

	return principal, nil
}
