// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered identifiers for request correlation.

Version 7 values sort by creation time, so request IDs in the logs line up
with the order requests arrived in.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string. If the time-ordered generator fails it
// falls back to a random (v4) identifier instead of failing the request.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
