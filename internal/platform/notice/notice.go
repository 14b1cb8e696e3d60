// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package notice maps failures to the short, user-facing messages that the
// browser shows as toasts.
//
// It is the only centralized presentation policy for errors: 401 tells the
// user to sign in, everything else asks them to check again. Technical detail
// never reaches the toast.
package notice

import (
	"net/http"

	"github.com/taibuivan/vocaboard/internal/platform/apperr"
)

// Level is the visual severity of a toast.
type Level string

const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

const (
	// SignedOutMessage is shown when the session credential is missing or rejected.
	SignedOutMessage = "You are not signed in. Please sign in and try again."

	// CheckAgainMessage is shown for every other failure.
	CheckAgainMessage = "Something went wrong, please check again."
)

// Notice is the toast payload embedded in error envelopes.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// ForStatus returns the notice for an HTTP status code.
func ForStatus(status int) Notice {
	switch status {
	case http.StatusUnauthorized:
		return Notice{Level: LevelWarning, Message: SignedOutMessage}
	default:
		return Notice{Level: LevelError, Message: CheckAgainMessage}
	}
}

// ForError returns the notice for any error, using its [apperr.AppError] status when present.
func ForError(err error) Notice {
	return ForStatus(apperr.StatusOf(err))
}
