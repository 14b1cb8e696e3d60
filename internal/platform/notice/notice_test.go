// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notice_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vocaboard/internal/platform/apperr"
	"github.com/taibuivan/vocaboard/internal/platform/notice"
)

func TestForStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, notice.SignedOutMessage},
		{"forbidden", http.StatusForbidden, notice.CheckAgainMessage},
		{"server_error", http.StatusInternalServerError, notice.CheckAgainMessage},
		{"bad_request", http.StatusBadRequest, notice.CheckAgainMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, notice.ForStatus(tt.status).Message)
		})
	}
}

func TestForError(t *testing.T) {
	assert.Equal(t, notice.LevelWarning, notice.ForError(apperr.Unauthorized("expired")).Level)
	assert.Equal(t, notice.CheckAgainMessage, notice.ForError(errors.New("boom")).Message)
}
