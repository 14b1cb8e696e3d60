// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vocaboard/internal/platform/config"
)

/*
TestLoad_Defaults verifies that optional settings fall back to their defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("IDP_PUBLIC_KEY_PATH", "/keys/idp.pem")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "v1", cfg.APIVersion)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.HasCMS())
	assert.Equal(t, 10, cfg.RedisPoolSize)
}

/*
TestLoad_MissingRequired verifies that the backend URL is mandatory.
*/
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("IDP_PUBLIC_KEY_PATH", "/keys/idp.pem")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoad_InvalidTimeout rejects a zero upstream timeout.
*/
func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("IDP_PUBLIC_KEY_PATH", "/keys/idp.pem")
	t.Setenv("UPSTREAM_TIMEOUT", "0s")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestConfig_AllowedOrigins splits and trims the origin list.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: " vocaboard.app , ,school.edu"}
	assert.Equal(t, []string{"vocaboard.app", "school.edu"}, cfg.AllowedOrigins())

	empty := &config.Config{}
	assert.Nil(t, empty.AllowedOrigins())
}
