// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for list endpoints.
//
// # Overview
//
// The portal parses "page" and "limit" from the browser, forwards them to the
// learning backend unchanged in meaning, and reports the page metadata in its
// own response envelope.
package pagination

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Values encodes the params as backend query parameters.
func (p Params) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(p.Page))
	values.Set("limit", strconv.Itoa(p.Limit))
	return values
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}

// # Backend Lists

// List is one page of items as returned by the learning backend.
//
// The backend answers list calls either with a bare JSON array or with an
// object of the form {"items": [...], "total": n}. Both decode into a List;
// for a bare array Total is the number of items.
type List[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// UnmarshalJSON accepts both list shapes.
func (l *List[T]) UnmarshalJSON(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		l.Items, l.Total = items, len(items)
		return nil
	}

	var object struct {
		Items []T  `json:"items"`
		Data  []T  `json:"data"`
		Total *int `json:"total"`
	}
	if err := json.Unmarshal(trimmed, &object); err != nil {
		return err
	}

	l.Items = object.Items
	if l.Items == nil {
		l.Items = object.Data
	}
	l.Total = len(l.Items)
	if object.Total != nil {
		l.Total = *object.Total
	}
	return nil
}

// Meta builds the response metadata for this page.
func (l List[T]) Meta(params Params) Meta {
	return NewMeta(params.Page, params.Limit, l.Total)
}
