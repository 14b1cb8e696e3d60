// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package topic manages vocabulary topics, the unit a student studies and is
// tested on.
package topic

import "time"

// Word is one vocabulary entry inside a topic.
type Word struct {
	Term          string `json:"term"`
	Meaning       string `json:"meaning"`
	Pronunciation string `json:"pronunciation,omitempty"`
	PartOfSpeech  string `json:"partOfSpeech,omitempty"`
	Example       string `json:"example,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

// Topic is a titled list of words placed on a roadmap.
type Topic struct {
	ID          string     `json:"id"`
	RoadmapID   string     `json:"roadmapId,omitempty"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug,omitempty"`
	Description string     `json:"description,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Order       int        `json:"order,omitempty"`
	Words       []Word     `json:"words,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Input is the payload accepted by create and update calls.
type Input struct {
	RoadmapID   string `json:"roadmapId"`
	Title       string `json:"title"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Order       int    `json:"order,omitempty"`
	Words       []Word `json:"words"`
}

// Filter narrows a topic listing.
type Filter struct {
	RoadmapID string
}

// MaxWords bounds the size of one topic.
const MaxWords = 200

// Global field names for validation
const (
	FieldID        = "id"
	FieldRoadmapID = "roadmapId"
	FieldTitle     = "title"
	FieldSlug      = "slug"
	FieldWords     = "words"
	FieldOrder     = "order"
)
