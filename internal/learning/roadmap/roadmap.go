// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package roadmap manages ordered learning paths made of topics.
package roadmap

import "time"

// Level is the difficulty a roadmap targets.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Roadmap is an ordered path through topics inside one category.
type Roadmap struct {
	ID          string     `json:"id"`
	CategoryID  string     `json:"categoryId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Level       Level      `json:"level,omitempty"`
	TopicCount  int        `json:"topicCount,omitempty"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Input is the payload accepted by create and update calls.
type Input struct {
	CategoryID  string `json:"categoryId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Level       Level  `json:"level,omitempty"`
}

// Filter narrows a roadmap listing.
type Filter struct {
	CategoryID string
}

// Global field names for validation
const (
	FieldID          = "id"
	FieldCategoryID  = "categoryId"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldLevel       = "level"
)
