// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bookmark

import "time"

// Bookmark marks a topic, or a single word inside it, for later review.
type Bookmark struct {
	ID        string     `json:"id"`
	TopicID   string     `json:"topicId"`
	Term      string     `json:"term,omitempty"`
	Note      string     `json:"note,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type Input struct {
	TopicID string `json:"topicId"`
	Term    string `json:"term,omitempty"`
	Note    string `json:"note,omitempty"`
}

const (
	FieldID      = "id"
	FieldTopicID = "topicId"
	FieldTerm    = "term"
	FieldNote    = "note"
)
