// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package exercise records and lists the outcome of a student's topic
// exercise.
package exercise

import "time"

// Result is one completed exercise as stored by the learning backend.
type Result struct {
	ID              string     `json:"id"`
	TopicID         string     `json:"topicId"`
	StudentID       string     `json:"studentId,omitempty"`
	Score           int        `json:"score"`
	Total           int        `json:"total"`
	DurationSeconds int        `json:"durationSeconds,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
}

// Percent returns the score as a whole percentage of total.
func (r Result) Percent() int {
	if r.Total <= 0 {
		return 0
	}
	return r.Score * 100 / r.Total
}

// Submission is the payload a student sends after finishing a topic.
type Submission struct {
	TopicID         string `json:"topicId"`
	Score           int    `json:"score"`
	Total           int    `json:"total"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
}

// Filter narrows a result listing. Both fields are optional.
type Filter struct {
	TopicID   string
	StudentID string
}

// MaxQuestions bounds Submission.Total.
const MaxQuestions = 500

const (
	FieldTopicID   = "topicId"
	FieldStudentID = "studentId"
	FieldScore     = "score"
	FieldTotal     = "total"
	FieldDuration  = "durationSeconds"
)
