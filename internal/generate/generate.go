// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package generate drafts vocabulary from a picture.

A teacher uploads one image; the learning backend's generator returns
candidate words which the teacher then edits into a topic. The portal only
validates and forwards the upload. Nothing is stored here.
*/
package generate

import (
	"io"

	"github.com/taibuivan/vocaboard/internal/learning/topic"
)

// Request is one generation call.
type Request struct {
	FileName string
	// ContentType is what the client declared. The forwarded type is sniffed.
	ContentType string
	Size        int64
	Image       io.Reader

	// Optional hints for the generator
	Language string
	Count    int
}

// Result is what the generator proposes.
type Result struct {
	Title string       `json:"title,omitempty"`
	Words []topic.Word `json:"words"`
}

// MaxWords bounds Request.Count.
const MaxWords = 50

const (
	FieldImage    = "image"
	FieldLanguage = "language"
	FieldCount    = "count"
)

// acceptedTypes are the image formats the generator understands.
var acceptedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}
