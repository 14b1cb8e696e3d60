// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/vocaboard/pkg/slug"
)

/*
TestFrom covers accents, letters without decomposition and punctuation.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fruits & Vegetables", "fruits-vegetables"},
		{"Động vật hoang dã", "dong-vat-hoang-da"},
		{"Café crème", "cafe-creme"},
		{"  --Travel--  ", "travel"},
		{"IELTS 7.0 Words", "ielts-7-0-words"},
		{"日本語", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, slug.From(tt.in), tt.in)
	}
}

/*
TestFrom_MaxLength trims long names without a trailing hyphen.
*/
func TestFrom_MaxLength(t *testing.T) {
	got := slug.From(strings.Repeat("word ", 40))

	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.False(t, strings.HasSuffix(got, "-"))
}
