package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{"empty", "", 10, nil},
		{"single line", "hello", 10, []string{"hello"}},
		{"fits", "ab\ncd", 4, []string{"ab\ncd"}},
		{"splits on lines", "abc\ndef\ngh", 6, []string{"abc\ndef", "gh"}},
		{"long line alone", "abcdefghij\nk", 4, []string{"abcdefghij", "k"}},
		{"leading blank lines dropped", "\n\nabc", 10, []string{"abc"}},
		{"runes counted", "ééé\nééé", 6, []string{"ééé\nééé"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chunkText(tt.text, tt.size))
		})
	}
}

func TestChunkText_DefaultSize(t *testing.T) {
	line := strings.Repeat("x", 1000)
	text := strings.Join([]string{line, line, line, line, line}, "\n")

	chunks := chunkText(text, DefaultChunkSize)
	assert.Len(t, chunks, 2)
	assert.Equal(t, 4, strings.Count(chunks[0], line))
}
