package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadTime(t *testing.T) {
	words := func(n int) string { return strings.TrimSpace(strings.Repeat("word ", n)) }
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 1},
		{"whitespace only", " \n\t ", 1},
		{"one word", "hello", 1},
		{"exactly one minute", words(200), 1},
		{"just over one minute", words(201), 2},
		{"two minutes", words(400), 2},
		{"long", words(1001), 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadTime(tt.content))
		})
	}
}

func TestWordCountSplitsOnAnyWhitespace(t *testing.T) {
	assert.Equal(t, 4, WordCount("one\ttwo\nthree   four"))
}

func TestReadTimeLabel(t *testing.T) {
	assert.Equal(t, "1 min read", ReadTimeLabel(""))
}
