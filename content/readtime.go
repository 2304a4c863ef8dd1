package content

import (
	"fmt"
	"strings"
)

// WordsPerMinute is the reading speed used by ReadTime.
const WordsPerMinute = 200

// WordCount counts whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// ReadTime estimates reading time in whole minutes, rounded up. Anything
// shorter than a full minute, including empty content, counts as one.
func ReadTime(s string) int {
	minutes := (WordCount(s) + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ReadTimeLabel formats ReadTime for display.
func ReadTimeLabel(s string) string {
	return fmt.Sprintf("%d min read", ReadTime(s))
}
