package strutil_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/mrfuxi/gae-blog/pkg/strutil"
)

/*
TestTruncateChars covers short, exact and overflowing inputs.
*/
func TestTruncateChars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"shorter_than_limit", "short body", 100, "short body"},
		{"exact_limit", strings.Repeat("x", 10), 10, strings.Repeat("x", 10)},
		{"one_over", strings.Repeat("x", 11), 10, "xxxxxxx..."},
		{"multibyte_runes", "żółć gęślą jaźń", 8, "żółć ..."},
		{"zero_limit", "anything", 0, ""},
		{"tiny_limit", "anything", 2, ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strutil.TruncateChars(tt.input, tt.limit))
		})
	}
}

/*
TestTruncateChars_PostPreview checks the preview shown for long post bodies.
*/
func TestTruncateChars_PostPreview(t *testing.T) {
	body := strings.Repeat("ABC ", 123)

	got := strutil.TruncateChars(body, 100)

	assert.Equal(t, strings.Repeat("ABC ", 24)+"A...", got)
	assert.Equal(t, 100, utf8.RuneCountInString(got))
}
