package vfs

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"scrapbook/internal/config"
)

func TestIsXMLText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"plain", true},
		{"tab\tand\nnewline\r", true},
		{"Café 日本 🍜", true},
		{"a\x01b", false},
		{"nul\x00", false},
		{"bad\xffutf8", false},
		{"\uFFFE", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsXMLText(tt.in), "%q", tt.in)
	}
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "Café", pageTitle("  Ca\x01f\xffé ", "/data/1"))
	assert.Equal(t, "1", pageTitle("\x02\x03", "/data/1"))

	long := pageTitle(strings.Repeat("é", config.MaxDocumentNameLength), "/data/1")
	assert.True(t, utf8.ValidString(long))
	assert.LessOrEqual(t, len(long), config.MaxDocumentNameLength)
}

func TestPageTags_DropsUnstorable(t *testing.T) {
	assert.Equal(t, []string{"food"}, pageTags([]string{"food", "bad\x00tag"}))
}

func TestCleanDocumentPath(t *testing.T) {
	assert.Equal(t, "", cleanDocumentPath(""))
	assert.Equal(t, "/data/abc", cleanDocumentPath("/data/abc/"))
	assert.Equal(t, "/data/abc", cleanDocumentPath("/data//x/../abc"))
}
