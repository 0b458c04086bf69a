package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLSanitizer_Sanitize(t *testing.T) {
	s := NewHTMLSanitizer()

	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:        "script removed",
			input:       `<p>hello</p><script>alert(1)</script>`,
			contains:    []string{"<p>hello</p>"},
			notContains: []string{"<script", "alert"},
		},
		{
			name:        "event handler removed",
			input:       `<a href="https://example.com" onclick="steal()">link</a>`,
			contains:    []string{`href="https://example.com"`, "link"},
			notContains: []string{"onclick"},
		},
		{
			name:        "relative image kept",
			input:       `<img src="images/photo.png" alt="photo">`,
			contains:    []string{`src="images/photo.png"`},
		},
		{
			name:        "javascript url removed",
			input:       `<a href="javascript:alert(1)">x</a>`,
			notContains: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.Sanitize(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}
