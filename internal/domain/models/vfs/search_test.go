package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// UNIT TESTS - Search option defaults and validation
// ============================================================================

func TestSearchOptions_ApplyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    *SearchOptions
		expected *SearchOptions
	}{
		{
			name:  "applies all defaults",
			input: &SearchOptions{Term: "test"},
			expected: &SearchOptions{
				Term:          "test",
				Mode:          SearchModeTitle,
				Scope:         SearchScopeAllSubfolders,
				CurrentFolder: RootName,
				DateFilter:    DateFilterAllTime,
			},
		},
		{
			name: "preserves custom values",
			input: &SearchOptions{
				Term:          "test",
				Mode:          SearchModeTag,
				Scope:         SearchScopeCurrentFolder,
				CurrentFolder: "root/A",
				DateFilter:    DateFilterThisWeek,
			},
			expected: &SearchOptions{
				Term:          "test",
				Mode:          SearchModeTag,
				Scope:         SearchScopeCurrentFolder,
				CurrentFolder: "root/A",
				DateFilter:    DateFilterThisWeek,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.ApplyDefaults()
			assert.Equal(t, tt.expected, tt.input)
		})
	}
}

func TestSearchOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    SearchOptions
		wantErr bool
	}{
		{"valid", SearchOptions{Mode: SearchModeTitle, Scope: SearchScopeAllDocuments, DateFilter: DateFilterToday}, false},
		{"unknown mode", SearchOptions{Mode: "fuzzy", Scope: SearchScopeAllDocuments, DateFilter: DateFilterToday}, true},
		{"unknown scope", SearchOptions{Mode: SearchModeTag, Scope: "galaxy", DateFilter: DateFilterToday}, true},
		{"unknown date filter", SearchOptions{Mode: SearchModeTag, Scope: SearchScopeAllDocuments, DateFilter: "someday"}, true},
		{"unset", SearchOptions{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
