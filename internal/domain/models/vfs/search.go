package vfs

import (
	"fmt"
	"time"
)

// SearchMode selects which document attribute the term is matched against
type SearchMode string

const (
	// SearchModeTitle matches a case-insensitive substring of the title
	SearchModeTitle SearchMode = "title"

	// SearchModeTag matches one tag exactly, ignoring case
	SearchModeTag SearchMode = "tag"
)

// SearchScope limits which folders are searched
type SearchScope string

const (
	SearchScopeAllDocuments  SearchScope = "all-documents"
	SearchScopeCurrentFolder SearchScope = "current-folder"
	SearchScopeAllSubfolders SearchScope = "all-subfolders"
)

// DateFilter buckets documents by when they were last viewed
type DateFilter string

const (
	DateFilterAllTime   DateFilter = "all-time"
	DateFilterToday     DateFilter = "today"
	DateFilterThisWeek  DateFilter = "this-week"
	DateFilterThisMonth DateFilter = "this-month"
	DateFilterThisYear  DateFilter = "this-year"
)

// WeekWindow is the look-back window of DateFilterThisWeek
const WeekWindow = 604800 * time.Second

// Default search configuration values
const (
	DefaultSearchMode  = SearchModeTitle
	DefaultSearchScope = SearchScopeAllSubfolders
	DefaultDateFilter  = DateFilterAllTime
)

// SearchOptions configures a search over the index
type SearchOptions struct {
	// Term is the search string (required)
	Term string

	// Mode selects title or tag matching (default: title)
	Mode SearchMode

	// Scope selects which folders are searched (default: all-subfolders)
	Scope SearchScope

	// CurrentFolder anchors the current-folder and all-subfolders scopes
	// (default: root)
	CurrentFolder string

	// DateFilter restricts by last viewed date (default: all-time)
	DateFilter DateFilter
}

// ApplyDefaults fills in default values for unset fields
func (opts *SearchOptions) ApplyDefaults() {
	if opts.Mode == "" {
		opts.Mode = DefaultSearchMode
	}
	if opts.Scope == "" {
		opts.Scope = DefaultSearchScope
	}
	if opts.DateFilter == "" {
		opts.DateFilter = DefaultDateFilter
	}
	if opts.CurrentFolder == "" {
		opts.CurrentFolder = RootName
	}
}

// Validate checks enum values
func (opts *SearchOptions) Validate() error {
	switch opts.Mode {
	case SearchModeTitle, SearchModeTag:
	default:
		return fmt.Errorf("invalid search mode: %q (supported: title, tag)", opts.Mode)
	}

	switch opts.Scope {
	case SearchScopeAllDocuments, SearchScopeCurrentFolder, SearchScopeAllSubfolders:
	default:
		return fmt.Errorf("invalid search scope: %q", opts.Scope)
	}

	switch opts.DateFilter {
	case DateFilterAllTime, DateFilterToday, DateFilterThisWeek, DateFilterThisMonth, DateFilterThisYear:
	default:
		return fmt.Errorf("invalid date filter: %q", opts.DateFilter)
	}

	return nil
}

// SearchResults contains matching documents in tree traversal order
type SearchResults struct {
	Documents []*Document   `json:"documents"`
	Options   SearchOptions `json:"-"`
}
