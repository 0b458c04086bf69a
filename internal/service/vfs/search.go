package vfs

import (
	"context"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"scrapbook/internal/domain/models/vfs"
	"scrapbook/internal/domain/repositories"
	vfsSvc "scrapbook/internal/domain/services/vfs"
)

type searchService struct {
	txManager    repositories.TransactionManager
	pathResolver vfsSvc.PathResolver
	now          func() time.Time
	logger       *slog.Logger
}

// NewSearchService creates a new search service. now anchors the date
// filters; nil means time.Now.
func NewSearchService(
	txManager repositories.TransactionManager,
	pathResolver vfsSvc.PathResolver,
	now func() time.Time,
	logger *slog.Logger,
) vfsSvc.SearchService {
	if now == nil {
		now = time.Now
	}
	return &searchService{
		txManager:    txManager,
		pathResolver: pathResolver,
		now:          now,
		logger:       logger,
	}
}

// Search returns the documents matching opts in tree traversal order
func (s *searchService) Search(ctx context.Context, opts *vfs.SearchOptions) (*vfs.SearchResults, error) {
	opts.Term = strings.TrimSpace(opts.Term)
	opts.ApplyDefaults()

	if err := validation.ValidateStruct(opts,
		validation.Field(&opts.Term, validation.Required.Error("search term cannot be empty")),
		validation.Field(&opts.CurrentFolder, folderPathRule),
	); err != nil {
		return nil, invalid(err)
	}
	if err := opts.Validate(); err != nil {
		return nil, invalid(err)
	}

	now := s.now()
	matches := make([]*vfs.Document, 0)
	err := s.txManager.ReadTx(ctx, func(_ context.Context, tree *vfs.Tree) error {
		candidates, err := s.candidates(tree, opts)
		if err != nil {
			return err
		}

		for _, doc := range candidates {
			if matchesTerm(doc, opts) && matchesDate(doc.Metadata.DateLastViewed, opts.DateFilter, now) {
				matches = append(matches, doc)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("search completed",
		"term", opts.Term,
		"mode", opts.Mode,
		"scope", opts.Scope,
		"date_filter", opts.DateFilter,
		"results", len(matches),
	)

	return &vfs.SearchResults{Documents: matches, Options: *opts}, nil
}

// candidates returns the documents inside the search scope
func (s *searchService) candidates(tree *vfs.Tree, opts *vfs.SearchOptions) ([]*vfs.Document, error) {
	if opts.Scope == vfs.SearchScopeAllDocuments {
		return tree.Documents(), nil
	}

	folder, err := s.pathResolver.ResolveFolder(tree, opts.CurrentFolder)
	if err != nil {
		return nil, err
	}

	if opts.Scope == vfs.SearchScopeCurrentFolder {
		return folder.Documents, nil
	}
	return folder.AllDocuments(), nil
}

// matchesTerm applies the title or tag match
func matchesTerm(doc *vfs.Document, opts *vfs.SearchOptions) bool {
	switch opts.Mode {
	case vfs.SearchModeTag:
		return doc.HasTag(opts.Term)
	default:
		return strings.Contains(strings.ToLower(doc.Metadata.Title), strings.ToLower(opts.Term))
	}
}

// matchesDate reports whether a last viewed date falls inside filter.
// Calendar comparisons use now's location. Documents that were never
// viewed only match DateFilterAllTime.
func matchesDate(viewed *time.Time, filter vfs.DateFilter, now time.Time) bool {
	if filter == vfs.DateFilterAllTime {
		return true
	}
	if viewed == nil {
		return false
	}

	v := viewed.In(now.Location())
	switch filter {
	case vfs.DateFilterToday:
		vy, vm, vd := v.Date()
		ny, nm, nd := now.Date()
		return vy == ny && vm == nm && vd == nd
	case vfs.DateFilterThisWeek:
		return now.Sub(v) <= vfs.WeekWindow
	case vfs.DateFilterThisMonth:
		return v.Year() == now.Year() && v.Month() == now.Month()
	case vfs.DateFilterThisYear:
		return v.Year() == now.Year()
	default:
		return false
	}
}
