package handler

import (
	"log/slog"
	"net/http"

	"scrapbook/internal/domain/models/vfs"
	vfsSvc "scrapbook/internal/domain/services/vfs"
	"scrapbook/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	documentService vfsSvc.DocumentService
	searchService   vfsSvc.SearchService
	content         vfsSvc.ContentStore
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	documentService vfsSvc.DocumentService,
	searchService vfsSvc.SearchService,
	content vfsSvc.ContentStore,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		searchService:   searchService,
		content:         content,
		logger:          logger,
	}
}

// documentPathRequest is the body of endpoints that only need a document path
type documentPathRequest struct {
	DocumentPath string `json:"document_path"`
}

// InsertDocument indexes a saved page in a folder
// POST /api/documents
func (h *DocumentHandler) InsertDocument(w http.ResponseWriter, r *http.Request) {
	var req vfsSvc.InsertDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documentService.InsertDocument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument finds a document anywhere in the tree
// GET /api/documents?document_path=
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	documentPath, ok := requireQuery(w, r, "document_path")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(r.Context(), documentPath)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document from a folder
// DELETE /api/documents?document_path=&folder_path=&purge=
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentPath, ok := requireQuery(w, r, "document_path")
	if !ok {
		return
	}
	folderPath, ok := requireQuery(w, r, "folder_path")
	if !ok {
		return
	}
	purgeContent, err := httputil.QueryBool(r, "purge")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ref, err := h.documentService.DeleteDocument(r.Context(), &vfsSvc.DeleteDocumentRequest{
		DocumentPath: documentPath,
		FolderPath:   folderPath,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	resp := DeleteResponse{Removed: []vfs.DocumentRef{*ref}}
	if purgeContent {
		resp.Purged, resp.PurgeFailure = purge(r, h.content, resp.Removed, h.logger)
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// RenameDocument changes a document's display name
// PATCH /api/documents/rename
func (h *DocumentHandler) RenameDocument(w http.ResponseWriter, r *http.Request) {
	var req vfsSvc.RenameDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documentService.RenameDocument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// MoveDocument moves a document to another folder
// POST /api/documents/move
func (h *DocumentHandler) MoveDocument(w http.ResponseWriter, r *http.Request) {
	var req vfsSvc.MoveDocumentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documentService.MoveDocument(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// SetTags replaces a document's tags
// PUT /api/documents/tags
func (h *DocumentHandler) SetTags(w http.ResponseWriter, r *http.Request) {
	var req vfsSvc.SetTagsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documentService.SetTags(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// MarkViewed records that a document was opened
// POST /api/documents/viewed
func (h *DocumentHandler) MarkViewed(w http.ResponseWriter, r *http.Request) {
	var req documentPathRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documentService.MarkViewed(r.Context(), req.DocumentPath)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// IsUniqueDocumentName checks whether a display name is free in a folder
// GET /api/documents/unique?display_name=&folder_path=
func (h *DocumentHandler) IsUniqueDocumentName(w http.ResponseWriter, r *http.Request) {
	displayName, ok := requireQuery(w, r, "display_name")
	if !ok {
		return
	}
	folderPath, ok := requireQuery(w, r, "folder_path")
	if !ok {
		return
	}

	unique, err := h.documentService.IsUniqueDocumentName(r.Context(), displayName, folderPath)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, UniqueResponse{Unique: unique})
}

// SearchDocuments finds documents by title or tag
// GET /api/documents/search?term=&mode=&scope=&current_folder=&date_filter=
//
// Unset parameters fall back to title mode, all-subfolders scope from root,
// and all-time.
func (h *DocumentHandler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := &vfs.SearchOptions{
		Term:          query.Get("term"),
		Mode:          vfs.SearchMode(query.Get("mode")),
		Scope:         vfs.SearchScope(query.Get("scope")),
		CurrentFolder: query.Get("current_folder"),
		DateFilter:    vfs.DateFilter(query.Get("date_filter")),
	}

	results, err := h.searchService.Search(r.Context(), opts)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}

// ExportDocument renders an indexed page as markdown
// GET /api/documents/export?document_path=
func (h *DocumentHandler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	documentPath, ok := requireQuery(w, r, "document_path")
	if !ok {
		return
	}

	// Only indexed pages are exported
	if _, err := h.documentService.GetDocument(r.Context(), documentPath); err != nil {
		handleError(w, err)
		return
	}

	markdown, err := h.content.ExportMarkdown(r.Context(), documentPath)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondText(w, http.StatusOK, "text/markdown; charset=utf-8", markdown)
}

// HealthCheck handles health check requests
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
