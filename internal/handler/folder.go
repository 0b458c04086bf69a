package handler

import (
	"log/slog"
	"net/http"

	"scrapbook/internal/domain/models/vfs"
	vfsSvc "scrapbook/internal/domain/services/vfs"
	"scrapbook/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService vfsSvc.FolderService
	content       vfsSvc.ContentStore
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService vfsSvc.FolderService, content vfsSvc.ContentStore, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		content:       content,
		logger:        logger,
	}
}

// InsertFolder creates an empty folder
// POST /api/folders
func (h *FolderHandler) InsertFolder(w http.ResponseWriter, r *http.Request) {
	var req vfsSvc.InsertFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folderService.InsertFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// DeleteFolder removes a folder and its subtree.
// DELETE /api/folders?name=&parent_folder_path=&purge=
//
// With purge=true the content directories of every removed document are
// deleted as well.
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	name, ok := requireQuery(w, r, "name")
	if !ok {
		return
	}
	parent, ok := requireQuery(w, r, "parent_folder_path")
	if !ok {
		return
	}
	purgeContent, err := httputil.QueryBool(r, "purge")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := h.folderService.DeleteFolder(r.Context(), &vfsSvc.DeleteFolderRequest{
		Name:             name,
		ParentFolderPath: parent,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	resp := DeleteResponse{Removed: removed}
	if purgeContent {
		resp.Purged, resp.PurgeFailure = purge(r, h.content, removed, h.logger)
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// RenameFolder renames a folder and rewrites its descendants' paths
// PATCH /api/folders/rename
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	var req vfsSvc.RenameFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folderService.RenameFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// MoveFolder moves a folder under another folder
// POST /api/folders/move
func (h *FolderHandler) MoveFolder(w http.ResponseWriter, r *http.Request) {
	var req vfsSvc.MoveFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folderService.MoveFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// ListContents lists the direct children of a folder
// GET /api/folders/contents?path=
func (h *FolderHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = vfs.RootName
	}

	contents, err := h.folderService.ListContents(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}

// DescendantDocuments returns every document at or below a folder
// GET /api/folders/documents?path=
func (h *FolderHandler) DescendantDocuments(w http.ResponseWriter, r *http.Request) {
	path, ok := requireQuery(w, r, "path")
	if !ok {
		return
	}

	docs, err := h.folderService.DescendantDocuments(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	if docs == nil {
		docs = []*vfs.Document{}
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// IsUniqueFolderName checks whether a folder name is free under a parent
// GET /api/folders/unique?name=&parent_folder_path=
func (h *FolderHandler) IsUniqueFolderName(w http.ResponseWriter, r *http.Request) {
	name, ok := requireQuery(w, r, "name")
	if !ok {
		return
	}
	parent, ok := requireQuery(w, r, "parent_folder_path")
	if !ok {
		return
	}

	unique, err := h.folderService.IsUniqueFolderName(r.Context(), name, parent)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, UniqueResponse{Unique: unique})
}
