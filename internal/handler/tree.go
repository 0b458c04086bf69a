package handler

import (
	"log/slog"
	"net/http"

	vfsSvc "scrapbook/internal/domain/services/vfs"
	"scrapbook/internal/httputil"
)

// TreeHandler handles HTTP requests for tree operations
type TreeHandler struct {
	treeService  vfsSvc.TreeService
	mountService vfsSvc.MountService
	logger       *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService vfsSvc.TreeService, mountService vfsSvc.MountService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService:  treeService,
		mountService: mountService,
		logger:       logger,
	}
}

// GetTree returns the whole folder/document tree
// GET /api/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.treeService.GetTree(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree.Root)
}

// Mount prepares the scrapbook home and indexes new content directories
// POST /api/mount
func (h *TreeHandler) Mount(w http.ResponseWriter, r *http.Request) {
	result, err := h.mountService.Mount(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("mount requested over http",
		"added", len(result.Added),
		"pruned", len(result.Pruned),
		"request_id", httputil.GetRequestID(r),
		"user_id", httputil.GetUserID(r),
	)

	httputil.RespondJSON(w, http.StatusOK, result)
}
