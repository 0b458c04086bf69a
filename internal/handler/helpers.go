package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"scrapbook/internal/domain"
	"scrapbook/internal/domain/models/vfs"
	vfsSvc "scrapbook/internal/domain/services/vfs"
	"scrapbook/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Unresolved paths and name collisions carry their details as extra fields.
func handleError(w http.ResponseWriter, err error) {
	var (
		conflictErr   *domain.ConflictError
		unresolvedErr *domain.PathUnresolvedError
	)

	switch {
	case errors.As(err, &unresolvedErr):
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, unresolvedErr.Error(), map[string]interface{}{
			"path":     unresolvedErr.Path,
			"resolved": unresolvedErr.Resolved,
		})
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"folder_path":   conflictErr.FolderPath,
			"name":          conflictErr.Name,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireQuery returns a non-empty query parameter or writes a 400
func requireQuery(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, name+" query parameter is required")
		return "", false
	}
	return value, true
}

// PurgeFailure reports a content directory that could not be removed
type PurgeFailure struct {
	DocumentPath string `json:"document_path"`
	Error        string `json:"error"`
}

// DeleteResponse is returned by the folder and document delete endpoints
type DeleteResponse struct {
	Removed      []vfs.DocumentRef `json:"removed"`
	Purged       []string          `json:"purged,omitempty"`
	PurgeFailure []PurgeFailure    `json:"purge_failures,omitempty"`
}

// purge removes the content directories of refs. The index entries are
// already gone, so failures are reported instead of failing the request.
func purge(r *http.Request, content vfsSvc.ContentStore, refs []vfs.DocumentRef, logger *slog.Logger) ([]string, []PurgeFailure) {
	var (
		purged   []string
		failures []PurgeFailure
	)
	for _, ref := range refs {
		if err := content.Remove(ref.DocumentPath); err != nil {
			logger.Warn("content purge failed",
				"document_path", ref.DocumentPath,
				"request_id", httputil.GetRequestID(r),
				"user_id", httputil.GetUserID(r),
				"error", err,
			)
			failures = append(failures, PurgeFailure{DocumentPath: ref.DocumentPath, Error: err.Error()})
			continue
		}
		purged = append(purged, ref.DocumentPath)
	}
	if len(purged) > 0 {
		logger.Info("content purged",
			"count", len(purged),
			"request_id", httputil.GetRequestID(r),
			"user_id", httputil.GetUserID(r),
		)
	}
	return purged, failures
}

// UniqueResponse answers the name availability endpoints
type UniqueResponse struct {
	Unique bool `json:"unique"`
}
