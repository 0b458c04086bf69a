package handler

import (
	"log/slog"
	"net/http"

	serviceVfs "scrapbook/internal/service/vfs"
)

// NewRouter registers every API route (Go 1.22+ enhanced patterns)
func NewRouter(services *serviceVfs.Services, logger *slog.Logger) *http.ServeMux {
	docHandler := NewDocumentHandler(services.Documents, services.Search, services.Content, logger)
	folderHandler := NewFolderHandler(services.Folders, services.Content, logger)
	treeHandler := NewTreeHandler(services.Tree, services.Mount, logger)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	// Tree routes
	mux.HandleFunc("GET /api/tree", treeHandler.GetTree)
	mux.HandleFunc("POST /api/mount", treeHandler.Mount)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.InsertFolder)
	mux.HandleFunc("DELETE /api/folders", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/folders/contents", folderHandler.ListContents)
	mux.HandleFunc("GET /api/folders/documents", folderHandler.DescendantDocuments)
	mux.HandleFunc("GET /api/folders/unique", folderHandler.IsUniqueFolderName)
	mux.HandleFunc("PATCH /api/folders/rename", folderHandler.RenameFolder)
	mux.HandleFunc("POST /api/folders/move", folderHandler.MoveFolder)

	// Document routes
	mux.HandleFunc("POST /api/documents", docHandler.InsertDocument)
	mux.HandleFunc("GET /api/documents", docHandler.GetDocument)
	mux.HandleFunc("DELETE /api/documents", docHandler.DeleteDocument)
	mux.HandleFunc("GET /api/documents/search", docHandler.SearchDocuments)
	mux.HandleFunc("GET /api/documents/unique", docHandler.IsUniqueDocumentName)
	mux.HandleFunc("GET /api/documents/export", docHandler.ExportDocument)
	mux.HandleFunc("PATCH /api/documents/rename", docHandler.RenameDocument)
	mux.HandleFunc("POST /api/documents/move", docHandler.MoveDocument)
	mux.HandleFunc("PUT /api/documents/tags", docHandler.SetTags)
	mux.HandleFunc("POST /api/documents/viewed", docHandler.MarkViewed)

	return mux
}
