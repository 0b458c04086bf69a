package config

const (
	// MaxDocumentNameLength is the maximum length for document display names.
	MaxDocumentNameLength = 255

	// MaxFolderNameLength is the maximum length for folder names.
	// Same as document names for consistency.
	MaxFolderNameLength = 255

	// MaxFolderPathLength is the maximum length for a full virtual folder
	// path such as "root/A/B". Deep hierarchies past this point are rejected.
	MaxFolderPathLength = 1000

	// MaxDocumentPathLength is the maximum length for a content directory path.
	MaxDocumentPathLength = 4096

	// MaxTagLength is the maximum length of a single tag.
	MaxTagLength = 64

	// MaxTags is the maximum number of tags on one document.
	MaxTags = 50
)
