package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxProjectNameLength = 255

	// MaxDocumentNameLength is the maximum length for document names.
	// Same bound as project names for consistency.
	MaxDocumentNameLength = 255

	// MaxChangesSummaryLength is the maximum length for a version's
	// changes summary. Longer change descriptions belong in the
	// document itself, not the revision ledger.
	MaxChangesSummaryLength = 1000

	// MaxUploadBytes is the maximum accepted upload size for a single
	// document revision (50MB). Construction drawings routinely reach
	// tens of megabytes; anything larger should go through a transmittal.
	MaxUploadBytes = 50 << 20

	// RecentActivityFeedSize is the number of entries kept per project
	// in the Redis recent-activity feed.
	RecentActivityFeedSize = 50
)
