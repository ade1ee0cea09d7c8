package blob

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// VersionPath builds the blob key for a document version:
// documents/{documentID}/v{n}-{token}{ext}. The random token keeps
// retried uploads from colliding on the same version number.
func VersionPath(documentID string, versionNumber int, fileName string) string {
	token := uuid.NewString()[:8]
	return path.Join("documents", documentID, fmt.Sprintf("v%d-%s%s", versionNumber, token, safeExt(fileName)))
}

// safeExt extracts a sanitized file extension (including the dot), or ""
// when the name has none. Extensions are display hints only; content type
// is never derived from them.
func safeExt(fileName string) string {
	ext := path.Ext(path.Base(fileName))
	if ext == "." || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	// Cap pathological extensions
	if len(ext) > 16 {
		return ""
	}
	return strings.ToLower(ext)
}
