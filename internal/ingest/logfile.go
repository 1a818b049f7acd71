package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/crimson-sun/triage/internal/model"
)

// MaxLogFileBytes caps error log files at 50 MB.
const MaxLogFileBytes = 50 * 1024 * 1024

var supportedLogExtensions = map[string]bool{
	".txt": true,
	".log": true,
}

// dangerousExtensions are rejected outright, even before the allowlist.
var dangerousExtensions = map[string]bool{
	".exe": true, ".bat": true, ".sh": true, ".ps1": true,
	".dll": true, ".so": true, ".app": true, ".cmd": true,
	".com": true, ".msi": true, ".scr": true,
}

func init() {
	Register(model.SourceLogFile, func() Handler {
		return &LogFile{}
	})
}

// LogFile handles plain text error log files.
type LogFile struct{}

// Ingest reads the log file at the given path after validating the path,
// extension, and size.
func (h *LogFile) Ingest(_ context.Context, source string) (string, model.SourceMetadata, error) {
	var meta model.SourceMetadata

	if hasTraversal(source) {
		slog.Warn("path traversal detected", "path", source)
		return "", meta, fmt.Errorf("ingest: unsafe file path: %s", source)
	}

	ext := strings.ToLower(filepath.Ext(source))
	if dangerousExtensions[ext] {
		slog.Warn("dangerous file extension", "path", source, "ext", ext)
		return "", meta, fmt.Errorf("ingest: unsafe file extension: %s", ext)
	}
	if !supportedLogExtensions[ext] {
		return "", meta, fmt.Errorf("ingest: unsupported file type: %s", ext)
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", meta, fmt.Errorf("ingest: %w", err)
	}
	if info.Size() > MaxLogFileBytes {
		return "", meta, fmt.Errorf(
			"ingest: file size %d exceeds maximum %d bytes", info.Size(), MaxLogFileBytes)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", meta, fmt.Errorf("ingest: %w", err)
	}
	text := string(data)

	meta = model.SourceMetadata{
		SourceType:    model.SourceLogFile,
		SourceID:      source,
		IngestedAt:    time.Now().UTC(),
		FileName:      filepath.Base(source),
		FileSizeBytes: info.Size(),
		RawTextLength: len(text),
	}
	return text, meta, nil
}

// hasTraversal reports whether the path escapes upward through ".." elements.
func hasTraversal(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if part == ".." {
			return true
		}
	}
	return false
}
