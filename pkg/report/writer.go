// Package report serializes backup reports to timestamped JSON files.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vkbackup/pkg/backup"
	"vkbackup/pkg/logger"
)

// Writer writes run reports under a base directory, one dated
// subdirectory per calendar day.
type Writer struct {
	dir    string
	logger logger.Logger
	now    func() time.Time
}

// NewWriter creates a report writer rooted at dir
func NewWriter(dir string, log logger.Logger) *Writer {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Writer{
		dir:    dir,
		logger: log,
		now:    time.Now,
	}
}

// Write serializes the report to
// <dir>/<YYYY-MM-DD>/<HHMMSS>_user-<ownerID>.json and returns the path.
// An existing file at that path is overwritten. Any filesystem failure
// propagates to the caller.
func (w *Writer) Write(rep *backup.Report, ownerID string) (string, error) {
	now := w.now()

	dayDir := filepath.Join(w.dir, now.Format("2006-01-02"))
	if err := os.MkdirAll(dayDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	name := fmt.Sprintf("%s_user-%s.json", now.Format("150405"), ownerID)
	path := filepath.Join(dayDir, name)

	data, err := json.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	w.logger.InfoWithFields("report generated", map[string]interface{}{
		"path":    path,
		"entries": len(rep.Entries),
	})

	return path, nil
}
