// Package backup drives a single album backup run: one folder creation
// followed by strictly sequential upload-by-url calls, accumulating a
// per-item report.
package backup

import (
	"github.com/schollz/progressbar/v3"

	"vkbackup/pkg/album"
	"vkbackup/pkg/disk"
	"vkbackup/pkg/logger"
)

// Uploader is the slice of the Disk client the orchestrator needs
type Uploader interface {
	MakeDir(path string) error
	UploadURL(path, srcURL string) (*disk.Link, error)
}

// Entry status values
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Entry records the outcome of one upload attempt
type Entry struct {
	FileName string `json:"file_name"`
	SizeTag  string `json:"size"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// Report is the run's output record, one entry per upload attempt
type Report struct {
	Entries []Entry `json:"report"`
}

// Runner performs backup runs against an Uploader
type Runner struct {
	uploader Uploader
	logger   logger.Logger
	quiet    bool
}

// NewRunner creates a backup runner. With quiet set no progress bar is
// rendered.
func NewRunner(uploader Uploader, log logger.Logger, quiet bool) *Runner {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Runner{
		uploader: uploader,
		logger:   log,
		quiet:    quiet,
	}
}

// Run creates the backup folder and uploads every descriptor into it, one
// at a time, in order. A folder creation failure aborts the run; a failed
// upload is recorded in the report and the run continues with the next
// item. The report always covers every descriptor that was attempted.
func (r *Runner) Run(descriptors []album.Descriptor, basePath string) (*Report, error) {
	r.logger.InfoWithFields("backing up", map[string]interface{}{
		"path":  basePath,
		"count": len(descriptors),
	})

	if err := r.uploader.MakeDir(basePath); err != nil {
		r.logger.WithError(err).WithField("path", basePath).Error("failed to create backup folder")
		return nil, err
	}

	bar := r.newProgressBar(len(descriptors))
	report := &Report{Entries: make([]Entry, 0, len(descriptors))}

	for _, d := range descriptors {
		fullPath := basePath + "/" + d.FileName

		entry := Entry{
			FileName: d.FileName,
			SizeTag:  d.SizeTag,
			Status:   StatusOK,
		}

		if _, err := r.uploader.UploadURL(fullPath, d.URL); err != nil {
			entry.Status = StatusFailed
			entry.Error = err.Error()
			r.logger.WithError(err).WithFields(map[string]interface{}{
				"path": fullPath,
			}).Error("upload failed")
		}

		report.Entries = append(report.Entries, entry)
		_ = bar.Add(1)
	}

	r.logger.InfoWithFields("finished", map[string]interface{}{
		"path":     basePath,
		"uploaded": report.SucceededCount(),
		"failed":   len(report.Entries) - report.SucceededCount(),
	})

	return report, nil
}

func (r *Runner) newProgressBar(total int) *progressbar.ProgressBar {
	if r.quiet {
		return progressbar.DefaultSilent(int64(total), "backing up")
	}
	return progressbar.Default(int64(total), "backing up")
}

// SucceededCount returns the number of entries whose upload was accepted
func (rep *Report) SucceededCount() int {
	n := 0
	for _, e := range rep.Entries {
		if e.Status == StatusOK {
			n++
		}
	}
	return n
}
