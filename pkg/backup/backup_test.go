package backup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vkbackup/pkg/album"
	"vkbackup/pkg/disk"
	"vkbackup/pkg/logger"
)

// fakeUploader records calls and fails on demand
type fakeUploader struct {
	madeDirs   []string
	uploads    [][2]string // path, url pairs in call order
	makeDirErr error
	failPaths  map[string]error
}

func (f *fakeUploader) MakeDir(path string) error {
	f.madeDirs = append(f.madeDirs, path)
	return f.makeDirErr
}

func (f *fakeUploader) UploadURL(path, srcURL string) (*disk.Link, error) {
	f.uploads = append(f.uploads, [2]string{path, srcURL})
	if err, ok := f.failPaths[path]; ok {
		return nil, err
	}
	return &disk.Link{Href: "https://cloud-api.yandex.net/v1/disk/operations/op"}, nil
}

func descriptors() []album.Descriptor {
	return []album.Descriptor{
		{URL: "https://cdn/1", SizeTag: "w", FileName: "10.jpg"},
		{URL: "https://cdn/2", SizeTag: "z", FileName: "20.jpg"},
		{URL: "https://cdn/3", SizeTag: "y", FileName: "20_300.jpg"},
	}
}

func TestRun(t *testing.T) {
	t.Run("creates the folder once and uploads in order", func(t *testing.T) {
		uploader := &fakeUploader{}
		runner := NewRunner(uploader, logger.NewTestLogger(), true)

		rep, err := runner.Run(descriptors(), "/backup")

		require.NoError(t, err)
		assert.Equal(t, []string{"/backup"}, uploader.madeDirs)
		require.Len(t, uploader.uploads, 3)
		assert.Equal(t, [2]string{"/backup/10.jpg", "https://cdn/1"}, uploader.uploads[0])
		assert.Equal(t, [2]string{"/backup/20.jpg", "https://cdn/2"}, uploader.uploads[1])
		assert.Equal(t, [2]string{"/backup/20_300.jpg", "https://cdn/3"}, uploader.uploads[2])

		require.Len(t, rep.Entries, 3)
		for i, d := range descriptors() {
			assert.Equal(t, d.FileName, rep.Entries[i].FileName)
			assert.Equal(t, d.SizeTag, rep.Entries[i].SizeTag)
			assert.Equal(t, StatusOK, rep.Entries[i].Status)
			assert.Empty(t, rep.Entries[i].Error)
		}
		assert.Equal(t, 3, rep.SucceededCount())
	})

	t.Run("failed upload is recorded and the run continues", func(t *testing.T) {
		uploader := &fakeUploader{
			failPaths: map[string]error{
				"/backup/20.jpg": errors.New("network error: connection reset"),
			},
		}
		runner := NewRunner(uploader, logger.NewTestLogger(), true)

		rep, err := runner.Run(descriptors(), "/backup")

		require.NoError(t, err)
		// All three uploads were attempted
		assert.Len(t, uploader.uploads, 3)

		require.Len(t, rep.Entries, 3)
		assert.Equal(t, StatusOK, rep.Entries[0].Status)
		assert.Equal(t, StatusFailed, rep.Entries[1].Status)
		assert.Contains(t, rep.Entries[1].Error, "connection reset")
		assert.Equal(t, StatusOK, rep.Entries[2].Status)
		assert.Equal(t, 2, rep.SucceededCount())
	})

	t.Run("folder creation failure aborts the run", func(t *testing.T) {
		uploader := &fakeUploader{makeDirErr: errors.New("auth error (code 401): Unauthorized")}
		runner := NewRunner(uploader, logger.NewTestLogger(), true)

		rep, err := runner.Run(descriptors(), "/backup")

		require.Error(t, err)
		assert.Nil(t, rep)
		assert.Empty(t, uploader.uploads)
	})

	t.Run("empty descriptor list still creates the folder", func(t *testing.T) {
		uploader := &fakeUploader{}
		runner := NewRunner(uploader, logger.NewTestLogger(), true)

		rep, err := runner.Run(nil, "/backup")

		require.NoError(t, err)
		assert.Equal(t, []string{"/backup"}, uploader.madeDirs)
		assert.Empty(t, uploader.uploads)
		assert.Empty(t, rep.Entries)
	})
}
