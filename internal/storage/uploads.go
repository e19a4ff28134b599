// Package storage persists officer-uploaded media under the configured
// upload directory with randomized filenames.
package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"foodshare/internal/domain"
	"foodshare/internal/domain/models"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true,
}

var attachmentExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".txt": true, ".zip": true, ".rar": true,
}

// Store writes uploads beneath Dir and serves deletion requests for
// previously stored files.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) save(fh *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := uuid.NewString() + ext
	dir := filepath.Join(s.Dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", domain.InternalError{Msg: "failed to store upload", Err: err}
	}
	src, err := fh.Open()
	if err != nil {
		return "", domain.InternalError{Msg: "failed to store upload", Err: err}
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", domain.InternalError{Msg: "failed to store upload", Err: err}
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", domain.InternalError{Msg: "failed to store upload", Err: err}
	}
	// Stored paths are relative so the database stays portable across hosts.
	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// SaveImages stores every valid image upload and returns their relative
// paths. Files with disallowed extensions are skipped, mirroring how the
// donation form tolerates stray inputs.
func (s *Store) SaveImages(files []*multipart.FileHeader) ([]string, error) {
	var paths []string
	for _, fh := range files {
		if !imageExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
			continue
		}
		p, err := s.save(fh, "announcements")
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// SaveAttachments stores document uploads, keeping the original filename for
// display while the on-disk name is randomized.
func (s *Store) SaveAttachments(files []*multipart.FileHeader) ([]models.Attachment, error) {
	var docs []models.Attachment
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !attachmentExtensions[ext] {
			return nil, domain.Validationf("File type %s is not allowed.", ext)
		}
		p, err := s.save(fh, "attachments")
		if err != nil {
			return nil, err
		}
		docs = append(docs, models.Attachment{
			Path:         p,
			OriginalName: fh.Filename,
			Size:         fh.Size,
			Type:         strings.TrimPrefix(ext, "."),
		})
	}
	return docs, nil
}

// Remove deletes stored files by their relative paths. Missing files are
// ignored so cleanup after a row delete never fails the request.
func (s *Store) Remove(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		full := filepath.Join(s.Dir, filepath.FromSlash(p))
		if rel, err := filepath.Rel(s.Dir, full); err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		_ = os.Remove(full)
	}
}

// RemoveAttachment is a convenience for Attachment records.
func (s *Store) RemoveAttachment(docs []models.Attachment) {
	for _, d := range docs {
		s.Remove(d.Path)
	}
}
