package filestorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"site_cms/internal/storage"

	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (SavedFile, error)
	Delete(ctx context.Context, relPath string) error
	URL(relPath string) string
}

type SavedFile struct {
	Path     string
	Size     int64
	MimeType string
}

// LocalFileStorage keeps uploaded images under baseDir and serves them from baseURL.
type LocalFileStorage struct {
	baseDir string
	baseURL string
	maxSize int64
}

func NewLocalFileStorage(baseDir, baseURL string, maxSize int64) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Save writes the upload under subPath with a generated name.
// The content type is sniffed from the first bytes, not taken from the request.
func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (SavedFile, error) {
	if err := ctx.Err(); err != nil {
		return SavedFile{}, err
	}

	if s.maxSize > 0 && file.Size > s.maxSize {
		return SavedFile{}, storage.ErrFileTooLarge
	}

	dir, err := s.resolve(subPath)
	if err != nil {
		return SavedFile{}, err
	}

	src, err := file.Open()
	if err != nil {
		return SavedFile{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return SavedFile{}, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	mimeType := detectImageType(head, file.Filename)
	ext, ok := imageExtensions[mimeType]
	if !ok {
		return SavedFile{}, storage.ErrInvalidFileType
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SavedFile{}, fmt.Errorf("failed to create directories: %w", err)
	}

	name := uuid.NewString() + ext
	fullPath := filepath.Join(dir, name)

	dst, err := os.Create(fullPath)
	if err != nil {
		return SavedFile{}, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		defer close(done)
		var written int64
		written, copyErr = io.Copy(dst, io.MultiReader(bytes.NewReader(head), src))
		size = written
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(fullPath)
			return SavedFile{}, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(fullPath)
		return SavedFile{}, ctx.Err()
	}

	if s.maxSize > 0 && size > s.maxSize {
		_ = os.Remove(fullPath)
		return SavedFile{}, storage.ErrFileTooLarge
	}

	return SavedFile{
		Path:     path.Join(filepath.ToSlash(filepath.Clean(subPath)), name),
		Size:     size,
		MimeType: mimeType,
	}, nil
}

func (s *LocalFileStorage) Delete(_ context.Context, relPath string) error {
	fullPath, err := s.resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storage.ErrFileNotFound
		}
		return err
	}

	return nil
}

// URL returns the public address of a stored file.
func (s *LocalFileStorage) URL(relPath string) string {
	return s.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(relPath), "/")
}

func (s *LocalFileStorage) BaseDir() string {
	return s.baseDir
}

// resolve joins rel onto baseDir and rejects paths escaping it.
func (s *LocalFileStorage) resolve(rel string) (string, error) {
	full := filepath.Join(s.baseDir, filepath.FromSlash(rel))

	base, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	if abs != base && !strings.HasPrefix(abs, base+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes storage root", rel)
	}

	return full, nil
}

func detectImageType(head []byte, filename string) string {
	mimeType := http.DetectContentType(head)
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	// DetectContentType reports SVG as text/xml or text/plain.
	if strings.EqualFold(filepath.Ext(filename), ".svg") &&
		(strings.HasPrefix(mimeType, "text/") || mimeType == "application/xml") &&
		strings.Contains(string(head), "<svg") {
		return "image/svg+xml"
	}

	return mimeType
}
