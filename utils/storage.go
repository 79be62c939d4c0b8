package utils

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/bhetghat/bhetghat-server/config"
)

// FileStore saves an uploaded file and returns the public path or URL the
// record should reference.
type FileStore interface {
	Save(file multipart.File, header *multipart.FileHeader) (string, error)
}

// NewFileStore picks the storage backend: Cloudinary when credentials are
// configured, local disk otherwise.
func NewFileStore(cfg *config.Config) (FileStore, error) {
	if cfg.Cloudinary.CloudName != "" {
		return NewCloudinaryStore(cfg.Cloudinary)
	}
	return NewLocalStore(cfg.ImagesDir)
}

// LocalStore writes files into a directory served statically under /images.
type LocalStore struct {
	dir string
	now func() time.Time
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}
	return &LocalStore{dir: dir, now: time.Now}, nil
}

// Save stores the file as <unix-nanos><original extension> and returns the
// public /images path. Nanosecond timestamps keep concurrent uploads from
// colliding.
func (s *LocalStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := StoredFilename(s.now(), header.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return "/images/" + name, nil
}

// LocalPath resolves a stored /images path back to the on-disk file, for
// mail attachments.
func (s *LocalStore) LocalPath(publicPath string) string {
	return filepath.Join(s.dir, filepath.Base(publicPath))
}

// StoredFilename builds the stored name from the upload time and the
// original extension.
func StoredFilename(at time.Time, original string) string {
	return fmt.Sprintf("%d%s", at.UnixNano(), filepath.Ext(original))
}

// CloudinaryStore uploads into a "bhetghat" folder and references files by
// their secure URL.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cfg config.CloudinaryConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: "bhetghat",
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}
	return resp.SecureURL, nil
}
