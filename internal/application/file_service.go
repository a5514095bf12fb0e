package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/iterator"

	"github.com/ecosoft-dev/ecosoft-api/pkg/helpers"
)

// FileService backs the archivos screen: user files live in a GCS
// bucket under files/<userID>/, one object per upload.
type FileService struct {
	GCS    *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewFileService(gcs *storage.Client, bucket string, logger *logrus.Logger) *FileService {
	return &FileService{GCS: gcs, Bucket: bucket, Logger: logger}
}

type StoredFile struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func (s *FileService) objectPrefix(userID string) string {
	return filepath.ToSlash(filepath.Join("files", userID)) + "/"
}

// Upload stores a file for the user and returns its metadata. The
// object name carries a uuid so repeated uploads of the same filename
// do not clobber each other.
func (s *FileService) Upload(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*StoredFile, error) {
	if s.GCS == nil || s.Bucket == "" {
		return nil, errors.New("object storage not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := s.objectPrefix(userID) + id + ext

	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}

	attrs, err := s.GCS.Bucket(s.Bucket).Object(objectPath).Attrs(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", objectPath).Warn("stat uploaded object failed")
		}
		return &StoredFile{ID: id + ext, Name: filename, ContentType: contentType, URL: url}, nil
	}
	return &StoredFile{
		ID:          id + ext,
		Name:        filename,
		Size:        attrs.Size,
		ContentType: attrs.ContentType,
		URL:         url,
		UploadedAt:  attrs.Created,
	}, nil
}

// List returns the user's files.
func (s *FileService) List(ctx context.Context, userID string) ([]StoredFile, error) {
	if s.GCS == nil || s.Bucket == "" {
		return nil, errors.New("object storage not configured")
	}
	prefix := s.objectPrefix(userID)
	it := s.GCS.Bucket(s.Bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	out := []StoredFile{}
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, StoredFile{
			ID:          strings.TrimPrefix(attrs.Name, prefix),
			Name:        strings.TrimPrefix(attrs.Name, prefix),
			Size:        attrs.Size,
			ContentType: attrs.ContentType,
			URL:         helpers.PublicURL(s.Bucket, attrs.Name),
			UploadedAt:  attrs.Created,
		})
	}
	return out, nil
}

// Delete removes one of the user's files; the user prefix keeps one
// user from deleting another's objects.
func (s *FileService) Delete(ctx context.Context, userID, fileID string) error {
	if s.GCS == nil || s.Bucket == "" {
		return errors.New("object storage not configured")
	}
	objectPath := s.objectPrefix(userID) + fileID
	err := s.GCS.Bucket(s.Bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrFileNotFound
	}
	return err
}

var ErrFileNotFound = errors.New("file not found")
