package storage

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type DiskStorage struct {
	Storage
}

func NewDiskStorage(bucket *Bucket) StorageAPI {
	return &DiskStorage{Storage: Storage{Bucket: *bucket}}
}

func (s *DiskStorage) getFullPath(path string) string {
	// Uploaded paths are built from uuids but don't trust them anyway
	path = strings.ReplaceAll(path, "..", "")
	return filepath.Join(s.Bucket.Path, path)
}

// CreateUploadURL points the client at our own upload endpoint for disk
// buckets
func (s *DiskStorage) CreateUploadURL(path, contentType string) string {
	return "/api/photos/upload/" + path
}

func (s *DiskStorage) ResolvePublicURL(path string) string {
	return "/w/photo/" + path
}

func (s *DiskStorage) Save(path string, reader io.Reader) (int64, error) {
	fileName := s.getFullPath(path)
	if err := os.MkdirAll(filepath.Dir(fileName), 0777); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return io.Copy(file, reader)
}

func (s *DiskStorage) Serve(path string, req *http.Request, w http.ResponseWriter) {
	http.ServeFile(w, req, s.getFullPath(path))
}

func (s *DiskStorage) Delete(path string) error {
	return os.Remove(s.getFullPath(path))
}
