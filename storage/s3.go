package storage

import (
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"server/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	cmap "github.com/orcaman/concurrent-map/v2"
)

type S3Storage struct {
	Storage
	s3Client *s3.S3
	// Presigned GET URLs are reused across requests until close to expiry
	signedURLs cmap.ConcurrentMap[string, signedURL]
}

type signedURL struct {
	url   string
	until int64
}

const signedURLValidAtLeastFor = time.Minute * 30

func NewS3Storage(bucket *Bucket) StorageAPI {
	return &S3Storage{
		Storage:    Storage{Bucket: *bucket},
		s3Client:   bucket.CreateSVC(),
		signedURLs: cmap.New[signedURL](),
	}
}

// CreateUploadURL presigns a PUT so the binary goes straight to S3 and
// never transits this server
func (s *S3Storage) CreateUploadURL(path, contentType string) string {
	req, _ := s.s3Client.PutObjectRequest(&s3.PutObjectInput{
		Bucket:      &s.Bucket.Name,
		Key:         aws.String(s.Bucket.GetRemotePath(path)),
		ContentType: &contentType,
	})
	url, err := req.Presign(time.Hour)
	if err != nil {
		log.Printf("Presigning upload for %s: %v", path, err)
		return ""
	}
	return url
}

func (s *S3Storage) ResolvePublicURL(path string) string {
	// A CDN in front of the bucket beats presigning
	if config.CDN_URL != "" {
		prefix := config.CDN_PREFIX
		if prefix != "" {
			prefix = strings.Trim(prefix, "/") + "/"
		}
		return strings.TrimSuffix(config.CDN_URL, "/") + "/" + prefix + path
	}
	now := time.Now()
	if cached, ok := s.signedURLs.Get(path); ok && cached.until > now.Add(signedURLValidAtLeastFor).Unix() {
		return cached.url
	}
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	url, err := req.Presign(signedURLValidFor)
	if err != nil {
		log.Printf("Presigning download for %s: %v", path, err)
		return ""
	}
	s.signedURLs.Set(path, signedURL{url: url, until: now.Add(signedURLValidFor).Unix()})
	return url
}

func (s *S3Storage) Save(path string, reader io.Reader) (int64, error) {
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
		Body:   reader,
	})
	return 0, err
}

// Serve redirects to the object URL; S3 buckets aren't proxied through us
func (s *S3Storage) Serve(path string, req *http.Request, w http.ResponseWriter) {
	url := s.ResolvePublicURL(path)
	if url == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	http.Redirect(w, req, url, http.StatusFound)
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	return err
}
