package storage

import (
	"io"
	"log"
	"net/http"
	"time"

	"server/config"
	"server/db"
)

// StorageAPI is what the photo handlers need from a bucket backend:
// somewhere for the client to PUT the binary, and a URL the photo can be
// viewed from afterwards.
type StorageAPI interface {
	GetBucket() *Bucket
	// CreateUploadURL returns the URL the client should PUT the photo
	// binary to
	CreateUploadURL(path, contentType string) string
	// ResolvePublicURL returns a URL serving the stored object, valid for
	// at least signedURLValidFor
	ResolvePublicURL(path string) string
	Save(path string, reader io.Reader) (int64, error)
	Serve(path string, req *http.Request, w http.ResponseWriter)
	Delete(path string) error
}

const signedURLValidFor = time.Hour * 24 * 7

type Storage struct {
	Bucket Bucket
}

func (s *Storage) GetBucket() *Bucket {
	return &s.Bucket
}

var cachedStorage []StorageAPI

func Init() {
	db.Instance.AutoMigrate(&Bucket{})

	cachedStorage = []StorageAPI{}
	var buckets []Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		panic(err)
	}
	if len(buckets) == 0 {
		buckets = createInitialBucket()
	}
	log.Printf("Storage buckets found: %d\n", len(buckets))
	for _, bucket := range buckets {
		cachedStorage = append(cachedStorage, newStorage(bucket))
	}
}

func newStorage(bucket Bucket) StorageAPI {
	switch bucket.StorageType {
	case StorageTypeFile:
		return NewDiskStorage(&bucket)
	case StorageTypeS3:
		return NewS3Storage(&bucket)
	}
	panic("storage type unavailable for bucket " + bucket.Name)
}

func createInitialBucket() []Bucket {
	var bucket Bucket
	if config.S3_BUCKET_NAME != "" {
		bucket = Bucket{
			Name:        config.S3_BUCKET_NAME,
			StorageType: StorageTypeS3,
			Region:      config.S3_REGION,
			AuthDetails: config.S3_AUTH,
		}
	} else if config.DEFAULT_BUCKET_DIR != "" {
		bucket = Bucket{
			Name:        "disk1",
			StorageType: StorageTypeFile,
			Path:        config.DEFAULT_BUCKET_DIR,
		}
	} else {
		log.Println("No storage configured; set S3_BUCKET_NAME or DEFAULT_BUCKET_DIR")
		return nil
	}
	if err := bucket.Create(); err != nil {
		panic(err)
	}
	return []Bucket{bucket}
}

func StorageFrom(bucketID uint64) StorageAPI {
	for _, s := range cachedStorage {
		if s.GetBucket().ID == bucketID {
			return s
		}
	}
	return nil
}

func GetDefaultStorage() StorageAPI {
	if len(cachedStorage) == 0 {
		return nil
	}
	return cachedStorage[0]
}
