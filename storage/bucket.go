package storage

import (
	"os"
	"strings"

	"server/db"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile StorageType = 0
	StorageTypeS3   StorageType = 1
)

type Bucket struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	Name        string `gorm:"type:varchar(200)"`
	StorageType StorageType
	Path        string `gorm:"type:varchar(300)"` // Directory on disk or a key prefix in a S3 bucket
	Region      string `gorm:"type:varchar(30)"`
	AuthDetails string `gorm:"type:varchar(300)"` // For S3 - "key:secret", empty means the SDK default chain
}

func (b *Bucket) Create() error {
	if err := db.Instance.Create(b).Error; err != nil {
		return err
	}
	if b.StorageType == StorageTypeFile {
		return os.MkdirAll(b.Path, 0777)
	}
	return nil
}

func (b *Bucket) IsS3() bool {
	return b.StorageType == StorageTypeS3
}

// GetRemotePath prefixes the path with the bucket's configured key prefix
func (b *Bucket) GetRemotePath(path string) string {
	if b.IsS3() && b.Path != "" {
		return strings.TrimSuffix(b.Path, "/") + "/" + path
	}
	return path
}

// CreateSVC builds the S3 client for this bucket
func (b *Bucket) CreateSVC() *s3.S3 {
	config := aws.Config{Region: aws.String(b.Region)}
	if b.AuthDetails != "" {
		parts := strings.SplitN(b.AuthDetails, ":", 2)
		if len(parts) == 2 {
			config.Credentials = credentials.NewStaticCredentials(parts[0], parts[1], "")
		}
	}
	return s3.New(session.Must(session.NewSession(&config)))
}
