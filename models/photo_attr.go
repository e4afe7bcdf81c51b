package models

import (
	"errors"
	"strings"

	"server/db"
)

const (
	maxAttrKeyLength   = 30
	maxAttrValueLength = 100
)

var (
	ErrAttrKeyInvalid   = errors.New("attribute keys must be 1-30 characters")
	ErrAttrValueInvalid = errors.New("attribute values must be 1-100 characters")
)

// PhotoAttr is free-form key/value metadata on a photo ("filename", etc).
// Keys are always stored lowercase.
type PhotoAttr struct {
	PhotoID   uint64 `gorm:"primaryKey;autoIncrement:false"`
	Key       string `gorm:"primaryKey;type:varchar(30)"`
	Value     string `gorm:"type:varchar(100);not null"`
	UpdatedAt int64
}

// NewPhotoAttr validates and lowercases the key. The PhotoID is filled in
// at insert time by PhotoCreate.
func NewPhotoAttr(key, value string) (PhotoAttr, error) {
	key = strings.ToLower(key)
	if len(key) == 0 || len(key) > maxAttrKeyLength {
		return PhotoAttr{}, ErrAttrKeyInvalid
	}
	if len(value) == 0 || len(value) > maxAttrValueLength {
		return PhotoAttr{}, ErrAttrValueInvalid
	}
	return PhotoAttr{Key: key, Value: value}, nil
}

// attrsForPhotos loads all attributes for the given photos in one query and
// groups them per photo id
func attrsForPhotos(ids []uint64) (map[uint64][]PhotoAttr, error) {
	grouped := map[uint64][]PhotoAttr{}
	if len(ids) == 0 {
		return grouped, nil
	}
	var attrs []PhotoAttr
	if err := db.Instance.Where("photo_id IN ?", ids).Find(&attrs).Error; err != nil {
		return nil, err
	}
	for _, attr := range attrs {
		grouped[attr.PhotoID] = append(grouped[attr.PhotoID], attr)
	}
	return grouped, nil
}
