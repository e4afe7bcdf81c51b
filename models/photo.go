package models

import (
	"strings"

	"server/db"
	"server/utils"

	"gorm.io/gorm"
)

// Photo rows are created when an upload is signed, before the binary lands
// in storage. Present stays false until the client confirms the upload.
type Photo struct {
	ID        uint64 `gorm:"primaryKey"`
	UUID      string `gorm:"type:varchar(40);index:uniq_photo_uuid,unique;not null"`
	UserID    uint64 `gorm:"not null;index"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BucketID  uint64
	Present   bool `gorm:"not null;default:false"`
	CreatedAt int64
	UpdatedAt int64
}

// PhotoCreate inserts the photo and its initial attributes in one
// transaction so a filename is never orphaned from its photo.
func PhotoCreate(user *User, bucketID uint64, attrs ...PhotoAttr) (Photo, error) {
	photo := Photo{
		UUID:     utils.UUID(),
		UserID:   user.ID,
		BucketID: bucketID,
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&photo).Error; err != nil {
			return err
		}
		for i := range attrs {
			attrs[i].PhotoID = photo.ID
			if err := tx.Create(&attrs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return photo, err
}

func PhotoByUUID(user *User, uuid string) (Photo, bool, error) {
	var photo Photo
	result := db.Instance.Limit(1).Find(&photo, "uuid = ? AND user_id = ?", uuid, user.ID)
	if result.Error != nil {
		return Photo{}, false, result.Error
	}
	return photo, result.RowsAffected == 1, nil
}

func (p *Photo) MarkPresent() error {
	p.Present = true
	return db.Instance.Model(p).Update("present", true).Error
}

// PhotoPath is where a photo's binary lives inside its bucket
func PhotoPath(ownerUUID, photoUUID string) string {
	return "user/" + ownerUUID + "/" + photoUUID
}

// OwnsPhotoPath checks that a client-supplied storage path sits under the
// given user's own prefix
func OwnsPhotoPath(ownerUUID, path string) bool {
	prefix := "user/" + ownerUUID + "/"
	return len(path) > len(prefix) && path[:len(prefix)] == prefix &&
		!strings.Contains(path[len(prefix):], "/")
}

// PhotoWithAttrs is one photo plus its attributes, merged after the page
// query so a photo with many attributes doesn't fan out the join.
type PhotoWithAttrs struct {
	Photo Photo
	Attrs []PhotoAttr
}

// PhotosByUser returns a page of the user's photos with attributes attached
func PhotosByUser(user *User, page db.Pagination) (db.Page[PhotoWithAttrs], error) {
	base := db.Instance.Model(&Photo{}).Where("user_id = ?", user.ID)
	photos, err := db.FindPage[Photo](base, page)
	if err != nil {
		return db.Page[PhotoWithAttrs]{}, err
	}
	grouped, err := attrsForPhotos(photoIDs(photos.Items))
	if err != nil {
		return db.Page[PhotoWithAttrs]{}, err
	}
	return db.MapPage(photos, func(p Photo) PhotoWithAttrs {
		return PhotoWithAttrs{Photo: p, Attrs: grouped[p.ID]}
	}), nil
}

func photoIDs(photos []Photo) []uint64 {
	ids := make([]uint64, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.ID)
	}
	return ids
}
