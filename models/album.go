package models

import (
	"errors"

	"server/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Album struct {
	ID        uint64  `gorm:"primaryKey"`
	UserID    uint64  `gorm:"not null;index"`
	User      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name      *string `gorm:"type:varchar(300)"`
	CreatedAt int64
}

// AlbumMembership links a photo into an album with presentation metadata.
// The composite primary key makes duplicate adds impossible.
type AlbumMembership struct {
	PhotoID   uint64  `gorm:"primaryKey;autoIncrement:false"`
	Photo     Photo   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AlbumID   uint64  `gorm:"primaryKey;autoIncrement:false"`
	Album     Album   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Ordering  *int16
	Caption   *string `gorm:"type:varchar(500)"`
	UpdatedAt int64
}

func AlbumCreate(user *User, name *string) (Album, error) {
	album := Album{UserID: user.ID, Name: name}
	return album, db.Instance.Create(&album).Error
}

// AlbumByID is scoped to the owner: an album owned by someone else looks
// exactly like one that doesn't exist.
func AlbumByID(user *User, id uint64) (Album, bool, error) {
	var album Album
	err := db.Instance.First(&album, "id = ? AND user_id = ?", id, user.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Album{}, false, nil
	}
	if err != nil {
		return Album{}, false, err
	}
	return album, true, nil
}

func AlbumsForUser(user *User, page db.Pagination) (db.Page[Album], error) {
	base := db.Instance.Model(&Album{}).Where("user_id = ?", user.ID)
	return db.FindPage[Album](base, page)
}

// AddPhotos bulk-inserts membership rows. Pairs that already exist are
// silently skipped, so re-adding a photo is a no-op rather than an error.
func (a *Album) AddPhotos(photoIDs []uint64) error {
	if len(photoIDs) == 0 {
		return nil
	}
	members := make([]AlbumMembership, 0, len(photoIDs))
	for _, id := range photoIDs {
		members = append(members, AlbumMembership{PhotoID: id, AlbumID: a.ID})
	}
	return db.Instance.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&members).Error
}

// RemovePhotos deletes membership rows. Removing a photo that was never a
// member is a no-op.
func (a *Album) RemovePhotos(photoIDs []uint64) error {
	if len(photoIDs) == 0 {
		return nil
	}
	return db.Instance.
		Where("album_id = ? AND photo_id IN ?", a.ID, photoIDs).
		Delete(&AlbumMembership{}).Error
}

// AlbumPhoto is one photo in an album: the photo row, the membership
// metadata that came with it, and the photo's attributes.
type AlbumPhoto struct {
	Photo    Photo  `gorm:"embedded"`
	Ordering *int16 `gorm:"column:ordering"`
	Caption  *string `gorm:"column:caption"`
	AddedAt  int64  `gorm:"column:added_at"`
	Attrs    []PhotoAttr `gorm:"-"`
}

// GetPhotos pages through the album's photos by photo id, then merges in
// attributes with a second query instead of fanning out the join.
func (a *Album) GetPhotos(page db.Pagination) (db.Page[AlbumPhoto], error) {
	base := db.Instance.
		Table("photos").
		Select("photos.*, album_memberships.ordering, album_memberships.caption, album_memberships.updated_at AS added_at").
		Joins("JOIN album_memberships ON album_memberships.photo_id = photos.id").
		Where("album_memberships.album_id = ?", a.ID)
	photos, err := db.FindPage[AlbumPhoto](base, page)
	if err != nil {
		return db.Page[AlbumPhoto]{}, err
	}

	ids := make([]uint64, 0, len(photos.Items))
	for _, item := range photos.Items {
		ids = append(ids, item.Photo.ID)
	}
	grouped, err := attrsForPhotos(ids)
	if err != nil {
		return db.Page[AlbumPhoto]{}, err
	}
	for i := range photos.Items {
		photos.Items[i].Attrs = grouped[photos.Items[i].Photo.ID]
	}
	return photos, nil
}
