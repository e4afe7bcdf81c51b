package models

import (
	"errors"

	"server/db"

	"gorm.io/gorm"
)

// PublishedAlbum is a public, shareable reference to an album. Externally
// it is addressed by a reversible obfuscated hash of its id, never the raw
// id itself.
type PublishedAlbum struct {
	ID        uint64 `gorm:"primaryKey"`
	AlbumID   uint64 `gorm:"not null;index"`
	Album     Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64 `gorm:"not null;index"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Active    bool   `gorm:"not null;default:true"`
	CreatedAt int64
}

func PublishAlbum(album *Album) (PublishedAlbum, error) {
	published := PublishedAlbum{
		AlbumID: album.ID,
		UserID:  album.UserID,
		Active:  true,
	}
	return published, db.Instance.Create(&published).Error
}

func (p *PublishedAlbum) SetActive(active bool) error {
	p.Active = active
	return db.Instance.Model(p).Update("active", active).Error
}

func (p *PublishedAlbum) Delete() error {
	return db.Instance.Delete(p).Error
}

// PublishedAlbumByID is deliberately unscoped: the public photo endpoint
// resolves hashes for anyone, ownership checks happen where they matter
func PublishedAlbumByID(id uint64) (PublishedAlbum, bool, error) {
	var published PublishedAlbum
	err := db.Instance.First(&published, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PublishedAlbum{}, false, nil
	}
	if err != nil {
		return PublishedAlbum{}, false, err
	}
	return published, true, nil
}

func PublishedAlbumsForUser(user *User) ([]PublishedAlbum, error) {
	var published []PublishedAlbum
	err := db.Instance.Where("user_id = ?", user.ID).Order("id ASC").Find(&published).Error
	return published, err
}
