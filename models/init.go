package models

import (
	"server/db"
)

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Photo{})
	db.Instance.AutoMigrate(&PhotoAttr{})
	db.Instance.AutoMigrate(&Album{})
	db.Instance.AutoMigrate(&AlbumMembership{})
	db.Instance.AutoMigrate(&PublishedAlbum{})
	db.Instance.AutoMigrate(&PasswordReset{})
}
