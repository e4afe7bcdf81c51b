package models

import (
	"testing"

	"server/db"
)

func initTestDB(t *testing.T) {
	t.Helper()
	db.InitTest()
	Init()
}

func makeUser(t *testing.T, email string) User {
	t.Helper()
	user, err := UserCreate(email, "Gwc5C5KuavgeP5kBfhx7", nil)
	if err != nil {
		t.Fatalf("couldn't make user: %v", err)
	}
	return user
}

func makePhoto(t *testing.T, user *User) Photo {
	t.Helper()
	filename, err := NewPhotoAttr("FileName", "beach.jpg")
	if err != nil {
		t.Fatalf("filename attr: %v", err)
	}
	photo, err := PhotoCreate(user, 0, filename)
	if err != nil {
		t.Fatalf("couldn't make photo: %v", err)
	}
	return photo
}
