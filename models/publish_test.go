package models

import (
	"testing"
)

func TestPublishLifecycle(t *testing.T) {
	initTestDB(t)
	user := makeUser(t, "publish@gmail.com")
	album, err := AlbumCreate(&user, nil)
	if err != nil {
		t.Fatalf("couldn't create album: %v", err)
	}

	published, err := PublishAlbum(&album)
	if err != nil {
		t.Fatalf("couldn't publish: %v", err)
	}
	if !published.Active {
		t.Error("new publish should start active")
	}
	if published.UserID != user.ID || published.AlbumID != album.ID {
		t.Errorf("publish row = %+v", published)
	}

	forUser, err := PublishedAlbumsForUser(&user)
	if err != nil || len(forUser) != 1 {
		t.Fatalf("published list = %+v err=%v", forUser, err)
	}

	if err := published.SetActive(false); err != nil {
		t.Fatalf("couldn't deactivate: %v", err)
	}
	reloaded, found, err := PublishedAlbumByID(published.ID)
	if err != nil || !found {
		t.Fatalf("couldn't reload publish: found=%v err=%v", found, err)
	}
	if reloaded.Active {
		t.Error("deactivate didn't stick")
	}

	if err := published.Delete(); err != nil {
		t.Fatalf("couldn't delete publish: %v", err)
	}
	if _, found, _ := PublishedAlbumByID(published.ID); found {
		t.Error("deleted publish still fetchable")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	initTestDB(t)
	user := makeUser(t, "pw_reset_flow@gmail.com")

	reset, err := PasswordResetCreate(&user)
	if err != nil {
		t.Fatalf("couldn't create reset: %v", err)
	}
	if reset.UserID != user.ID || reset.UUID == "" {
		t.Fatalf("reset row = %+v", reset)
	}

	newPassword := "Gwc5C5KuavgeP5kBfhx8"

	// Wrong token is rejected without saying why
	done, err := CompletePasswordReset(user.Email, "bad-reset-uuid", newPassword)
	if err != nil {
		t.Fatalf("reset errored: %v", err)
	}
	if done {
		t.Fatal("reset succeeded with a bad token")
	}

	done, err = CompletePasswordReset(user.Email, reset.UUID, newPassword)
	if err != nil || !done {
		t.Fatalf("reset failed: done=%v err=%v", done, err)
	}

	updated, found, err := UserByEmail(user.Email)
	if err != nil || !found {
		t.Fatalf("couldn't reload user: %v", err)
	}
	if !updated.CheckPassword(newPassword) {
		t.Error("password didn't change")
	}

	// The token is single use
	done, _ = CompletePasswordReset(user.Email, reset.UUID, "AnotherGood1Password")
	if done {
		t.Error("used token worked twice")
	}
}
