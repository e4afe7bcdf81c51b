package models

import (
	"testing"
	"time"
)

func TestPasswordHashing(t *testing.T) {
	initTestDB(t)
	// letters, numbers, special chars & extended ascii
	password := "åî>@%åÄSt»Æ·wj³´m~ðjC½µæGjq6?ï"
	user, err := UserCreate("hash@gmail.com", password, nil)
	if err != nil {
		t.Fatalf("couldn't make user: %v", err)
	}
	if user.Password == password {
		t.Fatal("password stored in plain text")
	}
	if !user.CheckPassword(password) {
		t.Error("correct password rejected")
	}
	if user.CheckPassword("moo moo") {
		t.Error("wrong password accepted")
	}
}

func TestUserByEmail(t *testing.T) {
	initTestDB(t)
	created := makeUser(t, "lookup@gmail.com")

	user, found, err := UserByEmail("lookup@gmail.com")
	if err != nil || !found {
		t.Fatalf("lookup failed: found=%v err=%v", found, err)
	}
	if user.ID != created.ID {
		t.Errorf("got user %d, want %d", user.ID, created.ID)
	}

	// Not-registered is not an error
	_, found, err = UserByEmail("nobody@gmail.com")
	if err != nil {
		t.Fatalf("missing lookup errored: %v", err)
	}
	if found {
		t.Error("found a user that doesn't exist")
	}
}

func TestSubscriptionCheck(t *testing.T) {
	user := User{}

	if user.IsSubscriber() {
		t.Error("null expiry counted as subscribed")
	}

	longAgo := time.Date(2015, 3, 14, 0, 0, 0, 0, time.UTC)
	user.SubscriptionExpires = &longAgo
	if user.IsSubscriber() {
		t.Error("expired subscription counted as subscribed")
	}

	farFromNow := time.Date(2200, 3, 14, 0, 0, 0, 0, time.UTC)
	user.SubscriptionExpires = &farFromNow
	if !user.IsSubscriber() {
		t.Error("unexpired subscription not counted")
	}
}

func TestAdminCheck(t *testing.T) {
	user := User{UUID: "0b956886a1bc4c2b95f7a760c96ee717"}

	if user.IsAdmin() {
		t.Error("plain uuid counted as admin")
	}

	user.UUID = (AdminPrefix + user.UUID)[:32]
	if !user.IsAdmin() {
		t.Error("admin prefix not recognized")
	}
}

func TestPhotoAttrValidation(t *testing.T) {
	long := func(n int) string {
		s := ""
		for len(s) < n {
			s += "x"
		}
		return s
	}
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"valid", "Filename", "beach.jpg", nil},
		{"empty key", "", "v", ErrAttrKeyInvalid},
		{"long key", long(31), "v", ErrAttrKeyInvalid},
		{"empty value", "k", "", ErrAttrValueInvalid},
		{"long value", "k", long(101), ErrAttrValueInvalid},
		{"max lengths", long(30), long(100), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr, err := NewPhotoAttr(tt.key, tt.value)
			if err != tt.wantErr {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if err == nil && attr.Key != "filename" && tt.name == "valid" {
				t.Errorf("key not lowercased: %q", attr.Key)
			}
		})
	}
}
