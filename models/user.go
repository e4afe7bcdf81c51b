package models

import (
	"errors"
	"time"

	"server/db"
	"server/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 10

// AdminPrefix marks admin accounts via the first characters of User.UUID.
// Good enough until we want real access levels.
const AdminPrefix = "ADMINx"

type User struct {
	ID                  uint64  `gorm:"primaryKey"`
	CreatedAt           int64
	UpdatedAt           int64
	Email               string  `gorm:"type:varchar(150);index:uniq_email,unique;not null"`
	UUID                string  `gorm:"type:varchar(40);index:uniq_user_uuid,unique;not null"`
	Password            string  `gorm:"type:varchar(128);not null"`
	Name                *string `gorm:"type:varchar(100)"`
	SubscriptionExpires *time.Time
}

func UserCreate(email, plainTextPassword string, name *string) (u User, err error) {
	u.Email = email
	u.UUID = utils.UUID()
	u.Name = name
	if err = u.setPassword(plainTextPassword); err != nil {
		return
	}
	return u, db.Instance.Create(&u).Error
}

func (u *User) setPassword(plainTextPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcryptCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(plainTextPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plainTextPassword)) == nil
}

// UserByEmail returns (zero, false, nil) when no such user exists so callers
// can tell "not registered" apart from a DB failure.
func UserByEmail(email string) (User, bool, error) {
	var u User
	err := db.Instance.First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func UserByID(id uint64) (User, bool, error) {
	var u User
	err := db.Instance.First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

// IsAdmin uses the uuid prefix convention, see AdminPrefix
func (u *User) IsAdmin() bool {
	return len(u.UUID) >= len(AdminPrefix) && u.UUID[:len(AdminPrefix)] == AdminPrefix
}

// IsSubscriber reports whether the user has a subscription expiring today
// or later
func (u *User) IsSubscriber() bool {
	if u.SubscriptionExpires == nil {
		return false
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return !u.SubscriptionExpires.Before(today)
}

func (u *User) ChangePassword(tx *gorm.DB, plainTextPassword string) error {
	if err := u.setPassword(plainTextPassword); err != nil {
		return err
	}
	return tx.Model(u).Update("password", u.Password).Error
}
