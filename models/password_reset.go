package models

import (
	"server/db"
	"server/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PasswordReset struct {
	UUID      string `gorm:"primaryKey;type:varchar(40)"`
	UserID    uint64 `gorm:"not null;index"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt int64
}

func PasswordResetCreate(user *User) (PasswordReset, error) {
	reset := PasswordReset{UUID: utils.UUID(), UserID: user.ID}
	return reset, db.Instance.Create(&reset).Error
}

// CompletePasswordReset consumes the reset token and updates the password
// in one transaction, locking the user row so two concurrent resets can't
// both succeed. Returns false when the email/token pair doesn't match;
// the caller never learns which part was wrong.
func CompletePasswordReset(email, token, newPassword string) (bool, error) {
	done := false
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var user User
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Limit(1).Find(&user, "email = ?", email)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		var reset PasswordReset
		result = tx.Limit(1).Find(&reset, "uuid = ? AND user_id = ?", token, user.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := tx.Delete(&reset).Error; err != nil {
			return err
		}
		if err := user.ChangePassword(tx, newPassword); err != nil {
			return err
		}
		done = true
		return nil
	})
	return done, err
}
