package handlers

import (
	"net/http"

	"server/db"
	"server/models"
	"server/storage"

	"github.com/gin-gonic/gin"
)

type UserStats struct {
	Total      int64 `json:"total"`
	Subscribed int64 `json:"subscribed"`
}

type PhotoStats struct {
	Created  int64 `json:"created"`
	Uploaded int64 `json:"uploaded"`
}

type StorageStats struct {
	Buckets []string `json:"buckets"`
}

// AdminDashboard reports aggregate counts. Reached only through the Admin
// gate, which 404s for everyone else.
func AdminDashboard(c *gin.Context, user *models.User) {
	var users UserStats
	if err := db.Instance.Model(&models.User{}).Count(&users.Total).Error; err != nil {
		serverError(c, "admin user stats", err)
		return
	}
	if err := db.Instance.Model(&models.User{}).
		Where("subscription_expires IS NOT NULL").
		Count(&users.Subscribed).Error; err != nil {
		serverError(c, "admin user stats", err)
		return
	}

	var photos PhotoStats
	if err := db.Instance.Model(&models.Photo{}).Count(&photos.Created).Error; err != nil {
		serverError(c, "admin photo stats", err)
		return
	}
	if err := db.Instance.Model(&models.Photo{}).
		Where("present = ?", true).
		Count(&photos.Uploaded).Error; err != nil {
		serverError(c, "admin photo stats", err)
		return
	}

	var buckets []storage.Bucket
	if err := db.Instance.Find(&buckets).Error; err != nil {
		serverError(c, "admin storage stats", err)
		return
	}
	stats := StorageStats{Buckets: []string{}}
	for _, b := range buckets {
		stats.Buckets = append(stats.Buckets, b.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"users":   users,
		"photos":  photos,
		"storage": stats,
	})
}
