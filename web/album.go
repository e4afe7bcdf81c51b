// Package web serves the public, unauthenticated pages: published albums
// addressed by their obfuscated hash, and disk-bucket photo binaries.
package web

import (
	"net/http"
	"strings"

	"server/db"
	"server/handlers"
	"server/models"
	"server/storage"
	"server/utils"

	"github.com/gin-gonic/gin"
)

// PublishedAlbumView renders the public page for a published album.
// ?format=json returns the same data as the API endpoint.
func PublishedAlbumView(c *gin.Context) {
	photos, album, err := handlers.LoadPublishedPhotos(c.Param("hash"), db.FirstPage())
	if err != nil {
		// All failure modes look identical from outside
		c.HTML(http.StatusNotFound, "album_missing.tmpl", gin.H{})
		return
	}
	name := "Shared album"
	if album.Name != nil {
		name = *album.Name
	}
	var createdMin, createdMax int64
	for _, entry := range photos.Items {
		if createdMin == 0 || entry.Photo.CreatedAt < createdMin {
			createdMin = entry.Photo.CreatedAt
		}
		if entry.Photo.CreatedAt > createdMax {
			createdMax = entry.Photo.CreatedAt
		}
	}
	data := gin.H{
		"name":     name,
		"subtitle": utils.GetDatesString(createdMin, createdMax),
		"photos":   photos,
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, data)
		return
	}
	c.HTML(http.StatusOK, "album_view.tmpl", data)
}

// PhotoView serves disk-bucket photo binaries. The uuids in the path act
// as the capability, like a presigned S3 URL does.
func PhotoView(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	parts := strings.Split(path, "/")
	if len(parts) != 3 || parts[0] != "user" {
		c.JSON(http.StatusNotFound, handlers.NotFoundResponse)
		return
	}
	var photo models.Photo
	result := db.Instance.
		Joins("JOIN users ON users.id = photos.user_id").
		Where("photos.uuid = ? AND users.uuid = ? AND photos.present = ?", parts[2], parts[1], true).
		Limit(1).Find(&photo)
	if result.Error != nil || result.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, handlers.NotFoundResponse)
		return
	}
	store := storage.StorageFrom(photo.BucketID)
	if store == nil {
		c.JSON(http.StatusNotFound, handlers.NotFoundResponse)
		return
	}
	store.Serve(path, c.Request, c.Writer)
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
