package handlers

import (
	"net/http"
	"strconv"

	"server/db"
	"server/models"

	"github.com/gin-gonic/gin"
)

// AlbumEntry is one photo inside an album, with its membership metadata
type AlbumEntry struct {
	Photo     PhotoInfo `json:"photo"`
	Ordering  *int16    `json:"ordering"`
	Caption   *string   `json:"caption"`
	UpdatedAt int64     `json:"updated_at"`
}

type AlbumInfo struct {
	ID        uint64              `json:"id"`
	Name      *string             `json:"name"`
	CreatedAt int64               `json:"created_at"`
	Photos    db.Page[AlbumEntry] `json:"photos"`
}

func newAlbumInfo(album models.Album, photos db.Page[AlbumEntry]) AlbumInfo {
	return AlbumInfo{
		ID:        album.ID,
		Name:      album.Name,
		CreatedAt: album.CreatedAt,
		Photos:    photos,
	}
}

type AlbumCreateRequest struct {
	Name *string `json:"name"`
}

type AlbumPhotosRequest struct {
	PhotoIDs []uint64 `json:"photo_ids" binding:"required"`
}

func AlbumCreate(c *gin.Context, user *models.User) {
	req := AlbumCreateRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	album, err := models.AlbumCreate(user, req.Name)
	if err != nil {
		serverError(c, "album create", err)
		return
	}
	c.JSON(http.StatusOK, newAlbumInfo(album, db.EmptyPage[AlbumEntry]()))
}

func AlbumList(c *gin.Context, user *models.User) {
	albums, err := models.AlbumsForUser(user, bindPagination(c))
	if err != nil {
		serverError(c, "album list", err)
		return
	}
	result := db.MapPage(albums, func(a models.Album) AlbumInfo {
		return newAlbumInfo(a, db.EmptyPage[AlbumEntry]())
	})
	c.JSON(http.StatusOK, result)
}

func AlbumFetch(c *gin.Context, user *models.User) {
	album, ok := fetchOwnAlbum(c, user)
	if !ok {
		return
	}
	respondWithAlbumPage(c, user, album, bindPagination(c))
}

// AlbumAddPhotos adds the given photos (idempotently) and responds with
// the album's refreshed first page, not a diff
func AlbumAddPhotos(c *gin.Context, user *models.User) {
	album, ok := fetchOwnAlbum(c, user)
	if !ok {
		return
	}
	req := AlbumPhotosRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := album.AddPhotos(req.PhotoIDs); err != nil {
		serverError(c, "album add photos", err)
		return
	}
	respondWithAlbumPage(c, user, album, db.FirstPage())
}

// AlbumRemovePhotos removes the given photos; unknown ids are no-ops
func AlbumRemovePhotos(c *gin.Context, user *models.User) {
	album, ok := fetchOwnAlbum(c, user)
	if !ok {
		return
	}
	req := AlbumPhotosRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := album.RemovePhotos(req.PhotoIDs); err != nil {
		serverError(c, "album remove photos", err)
		return
	}
	respondWithAlbumPage(c, user, album, db.FirstPage())
}

// fetchOwnAlbum resolves :id scoped to the caller. Missing and
// owned-by-someone-else are both a 404; false means a response was sent.
func fetchOwnAlbum(c *gin.Context, user *models.User) (models.Album, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return models.Album{}, false
	}
	album, found, err := models.AlbumByID(user, id)
	if err != nil {
		serverError(c, "album fetch", err)
		return models.Album{}, false
	}
	if !found {
		notFound(c)
		return models.Album{}, false
	}
	return album, true
}

func respondWithAlbumPage(c *gin.Context, user *models.User, album models.Album, page db.Pagination) {
	photos, err := loadAlbumEntries(user.UUID, &album, page)
	if err != nil {
		serverError(c, "album photos", err)
		return
	}
	c.JSON(http.StatusOK, newAlbumInfo(album, photos))
}

func loadAlbumEntries(ownerUUID string, album *models.Album, page db.Pagination) (db.Page[AlbumEntry], error) {
	photos, err := album.GetPhotos(page)
	if err != nil {
		return db.Page[AlbumEntry]{}, err
	}
	return db.MapPage(photos, func(p models.AlbumPhoto) AlbumEntry {
		return AlbumEntry{
			Photo:     NewPhotoInfo(ownerUUID, p.Photo, p.Attrs),
			Ordering:  p.Ordering,
			Caption:   p.Caption,
			UpdatedAt: p.AddedAt,
		}
	}), nil
}
