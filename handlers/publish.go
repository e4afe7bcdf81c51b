package handlers

import (
	"errors"
	"net/http"

	"server/config"
	"server/db"
	"server/hashid"
	"server/models"

	"github.com/gin-gonic/gin"
)

var idCodec *hashid.Codec

func InitIDCodec() {
	codec, err := hashid.New(config.ID_SALT)
	if err != nil {
		panic(err)
	}
	idCodec = codec
}

type PublishedAlbumInfo struct {
	Hash      string `json:"hash"`
	AlbumID   uint64 `json:"album_id"`
	Active    bool   `json:"active"`
	CreatedAt int64  `json:"created_at"`
}

func newPublishedAlbumInfo(p models.PublishedAlbum) (PublishedAlbumInfo, error) {
	hash, err := idCodec.Encode(p.ID)
	if err != nil {
		return PublishedAlbumInfo{}, err
	}
	return PublishedAlbumInfo{
		Hash:      hash,
		AlbumID:   p.AlbumID,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}, nil
}

// AlbumPublish creates a public reference to one of the caller's albums,
// addressed by an obfuscated hash rather than the row id
func AlbumPublish(c *gin.Context, user *models.User) {
	album, ok := fetchOwnAlbum(c, user)
	if !ok {
		return
	}
	published, err := models.PublishAlbum(&album)
	if err != nil {
		serverError(c, "album publish", err)
		return
	}
	info, err := newPublishedAlbumInfo(published)
	if err != nil {
		serverError(c, "album publish", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func PublishedList(c *gin.Context, user *models.User) {
	published, err := models.PublishedAlbumsForUser(user)
	if err != nil {
		serverError(c, "published list", err)
		return
	}
	result := make([]PublishedAlbumInfo, 0, len(published))
	for _, p := range published {
		info, err := newPublishedAlbumInfo(p)
		if err != nil {
			serverError(c, "published list", err)
			return
		}
		result = append(result, info)
	}
	c.JSON(http.StatusOK, result)
}

type PublishedToggleRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// PublishedToggle flips a publish between active and inactive
func PublishedToggle(c *gin.Context, user *models.User) {
	published, ok := fetchOwnPublished(c, user)
	if !ok {
		return
	}
	req := PublishedToggleRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err := published.SetActive(*req.Active); err != nil {
		serverError(c, "published toggle", err)
		return
	}
	info, err := newPublishedAlbumInfo(published)
	if err != nil {
		serverError(c, "published toggle", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func PublishedDelete(c *gin.Context, user *models.User) {
	published, ok := fetchOwnPublished(c, user)
	if !ok {
		return
	}
	if err := published.Delete(); err != nil {
		serverError(c, "published delete", err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// PublishedPhotos serves a published album's photo page to anyone holding
// the hash. Bad hash, missing row, inactive publish, missing owner and
// missing album are all the same 404: a failed link never says why.
func PublishedPhotos(c *gin.Context) {
	page, _, err := LoadPublishedPhotos(c.Param("hash"), bindPagination(c))
	if err == ErrPublishNotFound {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, "published photos", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// fetchOwnPublished decodes :hash and checks ownership. Decode failures
// and other users' publishes are indistinguishable from absent rows.
func fetchOwnPublished(c *gin.Context, user *models.User) (models.PublishedAlbum, bool) {
	id, err := idCodec.Decode(c.Param("hash"))
	if err != nil {
		notFound(c)
		return models.PublishedAlbum{}, false
	}
	published, found, err := models.PublishedAlbumByID(id)
	if err != nil {
		serverError(c, "published fetch", err)
		return models.PublishedAlbum{}, false
	}
	if !found || published.UserID != user.ID {
		notFound(c)
		return models.PublishedAlbum{}, false
	}
	return published, true
}

// ErrPublishNotFound stands in for every way a published link can fail:
// bad hash, missing publish, inactive publish, deleted owner or album.
// Callers must not tell the client which one it was.
var ErrPublishNotFound = errors.New("published album not found")

// LoadPublishedPhotos walks hash -> publish -> owner -> album -> photos.
// Also used by the public web view.
func LoadPublishedPhotos(hash string, page db.Pagination) (db.Page[AlbumEntry], models.Album, error) {
	id, err := idCodec.Decode(hash)
	if err != nil {
		return db.Page[AlbumEntry]{}, models.Album{}, ErrPublishNotFound
	}
	published, found, err := models.PublishedAlbumByID(id)
	if err != nil {
		return db.Page[AlbumEntry]{}, models.Album{}, err
	}
	if !found || !published.Active {
		return db.Page[AlbumEntry]{}, models.Album{}, ErrPublishNotFound
	}
	owner, found, err := models.UserByID(published.UserID)
	if err != nil {
		return db.Page[AlbumEntry]{}, models.Album{}, err
	}
	if !found {
		return db.Page[AlbumEntry]{}, models.Album{}, ErrPublishNotFound
	}
	album, found, err := models.AlbumByID(&owner, published.AlbumID)
	if err != nil {
		return db.Page[AlbumEntry]{}, models.Album{}, err
	}
	if !found {
		return db.Page[AlbumEntry]{}, models.Album{}, ErrPublishNotFound
	}
	photos, err := loadAlbumEntries(owner.UUID, &album, page)
	if err != nil {
		return db.Page[AlbumEntry]{}, models.Album{}, err
	}
	return photos, album, nil
}
