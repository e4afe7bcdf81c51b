package handlers

import (
	"net/http"

	"server/models"
	"server/storage"

	"github.com/gin-gonic/gin"
)

// PhotoInfo is the user-facing photo shape
type PhotoInfo struct {
	ID         uint64            `json:"id"`
	UUID       string            `json:"uuid"`
	Present    bool              `json:"present"`
	CreatedAt  int64             `json:"created_at"`
	URL        string            `json:"url"`
	Attributes map[string]string `json:"attributes"`
}

func NewPhotoInfo(ownerUUID string, photo models.Photo, attrs []models.PhotoAttr) PhotoInfo {
	attrMap := map[string]string{}
	for _, attr := range attrs {
		attrMap[attr.Key] = attr.Value
	}
	url := ""
	if store := storage.StorageFrom(photo.BucketID); store != nil {
		url = store.ResolvePublicURL(models.PhotoPath(ownerUUID, photo.UUID))
	}
	return PhotoInfo{
		ID:         photo.ID,
		UUID:       photo.UUID,
		Present:    photo.Present,
		CreatedAt:  photo.CreatedAt,
		URL:        url,
		Attributes: attrMap,
	}
}

type PhotoCreateRequest struct {
	Filename string `json:"filename" binding:"required"`
	FileType string `json:"file_type" binding:"required"`
}

type PendingUpload struct {
	Photo     PhotoInfo `json:"photo"`
	UploadURL string    `json:"upload_url"`
	GetURL    string    `json:"get_url"`
}

// PhotoCreate records the photo before the binary exists anywhere and hands
// back a presigned upload URL. `present` stays false until PhotoConfirm.
func PhotoCreate(c *gin.Context, user *models.User) {
	req := PhotoCreateRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	filename, err := models.NewPhotoAttr("filename", req.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		serverError(c, "photo create", errNoStorage)
		return
	}
	photo, err := models.PhotoCreate(user, store.GetBucket().ID, filename)
	if err != nil {
		serverError(c, "photo create", err)
		return
	}
	path := models.PhotoPath(user.UUID, photo.UUID)
	c.JSON(http.StatusOK, PendingUpload{
		Photo:     NewPhotoInfo(user.UUID, photo, []models.PhotoAttr{filename}),
		UploadURL: store.CreateUploadURL(path, req.FileType),
		GetURL:    store.ResolvePublicURL(path),
	})
}

// PhotoList returns one page of the user's photos
func PhotoList(c *gin.Context, user *models.User) {
	page, err := models.PhotosByUser(user, bindPagination(c))
	if err != nil {
		serverError(c, "photo list", err)
		return
	}
	result := mapPhotoPage(user.UUID, page)
	c.JSON(http.StatusOK, result)
}

type PhotoConfirmRequest struct {
	UUID string `json:"uuid" binding:"required"`
}

// PhotoConfirm flips `present` once the client has finished its upload
func PhotoConfirm(c *gin.Context, user *models.User) {
	req := PhotoConfirmRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	photo, found, err := models.PhotoByUUID(user, req.UUID)
	if err != nil {
		serverError(c, "photo confirm", err)
		return
	}
	if !found {
		notFound(c)
		return
	}
	if err := photo.MarkPresent(); err != nil {
		serverError(c, "photo confirm", err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// PhotoUpload accepts the binary for disk buckets (S3 buckets get a
// presigned URL instead). The path must be under the caller's own prefix.
func PhotoUpload(c *gin.Context, user *models.User) {
	path := c.Param("path")
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	if !models.OwnsPhotoPath(user.UUID, path) {
		notFound(c)
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		serverError(c, "photo upload", errNoStorage)
		return
	}
	if _, err := store.Save(path, c.Request.Body); err != nil {
		serverError(c, "photo upload", err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
