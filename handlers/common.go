package handlers

import (
	"errors"
	"log"
	"net/http"

	"server/db"
	"server/models"

	"github.com/gin-gonic/gin"
)

var errNoStorage = errors.New("no storage bucket configured")

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined responses. Database errors are always opaque to the
	// client; the detail goes to the server log.
	OKResponse       = Response{}
	NotFoundResponse = Response{"not found"}
	DBErrorResponse  = Response{"DB error"}
)

// serverError logs the real failure and sends the opaque 500
func serverError(c *gin.Context, context string, err error) {
	log.Printf("Error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, DBErrorResponse)
}

// notFound is used for missing rows AND ownership mismatches so callers
// can't probe for other users' ids
func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, NotFoundResponse)
}

// bindPagination reads ?key=&page_size= with defaults applied
func bindPagination(c *gin.Context) db.Pagination {
	page := db.Pagination{}
	_ = c.ShouldBindQuery(&page)
	return db.NewPagination(page.Key, page.PerPage)
}

func mapPhotoPage(ownerUUID string, page db.Page[models.PhotoWithAttrs]) db.Page[PhotoInfo] {
	return db.MapPage(page, func(p models.PhotoWithAttrs) PhotoInfo {
		return NewPhotoInfo(ownerUUID, p.Photo, p.Attrs)
	})
}
