package main

import (
	"log"
	"strings"
	"time"

	"server/auth"
	"server/config"
	"server/db"
	"server/handlers"
	"server/models"
	"server/storage"
	"server/utils"
	"server/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()
	handlers.InitIDCodec()
	handlers.InitEmailer()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.ALLOWED_ORIGINS, ","),
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))
	if config.TLS_DOMAINS != "" {
		router.Use(utils.HSTSMiddleware)
	}

	// HTML templates for the public album pages
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/w/photo"})))
	}
	// No cache by default, individual end-points can override that
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler())

	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/api/register", handlers.UserRegister)
	router.POST("/api/login", handlers.UserLogin)
	router.POST("/api/password-reset", handlers.PasswordResetStart)
	router.PUT("/api/password-reset/:token", handlers.PasswordResetComplete)
	authRouter.POST("/api/logout", handlers.UserLogout)
	authRouter.GET("/api/user/status", handlers.UserGetStatus)
	// Photo handlers
	authRouter.POST("/api/photos", handlers.PhotoCreate, auth.Subscriber)
	authRouter.GET("/api/photos", handlers.PhotoList)
	authRouter.POST("/api/photos/confirm", handlers.PhotoConfirm)
	authRouter.PUT("/api/photos/upload/*path", handlers.PhotoUpload, auth.Subscriber)
	// Album handlers
	authRouter.POST("/api/albums", handlers.AlbumCreate)
	authRouter.GET("/api/albums", handlers.AlbumList)
	authRouter.GET("/api/albums/:id", handlers.AlbumFetch)
	authRouter.PUT("/api/albums/:id/photos", handlers.AlbumAddPhotos)
	authRouter.DELETE("/api/albums/:id/photos", handlers.AlbumRemovePhotos)
	// Publishing handlers
	authRouter.POST("/api/albums/:id/publish", handlers.AlbumPublish)
	authRouter.GET("/api/published", handlers.PublishedList)
	authRouter.POST("/api/published/:hash/toggle", handlers.PublishedToggle)
	authRouter.DELETE("/api/published/:hash", handlers.PublishedDelete)
	router.GET("/api/published/:hash/photos", handlers.PublishedPhotos)
	// Admin
	authRouter.GET("/api/admin/dashboard", handlers.AdminDashboard, auth.Admin)

	/*
	 *	Web interface
	 */
	router.GET("/w/album/:hash/", web.PublishedAlbumView)
	router.GET("/w/photo/*path", web.PhotoView)
	router.GET("/robots.txt", web.DisallowRobots)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
