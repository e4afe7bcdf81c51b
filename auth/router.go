package auth

import (
	"net/http"

	"server/config"
	"server/models"

	"github.com/gin-gonic/gin"
)

// Gate is an extra check on top of "logged in"
type Gate uint8

const (
	// Subscriber requires an unexpired subscription date
	Subscriber Gate = iota
	// Admin requires the admin uuid prefix; failures 404 so admin URLs
	// don't advertise themselves
	Admin
)

// HandlerFunc receives the already-authenticated user
type HandlerFunc func(c *gin.Context, user *models.User)

// Router wraps gin routes with auth checks + User pre-loading
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, gates []Gate) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	for _, gate := range gates {
		switch gate {
		case Subscriber:
			if !config.SUBSCRIPTION_FREE && !user.IsSubscriber() {
				c.JSON(http.StatusForbidden, gin.H{"error": "subscription required"})
				return
			}
		case Admin:
			if !user.IsAdmin() {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
		}
	}
	handler(c, &user)
}

func (cr *Router) GET(path string, handler HandlerFunc, gates ...Gate) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, gates)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc, gates ...Gate) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, gates)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc, gates ...Gate) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler, gates)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc, gates ...Gate) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler, gates)
	})
}
