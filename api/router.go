package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/prasetyodt/railbooking/internal/domain"
	"github.com/prasetyodt/railbooking/internal/mockapi"
)

const userKey = "user"

// NewRouter assembles the offline backend: the full REST surface the
// client consumes, served from the in-memory store.
func NewRouter(store *mockapi.Store) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	auth := NewAuthHandler(store)
	schedules := NewScheduleHandler(store)
	bookings := NewBookingHandler(store)
	admin := NewAdminHandler(store)

	auth.Register(router.Group("/auth"))
	schedules.Register(router.Group(""))

	authed := router.Group("", authRequired(store))
	bookings.Register(authed)

	adminGroup := router.Group("", authRequired(store), adminOnly())
	admin.Register(adminGroup)

	return router
}

// authRequired resolves the bearer token to a user and aborts with 401
// when it is missing, unknown or expired.
func authRequired(store *mockapi.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		user, ok := store.UserByToken(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || user.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin role required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := v.(domain.User)
	return user, ok
}
