package middleware

import (
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Session parses the session cookie and stores the username in the gin
// context under "user". It never aborts: each handler decides what an
// absent session means for its route.
func Session(sessions *service.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username, ok := sessions.Current(c); ok {
			c.Set("user", username)
		}
		c.Next()
	}
}
