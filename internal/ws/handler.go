package ws

import (
	"net/http"
	"os"

	"taskboard/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleFeed upgrades the connection and subscribes it to task events.
// The feed is read-only and public, like the task list page itself.
func HandleFeed(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		client := newClient(hub, conn)
		go client.run()
	}
}
