package handlers

import (
	"net/http"

	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB         *pgxpool.Pool
	Sessions   *service.SessionManager
	Users      *repository.UserRepository
	Tasks      *repository.TaskRepository
	Categories *repository.CategoryRepository
	Feed       *ws.Hub
}

func NewHandler(db *pgxpool.Pool, sessions *service.SessionManager, feed *ws.Hub) *Handler {
	return &Handler{
		DB:         db,
		Sessions:   sessions,
		Users:      repository.NewUserRepository(db),
		Tasks:      repository.NewTaskRepository(db),
		Categories: repository.NewCategoryRepository(db),
		Feed:       feed,
	}
}

// currentUser reads the username placed in the context by the session
// middleware.
func currentUser(c *gin.Context) (string, bool) {
	v, ok := c.Get("user")
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// render writes an HTML page, always attaching the pending flash message
// (popped, so it shows exactly once) and the session user.
func (h *Handler) render(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flash"] = service.PopFlash(c)
	if user, ok := currentUser(c); ok {
		data["user"] = user
	}
	c.HTML(http.StatusOK, name, data)
}
