package http

import (
	"time"

	"taskboard/internal/config"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires every page route, the health endpoints and the
// task feed onto the router. Sessions and the store are passed in, not
// read from globals.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, sessions *service.SessionManager, cfg *config.Config, version string) {
	feed := ws.NewHub()
	go feed.Run()

	h := handlers.NewHandler(db, sessions, feed)
	healthHandler := handlers.NewHealthHandler(db, version)

	r.Use(middleware.Metrics())
	r.Use(middleware.Session(sessions))

	// Health checks (no session, no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Credential submission is the only brute-forceable surface
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, time.Duration(cfg.AuthRateWindow)*time.Second)

	r.GET("/", h.ListTasks)
	r.GET("/get_tasks", h.ListTasks)

	r.GET("/register", h.Register)
	r.POST("/register", authRL, h.Register)
	r.GET("/login", h.Login)
	r.POST("/login", authRL, h.Login)
	r.GET("/profile/:username", h.Profile)
	r.GET("/logout", h.Logout)

	r.GET("/add_task", h.AddTask)
	r.POST("/add_task", h.AddTask)
	r.GET("/edit_task/:id", h.EditTask)
	r.POST("/edit_task/:id", h.EditTask)
	r.GET("/delete_task/:id", h.DeleteTask)

	r.GET("/manage_categories", h.ManageCategories)
	r.GET("/add_category", h.AddCategory)
	r.POST("/add_category", h.AddCategory)
	r.GET("/edit_category/:id", h.EditCategory)
	r.POST("/edit_category/:id", h.EditCategory)
	r.GET("/delete_category/:id", h.DeleteCategory)

	r.GET("/search", h.Search)
	r.POST("/search", h.Search)

	// Live task feed
	r.GET("/ws/feed", ws.HandleFeed(feed))
}
