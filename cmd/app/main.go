package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/db"
	httpServer "taskboard/internal/http"
	"taskboard/internal/http/middleware"
	"taskboard/internal/logger"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")
	cfg := config.Load()

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	sessions := service.NewSessionManager(cfg.SessionSecret)

	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, dbPool, sessions, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
