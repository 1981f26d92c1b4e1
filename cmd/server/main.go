// Package main runs the live classroom HTTP server with WebSocket and
// graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/classpulse/backend/config"
	"github.com/classpulse/backend/internal/classrooms"
	"github.com/classpulse/backend/internal/middleware"
	"github.com/classpulse/backend/internal/realtime"
	"github.com/classpulse/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	// Classroom state is session-scoped and in-memory only; it is lost
	// on restart.
	store := classrooms.NewStore(cfg.Classroom.DefaultName)
	registry := realtime.NewRegistry()
	hub := realtime.NewHub(logger)
	coordinator := realtime.NewCoordinator(store, registry, hub, logger, cfg.Classroom.DefaultPollSeconds)

	classroomHandler := classrooms.NewHandler(store, coordinator, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Classroom API
	router.POST("/api/classroom/create", classroomHandler.Create)
	router.GET("/api/classroom/:id", classroomHandler.Get)

	// WebSocket (joining a classroom happens via the join-classroom event)
	router.GET("/ws", realtime.ServeWs(coordinator, logger, cfg.WS.ReadLimit, cfg.WS.SendBufferSize))

	// Static pages
	if dir := cfg.Server.PublicDir; dir != "" {
		router.StaticFile("/", filepath.Join(dir, "index.html"))
		router.StaticFile("/teacher", filepath.Join(dir, "teacher.html"))
		router.StaticFile("/student", filepath.Join(dir, "student.html"))
		router.Static("/static", dir)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
