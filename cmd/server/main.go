package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulse-backend/config"
	"pulse-backend/internal/handler"
	"pulse-backend/internal/model"
	"pulse-backend/internal/notify"
	"pulse-backend/internal/repository"
	"pulse-backend/internal/service"
	dbPkg "pulse-backend/pkg/db"
	"pulse-backend/pkg/jwt"
	"pulse-backend/pkg/logger"
	"pulse-backend/pkg/mailer"
	"pulse-backend/pkg/push"
	redisPkg "pulse-backend/pkg/redis"
	"pulse-backend/pkg/response"
	"pulse-backend/pkg/storage"
	"pulse-backend/pkg/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== Pulse backend starting ===",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.Duration("jwt_expire_time", cfg.JWT.ExpireTime),
		zap.String("log_level", cfg.Log.Level),
	)

	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("closing database failed", zap.Error(err))
		}
	}()
	log.Info("database connected")

	if err := dbPkg.AutoMigrate(
		&model.User{},
		&model.Connection{},
		&model.Moment{},
		&model.MomentRecipient{},
		&model.Reply{},
		&model.ProfilePhoto{},
	); err != nil {
		log.Fatal("auto migration failed", zap.Error(err))
	}
	log.Info("auto migration complete")

	// Redis backs best-effort unread counters only; run without it if it's
	// down.
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("redis unavailable, unread counters disabled", zap.Error(err))
	} else {
		defer redisPkg.Close()
	}

	ctx := context.Background()

	// Notification channels; each may run in degraded no-op mode.
	mail := mailer.New(cfg.Mail)
	pushClient := push.New(ctx, cfg.Push)
	wsManager := ws.NewManager()
	notifier := notify.NewDispatcher(mail, pushClient, wsManager)

	mediaStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("media storage init failed", zap.Error(err))
	}
	if !mediaStore.Enabled() {
		log.Warn("media storage not configured, presigned uploads disabled")
	}

	jwtSvc := jwt.NewJWTService(cfg.JWT)

	db := dbPkg.GetDB()
	userRepo := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db)
	momentRepo := repository.NewMomentRepository(db)
	photoRepo := repository.NewPhotoRepository(db)

	userSvc := service.NewUserService(userRepo, jwtSvc, notifier)
	connSvc := service.NewConnectionService(connRepo, userRepo, notifier)
	momentSvc := service.NewMomentService(momentRepo, userRepo, connSvc, notifier)
	photoSvc := service.NewPhotoService(photoRepo, mediaStore)

	userHandler := handler.NewUserHandler(userSvc, connSvc)
	connHandler := handler.NewConnectionHandler(connSvc)
	momentHandler := handler.NewMomentHandler(momentSvc)
	photoHandler := handler.NewPhotoHandler(photoSvc)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logger.LoggerMiddleware())
	router.Use(logger.ErrorLoggerMiddleware())

	setupBasicRoutes(router)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", userHandler.Signup)
			auth.POST("/login", userHandler.Login)

			authedAuth := auth.Group("")
			authedAuth.Use(jwtSvc.AuthMiddleware())
			{
				authedAuth.GET("/profile", userHandler.GetProfile)
				authedAuth.PUT("/profile", userHandler.UpdateProfile)
				authedAuth.POST("/push-token", userHandler.RegisterPushToken)
			}
		}

		users := v1.Group("/users")
		users.Use(jwtSvc.AuthMiddleware())
		{
			users.GET("/search", userHandler.Search)
			users.GET("/:id", userHandler.PublicProfile)
		}

		connections := v1.Group("/connections")
		connections.Use(jwtSvc.AuthMiddleware())
		{
			connections.POST("/request", connHandler.Request)
			connections.POST("/respond", connHandler.Respond)
			connections.GET("", connHandler.List)
		}

		moments := v1.Group("/moments")
		moments.Use(jwtSvc.AuthMiddleware())
		{
			moments.POST("/send", momentHandler.Send)
			moments.GET("", momentHandler.Inbox)
			moments.GET("/unread-count", momentHandler.UnreadCount)
			moments.POST("/reply", momentHandler.Reply)
		}

		authed := v1.Group("")
		authed.Use(jwtSvc.AuthMiddleware())
		{
			authed.GET("/activity", momentHandler.Activity)
			authed.GET("/conversations/:user_id", momentHandler.Conversation)

			authed.POST("/profile/photos", photoHandler.Upload)
			authed.GET("/profile/photos", photoHandler.List)
			authed.DELETE("/profile/photos/:id", photoHandler.Delete)

			authed.POST("/media/upload-url", photoHandler.PresignUpload)
		}
	}

	router.GET("/ws", ws.Handler(wsManager, jwtSvc, cfg.WebSocket))

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}

// setupBasicRoutes wires the health and root endpoints.
func setupBasicRoutes(router *gin.Engine) {
	// Health reports storage connectivity; a dead database degrades the
	// whole report to 503. Redis is advisory only.
	router.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			dbStatus = "down"
		}
		redisStatus := "ok"
		if err := redisPkg.HealthCheck(); err != nil {
			redisStatus = "down"
		}

		body := gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"time":     time.Now().Format(time.RFC3339),
		}
		if dbStatus != "ok" {
			body["status"] = "degraded"
			response.Unavailable(c, "storage unreachable", body)
			return
		}
		response.Success(c, body)
	})

	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "Pulse backend",
			"version": "1.0.0",
		})
	})
}
