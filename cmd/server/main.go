package main

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"adrenaline/auth"
	"adrenaline/migrations"
	"adrenaline/server"
	"adrenaline/shared/configs"
	"adrenaline/shared/logger"
	"adrenaline/storage"
)

func createRouter(allowedOrigins []string) *gin.Engine {
	if configs.Envs.GIN_MODE == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.JSON(http.StatusForbidden, gin.H{"error": "forbidden origin"})
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowHeaders: []string{
			"Content-Type",
			"Origin",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	logger.SetLevel(configs.Envs.LOG_LEVEL)

	var allowedOrigins []string
	if configs.Envs.GIN_MODE == "release" {
		allowedOrigins = append(allowedOrigins,
			"https://"+configs.Envs.FRONTEND_ORIGIN,
			"https://www."+configs.Envs.FRONTEND_ORIGIN)
	} else {
		allowedOrigins = append(allowedOrigins, "http://"+configs.Envs.FRONTEND_ORIGIN)
	}

	migrations.Migrate(configs.Envs.POSTGRES_URL)

	repo, err := storage.NewPostgresRepo(context.Background(), configs.Envs.POSTGRES_URL)
	if err != nil {
		logger.Fatalf("Couldn't connect to postgres: %v", err)
	}
	defer repo.Close()

	hub := server.NewHub(repo, configs.Envs.SNAPSHOT_PATH)
	hub.Resume()
	hub.StartTickers()

	r := createRouter(allowedOrigins)

	authHandler := auth.NewHandler(repo, auth.DefaultHasher())
	authHandler.RegisterRoutes(r)

	gameHandler := server.NewHandler(hub, repo, repo)
	gameHandler.RegisterRoutes(r)

	logger.Info("server listening on port 5000")
	if err := r.Run(":5000"); err != nil {
		logger.Fatalf("Couldn't start server: %v", err)
	}
}
