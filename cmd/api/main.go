package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/trimtime/trimtime-api/internal/config"
	dbpkg "github.com/trimtime/trimtime-api/internal/db"
	"github.com/trimtime/trimtime-api/internal/logging"
	"github.com/trimtime/trimtime-api/internal/middleware"
	"github.com/trimtime/trimtime-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	db := dbpkg.NewDB(cfg, log)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "trimtime api"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
