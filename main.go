package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/kadalikavya/tinylink-backend/config"
	"github.com/kadalikavya/tinylink-backend/db"
	_ "github.com/kadalikavya/tinylink-backend/docs" // Import docs for Swagger
	"github.com/kadalikavya/tinylink-backend/logger"
	"github.com/kadalikavya/tinylink-backend/middleware"
	"github.com/kadalikavya/tinylink-backend/pkg/metrics"
	"github.com/kadalikavya/tinylink-backend/service"
)

// @title TinyLink API
// @version 1.0
// @description API for shortening URLs, redirecting visitors, and tracking click stats
// @host localhost:8080
// @BasePath /
// @schemes http

const version = "1.0"

// newRouter wires middleware and all routes. The fixed top-level segments
// registered here must stay in sync with the service's reserved-code set.
func newRouter(s *server) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(s.log))
	r.Use(gin.Recovery())
	r.Use(middleware.Instrument(s.mts))
	r.Use(cors.Default())

	r.LoadHTMLGlob("templates/*")
	r.Static("/static", "./static")

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(s.mts.Handler()))
	r.GET("/healthz", s.healthz)

	r.POST("/api/links", s.createLink)
	r.GET("/api/links", s.listLinks)
	r.GET("/api/links/:code", s.getLink)
	r.DELETE("/api/links/:code", s.deleteLink)

	r.GET("/", s.dashboard)
	r.GET("/code/:code", s.statsPage)
	r.GET("/:code", s.redirect)

	return r
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog := logger.New(cfg.LogLevel)
	defer zlog.Sync()

	database, err := db.InitDB(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()
	zlog.Info("connected to PostgreSQL")

	mts := metrics.New()
	svc := service.NewService(database, service.NewGenerator(database), zlog)

	s := &server{svc: svc, log: zlog, mts: mts}
	r := newRouter(s)

	zlog.Info("server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
