package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glowbook/salon-api/internal/config"
	dbpkg "github.com/glowbook/salon-api/internal/db"
	"github.com/glowbook/salon-api/internal/logger"
	"github.com/glowbook/salon-api/internal/routes"
)

func main() {

	cfg := config.Load()
	logger.Init(cfg.Env)

	db := dbpkg.NewDB(cfg)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
}
