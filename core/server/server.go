package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-registry/core/config"
	"event-registry/core/database"
	"event-registry/core/logger"
	"event-registry/core/middleware"
	coreredis "event-registry/core/redis"
	"event-registry/core/worker"
	"event-registry/modules/assignment"
	"event-registry/modules/audit"
	"event-registry/modules/feed"
	"event-registry/modules/group"
	"event-registry/modules/importer"
	"event-registry/modules/participant"
	"event-registry/modules/room"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run wires configuration, storage, redis, the background worker and every
// module, then serves until interrupted. Module init order follows the
// dependency chain: feed and audit first, then the entity modules, then the
// engine and the importer on top of them.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	rdb, err := coreredis.InitRedis(cfg.Redis)
	if err != nil {
		return err
	}

	taskClient := worker.NewClient(cfg.Redis)
	defer taskClient.Close()
	mux := worker.NewServeMux()

	e := echo.New()
	e.HideBanner = true

	mw := middleware.NewMiddleware()
	e.Use(echomw.Recover())
	e.Use(mw.RequestLogger())
	e.Use(mw.Actor())

	publisher, subscriber := feed.Init(e, db, mw, rdb)
	auditSvc := audit.Init(e, db, mw, taskClient, mux)
	groupSvc := group.Init(e, db, mw, publisher, auditSvc)
	roomSvc := room.Init(e, db, mw, publisher, auditSvc)
	participantRepo := participant.Init(e, db, mw, publisher, auditSvc)
	engine := assignment.Init(e, db, mw, participantRepo, publisher, auditSvc)
	importer.Init(e, mw, cfg.S3, participantRepo, groupSvc, roomSvc, engine, publisher, auditSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go worker.Run(cfg.Redis, mux)
	go subscriber.Run(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown", err)
		}
	}()

	logger.Info("Server starting", "port", cfg.Server.Port)
	if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
