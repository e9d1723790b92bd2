package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mcharron/roastlog/internal/config"
	"github.com/mcharron/roastlog/internal/repository/mongodb"
	"github.com/mcharron/roastlog/internal/server/handlers"
	"github.com/mcharron/roastlog/internal/server/router"
	dashboardsvc "github.com/mcharron/roastlog/internal/service/dashboard"
	"github.com/mcharron/roastlog/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, err := mongodb.NewStore(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	beanRepo := mongodb.NewBeanRepository(store, baseLogger.Named("repo.beans"))
	roastRepo := mongodb.NewRoastRepository(store, baseLogger.Named("repo.roasts"))

	dashboardSvc := dashboardsvc.NewService(beanRepo, roastRepo, baseLogger.Named("svc.dashboard"))

	viewHandler := handlers.NewViewHandler(beanRepo, roastRepo, dashboardSvc, baseLogger.Named("handlers.views"))
	beanHandler := handlers.NewBeanHandler(beanRepo, baseLogger.Named("handlers.beans"))
	roastHandler := handlers.NewRoastHandler(roastRepo, baseLogger.Named("handlers.roasts"))

	engine := router.New(viewHandler, beanHandler, roastHandler, cfg.Server.TemplatesGlob, cfg.Server.StaticDir, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
