package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/desk-portal-api/api/swagger"
	"github.com/noah-isme/desk-portal-api/internal/gateway"
	"github.com/noah-isme/desk-portal-api/internal/handler"
	"github.com/noah-isme/desk-portal-api/internal/service"
	"github.com/noah-isme/desk-portal-api/internal/session"
	"github.com/noah-isme/desk-portal-api/pkg/cache"
	"github.com/noah-isme/desk-portal-api/pkg/config"
	"github.com/noah-isme/desk-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/desk-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/desk-portal-api/pkg/middleware/requestid"
)

// @title Desk Portal API
// @version 1.0.0
// @description Browser-facing portal for the office desk management service
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close() //nolint:errcheck

	upstream, err := gateway.NewClient(cfg.Upstream, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to configure upstream client", "error", err)
	}

	sessions := session.NewStore(redisClient, cfg.Session, logr)
	resolver := session.NewResolver()

	validate := service.NewValidator()
	metrics := service.NewMetricsService()
	upstream.SetObserver(metrics.ObserveUpstreamRequest)
	reconciler := service.NewReconciler(logr)

	var refresher *service.Refresher
	if cfg.Refresh.Enabled {
		refresher = service.NewRefresher(upstream, cfg.Refresh, logr)
	}

	authSvc := service.NewAuthService(upstream, resolver, sessions, validate, logr)
	deskSvc := service.NewDeskService(upstream, reconciler, refresher, metrics, validate, logr)
	adminSvc := service.NewAdminService(upstream, refresher, validate, logr)
	employeeSvc := service.NewEmployeeService(upstream, reconciler, validate, logr)

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(deskSvc, logr)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	deps := handler.Deps{
		Auth:     handler.NewAuthHandler(authSvc),
		Admin:    handler.NewAdminHandler(adminSvc),
		Employee: handler.NewEmployeeHandler(employeeSvc),
		Sessions: sessions,
		Metrics:  metrics,
	}
	if exportSvc != nil {
		deps.Desks = handler.NewDeskHandler(deskSvc, exportSvc)
	} else {
		deps.Desks = handler.NewDeskHandler(deskSvc, nil)
	}
	handler.RegisterRoutes(r, deps)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if refresher != nil {
		go refresher.Run(ctx)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown incomplete", "error", err)
	}
}
