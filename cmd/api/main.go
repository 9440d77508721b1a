package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	dbadapter "todoapp/internal/adapter/db"
	httpadapter "todoapp/internal/adapter/http"
	"todoapp/internal/adapter/http/handlers"
	httpmiddleware "todoapp/internal/adapter/http/middleware"
	"todoapp/internal/adapter/notify"
	"todoapp/internal/app/reminder"
	appservice "todoapp/internal/app/service"
	"todoapp/internal/config"
	"todoapp/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  "pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to mysql", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close mysql connection", zap.Error(err))
		}
	}()

	taskRepository := dbadapter.NewTaskRepository(db)
	projectRepository := dbadapter.NewProjectRepository(db)
	taskService := appservice.NewTaskService(taskRepository, projectRepository)
	projectService := appservice.NewProjectService(projectRepository)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := reminder.NewScheduler(
		taskRepository,
		notify.NewSMTPMailer(cfg),
		notify.NewWebhookPusher(cfg),
		logger,
		cfg.ReminderInterval,
		cfg.ReminderWindow,
	)
	go scheduler.Run(ctx)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.RequestLogger(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Error(err))
	}

	healthHandler := handlers.NewHealthHandler(db)
	taskHandler := handlers.NewTaskHandler(taskService)
	projectHandler := handlers.NewProjectHandler(projectService)
	httpadapter.RegisterRoutes(r, cfg.AuthSecret, healthHandler, taskHandler, projectHandler)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{Addr: addr, Handler: r}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		logger.Fatal("could not start server", zap.Error(err))
	case <-ctx.Done():
	}

	// SIGINT/SIGTERM: drain in-flight requests, then let main return so the
	// deferred db close and logger sync run.
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped with error", zap.Error(err))
	}
}
