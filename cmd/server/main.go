package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"coursehub/internal/config"
	apphttp "coursehub/internal/http"
	"coursehub/internal/repository/sqlite"
	"coursehub/internal/service"
	"coursehub/internal/session"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	}

	if strings.TrimSpace(cfg.Session.Secret) == "" {
		logger.Fatalf("session secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	courseRepo := sqlite.NewCourseRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := courseRepo.Init(ctx); err != nil {
		logger.Fatalf("init course repository: %v", err)
	}

	userService := service.NewUserService(userRepo)
	courseService := service.NewCourseService(courseRepo)

	store, err := buildSessionStore(cfg, db, logger)
	if err != nil {
		logger.Fatalf("setup session store: %v", err)
	}

	sessions := session.NewManager(store, service.NewPrincipalCodec(userRepo), session.Options{
		Secret:     cfg.Session.Secret,
		TTL:        time.Duration(cfg.Session.TTLMinutes) * time.Minute,
		CookieName: cfg.Session.CookieName,
		Logger:     logger,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/static", "web/static")

	handler := apphttp.NewHandler(courseService, userService, sessions, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: apphttp.MethodOverride(router),
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildSessionStore(cfg config.Config, db *sql.DB, logger *logrus.Logger) (session.Store, error) {
	switch cfg.Session.Store {
	case "", "sqlite":
		logger.Info("using sqlite session store")
		return session.NewSQLiteStore(db)
	case "redis":
		logger.Infof("using redis session store at %s", cfg.Redis.Addr)
		return session.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}
