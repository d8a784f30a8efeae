package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"app-setup/internal/config"
	apphttp "app-setup/internal/http"
	"app-setup/internal/repository/postgres"
	"app-setup/internal/security"
	"app-setup/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the pool is lazy on purpose: the target database may not exist until
	// the install endpoint has been called
	db, err := postgres.Open(cfg.DSN())
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	roleRepo := postgres.NewRoleRepository(db)
	userRepo := postgres.NewUserRepository(db)
	ensurer := postgres.NewDatabaseEnsurer(cfg.AdminDSN(), cfg.Database.Name)
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)

	installer := service.NewInstaller(ensurer, roleRepo, userRepo)
	firstUsers := service.NewFirstUserService(roleRepo, userRepo, hasher)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(installer, firstUsers, logger)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
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
