package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/rentbook/internal/auth"
	"github.com/MrJamesThe3rd/rentbook/internal/config"
	"github.com/MrJamesThe3rd/rentbook/internal/database"
	"github.com/MrJamesThe3rd/rentbook/internal/export"
	rentbookHttp "github.com/MrJamesThe3rd/rentbook/internal/http"
	accountHandler "github.com/MrJamesThe3rd/rentbook/internal/http/account"
	crmHandler "github.com/MrJamesThe3rd/rentbook/internal/http/crm"
	exportHandler "github.com/MrJamesThe3rd/rentbook/internal/http/export"
	ledgerHandler "github.com/MrJamesThe3rd/rentbook/internal/http/ledger"
	maintenanceHandler "github.com/MrJamesThe3rd/rentbook/internal/http/maintenance"
	authmw "github.com/MrJamesThe3rd/rentbook/internal/http/middleware"
	propertyHandler "github.com/MrJamesThe3rd/rentbook/internal/http/property"
	reportHandler "github.com/MrJamesThe3rd/rentbook/internal/http/report"
	tenancyHandler "github.com/MrJamesThe3rd/rentbook/internal/http/tenancy"
	"github.com/MrJamesThe3rd/rentbook/internal/importer"
	"github.com/MrJamesThe3rd/rentbook/internal/logger"
	"github.com/MrJamesThe3rd/rentbook/internal/rental"
	"github.com/MrJamesThe3rd/rentbook/internal/report"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	repo, closeRepo, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer closeRepo()

	rentalService := rental.NewService(repo, log)

	if cfg.Admin.Password != "" {
		created, err := rentalService.Seed(ctx, rental.UserParams{
			Name:     "Administrator",
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			return fmt.Errorf("seeding admin: %w", err)
		}

		if created {
			log.Info("seeded admin account", "email", cfg.Admin.Email)
		}
	}

	var (
		tokenService  = auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
		importService = importer.NewService()
		reportService = report.NewService(rentalService)
		exportService = export.NewService(rentalService)
	)

	handlers := rentbookHttp.Handlers{
		Account:     accountHandler.NewHandler(rentalService, tokenService),
		Property:    propertyHandler.NewHandler(rentalService),
		Tenancy:     tenancyHandler.NewHandler(rentalService),
		Maintenance: maintenanceHandler.NewHandler(rentalService),
		Ledger:      ledgerHandler.NewHandler(rentalService, importService),
		CRM:         crmHandler.NewHandler(rentalService),
		Report:      reportHandler.NewHandler(reportService),
		Export:      exportHandler.NewHandler(exportService),
	}

	router := rentbookHttp.New(handlers, authmw.Auth(tokenService, rentalService), cfg.CORS.Origins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info("starting server", "addr", srv.Addr, "storage", cfg.Storage.Driver)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
