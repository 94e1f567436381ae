package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/maheshsta/corebank/internal/config"
	"github.com/maheshsta/corebank/internal/handler"
	"github.com/maheshsta/corebank/internal/logging"
	"github.com/maheshsta/corebank/internal/middleware"
	"github.com/maheshsta/corebank/internal/notify"
	"github.com/maheshsta/corebank/internal/repository"
	"github.com/maheshsta/corebank/internal/service"
	"github.com/maheshsta/corebank/internal/service/transfer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("corebank-api", cfg.LogLevel, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	})
	cancel()
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	accounts := repository.NewAccountRepository(db)
	ledger := repository.NewTransactionRepository(db)
	users := repository.NewUserRepository(db)

	mailer := notify.NewRelayMailer(cfg.MailRelayURL, cfg.MailRelayKey, cfg.MailFrom,
		time.Duration(cfg.NotifyTimeoutS)*time.Second)
	dispatcher := notify.NewDispatcher(mailer, time.Duration(cfg.NotifyTimeoutS)*time.Second)

	accountSvc := service.NewAccountService(accounts, users)
	historySvc := service.NewHistoryService(accounts, ledger)
	// No limit policy is configured; the hook stays disabled by default.
	transferSvc := transfer.NewService(accounts, ledger, users, nil, dispatcher, db)

	tokenTTL := time.Duration(cfg.TokenTTLH) * time.Hour
	authH := handler.NewAuthHandler(users, accountSvc, cfg.JWTSecret, tokenTTL)
	accountH := handler.NewAccountHandler(accountSvc)
	transferH := handler.NewTransferHandler(transferSvc)
	historyH := handler.NewHistoryHandler(historySvc)
	healthH := handler.NewHealthHandler(db)

	authRequired := middleware.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", authH.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authH.Login)
	mux.Handle("GET /api/v1/accounts/balance", authRequired(http.HandlerFunc(accountH.Balance)))
	mux.Handle("GET /api/v1/accounts/{accountNumber}", authRequired(http.HandlerFunc(accountH.Lookup)))
	mux.Handle("POST /api/v1/transfers", authRequired(http.HandlerFunc(transferH.Create)))
	mux.Handle("GET /api/v1/transactions", authRequired(http.HandlerFunc(historyH.List)))
	mux.HandleFunc("GET /health", healthH.Liveness)
	mux.HandleFunc("GET /health/ready", healthH.Readiness)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.Tracing(middleware.Logging(middleware.Recovery(mux))),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
