package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/maplelisted/maplelisted/internal/audit"
	auditStore "github.com/maplelisted/maplelisted/internal/audit/store"
	"github.com/maplelisted/maplelisted/internal/compliance"
	"github.com/maplelisted/maplelisted/internal/config"
	"github.com/maplelisted/maplelisted/internal/database"
	mlHttp "github.com/maplelisted/maplelisted/internal/http"
	feesHandler "github.com/maplelisted/maplelisted/internal/http/fees"
	legalHandler "github.com/maplelisted/maplelisted/internal/http/legal"
	txHandler "github.com/maplelisted/maplelisted/internal/http/transaction"
	"github.com/maplelisted/maplelisted/internal/metrics"
	"github.com/maplelisted/maplelisted/internal/notification"
	notificationStore "github.com/maplelisted/maplelisted/internal/notification/store"
	propertyStore "github.com/maplelisted/maplelisted/internal/property/store"
	"github.com/maplelisted/maplelisted/internal/transaction"
	txStore "github.com/maplelisted/maplelisted/internal/transaction/store"
	userStore "github.com/maplelisted/maplelisted/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		users = userStore.New(db)

		auditService        = audit.NewService(auditStore.New(db))
		notificationService = notification.NewService(notificationStore.New(db))
		gate                = compliance.NewGate(users)

		transactionService = transaction.NewService(
			txStore.New(db),
			propertyStore.New(db),
			gate,
			cfg.FeePolicy(),
			auditService,
			notificationService,
			metrics.New(prometheus.DefaultRegisterer),
		)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		legalH       = legalHandler.NewHandler(users, auditService)
		feesH        = feesHandler.NewHandler(cfg.FeePolicy())
	)

	router := mlHttp.New(db, cfg.Auth.JWTSecret, transactionH, legalH, feesH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
