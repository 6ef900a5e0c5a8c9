package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"voxshop_backend/database"
	"voxshop_backend/internal/auth"
	"voxshop_backend/internal/billing"
	"voxshop_backend/internal/config"
	"voxshop_backend/internal/email"
	"voxshop_backend/internal/handlers"
	"voxshop_backend/internal/logger"
	"voxshop_backend/internal/mailer"
	"voxshop_backend/internal/routes"
	"voxshop_backend/internal/services"
	"voxshop_backend/internal/supplier"
	"voxshop_backend/internal/validator"
	"voxshop_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Run boots the storefront: config, logging, database, dependency wiring,
// background workers and the HTTP server.
func Run() {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)
	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migration failed", "error", err)
	}
	logger.Info("database connected")

	router, container := SetupRouter(cfg, db)

	catalogWorker := workers.NewCatalogWorker(db, container.Product)
	catalogWorker.Start()
	defer catalogWorker.Stop()

	tokenWorker := workers.NewTokenWorker(db)
	tokenWorker.Start()
	defer tokenWorker.Stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

// SetupRouter wires clients, services and handlers into a gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, *services.ServiceContainer) {
	supplierClient := supplier.NewClient(cfg.Supplier.BaseURL, cfg.Supplier.Username, cfg.Supplier.Password)

	container := services.NewServiceContainer(
		services.Clients{
			Gateway:  billing.NewStripeGateway(cfg.Stripe.SecretKey),
			Supplier: supplierClient,
			Mail: mailer.NewClient(mailer.Config{
				TenantID:     cfg.GraphMail.TenantID,
				ClientID:     cfg.GraphMail.ClientID,
				ClientSecret: cfg.GraphMail.ClientSecret,
				Sender:       cfg.GraphMail.Sender,
			}),
			Contact: email.NewSMTPSender(email.Config{
				Host:      cfg.SMTP.Host,
				Port:      cfg.SMTP.Port,
				Username:  cfg.SMTP.Username,
				Password:  cfg.SMTP.Password,
				FromEmail: cfg.SMTP.FromEmail,
				FromName:  cfg.SMTP.FromName,
			}),
		},
		services.Settings{
			StoreName:    cfg.Store.Name,
			Currency:     cfg.Store.Currency,
			SupportEmail: cfg.Store.SupportEmail,
		},
	)

	appHandlers := handlers.NewAppHandlers(container, validator.New())
	return routes.Setup(db, appHandlers), container
}
