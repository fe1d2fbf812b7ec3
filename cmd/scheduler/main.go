package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/example/basic-scheduler/internal/application"
	"github.com/example/basic-scheduler/internal/config"
	httptransport "github.com/example/basic-scheduler/internal/http"
	"github.com/example/basic-scheduler/internal/logging"
	"github.com/example/basic-scheduler/internal/persistence"
	"github.com/example/basic-scheduler/internal/persistence/sqlite"
	"github.com/example/basic-scheduler/internal/scheduling"
)

func main() {
	logger := logging.NewLogger(os.Stdout, slog.LevelInfo)

	// Optional: local development keeps its settings in a .env file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env file", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := sqlite.Migrate(ctx, pool, logger); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	userRepo := sqlite.NewUserRepository(pool)
	customerRepo := sqlite.NewCustomerRepository(pool)
	contactRepo := sqlite.NewContactRepository(pool)
	regionRepo := sqlite.NewRegionRepository(pool)
	appointmentRepo := sqlite.NewAppointmentRepository(pool)
	sessionRepo := sqlite.NewSessionRepository(pool)
	reportRepo := sqlite.NewReportRepository(pool)

	if err := ensureInitialUser(ctx, userRepo, cfg.InitialAdminUsername, cfg.InitialAdminPassword, logger); err != nil {
		logger.Error("failed to seed initial user", "error", err)
		os.Exit(1)
	}

	validator := scheduling.NewValidator(cfg.BusinessHours())
	now := time.Now
	tokenGenerator := uuid.NewString

	appointmentService := application.NewAppointmentService(appointmentRepo, customerRepo, userRepo, contactRepo, validator, now, logger)
	customerService := application.NewCustomerService(customerRepo, regionRepo, appointmentRepo, now, logger)
	directoryService := application.NewDirectoryService(contactRepo, regionRepo, logger)
	userService := application.NewUserService(userRepo, nil, now, logger)
	authService := application.NewAuthService(userRepo, sessionRepo, nil, tokenGenerator, now, cfg.SessionTTL, logger)
	reportService := application.NewReportService(reportRepo, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:         httptransport.NewAuthHandler(authService, logger),
		Appointments: httptransport.NewAppointmentHandler(appointmentService, logger),
		Customers:    httptransport.NewCustomerHandler(customerService, logger),
		Directory:    httptransport.NewDirectoryHandler(directoryService, logger),
		Users:        httptransport.NewUserHandler(userService, logger),
		Reports:      httptransport.NewReportHandler(reportService, logger),
	})

	protected := httptransport.RequireSession(authService, logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Login is the only route reachable without a session.
		if strings.EqualFold(r.URL.Path, "/sessions") && r.Method == http.MethodPost {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("scheduler API listening", "addr", server.Addr, "business_zone", cfg.BusinessZone.String())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// ensureInitialUser seeds an administrator account when the users table is
// empty, so a fresh deployment can sign in.
func ensureInitialUser(ctx context.Context, users persistence.UserRepository, username, password string, logger *slog.Logger) error {
	existing, err := users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := application.HashPassword(password, application.DefaultArgon2idParams)
	if err != nil {
		return fmt.Errorf("hash initial password: %w", err)
	}

	now := time.Now()
	created, err := users.CreateUser(ctx, persistence.User{
		Username:     username,
		DisplayName:  "Administrator",
		IsAdmin:      true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("create initial user: %w", err)
	}

	logger.Info("seeded initial administrator", "user_id", created.ID, "username", created.Username)
	return nil
}
