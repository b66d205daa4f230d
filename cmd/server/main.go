package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"drivehub/internal/auth"
	"drivehub/internal/config"
	"drivehub/internal/httpapi"
	"drivehub/internal/logging"
	"drivehub/internal/mail"
	"drivehub/internal/revocation"
	"drivehub/internal/token"
	"drivehub/internal/user"
	"drivehub/internal/vehicle"
	"drivehub/internal/verification"
)

func main() {
	log := logging.NewDefault(slog.LevelInfo)
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "configuration invalid", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx, "database open failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error(ctx, "database unreachable", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error(ctx, "redis unreachable", "error", err)
		os.Exit(1)
	}

	signer, err := token.NewSigner(cfg.JWTSecret)
	if err != nil {
		log.Error(ctx, "jwt secret rejected", "error", err)
		os.Exit(1)
	}

	userRepo := user.NewPostgresRepository(db)
	userSvc := user.NewService(userRepo, log.With("component", "user"))

	vehicleRepo := vehicle.NewPostgresRepository(db)
	vehicleSvc := vehicle.NewService(vehicleRepo, log.With("component", "vehicle"))

	revocations := revocation.NewStore(rdb, "")
	issuer := token.NewIssuer(signer)
	validator := token.NewValidator(signer, revocations, log.With("component", "token"))

	mailer := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	verifier := verification.NewManager(rdb, mailer, userRepo, log.With("component", "verification"))

	authSvc := auth.NewService(userSvc, verifier, issuer, validator, revocations,
		log.With("component", "auth"))

	h := httpapi.NewHandler(authSvc, userSvc, vehicleSvc, verifier, validator,
		log.With("component", "http"), cfg.SecureCookies)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(h, cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info(ctx, "server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutdown failed", "error", err)
	}
}
