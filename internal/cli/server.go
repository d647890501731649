package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"quiz-trainer/internal/app"
	"quiz-trainer/internal/auth"
	"quiz-trainer/internal/config"
	"quiz-trainer/internal/infra/memory"
	pgstore "quiz-trainer/internal/infra/postgres"
	redisstore "quiz-trainer/internal/infra/redis"
	"quiz-trainer/internal/ingest"
	transport "quiz-trainer/internal/transport/http"
)

const (
	defaultPort       = "8000"
	defaultSessionTTL = 12 * time.Hour
	defaultPoolTTL    = 30 * time.Minute
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz trainer server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = defaultPort
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	var credentials auth.CredentialStore = auth.NewFileCredentials(cfg.Auth.CredentialsFile)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		credentials = pgstore.NewCredentialStore(pool)
	}

	sessionTTL := config.TTLDuration(cfg.Auth.SessionTTL, defaultSessionTTL)
	poolTTL := config.TTLDuration(cfg.Pool.TTL, defaultPoolTTL)

	var sessions auth.SessionStore
	var cache ingest.PoolCache
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, sessionTTL)
		cache = redisstore.NewPoolCache(redisClient, poolTTL)
	} else {
		sessions = memory.NewSessionStore(sessionTTL)
		cache = memory.NewPoolCache(poolTTL)
	}

	router := transport.NewRouter(transport.RouterConfig{
		Auth:           auth.NewAuthenticator(credentials, sessions),
		Uploader:       ingest.NewService(cache),
		Messages:       messagesFrom(cfg),
		StaticDir:      cfg.Server.StaticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
		SessionTTL:     sessionTTL,
	})

	// No WriteTimeout: websocket connections outlive any sensible deadline.
	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     router,
		ReadTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("starting quiz trainer on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func messagesFrom(cfg config.Config) app.Messages {
	return app.Messages{
		NoFile:       cfg.Messages.NoFile,
		UploadFailed: cfg.Messages.UploadFailed,
		EmptyPool:    cfg.Messages.EmptyPool,
	}
}
