package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/colposcopy-api/config"
	"github.com/ariebrainware/colposcopy-api/endpoint"
	"github.com/ariebrainware/colposcopy-api/migration"
	"github.com/ariebrainware/colposcopy-api/storage"
	"github.com/ariebrainware/colposcopy-api/util"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var (
		skipMigrate     bool
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			util.ConfigureLogger(cfg.AppEnv)
			gin.SetMode(cfg.GinMode)
			log := util.Logger()

			db, err := config.ConnectDatabase()
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}

			if _, err := config.ConnectRedis(); err != nil {
				log.Warn().Err(err).Msg("redis unavailable, rate limiting per process")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !skipMigrate {
				n, err := migration.New(db).Up(ctx)
				if err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				log.Info().Int("applied", n).Msg("schema up to date")
			}

			uploads, err := newUploadStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("upload storage: %w", err)
			}

			router := endpoint.NewRouter(db, uploads, endpoint.RouterOptions{
				AppName:        cfg.AppName,
				CORSOrigins:    cfg.CORSOrigins,
				UploadMaxBytes: cfg.UploadMaxBytes,
			})

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.AppPort),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("starting server")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error starting server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply pending migrations on start")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "Maximum time to wait for graceful shutdown")
	return cmd
}

func newUploadStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.UploadBackend {
	case "s3":
		s, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case "local", "":
		s, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported UPLOADBACKEND %q", cfg.UploadBackend)
	}
}
