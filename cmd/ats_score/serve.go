package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-ats-score/api"
	"github.com/gcbaptista/go-ats-score/config"
	"github.com/gcbaptista/go-ats-score/internal/analytics"
	"github.com/gcbaptista/go-ats-score/internal/extraction"
	"github.com/gcbaptista/go-ats-score/internal/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", config.DefaultPort, "port to run the server on")
	serveCmd.Flags().Int64("max-upload-bytes", config.DefaultMaxUploadBytes, "maximum request body size in bytes")

	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.max-upload-bytes", serveCmd.Flags().Lookup("max-upload-bytes"))
}

func serve(ctx context.Context) error {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log, err := logger.New(settings.Log.JSON, settings.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	scorer, err := newScorer(settings, log)
	if err != nil {
		return err
	}

	router := newRouter(settings, api.NewAPI(
		scorer,
		extraction.NewPDFExtractor(log),
		analytics.NewService(),
		log,
	).WithVersion(version), log)

	server := &http.Server{
		Addr:              settings.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting the ats-score server",
			zap.String("version", version),
			zap.String("addr", server.Addr),
			zap.Float64("weight_overlap", settings.Weights.Overlap),
			zap.Float64("weight_cosine", settings.Weights.Cosine),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

func newRouter(settings *config.Settings, handler *api.API, log *zap.Logger) *gin.Engine {
	gin.SetMode(settings.Server.Mode)

	router := gin.New()
	router.Use(
		api.RequestIDMiddleware(),
		api.LoggerMiddleware(log),
		api.RecoveryMiddleware(log),
		api.CORSMiddleware(),
		api.RequestSizeLimitMiddleware(settings.Server.MaxUploadBytes),
	)
	api.SetupRoutes(router, handler)

	return router
}
