package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gcbaptista/go-survey-similarity/api"
	"github.com/gcbaptista/go-survey-similarity/config"
	"github.com/gcbaptista/go-survey-similarity/internal/engine"
	"github.com/gcbaptista/go-survey-similarity/internal/logger"
	"github.com/gcbaptista/go-survey-similarity/services"
	"github.com/gcbaptista/go-survey-similarity/store"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the survey HTTP server",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "", "port to listen on (default 5000)")
	serveCmd.Flags().String("data-file", "", "JSON file holding the survey responses (json storage driver)")
	serveCmd.Flags().String("storage", "", "storage driver: json or postgres")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("storage.data_file", serveCmd.Flags().Lookup("data-file"))
	viper.BindPFlag("storage.driver", serveCmd.Flags().Lookup("storage"))
}

// serve is the main command for the server.
func serve(ctx context.Context) {
	settings, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		log.Fatalf("loading config: %s", err)
	}

	logger, err := logger.New(settings.Log.JSON, settings.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting the survey server",
		zap.String("version", version),
		zap.String("storage", settings.Storage.Driver),
	)

	candidateStore, closeStore, err := openStore(settings, logger)
	if err != nil {
		logger.Fatal("opening the candidate store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing the candidate store", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, err := engine.NewEngine(ctx, candidateStore, logger)
	if err != nil {
		logger.Fatal("loading candidates", zap.Error(err))
	}

	gin.SetMode(settings.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, eng, *settings, logger)

	server := &http.Server{
		Addr:              ":" + settings.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", zap.Error(err))
	}
}

// openStore builds the candidate store selected by the storage driver.
// The returned close function releases whatever the store holds open.
func openStore(settings *config.Settings, logger *zap.Logger) (services.CandidateStore, func() error, error) {
	noop := func() error { return nil }

	switch settings.Storage.Driver {
	case config.DriverJSON:
		logger.Info("using json file storage", zap.String("path", settings.Storage.DataFile))
		return store.NewJSONFileStore(settings.Storage.DataFile, logger), noop, nil
	case config.DriverPostgres:
		db, err := store.OpenPostgres(settings.Storage.DSN, settings.Log.Debug)
		if err != nil {
			return nil, noop, err
		}
		gormStore, err := store.NewGormStore(db, logger)
		if err != nil {
			return nil, noop, err
		}
		return gormStore, gormStore.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", settings.Storage.Driver)
	}
}
