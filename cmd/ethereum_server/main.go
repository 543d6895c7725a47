package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ethereum_server/internal/app/service"
	"ethereum_server/internal/domain/entity"
	"ethereum_server/internal/infrastructure/cache"
	"ethereum_server/internal/infrastructure/configloader"
	"ethereum_server/internal/infrastructure/network/chainlist"
	clientprovider "ethereum_server/internal/infrastructure/network/client"
	networkdefinition "ethereum_server/internal/infrastructure/network/definition"
	"ethereum_server/internal/infrastructure/restapi"
	"ethereum_server/internal/infrastructure/serverstore"
	"ethereum_server/internal/pkg/logger"
	"ethereum_server/internal/pkg/metrics"
	"ethereum_server/internal/pkg/utils"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

const chainlistTimeout = 15 * time.Second

func main() {
	// logrus нужен только до инициализации zap
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck
	logger.InitSlog(zapLogger)

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()
	appLogger := logger.NewSlogAdapter()

	store, err := serverstore.NewYAMLStore(cfg.Ethereum.ServersFile, appLogger.Info)
	if err != nil {
		logger.Fatal("Failed to load server store", "path", cfg.Ethereum.ServersFile, "error", err)
	}
	metrics.ServersConfigured.Set(float64(len(store.List())))

	var overrides []entity.NetworkEntry
	if cfg.Ethereum.NetworksFile != "" {
		overrides, err = networkdefinition.LoadNetworksFile(cfg.Ethereum.NetworksFile)
		if err != nil {
			logger.Fatal("Failed to load networks file", "path", cfg.Ethereum.NetworksFile, "error", err)
		}
	}

	// Список chainlist необязателен, при ошибке работаем со встроенными сетями
	var supplements []entity.NetworkEntry
	if cfg.Ethereum.ChainlistURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), chainlistTimeout)
		supplements, err = chainlist.NewFetcher(chainlistTimeout, zapLogger).FetchNetworks(ctx, cfg.Ethereum.ChainlistURL)
		cancel()
		if err != nil {
			zapLogger.Warn("Chain list unavailable, using built-in networks only", zap.Error(err))
		}
	}

	registry := networkdefinition.NewNetworkRegistry(appLogger, overrides, supplements)

	if cfg.Ethereum.CurrentServer != "" {
		if _, err := store.Get(cfg.Ethereum.CurrentServer); err != nil {
			zapLogger.Warn("Configured default server does not exist", zap.String("id", cfg.Ethereum.CurrentServer))
		}
	}

	dialer := clientprovider.NewEVMDialer(cfg, appLogger.Debug)
	checker := service.NewConnectivityService(dialer, appLogger, cfg)
	validationCache := cache.NewValidationCache(
		time.Duration(cfg.Cache.ValidationTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.CleanupIntervalSeconds)*time.Second,
	)

	router := restapi.SetupRouter(
		restapi.NewServerHandler(store, checker, registry, validationCache, cfg, zapLogger),
		restapi.NewNetworkHandler(registry),
		cfg,
		zapLogger,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	zapLogger.Info("Server exiting")
}
