package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"ethereum_server/internal/app/service"
	"ethereum_server/internal/domain/entity"
	"ethereum_server/internal/infrastructure/configloader"
	clientprovider "ethereum_server/internal/infrastructure/network/client"
	"ethereum_server/internal/infrastructure/serverstore"
	"ethereum_server/internal/pkg/logger"
	"ethereum_server/internal/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	timeout    time.Duration
	all        bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "checker [server-id...]",
		Short: "Check connectivity of configured Ethereum servers",
		Long: "Validates that each server answers net_version and reports its declared network.\n" +
			"Without arguments every enabled server is checked.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", utils.GetEnv("CONFIG_PATH", "config/config.yml"), "path to the YAML configuration file")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "overall timeout for the run (0 means no limit)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "include disabled servers")
	return cmd
}

func run(ctx context.Context, out io.Writer, opts *options, ids []string) error {
	logrus.SetOutput(io.Discard) // вывод CLI не засоряем логами загрузки конфига
	cfg, err := configloader.Load(opts.configPath)
	if err != nil {
		return err
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return err
	}
	defer zapLogger.Sync() //nolint:errcheck
	logger.InitSlogLeveled(zapLogger, logger.SlogLevel(cfg.Logging.Level))
	appLogger := logger.NewSlogAdapter()

	store, err := serverstore.NewYAMLStore(cfg.Ethereum.ServersFile, appLogger.Debug)
	if err != nil {
		return err
	}

	records, err := selectServers(store, ids)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	checker := service.NewConnectivityService(clientprovider.NewEVMDialer(cfg, appLogger.Debug), appLogger, cfg)
	results := checker.ValidateAll(ctx, records, opts.all || len(ids) > 0)
	return report(out, results, cfg.Ethereum.CurrentServer)
}

func selectServers(store *serverstore.YAMLStore, ids []string) ([]entity.ServerRecord, error) {
	if len(ids) == 0 {
		return store.List(), nil
	}
	records := make([]entity.ServerRecord, 0, len(ids))
	for _, id := range ids {
		r, err := store.Get(id)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func report(out io.Writer, results []entity.ValidationResult, currentDefaultID string) error {
	failed := 0
	for _, r := range results {
		status := "OK  "
		if r.Error {
			status = "FAIL"
			failed++
		}
		marker := ""
		if r.ServerID == currentDefaultID {
			marker = " (default)"
		}
		fmt.Fprintf(out, "%s %s%s: %s\n", status, r.ServerID, marker, r.Message)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d servers failed validation", failed, len(results))
	}
	return nil
}
