package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectsphere/config"
	"connectsphere/core"
	"connectsphere/core/genesis"
	"connectsphere/observability/logging"
	"connectsphere/observability/tracing"
	"connectsphere/storage"
)

const genesisPathEnv = "CSP_GENESIS"

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	genesisFlag := flag.String("genesis", "", "Path to a genesis JSON file (overrides CSP_GENESIS and config GenesisFile)")
	allowMigrateFlag := flag.Bool("allow-migrate", false, "Allow starting with a mismatched state schema (manual migrations only)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger := logging.Setup("csphered", cfg.Environment, logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Traces {
		shutdown, err := tracing.Init(ctx, tracing.Config{
			ServiceName: "csphered",
			Environment: cfg.Environment,
			Endpoint:    cfg.Telemetry.Endpoint,
			Insecure:    cfg.Telemetry.Insecure,
			Headers:     tracing.ParseHeaders(cfg.Telemetry.Headers),
		})
		if err != nil {
			logger.Error("Failed to start tracing", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				logger.Warn("Trace flush failed", slog.Any("error", err))
			}
		}()
	}

	genesisPath := resolveGenesisPath(*genesisFlag, cfg.GenesisFile, os.LookupEnv)
	node, err := boot(cfg, genesisPath, *allowMigrateFlag, logger)
	if err != nil {
		logger.Error("Failed to start node", slog.Any("error", err))
		os.Exit(1)
	}
	defer node.Close()

	if err := serveOps(ctx, cfg.MetricsAddress, newOpsRouter(node), logger); err != nil {
		logger.Error("Ops server failed", slog.Any("error", err))
		return
	}
	logger.Info("Shutting down")
}

func resolveGenesisPath(flagValue, configValue string, lookup func(string) (string, bool)) string {
	if trimmed := strings.TrimSpace(flagValue); trimmed != "" {
		return trimmed
	}
	if value, ok := lookup(genesisPathEnv); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(configValue)
}

func openDatabase(cfg *config.Config) (storage.Database, error) {
	if cfg.Database == config.DatabaseMemory {
		return storage.NewMemDB(), nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("prepare data directory: %w", err)
	}
	if cfg.Database == config.DatabaseBolt {
		return storage.NewBoltDB(filepath.Join(cfg.DataDir, "state.db"))
	}
	return storage.NewLevelDB(cfg.DataDir)
}

// boot opens storage, builds the node and seeds genesis on first start.
func boot(cfg *config.Config, genesisPath string, allowMigrate bool, logger *slog.Logger) (*core.Node, error) {
	holding, err := cfg.HoldingAccount()
	if err != nil {
		return nil, err
	}
	escrow, err := cfg.EscrowAccount()
	if err != nil {
		return nil, err
	}
	maxSupply, err := cfg.MaxSupply()
	if err != nil {
		return nil, err
	}
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	node, err := core.NewNode(db, core.Options{
		HoldingAccount: holding,
		EscrowAccount:  escrow,
		MaxSupply:      maxSupply,
		Logger:         logger,
		AllowMigrate:   allowMigrate,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	applied, err := node.GenesisApplied()
	if err != nil {
		node.Close()
		return nil, err
	}
	if applied {
		logger.Info("Resuming from stored state", slog.String("dataDir", cfg.DataDir))
		return node, nil
	}
	if genesisPath == "" {
		node.Close()
		return nil, errors.New("no stored state and no genesis file configured")
	}
	spec, err := genesis.LoadGenesisSpec(genesisPath)
	if err != nil {
		node.Close()
		return nil, err
	}
	// Config fee params only seed state when the genesis file has none.
	if err := spec.DefaultRegistry(cfg.Registry.FeeBps, cfg.Registry.FeeRecipient); err != nil {
		node.Close()
		return nil, err
	}
	if err := node.InitGenesis(spec); err != nil {
		node.Close()
		return nil, fmt.Errorf("apply genesis: %w", err)
	}
	logger.Info("Genesis applied", slog.String("path", genesisPath))
	return node, nil
}
