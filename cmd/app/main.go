package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vantol/PackForge_Go/internal/bootstrap"
	"github.com/vantol/PackForge_Go/internal/catalog"
	"github.com/vantol/PackForge_Go/internal/chain"
	"github.com/vantol/PackForge_Go/internal/config"
	"github.com/vantol/PackForge_Go/internal/database"
	"github.com/vantol/PackForge_Go/internal/fulfillment"
	"github.com/vantol/PackForge_Go/internal/handler"
	"github.com/vantol/PackForge_Go/internal/ledger"
	"github.com/vantol/PackForge_Go/internal/lottery"
	"github.com/vantol/PackForge_Go/internal/pack"
	"github.com/vantol/PackForge_Go/internal/scheduler"
	"github.com/vantol/PackForge_Go/internal/server"
	"github.com/vantol/PackForge_Go/internal/wallet"
	"github.com/vantol/PackForge_Go/internal/worker"
)

const (
	// WorkerPoolSize is the number of goroutines dispatching event handlers
	WorkerPoolSize = 4

	// WorkerQueueSize bounds the dispatch backlog before events are dropped
	WorkerQueueSize = 256

	// ShutdownTimeout bounds how long graceful shutdown may take
	ShutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg, handler.Version)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	ctx := context.Background()

	// Catalog is immutable after boot; a bad catalog is a startup failure
	catalogCfg, err := catalog.NewLoader().Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("Catalog load failed", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	index, err := catalog.NewIndex(catalogCfg)
	if err != nil {
		slog.Error("Catalog index failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded", "path", cfg.CatalogPath, "cards", index.Size())

	// Storage backend
	var (
		repos  *bootstrap.Repositories
		dbPool database.Pool
	)
	if cfg.LedgerBackend == config.LedgerBackendPostgres {
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(),
			config.DefaultDBMaxConns, config.DefaultDBMaxIdleTime, config.DefaultDBMaxLifetime)
		if err != nil {
			slog.Error("Database connection failed", "error", err)
			os.Exit(1)
		}
		repos = bootstrap.InitializePostgresRepositories(pool)
		dbPool = pool
	} else {
		slog.Warn("Running with in-memory storage; nothing survives a restart")
		repos = bootstrap.InitializeMemoryRepositories()
	}

	// Worker pool and event system
	workerPool := worker.NewPool(WorkerPoolSize, WorkerQueueSize)
	workerPool.Start()

	_, publisher, err := bootstrap.InitializeEventSystem(cfg, workerPool)
	if err != nil {
		slog.Error("Event system setup failed", "error", err)
		os.Exit(1)
	}
	bootstrap.RegisterEventHandlers(publisher)

	// Core services
	ledgerService := ledger.NewService(repos.Ledger)
	lotteryService := lottery.NewService(index, ledgerService)
	assembler := pack.NewAssembler(lotteryService, ledgerService)
	walletService := wallet.NewServiceWithCache(repos.Wallet, wallet.DefaultCacheSize, wallet.DefaultCacheTTL)

	// On-chain fulfillment listener
	var sched *scheduler.Scheduler
	if cfg.ListenerEnabled() {
		if cfg.LedgerBackend != config.LedgerBackendPostgres {
			slog.Warn("Fulfillment listener disabled: requires the postgres backend so purchases survive restarts")
		} else {
			chainClient, err := chain.NewRPCClient(cfg.ChainRPCURL, cfg.NetworkID, cfg.ContractAddress)
			if err != nil {
				slog.Error("Chain client setup failed", "error", err)
				os.Exit(1)
			}

			listener := fulfillment.NewService(chainClient, assembler, walletService,
				repos.Purchase, repos.Cursor, publisher, fulfillment.Config{
					NetworkID:       cfg.NetworkID,
					ContractAddress: cfg.ContractAddress,
					ChunkSize:       cfg.ChunkSize,
					LookbackWindow:  cfg.LookbackWindow,
					MintTimeout:     cfg.MintTimeout,
					MintMaxRetries:  cfg.MintMaxRetries,
				})

			sched = scheduler.New(workerPool)
			sched.Schedule(cfg.PollInterval, worker.JobFunc(listener.Poll))
			slog.Info("Fulfillment listener scheduled",
				"rpc_url", cfg.ChainRPCURL,
				"network_id", cfg.NetworkID,
				"contract", cfg.ContractAddress,
				"poll_interval", cfg.PollInterval)
		}
	} else {
		slog.Info("Fulfillment listener disabled: CHAIN_RPC_URL or CONTRACT_ADDRESS not set")
	}

	handler.InitValidator()
	srv := server.NewServer(cfg.Port, cfg.APIKey, dbPool, index, assembler,
		ledgerService, walletService, repos.Purchase, publisher)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()
	slog.Info("Server started", "port", cfg.Port)

	// Block until shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		Scheduler:  sched,
		WorkerPool: workerPool,
		DBPool:     dbPool,
	})
}
