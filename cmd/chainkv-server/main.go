package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lojhan/chainkv/internal/command"
	"github.com/lojhan/chainkv/internal/config"
	"github.com/lojhan/chainkv/internal/hashtable"
	"github.com/lojhan/chainkv/internal/server"
	"github.com/lojhan/chainkv/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chainkv-server: %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	configFile := flag.String("config", "", "Path to a TOML config file")
	addr := flag.String("addr", "", "Address to listen on (overrides config)")
	onDuplicate := flag.String("on-duplicate", "", "Duplicate key policy: append, overwrite (overrides config)")
	logLevel := flag.String("log-level", "", "Log level (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *onDuplicate != "" {
		cfg.Table.OnDuplicate = *onDuplicate
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := cfg.Log.Build()
	if err != nil {
		return err
	}
	defer func() {
		// stdout cannot always be synced; only report file sink failures
		if syncErr := logger.Sync(); syncErr != nil && cfg.Log.Filename != "" {
			err = multierr.Append(err, syncErr)
		}
	}()

	tableOpts, err := cfg.TableOptions()
	if err != nil {
		return err
	}
	dataStore := store.NewStore(append(tableOpts, hashtable.WithLogger(logger.Named("hashtable")))...)

	srv := server.NewServer(logger, cfg.Server.Multicore)

	srv.RegisterCommand("PING", command.PingCommand)
	srv.RegisterCommand("ECHO", command.EchoCommand)
	srv.RegisterCommand("COMMAND", command.CommandCommand)
	srv.RegisterCommand("INFO", command.InfoCommand(dataStore))

	srv.RegisterCommand("SET", command.SetCommand(dataStore))
	srv.RegisterCommand("GET", command.GetCommand(dataStore))
	srv.RegisterCommand("DEL", command.DelCommand(dataStore))
	srv.RegisterCommand("EXISTS", command.ExistsCommand(dataStore))

	srv.RegisterCommand("DBSIZE", command.DBSizeCommand(dataStore))
	srv.RegisterCommand("KEYS", command.KeysCommand(dataStore))
	srv.RegisterCommand("HASHSLOT", command.HashSlotCommand(dataStore))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting chainkv server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("on-duplicate", cfg.Table.OnDuplicate),
			zap.Bool("strict-lookup", cfg.Table.StrictLookup))
		return srv.Start(cfg.Server.Addr)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")

		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(stopCtx); err != nil && !errors.Is(err, server.ErrNotRunning) {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
