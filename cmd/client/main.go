package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/smashmate/smashmate/pkg/api"
	"github.com/smashmate/smashmate/pkg/config"
	"github.com/smashmate/smashmate/pkg/crypto"
	"github.com/smashmate/smashmate/pkg/logging"
	"github.com/smashmate/smashmate/pkg/session"
	"github.com/smashmate/smashmate/pkg/store"
	"github.com/smashmate/smashmate/pkg/version"
	"github.com/smashmate/smashmate/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "smashmate:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real env vars win over it.
	_ = godotenv.Load()

	var (
		configPath  = flag.String("config", "", "path to config.yaml (default <data-dir>/config.yaml)")
		logLevel    = flag.String("log-level", envOr("SMASHMATE_LOG_LEVEL", "info"), "debug, info, warn, error")
		logFormat   = flag.String("log-format", envOr("SMASHMATE_LOG_FORMAT", "text"), "text or json")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("smashmate", version.String())
		return nil
	}

	if err := logging.Setup(logging.Options{Level: *logLevel, Format: *logFormat}); err != nil {
		return err
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}
	path := *configPath
	if path == "" {
		path = filepath.Join(dataDir, "config.yaml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cfg.DataDir != "" {
		dataDir = cfg.DataDir
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	slog.Info("client starting", "version", version.String(), "api", cfg.APIURL, "data", dataDir)

	key, err := crypto.LoadOrCreateKey(filepath.Join(dataDir, "credentials.key"))
	if err != nil {
		return fmt.Errorf("load credential key: %w", err)
	}
	creds, err := store.New(filepath.Join(dataDir, "smashmate.db"), key)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer func() {
		if err := creds.Close(); err != nil {
			slog.Warn("closing credential store", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.New(cfg.APIURL, cfg.RequestTimeout.Duration)
	sess := session.NewManager(client, creds)
	if err := sess.Initialize(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	app := ui.New(sess, client, os.Stdin, os.Stdout,
		cfg.PollInterval.Duration, cfg.SearchDebounce.Duration)
	return app.Run(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func resolveDataDir() (string, error) {
	if v := os.Getenv("SMASHMATE_DATA_DIR"); v != "" {
		return v, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(base, "smashmate"), nil
}
