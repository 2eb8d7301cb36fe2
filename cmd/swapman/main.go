package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"swapman/internal/activity"
	"swapman/internal/common/fsutil"
	"swapman/internal/config"
	"swapman/internal/httpapi"
	"swapman/internal/manager"
	"swapman/internal/store"
	"swapman/internal/upstream"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Flags with environment variable defaults
	addr := flag.String("addr", envOr("SWAPMAN_ADDR", ":8000"), "HTTP listen address, e.g. :8000")
	configFile := flag.String("config", "", "Optional settings file (.yaml/.json/.toml); overrides individual flags")
	swapURL := flag.String("swap-url", envOr("LLAMA_SWAP_URL", "http://localhost:8090"), "Base URL of the llama-swap service")
	modelsDir := flag.String("models-dir", envOr("MODELS_PATH", "./models"), "Directory holding *.gguf model files")
	configPath := flag.String("config-path", envOr("CONFIG_PATH", "./config.yaml"), "Path of the llama-swap config file to manage")
	dataDir := flag.String("data-dir", envOr("DATA_DIR", "./data"), "Directory for config backups")
	maxUpload := flag.Int64("max-upload-bytes", 50_000_000_000, "Upload size ceiling in bytes")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("component", "swapman").Logger()

	settings := config.Settings{
		Addr:           *addr,
		SwapURL:        *swapURL,
		ModelsDir:      *modelsDir,
		ConfigPath:     *configPath,
		DataDir:        *dataDir,
		MaxUploadBytes: *maxUpload,
	}
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *configFile).Msg("loading settings file")
		}
		if loaded.Addr != "" {
			settings.Addr = loaded.Addr
		}
		if loaded.SwapURL != "" {
			settings.SwapURL = loaded.SwapURL
		}
		if loaded.ModelsDir != "" {
			settings.ModelsDir = loaded.ModelsDir
		}
		if loaded.ConfigPath != "" {
			settings.ConfigPath = loaded.ConfigPath
		}
		if loaded.DataDir != "" {
			settings.DataDir = loaded.DataDir
		}
		if loaded.MaxUploadBytes > 0 {
			settings.MaxUploadBytes = loaded.MaxUploadBytes
		}
	}
	for _, p := range []*string{&settings.ModelsDir, &settings.ConfigPath, &settings.DataDir} {
		expanded, err := fsutil.ExpandHome(*p)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *p).Msg("expanding path")
		}
		*p = expanded
	}

	for _, dir := range []string{settings.ModelsDir, settings.DataDir, settings.BackupDir()} {
		if err := fsutil.EnsureDir(dir); err != nil {
			logger.Fatal().Err(err).Str("dir", dir).Msg("creating directory")
		}
	}

	act := activity.New(logger)
	st := store.New(settings.ConfigPath, settings.BackupDir(), logger, act)
	up := upstream.New(settings.SwapURL, 5*time.Second, 30*time.Second)
	mgr := manager.New(settings, st, up, act, logger)

	httpapi.SetLogger(logger)
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(mgr)
	srv := &http.Server{Addr: settings.Addr, Handler: mux}

	go func() {
		logger.Info().
			Str("addr", settings.Addr).
			Str("swap_url", settings.SwapURL).
			Str("config_path", settings.ConfigPath).
			Str("models_dir", settings.ModelsDir).
			Msg("swapman listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}
