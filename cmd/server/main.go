package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	fuzzypath "github.com/baditaflorin/go_fuzzypath"
	"github.com/baditaflorin/go_fuzzypath/internal/adapters/logger"
	"github.com/baditaflorin/go_fuzzypath/internal/config"
	"github.com/baditaflorin/go_fuzzypath/internal/ports"
	"github.com/baditaflorin/go_fuzzypath/internal/warmup"
	"github.com/valyala/fasthttp"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to a TOML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	concurrency := flag.Int("concurrency", -1, "Maximum number of concurrent requests (0 = fasthttp default, overrides config)")
	warmUp := flag.Bool("warm-up", true, "Perform normalizer warm-up on startup")
	logFile := flag.String("log-file", "", "Log file path (overrides config, empty = stdout)")
	flag.Parse()

	cfg, fromFile, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *concurrency >= 0 {
		cfg.Server.Concurrency = *concurrency
	}
	if *logFile != "" {
		cfg.Logging.File = *logFile
	}
	cfg.WarmUp.Enabled = cfg.WarmUp.Enabled && *warmUp
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := createLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting fuzzypath HTTP server",
		"config_file", *configPath,
		"config_loaded", fromFile,
		"port", cfg.Server.Port,
		"read_timeout", cfg.Server.ReadTimeout(),
		"write_timeout", cfg.Server.WriteTimeout(),
		"max_request_size", cfg.Server.MaxRequestSize,
		"concurrency", cfg.Server.Concurrency,
	)

	if cfg.WarmUp.Enabled {
		runWarmUp(log, cfg.WarmUp)
	}

	srv := newServer(log, cfg.Server.MaxPaths)
	server := &fasthttp.Server{
		Handler:               srv.handle,
		Name:                  "FuzzyPathServer",
		ReadTimeout:           cfg.Server.ReadTimeout(),
		WriteTimeout:          cfg.Server.WriteTimeout(),
		MaxRequestBodySize:    cfg.Server.MaxRequestSize,
		Concurrency:           cfg.Server.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	log.Info("Server listening", "address", cfg.Server.Address())
	if err := server.ListenAndServe(cfg.Server.Address()); err != nil {
		log.Error("Server error", "error", err)
		return
	}

	<-idleConnsClosed
	log.Info("Server stopped")
}

// pathNormalizer normalizes through fuzzypath.New, so warming it up fills the
// buffer and case mapper pools that request handlers use.
type pathNormalizer struct{}

func (pathNormalizer) Normalize(text string) string {
	return fuzzypath.New(text).String()
}

// runWarmUp exercises the normalizer behind fuzzypath.New before the first
// request arrives.
func runWarmUp(log ports.Logger, cfg config.WarmUp) warmup.Report {
	wcfg := warmup.DefaultWarmupConfig()
	wcfg.Iterations = cfg.Iterations
	wcfg.Duration = cfg.Duration()
	if cfg.Concurrency > 0 {
		wcfg.Concurrency = cfg.Concurrency
	}

	manager := warmup.NewManager(log, wcfg)
	manager.RegisterNormalizer(pathNormalizer{})
	report := manager.WarmUp(context.Background())

	log.Info("Normalizers ready",
		"normalizations", report.Normalizations,
		"cpus", runtime.NumCPU(),
	)
	return report
}

// createLogger creates and configures a logger
func createLogger(cfg config.Logging) (ports.Logger, error) {
	lcfg := logger.DefaultConfig(os.Stdout)
	lcfg.JsonFormat = cfg.JSON
	lcfg.MaxFileSize = 100 * 1024 * 1024 // 100MB

	log, err := logger.NewFileStdLogger(cfg.File, lcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return log, nil
}
