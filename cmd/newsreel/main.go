package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/umputun/newsreel/pkg/aggregator"
	"github.com/umputun/newsreel/pkg/config"
	"github.com/umputun/newsreel/pkg/feed"
	"github.com/umputun/newsreel/pkg/repository"
	"github.com/umputun/newsreel/pkg/scheduler"
	"github.com/umputun/newsreel/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults only if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB     string `long:"db" env:"DB_DSN" description:"database dsn, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Quiet   bool `short:"q" long:"quiet" description:"discard log output"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	// optional .env file, real environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "can't load .env: %v\n", err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.Quiet {
		setupQuietLog()
	} else {
		setupLog(opts.Debug, opts.NoColor)
	}

	log.Printf("[INFO] starting newsreel version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires registry, fetcher, aggregator, scheduler and http server, and blocks until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	seeded, err := repos.Source.SeedSources(ctx, cfg.SeedSources())
	if err != nil {
		return fmt.Errorf("failed to seed sources: %w", err)
	}
	if seeded > 0 {
		log.Printf("[INFO] seeded %d sources from config", seeded)
	}

	agg := aggregator.New(aggregator.Config{
		Registry:   repos.Source,
		Fetcher:    feed.NewFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent),
		Limit:      cfg.Aggregation.Limit,
		MaxWorkers: cfg.Fetch.MaxWorkers,
		Health:     aggregator.HealthPolicy{StaleAfter: cfg.Aggregation.StaleAfter},
	})

	sched := scheduler.NewScheduler(scheduler.Params{
		Aggregator:     agg,
		UpdateInterval: cfg.Aggregation.UpdateInterval,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Sources:         repos.Source,
		Settings:        repos.Setting,
		Aggregator:      agg,
		Scheduler:       sched,
		Listen:          cfg.Server.Listen,
		Timeout:         cfg.Server.Timeout,
		BaseURL:         cfg.Server.BaseURL,
		DisplayDefaults: cfg.DisplaySettings(),
		Version:         revision,
		Debug:           opts.Debug,
	})

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file if set and applies cli overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	return cfg, nil
}

func setupLog(dbg, noColor bool) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

// setupQuietLog discards all log output
func setupQuietLog() {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
