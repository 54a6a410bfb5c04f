// Package main provides the interactive MP3 player entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/app/console"
	"github.com/osa030/tunebox/internal/app/library"
	"github.com/osa030/tunebox/internal/app/menu"
	"github.com/osa030/tunebox/internal/app/playback"
	"github.com/osa030/tunebox/internal/app/session"
	"github.com/osa030/tunebox/internal/infra/audio"
	"github.com/osa030/tunebox/internal/infra/config"
	"github.com/osa030/tunebox/internal/infra/logger"
)

var (
	app        = kingpin.New("tunebox", "Interactive MP3 player")
	configPath = app.Flag("config", "Path to config file (optional)").String()
	dir        = app.Flag("dir", "Music directory (overrides config)").String()
	driver     = app.Flag("driver", "Audio driver: speaker or null (overrides config)").Enum("speaker", "null")
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// list command
	listCmd = app.Command("list", "List playable tracks and exit")
)

func init() {
	// play command (default)
	app.Command("play", "Play tracks interactively (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dir != "" {
		cfg.Library.Dir = *dir
	}
	if *driver != "" {
		cfg.Audio.Driver = *driver
	}

	loggerConfig := logger.Config{
		Output: "stderr",
		Level:  cfg.Log.Level,
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	logCloser, err := logger.Init(loggerConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logCloser.Close()

	zlog.Debug().Msgf("config: %+v", *cfg)

	con := console.New(os.Stdin, os.Stdout)
	scanner := library.NewScanner(cfg.Library.Dir, cfg.Library.Extension)

	if command == listCmd.FullCommand() {
		if err := menu.New(scanner, nil, con).List(); err != nil {
			logCloser.Close()
			os.Exit(1)
		}
		return
	}

	manager := session.NewManager(openEngine(cfg), scanner, con, playback.Config{
		TickInterval: cfg.TickInterval(),
	})

	// The manager closes the engine before run returns, so os.Exit below is safe.
	if err := run(manager, logCloser); err != nil {
		zlog.Debug().Msgf("player exited with error: %v", err)
		logCloser.Close()
		os.Exit(1)
	}
}

// openEngine returns the opener for the configured audio driver.
func openEngine(cfg *config.Config) session.Opener {
	return func() (session.Engine, error) {
		engine, err := audio.Open(cfg.Audio.Driver, cfg.Audio.Settings)
		if err != nil {
			return nil, err
		}
		return engine, nil
	}
}

// run drives the session and releases the engine on SIGINT/SIGTERM.
func run(manager *session.Manager, logCloser io.Closer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A blocked prompt cannot observe ctx, so release everything here and exit.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go waitForSignal(sigCh, cancel, manager.Close, logCloser, os.Exit)

	return manager.Run(ctx)
}

// waitForSignal releases the engine, then the log file, and exits with 130.
func waitForSignal(sigCh <-chan os.Signal, cancel context.CancelFunc, release func(), logCloser io.Closer, exit func(int)) {
	sig := <-sigCh
	zlog.Info().Msgf("received signal: %v", sig)
	cancel()
	release()
	fmt.Println()
	if err := logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close log: %v\n", err)
	}
	exit(130)
}
