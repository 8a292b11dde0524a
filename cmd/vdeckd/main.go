package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/emurenMRz/vdeck/internal/config"
	"github.com/emurenMRz/vdeck/internal/deck"
	"github.com/emurenMRz/vdeck/internal/logging"
	"github.com/emurenMRz/vdeck/internal/server"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.DeckDir, "path", cfg.DeckDir, "path to vCard files")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "static files directory, empty to disable")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.Parse()

	closer, err := logging.Init(cfg.LogLevel, cfg.LogFile, "vdeckd")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()
	defer logging.Sync()

	if err := cfg.Validate(); err != nil {
		logging.Error("Invalid configuration", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(deck.New(cfg.DeckDir), server.Options{StaticDir: cfg.StaticDir})
	if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
		logging.Error("Server stopped", err)
		os.Exit(1)
	}
}
