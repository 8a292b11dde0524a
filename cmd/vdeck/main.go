package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emurenMRz/vdeck/internal/browser"
	"github.com/emurenMRz/vdeck/internal/config"
	"github.com/emurenMRz/vdeck/internal/logging"
	"github.com/emurenMRz/vdeck/internal/tui"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "vdeckd base URL")
	flag.BoolVar(&cfg.RawViewer, "raw-viewer", cfg.RawViewer, "open the raw vCard from the filename column")
	flag.BoolVar(&cfg.Editor, "editor", cfg.Editor, "open the contact editor on row activation")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flag.Parse()

	// The terminal belongs to the UI, so logs always go to a file.
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(os.TempDir(), "vdeck.log")
	}
	closer, err := logging.Init(cfg.LogLevel, cfg.LogFile, "vdeck")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()
	defer logging.Sync()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	endpoints, err := browser.NewEndpoints(cfg.BaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.New("vdeck " + cfg.BaseURL)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	sched := tui.NewScheduler(program)

	b, err := browser.Initialize(ctx, model.Document(), endpoints,
		browser.WithScheduler(sched),
		browser.WithRawViewer(cfg.RawViewer),
		browser.WithEditor(cfg.Editor),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	model.Attach(b)

	_, err = program.Run()
	sched.Stop()
	b.Close()
	if err != nil {
		logging.Error("Terminal UI failed", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
