package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/emersion/go-vcard"

	"github.com/emurenMRz/vdeck/internal/config"
	"github.com/emurenMRz/vdeck/internal/deck"
	"github.com/emurenMRz/vdeck/internal/importer"
	"github.com/emurenMRz/vdeck/internal/logging"
)

func main() {
	cfg := config.Load()

	var (
		deckDir  = flag.String("deck", cfg.DeckDir, "Deck directory to write cards into")
		mboxPath = flag.String("mbox", "", "Import vCard attachments from an mbox file")
		davURL   = flag.String("carddav", cfg.CardDAVURL, "Import every address book of a CardDAV account")
		logLevel = flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -deck DIR [-mbox FILE | -carddav URL] < cards.vcf\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	closer, err := logging.Init(*logLevel, cfg.LogFile, "vcfimport")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()
	defer logging.Sync()

	cfg.DeckDir = *deckDir
	cfg.CardDAVURL = *davURL
	if err := cfg.Validate(); err != nil {
		logging.Error("Invalid configuration", err)
		os.Exit(2)
	}
	if *mboxPath != "" && *davURL != "" {
		logging.Error("Use only one of -mbox and -carddav", nil)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cards, err := collect(ctx, cfg, *mboxPath)
	if err != nil {
		logging.Error("Import failed", err)
		os.Exit(1)
	}

	report := importer.Store(deck.New(cfg.DeckDir), cards)
	for _, name := range report.Written {
		fmt.Println(name)
	}
	if report.Failed > 0 {
		os.Exit(1)
	}
}

func collect(ctx context.Context, cfg *config.Config, mboxPath string) ([]vcard.Card, error) {
	switch {
	case mboxPath != "":
		f, err := os.Open(mboxPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return importer.FromMbox(f)
	case cfg.CardDAVURL != "":
		client, err := importer.NewCardDAVClient(cfg.CardDAVURL, cfg.CardDAVUser, cfg.CardDAVPassword, time.Minute)
		if err != nil {
			return nil, err
		}
		return importer.FromCardDAV(ctx, client)
	default:
		return importer.FromReader(os.Stdin)
	}
}
