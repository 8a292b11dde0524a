package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/emersion/go-vcard"

	"github.com/emurenMRz/vdeck/internal/cardfix"
	"github.com/emurenMRz/vdeck/internal/config"
	"github.com/emurenMRz/vdeck/internal/contact"
	"github.com/emurenMRz/vdeck/internal/logging"
)

func main() {
	cfg := config.Load()

	var (
		mode      = flag.String("mode", "validate", "Operation mode: validate, fix, show")
		inplace   = flag.Bool("inplace", false, "Modify input file in-place (for fix mode)")
		outPath   = flag.String("out", "", "Output file path (for fix mode)")
		dryRun    = flag.Bool("dry-run", false, "Simulate fix operation without writing (for fix mode)")
		quiet     = flag.Bool("quiet", false, "Suppress non-error output (for fix mode)")
		cardIndex = flag.Int("card", -1, "Card index (for show mode)")
		inputPath = flag.String("path", "", "Input vCard file path (required)")
		logLevel  = flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	)
	flag.Parse()

	closer, err := logging.Init(*logLevel, cfg.LogFile, "vcffix")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()
	defer logging.Sync()

	if *inputPath == "" {
		fatal("-path is required", nil)
	}

	cards, err := readCards(*inputPath)
	if err != nil {
		fatal("Failed to read vCard file", err, logging.String("path", *inputPath))
	}

	switch *mode {
	case "validate":
		validateCards(cards)
	case "fix":
		fixCards(cards, *inputPath, *inplace, *outPath, *dryRun, *quiet)
	case "show":
		showCard(cards, *cardIndex)
	default:
		fatal("Unknown mode. Use validate, fix, or show", nil, logging.String("mode", *mode))
	}
}

func fatal(msg string, err error, fields ...logging.Field) {
	logging.Error(msg, err, fields...)
	logging.Sync()
	os.Exit(1)
}

func readCards(path string) ([]vcard.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return contact.ReadCards(f)
}

func validateCards(cards []vcard.Card) {
	var allResults []cardfix.ValidationResult
	for i, card := range cards {
		allResults = append(allResults, cardfix.Validate(card, i)...)
	}
	outputText(os.Stdout, allResults)
}

func fixCards(cards []vcard.Card, inputPath string, inplace bool, outPath string, dryRun, quiet bool) {
	var allResults []cardfix.ValidationResult
	for i, card := range cards {
		allResults = append(allResults, cardfix.Normalize(card, i)...)
	}

	if !quiet {
		outputText(os.Stderr, allResults)
	}
	if dryRun {
		return
	}

	switch {
	case inplace:
		if err := writeCardsToFile(cards, inputPath); err != nil {
			fatal("Error writing input file", err, logging.String("path", inputPath))
		}
	case outPath != "":
		if err := writeCardsToFile(cards, outPath); err != nil {
			fatal("Error writing output file", err, logging.String("path", outPath))
		}
	default:
		if err := writeCards(os.Stdout, cards); err != nil {
			fatal("Error writing cards", err)
		}
	}
}

func showCard(cards []vcard.Card, cardIndex int) {
	if cardIndex < 0 || cardIndex >= len(cards) {
		fatal("Invalid card index", nil, logging.Int("card", cardIndex), logging.Int("cards", len(cards)))
	}

	fmt.Printf("Card %d:\n", cardIndex)
	for _, line := range cardfix.Lines(cards[cardIndex]) {
		fmt.Println("  " + line.String())
	}
}

func writeCards(w io.Writer, cards []vcard.Card) error {
	enc := vcard.NewEncoder(w)
	for _, card := range cards {
		if err := enc.Encode(card); err != nil {
			return err
		}
	}
	return nil
}

// writeCardsToFile replaces path through a temporary file in the same
// directory.
func writeCardsToFile(cards []vcard.Card, path string) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), "vcffix-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if err := writeCards(tempFile, cards); err != nil {
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	return os.Rename(tempFile.Name(), path)
}

func outputText(w io.Writer, results []cardfix.ValidationResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No validation errors found.")
		return
	}

	for _, result := range results {
		switch result.Status {
		case cardfix.StatusMissing:
			fmt.Fprintf(w, "Card %d: %s is missing\n", result.CardIndex, result.Field)
		case cardfix.StatusInvalid:
			fmt.Fprintf(w, "Card %d: %s is invalid (%s)\n", result.CardIndex, result.Field, result.Detail)
		case cardfix.StatusFixed:
			fmt.Fprintf(w, "Card %d: %s fixed (%s)\n", result.CardIndex, result.Field, result.Detail)
		}
	}
}
