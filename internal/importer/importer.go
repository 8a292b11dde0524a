// Package importer collects vCards from streams, mbox archives and CardDAV
// servers and stores them in a deck.
package importer

import (
	"io"

	"github.com/emersion/go-vcard"

	"github.com/emurenMRz/vdeck/internal/cardfix"
	"github.com/emurenMRz/vdeck/internal/contact"
	"github.com/emurenMRz/vdeck/internal/deck"
	"github.com/emurenMRz/vdeck/internal/logging"
)

// FromReader decodes every card of a vCard stream.
func FromReader(r io.Reader) ([]vcard.Card, error) {
	return contact.ReadCards(r)
}

// Report summarises an import.
type Report struct {
	Written []string
	Failed  int
	Fixes   []cardfix.ValidationResult
}

// Store normalises each card and writes it into d. A card that cannot be
// written is logged and counted; the rest are still stored.
func Store(d *deck.Deck, cards []vcard.Card) Report {
	log := logging.WithFields(logging.String("component", "importer"))

	var report Report
	for i, card := range cards {
		report.Fixes = append(report.Fixes, cardfix.Normalize(card, i)...)
		name, err := d.Write(card)
		if err != nil {
			log.Warn("Skipping card", logging.Int("card", i), logging.Err(err))
			report.Failed++
			continue
		}
		report.Written = append(report.Written, name)
	}
	log.Info("Import finished", logging.Int("written", len(report.Written)), logging.Int("failed", report.Failed))
	return report
}
