package browser

import (
	"sync/atomic"

	"github.com/emurenMRz/vdeck/internal/logging"
)

// RawCardViewer shows the unparsed vCard of a filename cell in a dialog.
type RawCardViewer struct {
	dialog    TextDialog
	endpoints Endpoints
	fetcher   *Fetcher
	log       logging.Logger

	gen atomic.Uint64
}

func NewRawCardViewer(dialog TextDialog, endpoints Endpoints, fetcher *Fetcher, log logging.Logger) *RawCardViewer {
	return &RawCardViewer{dialog: dialog, endpoints: endpoints, fetcher: fetcher, log: log}
}

// HandleCell reacts to activations of the filename column; the cell content
// is the filename.
func (v *RawCardViewer) HandleCell(ev CellEvent) {
	if ev.Column != ColFilename {
		return
	}
	v.Show(ev.Content)
}

// Show fetches the raw card and opens the dialog with its text. Only the
// latest request is applied; on failure the dialog is left untouched.
func (v *RawCardViewer) Show(filename string) {
	gen := v.gen.Add(1)
	url := v.endpoints.RawURL(filename)

	v.fetcher.Get(url, func(body []byte, err error) {
		if err != nil {
			v.log.Debug("Raw card request failed", logging.String("filename", filename), logging.Err(err))
			return
		}
		if cur := v.gen.Load(); cur != gen {
			v.log.Debug("Dropping superseded raw card", logging.String("filename", filename), logging.Uint64("generation", gen))
			return
		}
		v.dialog.SetText(string(body))
		v.dialog.Open()
	})
}

// Close hides the dialog.
func (v *RawCardViewer) Close() {
	v.dialog.Close()
}
