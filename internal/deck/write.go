package deck

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-vcard"

	apperrors "github.com/emurenMRz/vdeck/internal/errors"
	"github.com/emurenMRz/vdeck/internal/logging"
)

const uuidURN = "urn:uuid:"

// NameFor returns the file name a card is stored under: its UID with any
// urn:uuid: prefix removed and unsafe characters replaced.
func NameFor(card vcard.Card) (string, error) {
	uid := strings.TrimSpace(card.Value(vcard.FieldUID))
	if len(uid) >= len(uuidURN) && strings.EqualFold(uid[:len(uuidURN)], uuidURN) {
		uid = uid[len(uuidURN):]
	}
	if uid == "" {
		return "", apperrors.ValidationError("card has no UID")
	}

	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.', r == '@':
			return r
		default:
			return '_'
		}
	}, uid)
	name = strings.Trim(name, ".")
	if name == "" {
		return "", apperrors.ValidationError("card UID has no usable characters").WithContext("uid", uid)
	}
	return name + Ext, nil
}

// Write stores card in the deck root under NameFor(card), replacing any card
// of the same name. The file is written to a temporary file first and then
// renamed into place.
func (d *Deck) Write(card vcard.Card) (string, error) {
	name, err := NameFor(card)
	if err != nil {
		return "", err
	}
	if card.Get(vcard.FieldVersion) == nil {
		return "", apperrors.ValidationError("card has no VERSION").WithContext("name", name)
	}

	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return "", apperrors.InternalError("create deck directory", err)
	}

	tempFile, err := os.CreateTemp(d.root, "vdeck-write-*.tmp")
	if err != nil {
		return "", apperrors.InternalError("create temp file", err)
	}
	defer os.Remove(tempFile.Name())
	defer tempFile.Close()

	if err := vcard.NewEncoder(tempFile).Encode(card); err != nil {
		return "", apperrors.InternalError("encode card", err).WithContext("name", name)
	}
	if err := tempFile.Close(); err != nil {
		return "", apperrors.InternalError("close temp file", err)
	}
	if err := os.Rename(tempFile.Name(), filepath.Join(d.root, name)); err != nil {
		return "", apperrors.InternalError("replace card", err).WithContext("name", name)
	}

	d.log.Debug("Card written", logging.String("name", name))
	return name, nil
}
