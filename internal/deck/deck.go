// Package deck reads and writes a directory tree of vCard files.
package deck

import (
	"bytes"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/emersion/go-vcard"

	"github.com/emurenMRz/vdeck/internal/contact"
	apperrors "github.com/emurenMRz/vdeck/internal/errors"
	"github.com/emurenMRz/vdeck/internal/logging"
)

// Ext is the file extension of cards in a deck.
const Ext = ".vcf"

// Deck is a directory of vCard files. Card names are slash-separated paths
// relative to the directory root.
type Deck struct {
	root string
	log  logging.Logger
}

// Entry is a loaded card together with its name in the deck.
type Entry struct {
	Name   string
	Detail *contact.Detail
}

// New returns a deck rooted at dir.
func New(dir string) *Deck {
	root, err := filepath.Abs(dir)
	if err != nil {
		root = filepath.Clean(dir)
	}
	return &Deck{
		root: root,
		log:  logging.WithFields(logging.String("component", "deck"), logging.String("root", dir)),
	}
}

// Root returns the deck directory.
func (d *Deck) Root() string {
	return d.root
}

// Load walks the deck and decodes every card, ordered by name. Files that
// cannot be read or decoded are logged and skipped.
func (d *Deck) Load() ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(d.root, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			d.log.Warn("Cannot walk path", logging.String("path", p), logging.Err(err))
			if de != nil && de.IsDir() && p != d.root {
				return filepath.SkipDir
			}
			return nil
		}
		if p != d.root && strings.HasPrefix(de.Name(), ".") {
			if de.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if de.IsDir() || !strings.EqualFold(filepath.Ext(p), Ext) {
			return nil
		}

		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return nil
		}
		name := filepath.ToSlash(rel)
		if de.Type()&fs.ModeSymlink != 0 {
			if p, err = d.resolve(name); err != nil {
				d.log.Warn("Skipping card link", logging.String("name", name), logging.Err(err))
				return nil
			}
		}

		card, err := d.readCard(p)
		if err != nil {
			d.log.Warn("Skipping unreadable card", logging.String("name", name), logging.Err(err))
			return nil
		}
		entries = append(entries, Entry{Name: name, Detail: contact.FromCard(card)})
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError("walk deck", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Rows loads the deck as list rows.
func (d *Deck) Rows() ([]contact.Row, error) {
	entries, err := d.Load()
	if err != nil {
		return nil, err
	}
	rows := make([]contact.Row, len(entries))
	for i, e := range entries {
		rows[i] = e.Detail.Row(e.Name)
	}
	return rows, nil
}

// Raw returns the stored bytes of the named card.
func (d *Deck) Raw(name string) ([]byte, error) {
	p, err := d.resolve(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFoundError("card " + name)
		}
		return nil, apperrors.InternalError("read card", err).WithContext("name", name)
	}
	return b, nil
}

// Open decodes the named card.
func (d *Deck) Open(name string) (vcard.Card, error) {
	b, err := d.Raw(name)
	if err != nil {
		return nil, err
	}
	card, err := contact.ReadCard(bytes.NewReader(b))
	if err != nil {
		appErr := apperrors.ValidationError("card cannot be decoded").WithContext("name", name)
		appErr.Cause = err
		return nil, appErr
	}
	return card, nil
}

// Detail returns the structured form of the named card.
func (d *Deck) Detail(name string) (*contact.Detail, error) {
	card, err := d.Open(name)
	if err != nil {
		return nil, err
	}
	return contact.FromCard(card), nil
}

// resolve maps a card name to a file inside the deck. Names that would
// escape it are invalid. Hidden entries, non-card files and symlinks that
// lead out of the deck are reported as missing.
func (d *Deck) resolve(name string) (string, error) {
	if name == "" || strings.ContainsRune(name, 0) || strings.Contains(name, `\`) {
		return "", apperrors.ValidationError("invalid card name").WithContext("name", name)
	}
	if path.IsAbs(name) {
		return "", apperrors.ValidationError("card name must be relative").WithContext("name", name)
	}
	for _, seg := range strings.Split(name, "/") {
		switch {
		case seg == "." || seg == "..":
			return "", apperrors.ValidationError("card name escapes the deck").WithContext("name", name)
		case strings.HasPrefix(seg, "."):
			return "", apperrors.NotFoundError("card " + name)
		}
	}
	if !strings.EqualFold(path.Ext(name), Ext) {
		return "", apperrors.NotFoundError("card " + name)
	}

	p := filepath.Join(d.root, filepath.FromSlash(path.Clean(name)))
	if !within(d.root, p) {
		return "", apperrors.ValidationError("card name escapes the deck").WithContext("name", name)
	}

	target, err := filepath.EvalSymlinks(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NotFoundError("card " + name)
		}
		return "", apperrors.InternalError("resolve card", err).WithContext("name", name)
	}
	root, err := filepath.EvalSymlinks(d.root)
	if err != nil {
		return "", apperrors.InternalError("resolve deck root", err)
	}
	if !within(root, target) {
		d.log.Warn("Card link leads out of the deck", logging.String("name", name))
		return "", apperrors.NotFoundError("card " + name)
	}
	return target, nil
}

func within(root, p string) bool {
	return strings.HasPrefix(p, root+string(filepath.Separator))
}

func (d *Deck) readCard(p string) (vcard.Card, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return contact.ReadCard(f)
}
