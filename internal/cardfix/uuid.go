package cardfix

import (
	"encoding/binary"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"
)

// makeUUIDByRevision returns a UUIDv7 stamped with the card's REV, or a
// random UUIDv4 when the card has no usable revision.
func makeUUIDByRevision(card vcard.Card) string {
	if t, ok := ParseDate(card.Value(vcard.FieldRevision)); ok && t.Year() > 0 {
		if id, err := makeUUIDv7(t); err == nil {
			return id.String()
		}
	}
	return uuid.NewString()
}

// makeUUIDv7 generates a UUIDv7 whose 48-bit timestamp is t instead of now.
func makeUUIDv7(t time.Time) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(t.UnixMilli())<<16)
	copy(id[0:6], ts[0:6])
	return id, nil
}
