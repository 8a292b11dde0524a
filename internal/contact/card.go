// Package contact holds the list and detail representations of a vCard and the
// conversion from decoded cards.
package contact

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-vcard"
)

// FromCard builds the structured form of a decoded card.
func FromCard(card vcard.Card) *Detail {
	d := &Detail{
		FullName:   card.Value(vcard.FieldFormattedName),
		NickName:   card.Value(vcard.FieldNickname),
		Birthday:   card.Value(vcard.FieldBirthday),
		Categories: card.Value(vcard.FieldCategories),
		Uid:        card.Value(vcard.FieldUID),
		Url:        card.Value(vcard.FieldURL),
	}

	if name := card.Name(); name != nil {
		d.Name = Name{GivenName: name.GivenName, FamilyName: name.FamilyName}
	}

	for _, addr := range card.Addresses() {
		d.Address = append(d.Address, Address{
			POBox:        addr.PostOfficeBox,
			ExtendedAddr: addr.ExtendedAddress,
			Street:       addr.StreetAddress,
			Locality:     addr.Locality,
			Region:       addr.Region,
			PostalCode:   addr.PostalCode,
			Country:      addr.Country,
		})
	}
	for _, tel := range card[vcard.FieldTelephone] {
		d.Tel = append(d.Tel, Value{Value: tel.Value})
	}
	for _, email := range card[vcard.FieldEmail] {
		d.Email = append(d.Email, Value{Value: email.Value})
	}

	return d
}

// ReadCards decodes every card of a vCard stream. Legacy vCard 2.1 values
// (quoted-printable, non UTF-8 charsets) are converted to plain UTF-8.
func ReadCards(r io.Reader) ([]vcard.Card, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var cards []vcard.Card
	dec := vcard.NewDecoder(bytes.NewReader(joinSoftBreaks(data)))
	for {
		card, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return cards, fmt.Errorf("decode card %d: %w", len(cards), err)
		}
		DecodeLegacy(card)
		cards = append(cards, card)
	}
	return cards, nil
}

// ReadCard decodes the first card of a vCard stream.
func ReadCard(r io.Reader) (vcard.Card, error) {
	cards, err := ReadCards(r)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("no vCard found")
	}
	return cards[0], nil
}

// joinSoftBreaks undoes quoted-printable soft line breaks, which the vCard
// decoder would otherwise read as separate properties. Blank lines are dropped.
func joinSoftBreaks(data []byte) []byte {
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	var out strings.Builder
	out.Grow(len(data))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isQuotedPrintable(line) {
			for strings.HasSuffix(line, "=") && i+1 < len(lines) {
				i++
				line = line[:len(line)-1] + lines[i]
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		out.WriteString(line)
		out.WriteString("\r\n")
	}
	return []byte(out.String())
}

func isQuotedPrintable(line string) bool {
	i := strings.IndexByte(line, ':')
	if i <= 0 {
		return false
	}
	return strings.Contains(strings.ToUpper(line[:i]), "QUOTED-PRINTABLE")
}
