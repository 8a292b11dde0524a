// Package cardfix checks vCards for the properties vdeck relies on and
// repairs the ones that can be derived.
package cardfix

import (
	"net/mail"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
)

var (
	// Properties every card in a deck should carry
	requiredFields = []string{
		vcard.FieldVersion,
		vcard.FieldFormattedName,
		vcard.FieldName,
		vcard.FieldUID,
	}

	supportedVersions = map[string]bool{"2.1": true, "3.0": true, "4.0": true}

	birthdayLayouts = []string{
		"2006-01-02",
		"20060102",
		"--01-02",
		"--0102",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"20060102T150405Z",
		"20060102T150405",
	}
)

// Validate checks a card and returns one result per problem found.
func Validate(card vcard.Card, cardIndex int) []ValidationResult {
	var results []ValidationResult

	for _, name := range requiredFields {
		if strings.TrimSpace(card.Value(name)) == "" {
			results = append(results, ValidationResult{
				CardIndex: cardIndex,
				Field:     name,
				Status:    StatusMissing,
			})
		}
	}

	if v := card.Value(vcard.FieldVersion); v != "" && !supportedVersions[v] {
		results = append(results, ValidationResult{
			CardIndex: cardIndex,
			Field:     vcard.FieldVersion,
			Status:    StatusInvalid,
			Detail:    "Unsupported version " + v,
		})
	}

	for _, email := range card.Values(vcard.FieldEmail) {
		if !isValidEmail(email) {
			results = append(results, ValidationResult{
				CardIndex: cardIndex,
				Field:     vcard.FieldEmail,
				Status:    StatusInvalid,
				Detail:    "Invalid address " + email,
			})
		}
	}

	if bday := card.Value(vcard.FieldBirthday); bday != "" {
		if _, ok := ParseDate(bday); !ok {
			results = append(results, ValidationResult{
				CardIndex: cardIndex,
				Field:     vcard.FieldBirthday,
				Status:    StatusInvalid,
				Detail:    "Invalid date " + bday,
			})
		}
	}

	return results
}

// isValidEmail checks that value is a bare address parseable by net/mail
func isValidEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Name == "" && strings.EqualFold(addr.Address, strings.TrimSpace(value))
}

// ParseDate parses the date and date-time forms used by BDAY and REV.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range birthdayLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
