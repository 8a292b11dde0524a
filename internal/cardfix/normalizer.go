package cardfix

import (
	"strings"

	"github.com/emersion/go-vcard"
)

// DefaultVersion is set on cards that carry none.
const DefaultVersion = "3.0"

const uuidURN = "urn:uuid:"

// Normalize repairs what can be derived from the card itself and returns
// what was missing. The card is modified in place.
func Normalize(card vcard.Card, cardIndex int) []ValidationResult {
	var results []ValidationResult

	if card.Value(vcard.FieldVersion) == "" {
		card.SetValue(vcard.FieldVersion, DefaultVersion)
		results = append(results, ValidationResult{
			CardIndex: cardIndex,
			Field:     vcard.FieldVersion,
			Status:    StatusFixed,
			Detail:    "Set to " + DefaultVersion,
		})
	}

	if strings.TrimSpace(card.Value(vcard.FieldFormattedName)) == "" {
		if fn := formattedName(card.Name()); fn != "" {
			card.SetValue(vcard.FieldFormattedName, fn)
			results = append(results, ValidationResult{
				CardIndex: cardIndex,
				Field:     vcard.FieldFormattedName,
				Status:    StatusFixed,
				Detail:    "Derived from N",
			})
		} else {
			results = append(results, ValidationResult{
				CardIndex: cardIndex,
				Field:     vcard.FieldFormattedName,
				Status:    StatusMissing,
				Detail:    "No N to derive it from",
			})
		}
	}

	if card.Name() == nil {
		results = append(results, ValidationResult{
			CardIndex: cardIndex,
			Field:     vcard.FieldName,
			Status:    StatusMissing,
		})
	}

	if strings.TrimSpace(card.Value(vcard.FieldUID)) == "" {
		card.SetValue(vcard.FieldUID, uuidURN+makeUUIDByRevision(card))
		results = append(results, ValidationResult{
			CardIndex: cardIndex,
			Field:     vcard.FieldUID,
			Status:    StatusFixed,
			Detail:    "Generated",
		})
	}

	return results
}

// formattedName joins the name components in display order.
func formattedName(n *vcard.Name) string {
	if n == nil {
		return ""
	}
	var parts []string
	for _, p := range []string{n.HonorificPrefix, n.GivenName, n.AdditionalName, n.FamilyName, n.HonorificSuffix} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
