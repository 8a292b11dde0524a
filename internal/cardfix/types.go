package cardfix

// ValidationResult represents one finding on a card
type ValidationResult struct {
	CardIndex int    `json:"cardIndex"`
	Field     string `json:"field"`
	Status    string `json:"status"` // "missing", "invalid", "fixed"
	Detail    string `json:"detail,omitempty"`
}

const (
	StatusMissing = "missing"
	StatusInvalid = "invalid"
	StatusFixed   = "fixed"
)
