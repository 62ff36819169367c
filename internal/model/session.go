package model

import "time"

// Wizard phases.
const (
	PhaseExtract  = 1
	PhasePosition = 2
	PhaseUsp      = 3
	PhaseGenerate = 4
)

// WizardSession is the operator's per-product working state, persisted
// between wizard phases so each CLI invocation picks up where the previous
// one stopped. Cleared when a new product session starts.
type WizardSession struct {
	ID           string             `json:"id"`
	Phase        int                `json:"phase"`
	ProductName  string             `json:"product_name"`
	Manufacturer string             `json:"manufacturer"`
	Category     Category           `json:"category"`
	Extracted    []ExtractedField   `json:"extracted,omitempty"`
	Positioning  *PositioningResult `json:"positioning,omitempty"`
	Selected     []UspBlock         `json:"selected,omitempty"`
	Available    []UspBlock         `json:"available,omitempty"`
	Generated    *GeneratedContent  `json:"generated,omitempty"`
	Warnings     []string           `json:"warnings,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Values builds the lookup table over this session's fields and positioning.
func (s *WizardSession) Values() Values {
	return NewValues(s.Extracted, s.Positioning)
}

// Field returns the extracted field with the given key, or nil.
func (s *WizardSession) Field(key string) *ExtractedField {
	for i := range s.Extracted {
		if s.Extracted[i].Field == key {
			return &s.Extracted[i]
		}
	}
	return nil
}
