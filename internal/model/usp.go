package model

import "time"

// Condition operators. Anything else evaluates to false, never to an error.
const (
	OpEq       = "eq"
	OpIn       = "in"
	OpGt       = "gt"
	OpGte      = "gte"
	OpLt       = "lt"
	OpLte      = "lte"
	OpContains = "contains"
)

// Condition gates a USP library entry on a single field comparison. Field
// is resolved against extracted fields first, then positioning outputs.
type Condition struct {
	Field    string `json:"field" yaml:"field"`
	Operator string `json:"operator" yaml:"operator"`
	Value    any    `json:"value" yaml:"value"`
}

// UspLibraryEntry is a read-only catalog entry of the USP library.
type UspLibraryEntry struct {
	ID              string    `json:"id" yaml:"id"`
	Condition       Condition `json:"condition" yaml:"condition"`
	Title           string    `json:"title" yaml:"title"`
	Paragraph1      string    `json:"paragraph_1" yaml:"paragraph_1"`
	Paragraph2      string    `json:"paragraph_2,omitempty" yaml:"paragraph_2,omitempty"`
	ImageSuggestion string    `json:"image_suggestion,omitempty" yaml:"image_suggestion,omitempty"`
}

// UspCategory groups library entries. Matching walks categories and entries
// in declaration order, which fixes the default presentation order.
type UspCategory struct {
	Key  string            `json:"key" yaml:"key"`
	Name string            `json:"name" yaml:"name"`
	Usps []UspLibraryEntry `json:"usps" yaml:"usps"`
}

// UspLibrary is the full marketing block catalog.
type UspLibrary struct {
	Categories []UspCategory `json:"usp_categories" yaml:"usp_categories"`
}

// UspBlock is a materialized, variable-substituted instance of a library
// entry (or an accepted rephrase). Owned by the selection session.
type UspBlock struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Paragraph1 string `json:"paragraph_1"`
	Paragraph2 string `json:"paragraph_2,omitempty"`
	ImageURL   string `json:"image_url"`
	ImageAlt   string `json:"image_alt"`
	Selected   bool   `json:"selected"`
	Order      int    `json:"order"`
}

// UsedUspRecord is one append-only history entry used for cross-product
// SEO duplicate detection. Never mutated, only appended.
type UsedUspRecord struct {
	ID          string    `json:"id"`
	UspID       string    `json:"usp_id"`
	Title       string    `json:"title"`
	ProductName string    `json:"product_name"`
	UsedAt      time.Time `json:"used_at"`
}

// GeneratedContent is the final output of the wizard: a short description,
// the minified HTML snippet and optional FAQ entries.
type GeneratedContent struct {
	ShortDescription string `json:"rovid_leiras"`
	HTML             string `json:"html_leiras"`
	FAQ              []QA   `json:"faq,omitempty"`
}

// QA is a single FAQ entry.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
