// Package card defines the shared card record model and the identity
// normalization rules used to match records across sources.
package card

// Source identifies which site a record was extracted from.
type Source string

const (
	// SourceCatalog is the card-catalog site (full set lists with ownership indicators).
	SourceCatalog Source = "tcg_collector"
	// SourceMarketplace is the marketplace order history (purchased, in transit).
	SourceMarketplace Source = "cardmarket"
)

// Variant is a physical print treatment of the same card number.
type Variant string

const (
	VariantNormal      Variant = "Normal"
	VariantReverseHolo Variant = "Reverse Holo"
	VariantHolo        Variant = "Holo"
)

// Card is a single extracted card record, before reconciliation.
// Optional string fields use the empty string for "not extracted".
type Card struct {
	Name       string  `json:"name"`
	Source     Source  `json:"source"`
	SetName    string  `json:"set_name,omitempty"`
	SetCode    string  `json:"set_code,omitempty"`
	Number     string  `json:"number,omitempty"`
	TotalCount string  `json:"total_count,omitempty"`
	Variant    Variant `json:"variant_type"`
	HasCard    bool    `json:"has_card"`
	CardID     string  `json:"card_id,omitempty"`
}

// Status is the derived ownership state of a reconciled card.
type Status string

const (
	StatusHave      Status = "Have"
	StatusNeed      Status = "Need"
	StatusPending   Status = "Pending Purchase"
	StatusDuplicate Status = "Have + Pending Purchase (Duplicate!)"
)
