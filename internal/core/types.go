package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubmissionRecord is one distinct line item offered by a seller.
// Duplicate rows for the same item are aggregated at load time, so records
// reaching the reconciler are unique by ItemID.
type SubmissionRecord struct {
	ItemID    string          // TCGplayer product ID
	Quantity  int             // Units offered, >= 0
	UnitValue decimal.Decimal // Market price per unit, >= 0
}

// PullsheetEntry caps how many units of an item the retailer will accept.
type PullsheetEntry struct {
	ItemID  string
	MaxQty  int
	SetName string // Optional, links the entry to a pull order shelf
}

// CatalogEntry is one item in the universe of known products.
type CatalogEntry struct {
	ItemID string
}

// PullOrderEntry assigns a warehouse shelf position to a set.
type PullOrderEntry struct {
	SetName    string
	ShelfOrder int
}

// ReconciledRow is the enriched per-item view produced by the reconciler:
// a submitted item joined against its pullsheet entry.
//
// Invariant: 0 <= AdjustedQty <= SubmittedQty, and AdjustedQty is zero
// exactly when the item is off the pullsheet or its MaxQty is zero.
type ReconciledRow struct {
	ItemID       string
	SubmittedQty int
	UnitValue    decimal.Decimal
	MaxQty       int  // Meaningful only when OnPullsheet
	OnPullsheet  bool // False means the pullsheet has no entry for this item
	AdjustedQty  int
	SetName      string // From the pullsheet entry, empty when off-sheet
}

// Submission bundles the records offered by a seller with the metadata the
// intake workflow attaches to them.
type Submission struct {
	ID          uuid.UUID
	StoreName   string
	SellerEmail string
	CreatedAt   time.Time
	Records     []SubmissionRecord
}

// NewSubmission wraps records with a fresh submission identity.
func NewSubmission(records []SubmissionRecord, storeName, sellerEmail string) Submission {
	return Submission{
		ID:          uuid.New(),
		StoreName:   storeName,
		SellerEmail: sellerEmail,
		CreatedAt:   time.Now().UTC(),
		Records:     records,
	}
}

// TotalQuantity sums the submitted quantity across records.
func TotalQuantity(records []SubmissionRecord) int {
	total := 0
	for _, r := range records {
		total += r.Quantity
	}
	return total
}
