package property

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("property not found")

// Status is the listing lifecycle state. Transactions flip Active listings to
// Pending on offer acceptance; the listing side owns the rest.
type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
	StatusWithdrawn Status = "withdrawn"
)

// ListingType mirrors the transaction types the marketplace supports.
type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

// Property is the slice of the listing entity the transaction core needs.
// Full listing CRUD, search and media live in the listing service.
type Property struct {
	ID            uuid.UUID
	SellerID      uuid.UUID
	Title         string
	PriceCents    int64
	Province      string
	City          string
	ListingType   ListingType
	Status        Status
	InterestCount int
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
