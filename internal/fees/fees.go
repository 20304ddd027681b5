// Package fees computes platform fees for marketplace transactions.
// All monetary values are in cents (CAD).
package fees

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidPrice = errors.New("sale price must be positive")
	ErrUnknownModel = errors.New("unknown fee model")
	ErrNoCatchAll   = errors.New("tier list has no catch-all entry")
)

// Model selects how the platform fee is derived from the sale price.
type Model string

const (
	ModelFlat       Model = "flat"
	ModelPercentage Model = "percentage"
	ModelTiered     Model = "tiered"
	ModelHybrid     Model = "hybrid"
)

// Tier is one step of the tiered model. MaxPriceCents == 0 marks the
// catch-all entry that matches any price.
type Tier struct {
	MaxPriceCents int64
	FeeCents      int64
}

// Policy is an immutable fee configuration. Construct it once at startup and
// inject it; recomputing a fee with a newer policy never rewrites fees already
// persisted on a transaction.
type Policy struct {
	DefaultModel Model

	FlatFeeCents int64

	// Percentage and hybrid success fee share the same clamped-percentage shape.
	Percentage   float64
	MinimumCents int64
	MaximumCents int64

	// Hybrid: flat listing fee charged at offer time.
	ListingFeeCents int64

	// Tiered: ascending by MaxPriceCents, catch-all last.
	Tiers []Tier

	Currency string
}

// Breakdown is the result of a fee calculation.
type Breakdown struct {
	TotalCents      int64
	ListingFeeCents int64
	SuccessFeeCents int64
	Percentage      float64
	Currency        string
	Model           Model
}

// Calculate maps a sale price to a fee breakdown under the given model.
// Pure: no I/O, deterministic for a fixed policy.
func (p Policy) Calculate(salePriceCents int64, model Model) (Breakdown, error) {
	if salePriceCents <= 0 {
		return Breakdown{}, fmt.Errorf("%w: %d", ErrInvalidPrice, salePriceCents)
	}

	b := Breakdown{Currency: p.Currency, Model: model}

	switch model {
	case ModelFlat:
		b.TotalCents = p.FlatFeeCents

	case ModelPercentage:
		b.TotalCents = p.clampedPercentage(salePriceCents)
		b.Percentage = p.Percentage

	case ModelTiered:
		fee, err := p.tieredFee(salePriceCents)
		if err != nil {
			return Breakdown{}, err
		}

		b.TotalCents = fee

	case ModelHybrid:
		b.ListingFeeCents = p.ListingFeeCents
		b.SuccessFeeCents = p.clampedPercentage(salePriceCents)
		b.Percentage = p.Percentage
		b.TotalCents = b.ListingFeeCents + b.SuccessFeeCents

	default:
		return Breakdown{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}

	return b, nil
}

func (p Policy) clampedPercentage(salePriceCents int64) int64 {
	fee := int64(math.Round(float64(salePriceCents) * p.Percentage / 100))
	fee = max(fee, p.MinimumCents)
	fee = min(fee, p.MaximumCents)

	return fee
}

// tieredFee walks the tiers in order and returns the fee of the first tier
// whose bound is the catch-all or at least the sale price. Boundary prices
// belong to the lower tier. Fails closed when no tier matches.
func (p Policy) tieredFee(salePriceCents int64) (int64, error) {
	for _, tier := range p.Tiers {
		if tier.MaxPriceCents == 0 || salePriceCents <= tier.MaxPriceCents {
			return tier.FeeCents, nil
		}
	}

	return 0, ErrNoCatchAll
}

// realtorCommissionPct is the baseline full-service commission used for the
// savings comparison shown to sellers.
const realtorCommissionPct = 5.0

// Comparison contrasts the platform fee with a traditional realtor commission.
type Comparison struct {
	RealtorCommissionCents int64
	PlatformFeeCents       int64
	SavingsCents           int64
	SavingsPercentage      float64
}

// CompareToRealtor computes the savings of the policy's default model against
// a fixed 5% commission. Informational only.
func (p Policy) CompareToRealtor(salePriceCents int64) (Comparison, error) {
	breakdown, err := p.Calculate(salePriceCents, p.DefaultModel)
	if err != nil {
		return Comparison{}, err
	}

	commission := int64(math.Round(float64(salePriceCents) * realtorCommissionPct / 100))
	savings := commission - breakdown.TotalCents

	cmp := Comparison{
		RealtorCommissionCents: commission,
		PlatformFeeCents:       breakdown.TotalCents,
		SavingsCents:           savings,
	}

	// Sub-dollar prices round the commission to zero; leave the percentage
	// at zero rather than dividing by it.
	if commission > 0 {
		cmp.SavingsPercentage = float64(savings) / float64(commission) * 100
	}

	return cmp, nil
}
