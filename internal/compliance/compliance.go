// Package compliance gates state-changing operations behind the
// acknowledgments the platform requires: terms of service acceptance and
// per-province regulation acknowledgment. The gate is read-only; it never
// mutates user state.
package compliance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/maplelisted/maplelisted/internal/regulation"
	"github.com/maplelisted/maplelisted/internal/user"
)

// Requirement identifies which prerequisite a caller has not met.
type Requirement string

const (
	RequirementTerms    Requirement = "terms_of_service"
	RequirementProvince Requirement = "province_acknowledgment"
)

// Error reports an unmet prerequisite together with the remedial action the
// client should route the user to.
type Error struct {
	Requirement Requirement
	Province    string
	Action      string
}

func (e *Error) Error() string {
	if e.Province != "" {
		return fmt.Sprintf("compliance required: %s for province %s", e.Requirement, e.Province)
	}

	return fmt.Sprintf("compliance required: %s", e.Requirement)
}

//go:generate mockgen -source=compliance.go -destination=directory_mock.go -package=compliance
type Directory interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type Gate struct {
	users Directory
}

func NewGate(users Directory) *Gate {
	return &Gate{users: users}
}

// Check verifies that the user has accepted the platform terms and
// acknowledged the regulations of the given province. It returns a *Error
// naming the first unmet prerequisite.
func (g *Gate) Check(ctx context.Context, userID uuid.UUID, province string) error {
	u, err := g.users.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	if !u.Terms.TOS {
		return &Error{
			Requirement: RequirementTerms,
			Action:      "accept the Terms of Service at /api/v1/legal/accept-terms",
		}
	}

	ack, ok := u.Acknowledgments.Get(province)
	if !ok || !ack.Acknowledged {
		return &Error{
			Requirement: RequirementProvince,
			Province:    province,
			Action:      "acknowledge province regulations at /api/v1/legal/acknowledge-province",
		}
	}

	return nil
}

// MissingDisclosures returns the province's mandatory disclosures that are
// absent from the completed set. An empty result means the submission is
// disclosure-complete.
func MissingDisclosures(reg regulation.Regulation, completed []string) []string {
	done := make(map[string]struct{}, len(completed))
	for _, d := range completed {
		done[d] = struct{}{}
	}

	var missing []string

	for _, required := range reg.MandatoryDisclosures {
		if _, ok := done[required]; !ok {
			missing = append(missing, required)
		}
	}

	return missing
}
