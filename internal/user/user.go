package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

// TermsAcceptance records the user's acceptance of the platform terms of
// service and privacy policy, with the version accepted.
type TermsAcceptance struct {
	TOS                  bool       `json:"tos"`
	TOSVersion           string     `json:"tos_version,omitempty"`
	TOSAcceptedAt        *time.Time `json:"tos_accepted_at,omitempty"`
	PrivacyPolicy        bool       `json:"privacy_policy"`
	PrivacyPolicyVersion string     `json:"privacy_policy_version,omitempty"`
	PrivacyAcceptedAt    *time.Time `json:"privacy_accepted_at,omitempty"`
}

// Acknowledgment is one recorded confirmation that the user has read a
// province's regulatory disclosures.
type Acknowledgment struct {
	Acknowledged   bool      `json:"acknowledged"`
	Version        string    `json:"version"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Acknowledgments keys province acknowledgments by province code.
type Acknowledgments map[string]Acknowledgment

// Get returns the acknowledgment for a province code, case-insensitively.
func (a Acknowledgments) Get(provinceCode string) (Acknowledgment, bool) {
	ack, ok := a[strings.ToUpper(provinceCode)]
	return ack, ok
}

// Set records an acknowledgment for a province. Re-acknowledging is
// idempotent: the original acknowledgment date is kept and only the
// version and update timestamp move forward.
func (a Acknowledgments) Set(provinceCode, version string, now time.Time) Acknowledgment {
	code := strings.ToUpper(provinceCode)

	ack, ok := a[code]
	if !ok {
		ack = Acknowledgment{AcknowledgedAt: now}
	}

	ack.Acknowledged = true
	ack.Version = version
	ack.UpdatedAt = now
	a[code] = ack

	return ack
}

// User is the marketplace account as seen by the transaction core. Profile,
// credentials and KYC live with the auth service and are not carried here.
type User struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Terms           TermsAcceptance
	Acknowledgments Acknowledgments
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// AcceptTerms marks the terms of service accepted at the given version.
func (u *User) AcceptTerms(version string, now time.Time) {
	u.Terms.TOS = true
	u.Terms.TOSVersion = version
	u.Terms.TOSAcceptedAt = &now
}
