// Package regulation holds the per-province rules for Canadian real-estate
// transactions: cooling-off periods, deposit bounds and mandatory disclosures.
// The table is static and read-only at runtime.
package regulation

import (
	"slices"
	"strings"
)

// Regulation describes the rules a transaction in a given province must follow.
type Regulation struct {
	Code                 string
	Name                 string
	RegulatoryBody       string
	CoolingOffDays       int
	DepositMinFraction   float64
	DepositMaxFraction   float64
	MandatoryDisclosures []string
}

var provinces = map[string]Regulation{
	"BC": {
		Code:               "BC",
		Name:               "British Columbia",
		RegulatoryBody:     "BC Financial Services Authority",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Strata Bylaws",
			"Rental Restrictions",
			"Building Permits",
			"Property Taxes",
		},
	},
	"AB": {
		Code:               "AB",
		Name:               "Alberta",
		RegulatoryBody:     "Real Estate Council of Alberta",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Real Property Report",
			"Property Taxes",
			"Encumbrances",
		},
	},
	"SK": {
		Code:               "SK",
		Name:               "Saskatchewan",
		RegulatoryBody:     "Saskatchewan Consumer Affairs",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Property Taxes",
			"Title Issues",
		},
	},
	"MB": {
		Code:               "MB",
		Name:               "Manitoba",
		RegulatoryBody:     "Manitoba Real Estate Association",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Property Taxes",
		},
	},
	"ON": {
		Code:               "ON",
		Name:               "Ontario",
		RegulatoryBody:     "Real Estate Council of Ontario",
		CoolingOffDays:     10,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Building Permits",
			"Property Taxes",
			"Tarion Warranty (new builds)",
		},
	},
	"QC": {
		Code:               "QC",
		Name:               "Quebec",
		RegulatoryBody:     "OACIQ",
		CoolingOffDays:     10,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"French Language Requirements",
			"Property Taxes",
		},
	},
	"NB": {
		Code:               "NB",
		Name:               "New Brunswick",
		RegulatoryBody:     "Association of Professional Land Surveyors of NB",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Property Taxes",
		},
	},
	"NS": {
		Code:               "NS",
		Name:               "Nova Scotia",
		RegulatoryBody:     "Nova Scotia Utility and Review Board",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Property Taxes",
		},
	},
	"PE": {
		Code:               "PE",
		Name:               "Prince Edward Island",
		RegulatoryBody:     "PEI Real Estate Association",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Property Taxes",
		},
	},
	"NL": {
		Code:               "NL",
		Name:               "Newfoundland and Labrador",
		RegulatoryBody:     "Service NL",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Property Taxes",
		},
	},
	"YT": {
		Code:               "YT",
		Name:               "Yukon",
		RegulatoryBody:     "Yukon Department of Community Services",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Property Taxes",
		},
	},
	"NT": {
		Code:               "NT",
		Name:               "Northwest Territories",
		RegulatoryBody:     "NWT Department of Municipal and Community Affairs",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Property Taxes",
		},
	},
	"NU": {
		Code:               "NU",
		Name:               "Nunavut",
		RegulatoryBody:     "Nunavut Department of Community and Government Services",
		CoolingOffDays:     7,
		DepositMinFraction: 0.05,
		DepositMaxFraction: 0.10,
		MandatoryDisclosures: []string{
			"Latent Defects",
			"Property Taxes",
		},
	},
}

// Get returns the regulation for the given province code, case-insensitively.
// The second return value is false for unknown codes.
func Get(code string) (Regulation, bool) {
	reg, ok := provinces[strings.ToUpper(code)]
	return reg, ok
}

// IsValid reports whether code is a known province or territory code.
func IsValid(code string) bool {
	_, ok := provinces[strings.ToUpper(code)]
	return ok
}

// Codes returns all known province codes in alphabetical order.
func Codes() []string {
	codes := make([]string, 0, len(provinces))
	for code := range provinces {
		codes = append(codes, code)
	}

	slices.Sort(codes)

	return codes
}

// All returns every regulation, ordered by province code.
func All() []Regulation {
	regs := make([]Regulation, 0, len(provinces))
	for _, code := range Codes() {
		regs = append(regs, provinces[code])
	}

	return regs
}
