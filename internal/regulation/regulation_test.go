package regulation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maplelisted/maplelisted/internal/regulation"
)

func TestGet(t *testing.T) {
	on, ok := regulation.Get("ON")
	require.True(t, ok)
	assert.Equal(t, "Ontario", on.Name)
	assert.Equal(t, 10, on.CoolingOffDays)
	assert.Contains(t, on.MandatoryDisclosures, "Latent Defects")

	lower, ok := regulation.Get("bc")
	require.True(t, ok, "lookups are case-insensitive")
	assert.Equal(t, "British Columbia", lower.Name)

	_, ok = regulation.Get("XX")
	assert.False(t, ok)
}

func TestIsValid(t *testing.T) {
	assert.True(t, regulation.IsValid("QC"))
	assert.True(t, regulation.IsValid("nu"))
	assert.False(t, regulation.IsValid(""))
	assert.False(t, regulation.IsValid("ZZ"))
}

func TestCodes(t *testing.T) {
	codes := regulation.Codes()

	assert.Len(t, codes, 13, "ten provinces and three territories")
	assert.IsIncreasing(t, codes)
}

func TestAll(t *testing.T) {
	regs := regulation.All()
	require.Len(t, regs, 13)

	for _, reg := range regs {
		assert.NotEmpty(t, reg.Name, "province %s", reg.Code)
		assert.NotEmpty(t, reg.RegulatoryBody, "province %s", reg.Code)
		assert.Positive(t, reg.CoolingOffDays, "province %s", reg.Code)
		assert.NotEmpty(t, reg.MandatoryDisclosures, "province %s", reg.Code)

		// Deposit bounds are sane fractions of the price.
		assert.Greater(t, reg.DepositMinFraction, 0.0, "province %s", reg.Code)
		assert.Greater(t, reg.DepositMaxFraction, reg.DepositMinFraction, "province %s", reg.Code)
	}
}
