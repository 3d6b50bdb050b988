package ratetable_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-payroll/internal/ratetable"
)

func TestRateConfigValidate_Bracket(t *testing.T) {
	valid := ratetable.RateConfig{
		Kind: ratetable.KindBracket,
		Brackets: []ratetable.Bracket{
			{From: 0, UpTo: 24000, RateBps: 1000},
			{From: 24000, UpTo: 0, RateBps: 2500},
		},
		ReliefAmount: 2400,
	}
	assert.NoError(t, valid.Validate())

	gap := ratetable.RateConfig{
		Kind: ratetable.KindBracket,
		Brackets: []ratetable.Bracket{
			{From: 0, UpTo: 24000, RateBps: 1000},
			{From: 30000, UpTo: 0, RateBps: 2500},
		},
	}
	assert.Error(t, gap.Validate())

	capped := ratetable.RateConfig{
		Kind: ratetable.KindBracket,
		Brackets: []ratetable.Bracket{
			{From: 0, UpTo: 24000, RateBps: 1000},
		},
	}
	assert.Error(t, capped.Validate(), "last bracket must be open-ended")
}

func TestRateConfigValidate_Flat(t *testing.T) {
	assert.NoError(t, ratetable.RateConfig{Kind: ratetable.KindFlat, RateBps: 600, Cap: 2160}.Validate())
	assert.Error(t, ratetable.RateConfig{Kind: ratetable.KindFlat, RateBps: 0}.Validate())
	assert.Error(t, ratetable.RateConfig{Kind: ratetable.KindFlat, RateBps: 600, Cap: -1}.Validate())
}

func TestRateConfigValidate_Banded(t *testing.T) {
	assert.NoError(t, ratetable.RateConfig{
		Kind:  ratetable.KindBanded,
		Bands: []ratetable.Band{{From: 0, UpTo: 5999, Amount: 150}, {From: 6000, UpTo: 0, Amount: 1100}},
	}.Validate())
	assert.Error(t, ratetable.RateConfig{Kind: ratetable.KindBanded}.Validate())
}

func TestRateConfigValidate_UnknownKind(t *testing.T) {
	assert.Error(t, ratetable.RateConfig{Kind: "progressive"}.Validate())
}

func TestRateConfigScan_RejectsMalformedRow(t *testing.T) {
	var cfg ratetable.RateConfig
	err := cfg.Scan([]byte(`{"kind":"flat","rate_bps":0}`))
	assert.Error(t, err)
}

func TestRateConfigScan_RoundTrip(t *testing.T) {
	src := ratetable.RateConfig{Kind: ratetable.KindFlat, RateBps: 600, Cap: 2160}
	value, err := src.Value()
	assert.NoError(t, err)

	var dst ratetable.RateConfig
	assert.NoError(t, dst.Scan(value))
	assert.Equal(t, src, dst)
}

func TestCovers(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	open := ratetable.RateTable{EffectiveFrom: from}
	assert.True(t, open.Covers(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, open.Covers(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))

	closed := ratetable.RateTable{EffectiveFrom: from, EffectiveTo: &to}
	assert.True(t, closed.Covers(to))
	assert.False(t, closed.Covers(to.AddDate(0, 0, 1)))
}
