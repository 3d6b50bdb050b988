package statutory

import (
	"context"
	"fmt"
	"time"

	"go-payroll/internal/ratetable"
)

// Amounts are the statutory deductions for one employee in minor units
type Amounts struct {
	PAYE int64
	NSSF int64
	NHIF int64
}

func (a Amounts) Total() int64 {
	return a.PAYE + a.NSSF + a.NHIF
}

// RateSource is what the calculator needs from the rate table resolver
type RateSource interface {
	Effective(ctx context.Context, country, rateType string, on time.Time) (*ratetable.RateTable, error)
}

type Calculator struct {
	rates RateSource
}

func NewCalculator(rates RateSource) *Calculator {
	return &Calculator{rates: rates}
}

// Compute resolves the rate tables effective on the calculation date and
// applies them. PAYE runs over taxable income, NSSF and NHIF over gross.
func (c *Calculator) Compute(ctx context.Context, country string, gross, taxable int64, on time.Time) (Amounts, error) {
	var amounts Amounts

	payeTable, err := c.rates.Effective(ctx, country, ratetable.RateTypePAYE, on)
	if err != nil {
		return Amounts{}, fmt.Errorf("resolve PAYE table: %w", err)
	}
	amounts.PAYE = applyTable(*payeTable, taxable)

	nssfTable, err := c.rates.Effective(ctx, country, ratetable.RateTypeNSSF, on)
	if err != nil {
		return Amounts{}, fmt.Errorf("resolve NSSF table: %w", err)
	}
	amounts.NSSF = applyTable(*nssfTable, gross)

	nhifTable, err := c.rates.Effective(ctx, country, ratetable.RateTypeNHIF, on)
	if err != nil {
		return Amounts{}, fmt.Errorf("resolve NHIF table: %w", err)
	}
	amounts.NHIF = applyTable(*nhifTable, gross)

	return amounts, nil
}

func applyTable(table ratetable.RateTable, base int64) int64 {
	switch table.Config.Kind {
	case ratetable.KindBracket:
		return applyBrackets(table.Config, base)
	case ratetable.KindFlat:
		return applyFlat(table.Config, base)
	case ratetable.KindBanded:
		return applyBands(table.Config, base)
	}
	// Unreachable for rows that passed RateConfig.Validate
	return 0
}

// applyBrackets runs graduated brackets over the base and subtracts the
// personal relief, floored at zero.
func applyBrackets(cfg ratetable.RateConfig, base int64) int64 {
	var tax int64
	for _, bracket := range cfg.Brackets {
		if base <= bracket.From {
			break
		}
		upper := base
		if bracket.UpTo != 0 && bracket.UpTo < base {
			upper = bracket.UpTo
		}
		tax += (upper - bracket.From) * bracket.RateBps / 10000
	}

	tax -= cfg.ReliefAmount
	if tax < 0 {
		return 0
	}
	return tax
}

func applyFlat(cfg ratetable.RateConfig, base int64) int64 {
	if base <= 0 {
		return 0
	}
	amount := base * cfg.RateBps / 10000
	if cfg.Cap > 0 && amount > cfg.Cap {
		amount = cfg.Cap
	}
	return amount
}

func applyBands(cfg ratetable.RateConfig, base int64) int64 {
	if base <= 0 {
		return 0
	}
	for _, band := range cfg.Bands {
		if base >= band.From && (band.UpTo == 0 || base <= band.UpTo) {
			return band.Amount
		}
	}
	return 0
}
