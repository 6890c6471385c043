package tax

import (
	"math"

	"finagent/pkg/core/engine"
)

// =============================================================================
// SLAB TABLES
// Versioned, immutable tax slab tables per regime and financial year. Tables
// are plain values passed into every computation so that concurrent requests
// spanning different financial years never interfere.
// =============================================================================

// Regime is one of the two mutually exclusive Indian personal-tax schemes.
type Regime string

const (
	RegimeOld Regime = "OLD"
	RegimeNew Regime = "NEW"
)

// Standard deduction per regime (FY 2024-25).
const (
	StandardDeductionOld = 50000.0
	StandardDeductionNew = 75000.0
)

// CessRate is the health-and-education cess applied after surcharge.
const CessRate = 0.04

// Slab is one income bracket with a fixed marginal rate. Upper is +Inf for the
// top bracket.
type Slab struct {
	Lower float64
	Upper float64
	Rate  float64 // marginal rate as a decimal, e.g. 0.30
}

// SlabTable is the ordered slab list for one regime and financial year.
type SlabTable struct {
	FinancialYear string
	Regime        Regime
	Slabs         []Slab
}

// FY 2024-25 tables. New financial years are added here; callers select the
// year explicitly, never implicitly.
var slabTables = map[string]map[Regime]SlabTable{
	"2024-25": {
		RegimeOld: {
			FinancialYear: "2024-25",
			Regime:        RegimeOld,
			Slabs: []Slab{
				{Lower: 0, Upper: 250000, Rate: 0},
				{Lower: 250000, Upper: 500000, Rate: 0.05},
				{Lower: 500000, Upper: 1000000, Rate: 0.20},
				{Lower: 1000000, Upper: math.Inf(1), Rate: 0.30},
			},
		},
		RegimeNew: {
			FinancialYear: "2024-25",
			Regime:        RegimeNew,
			Slabs: []Slab{
				{Lower: 0, Upper: 300000, Rate: 0},
				{Lower: 300000, Upper: 700000, Rate: 0.05},
				{Lower: 700000, Upper: 1000000, Rate: 0.10},
				{Lower: 1000000, Upper: 1200000, Rate: 0.15},
				{Lower: 1200000, Upper: 1500000, Rate: 0.20},
				{Lower: 1500000, Upper: math.Inf(1), Rate: 0.30},
			},
		},
	},
}

// ForYear returns the slab table for a financial year and regime. Unknown
// years or regimes are an error, never a silent fallback to another year.
func ForYear(fy string, regime Regime) (SlabTable, error) {
	byRegime, ok := slabTables[fy]
	if !ok {
		return SlabTable{}, engine.Errorf(engine.MissingContext, "no slab table for financial year %q", fy)
	}
	table, ok := byRegime[regime]
	if !ok {
		return SlabTable{}, engine.Errorf(engine.InvalidInput, "unknown regime %q", regime)
	}
	return table, nil
}

// Validate checks the table partitions the income domain: ordered,
// non-overlapping, gap-free from zero to infinity.
func (t SlabTable) Validate() error {
	if len(t.Slabs) == 0 {
		return engine.Errorf(engine.InvalidInput, "slab table %s/%s is empty", t.FinancialYear, t.Regime)
	}
	if t.Slabs[0].Lower != 0 {
		return engine.Errorf(engine.InvalidInput, "slab table must start at zero, starts at %f", t.Slabs[0].Lower)
	}
	for i, s := range t.Slabs {
		if s.Upper <= s.Lower {
			return engine.Errorf(engine.InvalidInput, "slab %d is inverted (%f..%f)", i, s.Lower, s.Upper)
		}
		if i > 0 && s.Lower != t.Slabs[i-1].Upper {
			return engine.Errorf(engine.InvalidInput,
				"slab %d leaves a gap or overlap: previous upper %f, lower %f", i, t.Slabs[i-1].Upper, s.Lower)
		}
	}
	if !math.IsInf(t.Slabs[len(t.Slabs)-1].Upper, 1) {
		return engine.Errorf(engine.InvalidInput, "top slab must be unbounded")
	}
	return nil
}

// ComputeSlabTax applies the table cumulatively: each rupee is taxed at the
// marginal rate of the slab it falls in. Income at or below the basic
// exemption yields zero.
func ComputeSlabTax(income float64, table SlabTable) (float64, error) {
	if income < 0 {
		return 0, engine.Errorf(engine.InvalidInput, "income must be non-negative, got %f", income)
	}
	if err := table.Validate(); err != nil {
		return 0, err
	}
	var tax float64
	for _, s := range table.Slabs {
		if income <= s.Lower {
			break
		}
		taxable := math.Min(income, s.Upper) - s.Lower
		tax += taxable * s.Rate
	}
	return tax, nil
}

// surchargeRate returns the surcharge applied on computed tax, by taxable
// income band. The New regime caps surcharge at 25%.
func surchargeRate(taxableIncome float64, regime Regime) float64 {
	var rate float64
	switch {
	case taxableIncome > 50000000:
		rate = 0.37
	case taxableIncome > 20000000:
		rate = 0.25
	case taxableIncome > 10000000:
		rate = 0.15
	case taxableIncome > 5000000:
		rate = 0.10
	}
	if regime == RegimeNew && rate > 0.25 {
		rate = 0.25
	}
	return rate
}
