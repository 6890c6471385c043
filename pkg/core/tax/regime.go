package tax

import (
	"math"

	"finagent/pkg/core/engine"
)

// =============================================================================
// REGIME COMPARISON
// Net tax under both regimes for one income profile, surcharge before cess.
// =============================================================================

// IncomeProfile is the caller-supplied picture of one taxpayer's year.
type IncomeProfile struct {
	GrossSalary float64
	OtherIncome float64
	BasicSalary float64 // needed for the 80CCD(2) cap
	Exemptions  float64 // HRA/LTA exempt amounts, Old regime only
	Claims      []DeductionClaim
}

// RegimeTax is the full computation trail for one regime.
type RegimeTax struct {
	Regime        Regime
	Deductions    DeductionBreakdown
	TaxableIncome float64
	SlabTax       float64
	Surcharge     float64
	Cess          float64
	Total         float64
}

// RegimeComparison holds both regimes, their delta, and the recommendation.
type RegimeComparison struct {
	FinancialYear string
	Old           RegimeTax
	New           RegimeTax
	Delta         float64 // Old total - New total; positive means New saves money
	Recommended   Regime
}

// CompareRegimes computes net tax under both regimes for the financial year
// and recommends the cheaper one. On an exact tie it recommends the New
// regime, which carries the lower compliance burden.
func CompareRegimes(profile IncomeProfile, fy string) (RegimeComparison, error) {
	gross := profile.GrossSalary + profile.OtherIncome
	if gross < 0 {
		return RegimeComparison{}, engine.Errorf(engine.InvalidInput, "gross income must be non-negative, got %f", gross)
	}
	if profile.Exemptions < 0 {
		return RegimeComparison{}, engine.Errorf(engine.InvalidInput, "exemptions must be non-negative")
	}

	old, err := taxUnderRegime(profile, RegimeOld, fy)
	if err != nil {
		return RegimeComparison{}, err
	}
	newTax, err := taxUnderRegime(profile, RegimeNew, fy)
	if err != nil {
		return RegimeComparison{}, err
	}

	cmp := RegimeComparison{
		FinancialYear: fy,
		Old:           old,
		New:           newTax,
		Delta:         old.Total - newTax.Total,
	}
	// Tie goes to New: fewer declarations to maintain.
	if old.Total < newTax.Total {
		cmp.Recommended = RegimeOld
	} else {
		cmp.Recommended = RegimeNew
	}
	return cmp, nil
}

func taxUnderRegime(profile IncomeProfile, regime Regime, fy string) (RegimeTax, error) {
	table, err := ForYear(fy, regime)
	if err != nil {
		return RegimeTax{}, err
	}
	bd, err := ComputeDeductions(profile.Claims, regime, profile.BasicSalary)
	if err != nil {
		return RegimeTax{}, err
	}

	gross := profile.GrossSalary + profile.OtherIncome
	taxable := gross - bd.Total
	if regime == RegimeOld {
		taxable -= profile.Exemptions
	}
	taxable = math.Max(0, taxable)

	slabTax, err := ComputeSlabTax(taxable, table)
	if err != nil {
		return RegimeTax{}, err
	}

	// Surcharge applies on the slab tax, then 4% cess on tax plus surcharge.
	surcharge := slabTax * surchargeRate(taxable, regime)
	cess := (slabTax + surcharge) * CessRate

	return RegimeTax{
		Regime:        regime,
		Deductions:    bd,
		TaxableIncome: taxable,
		SlabTax:       slabTax,
		Surcharge:     surcharge,
		Cess:          cess,
		Total:         slabTax + surcharge + cess,
	}, nil
}
