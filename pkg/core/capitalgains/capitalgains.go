package capitalgains

import (
	"math"
	"time"

	"finagent/pkg/core/engine"
)

// =============================================================================
// CAPITAL GAINS
// Holding-period classification and tax for equity and debt disposals,
// FY 2024-25 rules: no indexation for debt LTCG.
// =============================================================================

// AssetClass is a closed variant; anything else is rejected at computation.
type AssetClass string

const (
	Equity AssetClass = "EQUITY"
	Debt   AssetClass = "DEBT"
)

// Term is the classification outcome.
type Term string

const (
	LongTerm  Term = "LTCG"
	ShortTerm Term = "STCG"
)

const (
	equityLTCGExemption = 125000.0
	equityLTCGRate      = 0.125
	equitySTCGRate      = 0.20
	debtLTCGRate        = 0.125
)

// GainEvent is one disposal. MarginalSlabRate (percent) is required only for
// debt STCG, where the gain is taxed at the investor's slab; leaving it nil
// there is a MissingContext failure, never an assumed bracket.
type GainEvent struct {
	Asset            AssetClass
	AcquiredOn       time.Time
	DisposedOn       time.Time
	CostBasis        float64
	SaleValue        float64
	MarginalSlabRate *float64
}

// TaxResult is the computed outcome for one event.
type TaxResult struct {
	Term        Term
	Gain        float64 // negative for a loss
	TaxableGain float64
	Rate        float64 // decimal rate actually applied
	Tax         float64
	ExemptUsed  float64 // equity LTCG annual exemption consumed
}

// Classify determines long vs short term purely from the asset class and
// holding period. Equity is long-term when held strictly more than 365 days;
// debt when held strictly more than 36 calendar months. Boundary holdings
// (exactly 365 days, exactly 36 months) are short-term.
func Classify(event GainEvent) (Term, error) {
	if event.DisposedOn.Before(event.AcquiredOn) {
		return "", engine.Errorf(engine.InvalidInput, "disposal %s precedes acquisition %s",
			event.DisposedOn.Format("2006-01-02"), event.AcquiredOn.Format("2006-01-02"))
	}
	switch event.Asset {
	case Equity:
		if event.DisposedOn.After(event.AcquiredOn.AddDate(0, 0, 365)) {
			return LongTerm, nil
		}
		return ShortTerm, nil
	case Debt:
		if event.DisposedOn.After(event.AcquiredOn.AddDate(0, 36, 0)) {
			return LongTerm, nil
		}
		return ShortTerm, nil
	default:
		return "", engine.Errorf(engine.InvalidInput, "unknown asset class %q", event.Asset)
	}
}

// ComputeTax applies FY 2024-25 capital-gains rules:
//
//	equity LTCG: 12.5% on the gain above the 1.25L annual exemption
//	equity STCG: 20% flat
//	debt LTCG:   12.5%, no indexation
//	debt STCG:   the caller's marginal slab rate
//
// A loss yields zero tax with the loss reported in Gain.
func ComputeTax(event GainEvent) (TaxResult, error) {
	if event.CostBasis < 0 || event.SaleValue < 0 {
		return TaxResult{}, engine.Errorf(engine.InvalidInput, "cost basis and sale value must be non-negative")
	}
	term, err := Classify(event)
	if err != nil {
		return TaxResult{}, err
	}

	res := TaxResult{Term: term, Gain: event.SaleValue - event.CostBasis}
	if res.Gain <= 0 {
		return res, nil
	}

	switch {
	case event.Asset == Equity && term == LongTerm:
		res.ExemptUsed = math.Min(res.Gain, equityLTCGExemption)
		res.TaxableGain = math.Max(0, res.Gain-equityLTCGExemption)
		res.Rate = equityLTCGRate
	case event.Asset == Equity:
		res.TaxableGain = res.Gain
		res.Rate = equitySTCGRate
	case term == LongTerm: // debt
		res.TaxableGain = res.Gain
		res.Rate = debtLTCGRate
	default: // debt STCG
		if event.MarginalSlabRate == nil {
			return TaxResult{}, engine.Errorf(engine.MissingContext,
				"debt STCG is taxed at the investor's slab rate; marginal_slab_rate was not supplied")
		}
		rate := *event.MarginalSlabRate
		if rate < 0 || rate > 100 {
			return TaxResult{}, engine.Errorf(engine.InvalidInput, "marginal slab rate %f outside [0,100]", rate)
		}
		res.TaxableGain = res.Gain
		res.Rate = rate / 100
	}
	res.Tax = res.TaxableGain * res.Rate
	return res, nil
}
