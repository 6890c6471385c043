package planning

import (
	"math"

	"finagent/pkg/core/engine"
	"finagent/pkg/core/fincalc"
)

// =============================================================================
// RETIREMENT: CORPUS SIZING AND EPF/VPF PROJECTION
// =============================================================================

// EPF statutory parameters: wage ceiling for mandated contributions, and the
// employer's EPS diversion (8.33% of capped basic, at most 1,250/month).
const (
	epfWageCeiling     = 15000.0
	epfContributionPct = 0.12
	epsDiversionPct    = 0.0833
	epsMonthlyCap      = 1250.0
)

// CorpusResult is the retirement-corpus computation trail.
type CorpusResult struct {
	FutureMonthlyExpenses float64 // expenses inflated to the retirement date
	FutureAnnualExpenses  float64
	RealRatePct           float64 // expected return minus inflation
	CorpusRequired        float64
}

// RetirementCorpus inflates current monthly expenses to the retirement date,
// then discounts the post-retirement expense stream at the real rate using an
// annuity-due present value (expenses are drawn at the start of each year).
// An expected return at or below inflation has no defined real rate.
func RetirementCorpus(currentMonthlyExpenses float64, yearsToRetirement int, inflationPct float64,
	postRetirementYears int, expectedReturnPct float64) (CorpusResult, error) {

	if currentMonthlyExpenses < 0 {
		return CorpusResult{}, engine.Errorf(engine.InvalidInput, "monthly expenses must be non-negative")
	}
	if yearsToRetirement <= 0 {
		return CorpusResult{}, engine.Errorf(engine.InvalidInput, "years to retirement must be positive, got %d", yearsToRetirement)
	}
	if postRetirementYears <= 0 {
		return CorpusResult{}, engine.Errorf(engine.InvalidInput, "post-retirement years must be positive, got %d", postRetirementYears)
	}
	if expectedReturnPct <= inflationPct {
		return CorpusResult{}, engine.Errorf(engine.InvalidRate,
			"expected return %.2f%% must exceed inflation %.2f%% for the corpus to be finite", expectedReturnPct, inflationPct)
	}

	futureMonthly := fincalc.InflateValue(currentMonthlyExpenses, inflationPct, yearsToRetirement)
	futureAnnual := futureMonthly * 12
	realRate := (expectedReturnPct - inflationPct) / 100

	return CorpusResult{
		FutureMonthlyExpenses: futureMonthly,
		FutureAnnualExpenses:  futureAnnual,
		RealRatePct:           expectedReturnPct - inflationPct,
		CorpusRequired:        fincalc.AnnuityDuePV(futureAnnual, realRate, postRetirementYears),
	}, nil
}

// EPFResult breaks down the provident-fund projection.
type EPFResult struct {
	EmployeeEPFMonthly float64
	EmployerEPFMonthly float64
	EPSMonthly         float64
	VPFMonthly         float64
	TotalMonthly       float64
	TotalContributed   float64
	MaturityValue      float64
	InterestEarned     float64
}

// EPFVPFProjection compounds monthly employee, VPF, and employer
// contributions at the declared annual rate. Mandated contributions apply to
// basic capped at the wage ceiling; VPF applies to the full basic with no
// ceiling. The employer's 12% is split between EPF and the capped EPS
// diversion. Contributions are credited at the start of each month.
func EPFVPFProjection(monthlyBasic, vpfPct float64, years int, declaredRatePct float64) (EPFResult, error) {
	if monthlyBasic <= 0 {
		return EPFResult{}, engine.Errorf(engine.InvalidInput, "monthly basic must be positive, got %f", monthlyBasic)
	}
	if vpfPct < 0 || vpfPct > 100 {
		return EPFResult{}, engine.Errorf(engine.InvalidInput, "VPF percentage %f outside [0,100]", vpfPct)
	}
	if years <= 0 {
		return EPFResult{}, engine.Errorf(engine.InvalidInput, "years must be positive, got %d", years)
	}
	if declaredRatePct < 0 {
		return EPFResult{}, engine.Errorf(engine.InvalidInput, "declared rate must be non-negative")
	}

	cappedBasic := math.Min(monthlyBasic, epfWageCeiling)
	res := EPFResult{
		EmployeeEPFMonthly: cappedBasic * epfContributionPct,
		EPSMonthly:         math.Min(cappedBasic*epsDiversionPct, epsMonthlyCap),
		VPFMonthly:         monthlyBasic * vpfPct / 100,
	}
	res.EmployerEPFMonthly = cappedBasic*epfContributionPct - res.EPSMonthly
	res.TotalMonthly = res.EmployeeEPFMonthly + res.EmployerEPFMonthly + res.VPFMonthly

	months := years * 12
	res.TotalContributed = res.TotalMonthly * float64(months)
	res.MaturityValue = fincalc.AnnuityDueFV(res.TotalMonthly, fincalc.MonthlyRate(declaredRatePct), months)
	res.InterestEarned = res.MaturityValue - res.TotalContributed
	return res, nil
}
