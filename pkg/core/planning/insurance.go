package planning

import (
	"finagent/pkg/core/engine"
	"finagent/pkg/core/fincalc"
)

// =============================================================================
// PROTECTION: LIFE COVER AND EMERGENCY FUND
// =============================================================================

// JobStability is a closed tier; an unknown value is a construction-time
// error, not a defaulted one.
type JobStability string

const (
	StabilityStable   JobStability = "STABLE"
	StabilityModerate JobStability = "MODERATE"
	StabilityUnstable JobStability = "UNSTABLE"
)

// CoverageResult is the 10-20x thumb-rule band around the requested multiple.
type CoverageResult struct {
	AnnualIncome   float64
	MultiplierUsed float64
	Minimum        float64 // 10x
	Recommended    float64
	Maximum        float64 // 20x
}

// LifeInsuranceCoverage sizes term cover as a linear multiple of annual
// income. The multiplier is clamped to the [10,20] thumb-rule band.
func LifeInsuranceCoverage(annualIncome, multiplier float64) (CoverageResult, error) {
	if annualIncome < 0 {
		return CoverageResult{}, engine.Errorf(engine.InvalidInput, "annual income must be non-negative, got %f", annualIncome)
	}
	m := fincalc.Clamp(multiplier, 10, 20)
	return CoverageResult{
		AnnualIncome:   annualIncome,
		MultiplierUsed: m,
		Minimum:        annualIncome * 10,
		Recommended:    annualIncome * m,
		Maximum:        annualIncome * 20,
	}, nil
}

// EmergencyFundResult reports the recommended buffer.
type EmergencyFundResult struct {
	MonthlyExpenses float64
	Months          int
	Amount          float64
}

// EmergencyFund applies the 3-6-12 month rule: base months by job stability,
// plus one month per two dependents, capped at a year.
func EmergencyFund(monthlyExpenses float64, stability JobStability, dependents int) (EmergencyFundResult, error) {
	if monthlyExpenses < 0 {
		return EmergencyFundResult{}, engine.Errorf(engine.InvalidInput, "monthly expenses must be non-negative")
	}
	if dependents < 0 {
		return EmergencyFundResult{}, engine.Errorf(engine.InvalidInput, "dependents must be non-negative")
	}

	var base int
	switch stability {
	case StabilityStable:
		base = 3
	case StabilityModerate:
		base = 6
	case StabilityUnstable:
		base = 12
	default:
		return EmergencyFundResult{}, engine.Errorf(engine.InvalidInput, "unknown job stability %q", stability)
	}

	months := base + dependents/2
	if months > 12 {
		months = 12
	}
	return EmergencyFundResult{
		MonthlyExpenses: monthlyExpenses,
		Months:          months,
		Amount:          monthlyExpenses * float64(months),
	}, nil
}
