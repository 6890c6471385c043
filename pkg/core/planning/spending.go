package planning

import (
	"finagent/pkg/core/engine"
	"finagent/pkg/core/fincalc"
)

// SpendingResult is the 50-30-20 health check: at least 20% of income should
// flow to savings plus investments.
type SpendingResult struct {
	Spending      float64
	SpendingPct   float64
	SavingsPct    float64
	InvestmentPct float64
	Healthy       bool
}

// SpendingRatio analyzes income against savings and investments under the
// 50-30-20 rule.
func SpendingRatio(monthlyIncome, monthlySavings, monthlyInvestments float64) (SpendingResult, error) {
	if monthlyIncome <= 0 {
		return SpendingResult{}, engine.Errorf(engine.InvalidInput, "monthly income must be positive, got %f", monthlyIncome)
	}
	if monthlySavings < 0 || monthlyInvestments < 0 {
		return SpendingResult{}, engine.Errorf(engine.InvalidInput, "savings and investments must be non-negative")
	}
	if monthlySavings+monthlyInvestments > monthlyIncome {
		return SpendingResult{}, engine.Errorf(engine.InvalidInput, "savings plus investments exceed income")
	}

	res := SpendingResult{
		Spending:      monthlyIncome - monthlySavings - monthlyInvestments,
		SavingsPct:    fincalc.SafeDiv(monthlySavings, monthlyIncome) * 100,
		InvestmentPct: fincalc.SafeDiv(monthlyInvestments, monthlyIncome) * 100,
	}
	res.SpendingPct = 100 - res.SavingsPct - res.InvestmentPct
	res.Healthy = res.SavingsPct+res.InvestmentPct >= 20
	return res, nil
}
