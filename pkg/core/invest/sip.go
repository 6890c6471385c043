package invest

import (
	"math"

	"finagent/pkg/core/engine"
	"finagent/pkg/core/fincalc"
)

// =============================================================================
// SIP SIMULATION AND GOAL SIZING
// =============================================================================

// YearRow is one year of the SIP projection.
type YearRow struct {
	Year           int
	MonthlyAmount  float64 // contribution in force during the year
	InvestedToDate float64
	ValueAtYearEnd float64
}

// SIPResult is the full projection of a systematic investment plan.
type SIPResult struct {
	StartingMonthly float64
	Months          int
	TotalInvested   float64
	FinalValue      float64
	Gain            float64
	Yearly          []YearRow
}

// SIPReturns simulates a monthly SIP at the monthly-equivalent of the annual
// return. Contributions are credited at the end of each month and stepped up
// by stepUpPct at every 12-month anniversary. With a zero step-up the result
// agrees with the closed-form ordinary-annuity future value.
func SIPReturns(monthly, stepUpPct, returnPct float64, months int) (SIPResult, error) {
	if monthly <= 0 {
		return SIPResult{}, engine.Errorf(engine.InvalidInput, "monthly amount must be positive, got %f", monthly)
	}
	if months <= 0 {
		return SIPResult{}, engine.Errorf(engine.InvalidInput, "duration must be positive, got %d months", months)
	}
	if stepUpPct < 0 {
		return SIPResult{}, engine.Errorf(engine.InvalidInput, "step-up must be non-negative, got %f", stepUpPct)
	}
	if returnPct < 0 {
		return SIPResult{}, engine.Errorf(engine.InvalidRate, "expected return must be non-negative, got %f", returnPct)
	}

	rate := fincalc.MonthlyRate(returnPct)
	res := SIPResult{StartingMonthly: monthly, Months: months}

	contrib := monthly
	value := 0.0
	for m := 1; m <= months; m++ {
		value = value*(1+rate) + contrib
		res.TotalInvested += contrib
		if m%12 == 0 {
			res.Yearly = append(res.Yearly, YearRow{
				Year:           m / 12,
				MonthlyAmount:  contrib,
				InvestedToDate: res.TotalInvested,
				ValueAtYearEnd: value,
			})
			contrib *= 1 + stepUpPct/100
		}
	}
	if months%12 != 0 {
		res.Yearly = append(res.Yearly, YearRow{
			Year:           months/12 + 1,
			MonthlyAmount:  contrib,
			InvestedToDate: res.TotalInvested,
			ValueAtYearEnd: value,
		})
	}

	res.FinalValue = value
	res.Gain = value - res.TotalInvested
	return res, nil
}

// SIPForGoal inverts the ordinary-annuity future value for the level monthly
// contribution that reaches the target.
func SIPForGoal(target float64, months int, returnPct float64) (float64, error) {
	if months <= 0 {
		return 0, engine.Errorf(engine.UnreachableGoal, "duration must be positive, got %d months", months)
	}
	if returnPct < 0 {
		return 0, engine.Errorf(engine.InvalidRate, "expected return must be non-negative, got %f", returnPct)
	}

	rate := fincalc.MonthlyRate(returnPct)
	var contribution float64
	if rate == 0 {
		contribution = target / float64(months)
	} else {
		contribution = target * rate / (math.Pow(1+rate, float64(months)) - 1)
	}
	if contribution <= 0 {
		return 0, engine.Errorf(engine.UnreachableGoal, "target %f is not reachable with a positive contribution", target)
	}
	return contribution, nil
}

// GoalResult sizes the investment needed for a future goal.
type GoalResult struct {
	GoalToday        float64
	InflatedGoal     float64
	ExistingGrowsTo  float64
	RemainingNeeded  float64
	MonthlySIPNeeded float64
	LumpSumNeeded    float64 // amount invested today that covers the remainder
}

// GoalCorpus inflates a today-money target to the goal date, credits the
// growth of any existing corpus, and sizes the SIP and equivalent lump sum
// for the remainder. A goal already covered by the existing corpus needs no
// further investment.
func GoalCorpus(goalToday float64, years int, inflationPct, returnPct, existingCorpus float64) (GoalResult, error) {
	if goalToday <= 0 {
		return GoalResult{}, engine.Errorf(engine.InvalidInput, "goal amount must be positive, got %f", goalToday)
	}
	if years <= 0 {
		return GoalResult{}, engine.Errorf(engine.InvalidInput, "years to goal must be positive, got %d", years)
	}
	if inflationPct < 0 {
		return GoalResult{}, engine.Errorf(engine.InvalidRate, "inflation must be non-negative, got %f", inflationPct)
	}
	if returnPct <= 0 {
		return GoalResult{}, engine.Errorf(engine.InvalidRate, "expected return must be positive, got %f", returnPct)
	}
	if existingCorpus < 0 {
		return GoalResult{}, engine.Errorf(engine.InvalidInput, "existing corpus must be non-negative")
	}

	res := GoalResult{
		GoalToday:       goalToday,
		InflatedGoal:    fincalc.InflateValue(goalToday, inflationPct, years),
		ExistingGrowsTo: fincalc.CompoundFV(existingCorpus, returnPct, years),
	}
	res.RemainingNeeded = math.Max(0, res.InflatedGoal-res.ExistingGrowsTo)
	if res.RemainingNeeded == 0 {
		return res, nil
	}

	sip, err := SIPForGoal(res.RemainingNeeded, years*12, returnPct)
	if err != nil {
		return GoalResult{}, err
	}
	res.MonthlySIPNeeded = sip
	res.LumpSumNeeded = res.RemainingNeeded / math.Pow(1+returnPct/100, float64(years))
	return res, nil
}
