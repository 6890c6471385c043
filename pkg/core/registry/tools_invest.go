package registry

import (
	"finagent/pkg/core/engine"
	"finagent/pkg/core/invest"
)

func (r *Registry) registerInvestTools() {
	r.add(engine.ToolSpec{
		Name:        "calculate_sip_returns",
		Description: "SIP projection with optional annual step-up, compounding at the monthly-equivalent rate.",
		Params: []engine.ParamSpec{
			{Name: "monthly_amount", Type: engine.ParamNumber, Description: "starting monthly contribution", Required: true},
			{Name: "annual_step_up_pct", Type: engine.ParamNumber, Description: "contribution increase at each 12-month anniversary, percent"},
			{Name: "expected_return_pct", Type: engine.ParamNumber, Description: "expected annual return percent", Required: true},
			{Name: "duration_months", Type: engine.ParamInteger, Description: "investment duration in months", Required: true},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			MonthlyAmount     float64 `json:"monthly_amount"`
			AnnualStepUpPct   float64 `json:"annual_step_up_pct"`
			ExpectedReturnPct float64 `json:"expected_return_pct"`
			DurationMonths    int     `json:"duration_months"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := invest.SIPReturns(args.MonthlyAmount, args.AnnualStepUpPct, args.ExpectedReturnPct, args.DurationMonths)
		if err != nil {
			return nil, err
		}
		yearly := make([]Result, 0, len(res.Yearly))
		for _, row := range res.Yearly {
			yearly = append(yearly, Result{
				"year":             row.Year,
				"monthly_amount":   rupees(row.MonthlyAmount),
				"invested_to_date": rupees(row.InvestedToDate),
				"value_at_end":     rupees(row.ValueAtYearEnd),
			})
		}
		return Result{
			"total_invested": rupees(res.TotalInvested),
			"final_value":    rupees(res.FinalValue),
			"gain":           rupees(res.Gain),
			"yearly":         yearly,
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "calculate_sip_for_goal",
		Description: "Level monthly SIP needed to reach a target amount over a duration.",
		Params: []engine.ParamSpec{
			{Name: "target_amount", Type: engine.ParamNumber, Description: "target corpus in INR", Required: true},
			{Name: "duration_months", Type: engine.ParamInteger, Description: "months available", Required: true},
			{Name: "expected_return_pct", Type: engine.ParamNumber, Description: "expected annual return percent", Required: true},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			TargetAmount      float64 `json:"target_amount"`
			DurationMonths    int     `json:"duration_months"`
			ExpectedReturnPct float64 `json:"expected_return_pct"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		monthly, err := invest.SIPForGoal(args.TargetAmount, args.DurationMonths, args.ExpectedReturnPct)
		if err != nil {
			return nil, err
		}
		return Result{
			"target_amount":   rupees(args.TargetAmount),
			"monthly_sip":     rupees(monthly),
			"duration_months": args.DurationMonths,
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "calculate_goal_corpus",
		Description: "Inflation-adjusted goal corpus with the SIP and lump sum needed after crediting existing savings.",
		Params: []engine.ParamSpec{
			{Name: "goal_amount_today", Type: engine.ParamNumber, Description: "goal in today's money", Required: true},
			{Name: "years_to_goal", Type: engine.ParamInteger, Description: "years until the goal", Required: true},
			{Name: "inflation_rate", Type: engine.ParamNumber, Description: "annual inflation percent", Required: true},
			{Name: "expected_return", Type: engine.ParamNumber, Description: "annual return percent", Required: true},
			{Name: "existing_corpus", Type: engine.ParamNumber, Description: "savings already earmarked for this goal"},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			GoalAmountToday float64 `json:"goal_amount_today"`
			YearsToGoal     int     `json:"years_to_goal"`
			InflationRate   float64 `json:"inflation_rate"`
			ExpectedReturn  float64 `json:"expected_return"`
			ExistingCorpus  float64 `json:"existing_corpus"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := invest.GoalCorpus(args.GoalAmountToday, args.YearsToGoal, args.InflationRate, args.ExpectedReturn, args.ExistingCorpus)
		if err != nil {
			return nil, err
		}
		return Result{
			"goal_today":         rupees(res.GoalToday),
			"inflated_goal":      rupees(res.InflatedGoal),
			"existing_grows_to":  rupees(res.ExistingGrowsTo),
			"remaining_needed":   rupees(res.RemainingNeeded),
			"monthly_sip_needed": rupees(res.MonthlySIPNeeded),
			"lump_sum_needed":    rupees(res.LumpSumNeeded),
		}, nil
	})
}
