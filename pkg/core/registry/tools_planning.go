package registry

import (
	"strings"

	"finagent/pkg/core/engine"
	"finagent/pkg/core/planning"
)

func (r *Registry) registerPlanningTools() {
	r.add(engine.ToolSpec{
		Name:        "calculate_life_insurance_coverage",
		Description: "Term insurance coverage band as a 10-20x multiple of annual income.",
		Params: []engine.ParamSpec{
			{Name: "annual_income", Type: engine.ParamNumber, Description: "annual income in INR", Required: true},
			{Name: "multiplier", Type: engine.ParamNumber, Description: "income multiple, clamped to [10,20]", Required: true},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			AnnualIncome float64 `json:"annual_income"`
			Multiplier   float64 `json:"multiplier"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := planning.LifeInsuranceCoverage(args.AnnualIncome, args.Multiplier)
		if err != nil {
			return nil, err
		}
		return Result{
			"annual_income":   rupees(res.AnnualIncome),
			"multiplier_used": res.MultiplierUsed,
			"minimum":         rupees(res.Minimum),
			"recommended":     rupees(res.Recommended),
			"maximum":         rupees(res.Maximum),
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "calculate_emergency_fund",
		Description: "Emergency fund sized by job stability (3/6/12 base months) and dependents.",
		Params: []engine.ParamSpec{
			{Name: "monthly_expenses", Type: engine.ParamNumber, Description: "monthly household expenses", Required: true},
			{Name: "job_stability", Type: engine.ParamString, Description: "income stability", Required: true, Enum: []string{"STABLE", "MODERATE", "UNSTABLE"}},
			{Name: "dependents", Type: engine.ParamInteger, Description: "number of dependents"},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			MonthlyExpenses float64 `json:"monthly_expenses"`
			JobStability    string  `json:"job_stability"`
			Dependents      int     `json:"dependents"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := planning.EmergencyFund(args.MonthlyExpenses, planning.JobStability(strings.ToUpper(args.JobStability)), args.Dependents)
		if err != nil {
			return nil, err
		}
		return Result{
			"monthly_expenses": rupees(res.MonthlyExpenses),
			"months":           res.Months,
			"amount":           rupees(res.Amount),
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "calculate_retirement_corpus",
		Description: "Corpus needed at retirement: expenses inflated to the retirement date, discounted at the real rate.",
		Params: []engine.ParamSpec{
			{Name: "current_monthly_expenses", Type: engine.ParamNumber, Description: "today's monthly expenses", Required: true},
			{Name: "years_to_retirement", Type: engine.ParamInteger, Description: "years until retirement", Required: true},
			{Name: "inflation_rate", Type: engine.ParamNumber, Description: "annual inflation percent", Required: true},
			{Name: "post_retirement_years", Type: engine.ParamInteger, Description: "years the corpus must last", Required: true},
			{Name: "expected_return", Type: engine.ParamNumber, Description: "annual return percent, must exceed inflation", Required: true},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			CurrentMonthlyExpenses float64 `json:"current_monthly_expenses"`
			YearsToRetirement      int     `json:"years_to_retirement"`
			InflationRate          float64 `json:"inflation_rate"`
			PostRetirementYears    int     `json:"post_retirement_years"`
			ExpectedReturn         float64 `json:"expected_return"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := planning.RetirementCorpus(args.CurrentMonthlyExpenses, args.YearsToRetirement,
			args.InflationRate, args.PostRetirementYears, args.ExpectedReturn)
		if err != nil {
			return nil, err
		}
		return Result{
			"future_monthly_expenses": rupees(res.FutureMonthlyExpenses),
			"future_annual_expenses":  rupees(res.FutureAnnualExpenses),
			"real_rate_pct":           pct(res.RealRatePct),
			"corpus_required":         rupees(res.CorpusRequired),
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "calculate_epf_vpf_returns",
		Description: "EPF/VPF maturity projection with the statutory wage ceiling and EPS diversion applied.",
		Params: []engine.ParamSpec{
			{Name: "basic_salary", Type: engine.ParamNumber, Description: "monthly basic salary", Required: true},
			{Name: "vpf_percentage", Type: engine.ParamNumber, Description: "voluntary PF as percent of full basic"},
			{Name: "years", Type: engine.ParamInteger, Description: "contribution years", Required: true},
			{Name: "declared_rate", Type: engine.ParamNumber, Description: "declared EPF interest rate percent", Required: true},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			BasicSalary   float64 `json:"basic_salary"`
			VPFPercentage float64 `json:"vpf_percentage"`
			Years         int     `json:"years"`
			DeclaredRate  float64 `json:"declared_rate"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := planning.EPFVPFProjection(args.BasicSalary, args.VPFPercentage, args.Years, args.DeclaredRate)
		if err != nil {
			return nil, err
		}
		return Result{
			"employee_epf_monthly": rupees(res.EmployeeEPFMonthly),
			"employer_epf_monthly": rupees(res.EmployerEPFMonthly),
			"eps_monthly":          rupees(res.EPSMonthly),
			"vpf_monthly":          rupees(res.VPFMonthly),
			"total_monthly":        rupees(res.TotalMonthly),
			"total_contributed":    rupees(res.TotalContributed),
			"maturity_value":       rupees(res.MaturityValue),
			"interest_earned":      rupees(res.InterestEarned),
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "calculate_buy_vs_rent",
		Description: "Net cost of buying (EMI outflow less appreciation) against an escalating rent stream.",
		Params: []engine.ParamSpec{
			{Name: "property_value", Type: engine.ParamNumber, Description: "property price in INR", Required: true},
			{Name: "monthly_rent", Type: engine.ParamNumber, Description: "current monthly rent for an equivalent home", Required: true},
			{Name: "down_payment_pct", Type: engine.ParamNumber, Description: "down payment as percent of price", Required: true},
			{Name: "loan_tenure_years", Type: engine.ParamInteger, Description: "loan tenure in years", Required: true},
			{Name: "loan_rate", Type: engine.ParamNumber, Description: "loan interest rate percent", Required: true},
			{Name: "rent_increase_pct", Type: engine.ParamNumber, Description: "annual rent escalation percent"},
			{Name: "appreciation_pct", Type: engine.ParamNumber, Description: "annual property appreciation percent"},
			{Name: "comparison_years", Type: engine.ParamInteger, Description: "horizon of the comparison", Required: true},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			PropertyValue   float64 `json:"property_value"`
			MonthlyRent     float64 `json:"monthly_rent"`
			DownPaymentPct  float64 `json:"down_payment_pct"`
			LoanTenureYears int     `json:"loan_tenure_years"`
			LoanRate        float64 `json:"loan_rate"`
			RentIncreasePct float64 `json:"rent_increase_pct"`
			AppreciationPct float64 `json:"appreciation_pct"`
			ComparisonYears int     `json:"comparison_years"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := planning.BuyVsRent(planning.BuyVsRentInput{
			PropertyValue:   args.PropertyValue,
			MonthlyRent:     args.MonthlyRent,
			DownPaymentPct:  args.DownPaymentPct,
			LoanTenureYears: args.LoanTenureYears,
			LoanRatePct:     args.LoanRate,
			RentIncreasePct: args.RentIncreasePct,
			AppreciationPct: args.AppreciationPct,
			ComparisonYears: args.ComparisonYears,
		})
		if err != nil {
			return nil, err
		}
		return Result{
			"down_payment":       rupees(res.DownPayment),
			"loan_amount":        rupees(res.LoanAmount),
			"monthly_emi":        rupees(res.MonthlyEMI),
			"total_emi_paid":     rupees(res.TotalEMIPaid),
			"property_value_end": rupees(res.PropertyValueEnd),
			"buy_net_cost":       rupees(res.BuyNetCost),
			"total_rent_paid":    rupees(res.TotalRentPaid),
			"rent_net_cost":      rupees(res.RentNetCost),
			"better_option":      res.BetterOption,
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "calculate_affordable_emi",
		Description: "EMI headroom under the FOIR rule and the loan it supports at reference terms.",
		Params: []engine.ParamSpec{
			{Name: "monthly_income", Type: engine.ParamNumber, Description: "net monthly income", Required: true},
			{Name: "existing_emis", Type: engine.ParamNumber, Description: "sum of current monthly EMIs"},
			{Name: "foir_limit_pct", Type: engine.ParamNumber, Description: "FOIR limit percent, typically 40-55", Required: true},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			MonthlyIncome float64 `json:"monthly_income"`
			ExistingEMIs  float64 `json:"existing_emis"`
			FOIRLimitPct  float64 `json:"foir_limit_pct"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := planning.AffordableEMI(args.MonthlyIncome, args.ExistingEMIs, args.FOIRLimitPct)
		if err != nil {
			return nil, err
		}
		return Result{
			"max_total_emi":     rupees(res.MaxTotalEMI),
			"available_for_emi": rupees(res.AvailableForEMI),
			"loan_eligibility":  rupees(res.LoanEligibility),
			"status":            string(res.Status),
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "analyze_spending_ratio",
		Description: "50-30-20 health check on monthly income, savings, and investments.",
		Params: []engine.ParamSpec{
			{Name: "monthly_income", Type: engine.ParamNumber, Description: "net monthly income", Required: true},
			{Name: "monthly_savings", Type: engine.ParamNumber, Description: "monthly savings"},
			{Name: "monthly_investments", Type: engine.ParamNumber, Description: "monthly investments"},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			MonthlyIncome      float64 `json:"monthly_income"`
			MonthlySavings     float64 `json:"monthly_savings"`
			MonthlyInvestments float64 `json:"monthly_investments"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := planning.SpendingRatio(args.MonthlyIncome, args.MonthlySavings, args.MonthlyInvestments)
		if err != nil {
			return nil, err
		}
		return Result{
			"spending":       rupees(res.Spending),
			"spending_pct":   pct(res.SpendingPct),
			"savings_pct":    pct(res.SavingsPct),
			"investment_pct": pct(res.InvestmentPct),
			"healthy":        res.Healthy,
		}, nil
	})
}
