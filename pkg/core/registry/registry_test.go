package registry

import (
	"testing"

	"finagent/pkg/core/engine"
)

// Every tool must dispatch successfully with well-formed arguments.
func TestExecuteEveryTool(t *testing.T) {
	r := New()
	calls := map[string]string{
		"compute_slab_tax":          `{"income": 1200000, "regime": "NEW"}`,
		"compute_deductions":        `{"regime": "OLD", "basic_salary": 600000, "section_80c": 150000}`,
		"compare_regimes":           `{"gross_salary": 1800000, "basic_salary": 720000, "section_80c": 150000}`,
		"calculate_hra_exemption":   `{"basic_salary": 600000, "hra_received": 240000, "rent_paid": 180000, "metro_city": true}`,
		"compute_capital_gains_tax": `{"asset_class": "EQUITY", "purchase_date": "2023-01-10", "sale_date": "2024-06-20", "purchase_price": 500000, "sale_price": 700000}`,

		"calculate_life_insurance_coverage": `{"annual_income": 1200000, "multiplier": 15}`,
		"calculate_emergency_fund":          `{"monthly_expenses": 50000, "job_stability": "STABLE", "dependents": 2}`,
		"calculate_retirement_corpus":       `{"current_monthly_expenses": 40000, "years_to_retirement": 20, "inflation_rate": 6, "post_retirement_years": 25, "expected_return": 8}`,
		"calculate_epf_vpf_returns":         `{"basic_salary": 50000, "vpf_percentage": 5, "years": 20, "declared_rate": 8.15}`,
		"calculate_buy_vs_rent":             `{"property_value": 10000000, "monthly_rent": 30000, "down_payment_pct": 20, "loan_tenure_years": 20, "loan_rate": 8.5, "rent_increase_pct": 5, "appreciation_pct": 6, "comparison_years": 10}`,
		"calculate_affordable_emi":          `{"monthly_income": 150000, "existing_emis": 20000, "foir_limit_pct": 50}`,
		"analyze_spending_ratio":            `{"monthly_income": 100000, "monthly_savings": 10000, "monthly_investments": 15000}`,

		"calculate_sip_returns":  `{"monthly_amount": 5000, "expected_return_pct": 12, "duration_months": 120}`,
		"calculate_sip_for_goal": `{"target_amount": 10000000, "duration_months": 180, "expected_return_pct": 12}`,
		"calculate_goal_corpus":  `{"goal_amount_today": 2500000, "years_to_goal": 10, "inflation_rate": 6, "expected_return": 12}`,

		"analyze_portfolio_allocation":   `{"holdings": [{"symbol": "RELIANCE", "quantity": 10}], "price_snapshot": {"RELIANCE": {"last_price": 2800, "market_cap_cr": 1900000, "sector": "Energy"}}}`,
		"calculate_age_based_allocation": `{"age": 30, "risk_tolerance": "MODERATE", "rule_variant": 110}`,
		"suggest_rebalancing":            `{"current_equity_pct": 80, "current_debt_pct": 20, "age": 40, "portfolio_value": 1000000, "rule_variant": 110}`,
	}

	specs := r.Specs()
	if len(specs) != len(calls) {
		t.Fatalf("registry has %d tools, test covers %d", len(specs), len(calls))
	}
	for _, spec := range specs {
		raw, ok := calls[spec.Name]
		if !ok {
			t.Errorf("no dispatch case for tool %s", spec.Name)
			continue
		}
		res, err := r.Execute(spec.Name, raw)
		if err != nil {
			t.Errorf("%s: %v", spec.Name, err)
			continue
		}
		if len(res) == 0 {
			t.Errorf("%s returned an empty result", spec.Name)
		}
	}
}

// The declared contracts must carry the fields the agent layer translates
// into function declarations.
func TestSpecContracts(t *testing.T) {
	r := New()
	for _, spec := range r.Specs() {
		if spec.Description == "" {
			t.Errorf("%s has no description", spec.Name)
		}
		for _, p := range spec.Params {
			if p.Type == "" {
				t.Errorf("%s.%s has no type", spec.Name, p.Name)
			}
		}
	}

	spec := r.Specs()[0]
	for _, s := range r.Specs() {
		if s.Name == "compare_regimes" {
			spec = s
		}
	}
	p, ok := spec.Param("gross_salary")
	if !ok || !p.Required {
		t.Error("compare_regimes must declare gross_salary as required")
	}
	if _, ok := spec.Param("lottery_winnings"); ok {
		t.Error("Param must miss on undeclared names")
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	r := New()
	if _, err := r.Execute("calculate_lottery_odds", `{}`); !engine.IsKind(err, engine.InvalidInput) {
		t.Errorf("unknown tool must be InvalidInput, got %v", err)
	}
}

// Model-mangled arguments (single quotes, trailing comma, unquoted keys)
// must still execute.
func TestExecuteRepairableArguments(t *testing.T) {
	r := New()
	res, err := r.Execute("calculate_emergency_fund",
		"{'monthly_expenses': 50000, job_stability: 'STABLE', 'dependents': 2,}")
	if err != nil {
		t.Fatal(err)
	}
	if res["amount"] != 200000.0 {
		t.Errorf("amount expected 200000, got %v", res["amount"])
	}
	if res["months"] != 4 {
		t.Errorf("months expected 4, got %v", res["months"])
	}
}

func TestExecuteRoundsToRupee(t *testing.T) {
	r := New()
	res, err := r.Execute("calculate_sip_for_goal",
		`{"target_amount": 1000000, "duration_months": 120, "expected_return_pct": 12}`)
	if err != nil {
		t.Fatal(err)
	}
	monthly, ok := res["monthly_sip"].(float64)
	if !ok {
		t.Fatalf("monthly_sip is %T", res["monthly_sip"])
	}
	if monthly != float64(int64(monthly)) {
		t.Errorf("monetary output must be rupee-rounded, got %f", monthly)
	}
}

func TestExecuteDomainErrorsPassThrough(t *testing.T) {
	r := New()
	_, err := r.Execute("compute_capital_gains_tax",
		`{"asset_class": "DEBT", "purchase_date": "2024-01-01", "sale_date": "2024-06-01", "purchase_price": 100000, "sale_price": 110000}`)
	if !engine.IsKind(err, engine.MissingContext) {
		t.Errorf("debt STCG without slab rate must surface MissingContext, got %v", err)
	}

	_, err = r.Execute("compute_slab_tax", `{"income": 500000, "regime": "NEW", "financial_year": "1999-00"}`)
	if !engine.IsKind(err, engine.MissingContext) {
		t.Errorf("unknown financial year must surface MissingContext, got %v", err)
	}
}

// The slab rate crosses the contract in percent, the unit the parameter
// description promises: 30 means the 30% slab.
func TestExecuteDebtSTCGSlabRateInPercent(t *testing.T) {
	r := New()
	res, err := r.Execute("compute_capital_gains_tax",
		`{"asset_class": "DEBT", "purchase_date": "2024-01-01", "sale_date": "2024-06-01", "purchase_price": 100000, "sale_price": 110000, "marginal_slab_rate": 30}`)
	if err != nil {
		t.Fatal(err)
	}
	if res["tax"] != 3000.0 {
		t.Errorf("30%% slab on a 10000 gain must tax 3000, got %v", res["tax"])
	}
	if res["rate_pct"] != 30.0 {
		t.Errorf("rate_pct expected 30, got %v", res["rate_pct"])
	}
}

func TestExecuteMalformedBeyondRepair(t *testing.T) {
	r := New()
	if _, err := r.Execute("compute_slab_tax", `]]][[`); !engine.IsKind(err, engine.InvalidInput) {
		t.Errorf("unparseable arguments must be InvalidInput, got %v", err)
	}
}
