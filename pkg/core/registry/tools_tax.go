package registry

import (
	"strings"

	"finagent/pkg/core/capitalgains"
	"finagent/pkg/core/engine"
	"finagent/pkg/core/tax"
)

// defaultFY is used when a tool call omits the financial year.
const defaultFY = "2024-25"

// claimArgs is the shared deduction surface of the tax tools. Zero-valued
// sections are simply not claimed.
type claimArgs struct {
	Section80C       float64 `json:"section_80c"`
	HealthPremium    float64 `json:"health_insurance_premium"`
	SeniorCitizen    bool    `json:"senior_citizen"`
	NPSSelf          float64 `json:"nps_contribution"`
	NPSEmployer      float64 `json:"employer_nps_contribution"`
	HomeLoanInterest float64 `json:"home_loan_interest"`
	LetOutProperty   bool    `json:"let_out_property"`
}

func (a claimArgs) claims() []tax.DeductionClaim {
	var claims []tax.DeductionClaim
	if a.Section80C > 0 {
		claims = append(claims, tax.Section80C{Amount: a.Section80C})
	}
	if a.HealthPremium > 0 {
		claims = append(claims, tax.Section80D{Premium: a.HealthPremium, SeniorCitizen: a.SeniorCitizen})
	}
	if a.NPSSelf > 0 {
		claims = append(claims, tax.Section80CCD1B{Amount: a.NPSSelf})
	}
	if a.NPSEmployer > 0 {
		claims = append(claims, tax.Section80CCD2{EmployerContribution: a.NPSEmployer})
	}
	if a.HomeLoanInterest > 0 {
		claims = append(claims, tax.Section24{Interest: a.HomeLoanInterest, LetOut: a.LetOutProperty})
	}
	return claims
}

var claimParams = []engine.ParamSpec{
	{Name: "section_80c", Type: engine.ParamNumber, Description: "80C investments: PPF, ELSS, EPF, life insurance, home-loan principal"},
	{Name: "health_insurance_premium", Type: engine.ParamNumber, Description: "80D health insurance premium"},
	{Name: "senior_citizen", Type: engine.ParamBoolean, Description: "true when an insured party is a senior citizen (raises the 80D cap)"},
	{Name: "nps_contribution", Type: engine.ParamNumber, Description: "own NPS contribution under 80CCD(1B)"},
	{Name: "employer_nps_contribution", Type: engine.ParamNumber, Description: "employer NPS contribution under 80CCD(2)"},
	{Name: "home_loan_interest", Type: engine.ParamNumber, Description: "Section 24 home-loan interest"},
	{Name: "let_out_property", Type: engine.ParamBoolean, Description: "true when the property is let out (uncapped Section 24)"},
}

func financialYearOrDefault(fy string) string {
	if fy == "" {
		return defaultFY
	}
	return fy
}

func (r *Registry) registerTaxTools() {
	r.add(engine.ToolSpec{
		Name:        "compute_slab_tax",
		Description: "Marginal slab tax on taxable income for a regime and financial year, before surcharge and cess.",
		Params: []engine.ParamSpec{
			{Name: "income", Type: engine.ParamNumber, Description: "taxable income in INR", Required: true},
			{Name: "regime", Type: engine.ParamString, Description: "tax regime", Required: true, Enum: []string{"OLD", "NEW"}},
			{Name: "financial_year", Type: engine.ParamString, Description: "financial year, default " + defaultFY},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			Income        float64 `json:"income"`
			Regime        string  `json:"regime"`
			FinancialYear string  `json:"financial_year"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		fy := financialYearOrDefault(args.FinancialYear)
		table, err := tax.ForYear(fy, tax.Regime(strings.ToUpper(args.Regime)))
		if err != nil {
			return nil, err
		}
		amount, err := tax.ComputeSlabTax(args.Income, table)
		if err != nil {
			return nil, err
		}
		return Result{
			"financial_year": fy,
			"regime":         string(table.Regime),
			"income":         rupees(args.Income),
			"slab_tax":       rupees(amount),
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "compute_deductions",
		Description: "Eligible deduction per section under a regime; the New regime allows only the standard deduction.",
		Params: append([]engine.ParamSpec{
			{Name: "regime", Type: engine.ParamString, Description: "tax regime", Required: true, Enum: []string{"OLD", "NEW"}},
			{Name: "basic_salary", Type: engine.ParamNumber, Description: "annual basic salary, needed for the 80CCD(2) cap"},
		}, claimParams...),
	}, func(raw string) (Result, error) {
		var args struct {
			claimArgs
			Regime      string  `json:"regime"`
			BasicSalary float64 `json:"basic_salary"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		bd, err := tax.ComputeDeductions(args.claims(), tax.Regime(strings.ToUpper(args.Regime)), args.BasicSalary)
		if err != nil {
			return nil, err
		}
		bySection := map[string]float64{}
		for section, amount := range bd.BySection {
			bySection[section] = rupees(amount)
		}
		return Result{
			"regime":             string(bd.Regime),
			"standard_deduction": rupees(bd.StandardDeduction),
			"by_section":         bySection,
			"itemized_total":     rupees(bd.Itemized),
			"total":              rupees(bd.Total),
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "compare_regimes",
		Description: "Net tax under both regimes including surcharge and cess, with the cheaper regime recommended.",
		Params: append([]engine.ParamSpec{
			{Name: "gross_salary", Type: engine.ParamNumber, Description: "annual gross salary", Required: true},
			{Name: "other_income", Type: engine.ParamNumber, Description: "interest, rental, and other taxable income"},
			{Name: "basic_salary", Type: engine.ParamNumber, Description: "annual basic salary"},
			{Name: "hra_received", Type: engine.ParamNumber, Description: "annual HRA received"},
			{Name: "rent_paid", Type: engine.ParamNumber, Description: "annual rent paid"},
			{Name: "metro_city", Type: engine.ParamBoolean, Description: "true for Delhi/Mumbai/Kolkata/Chennai"},
			{Name: "financial_year", Type: engine.ParamString, Description: "financial year, default " + defaultFY},
		}, claimParams...),
	}, func(raw string) (Result, error) {
		var args struct {
			claimArgs
			GrossSalary   float64 `json:"gross_salary"`
			OtherIncome   float64 `json:"other_income"`
			BasicSalary   float64 `json:"basic_salary"`
			HRAReceived   float64 `json:"hra_received"`
			RentPaid      float64 `json:"rent_paid"`
			MetroCity     bool    `json:"metro_city"`
			FinancialYear string  `json:"financial_year"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}

		var exemptions float64
		if args.HRAReceived > 0 {
			hra, err := tax.HRAExemption(args.BasicSalary, args.HRAReceived, args.RentPaid, args.MetroCity)
			if err != nil {
				return nil, err
			}
			exemptions = hra.Exempt
		}

		cmp, err := tax.CompareRegimes(tax.IncomeProfile{
			GrossSalary: args.GrossSalary,
			OtherIncome: args.OtherIncome,
			BasicSalary: args.BasicSalary,
			Exemptions:  exemptions,
			Claims:      args.claims(),
		}, financialYearOrDefault(args.FinancialYear))
		if err != nil {
			return nil, err
		}
		return Result{
			"financial_year":  cmp.FinancialYear,
			"old_regime":      regimeResult(cmp.Old),
			"new_regime":      regimeResult(cmp.New),
			"savings":         rupees(cmp.Delta),
			"recommended":     string(cmp.Recommended),
			"hra_exempt_used": rupees(exemptions),
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "calculate_hra_exemption",
		Description: "Exempt portion of house rent allowance: min of actual HRA, rent minus 10% of basic, and 50%/40% of basic.",
		Params: []engine.ParamSpec{
			{Name: "basic_salary", Type: engine.ParamNumber, Description: "annual basic salary", Required: true},
			{Name: "hra_received", Type: engine.ParamNumber, Description: "annual HRA received", Required: true},
			{Name: "rent_paid", Type: engine.ParamNumber, Description: "annual rent paid", Required: true},
			{Name: "metro_city", Type: engine.ParamBoolean, Description: "true for Delhi/Mumbai/Kolkata/Chennai"},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			BasicSalary float64 `json:"basic_salary"`
			HRAReceived float64 `json:"hra_received"`
			RentPaid    float64 `json:"rent_paid"`
			MetroCity   bool    `json:"metro_city"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		hra, err := tax.HRAExemption(args.BasicSalary, args.HRAReceived, args.RentPaid, args.MetroCity)
		if err != nil {
			return nil, err
		}
		return Result{
			"exempt":               rupees(hra.Exempt),
			"taxable":              rupees(hra.Taxable),
			"actual_hra":           rupees(hra.ActualHRA),
			"rent_minus_ten_pct":   rupees(hra.RentMinusTenPct),
			"basic_salary_portion": rupees(hra.BasicSalaryPortion),
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "compute_capital_gains_tax",
		Description: "Indian capital gains tax for an equity or debt disposal, with term classified from the holding period.",
		Params: []engine.ParamSpec{
			{Name: "asset_class", Type: engine.ParamString, Description: "asset class", Required: true, Enum: []string{"EQUITY", "DEBT"}},
			{Name: "purchase_date", Type: engine.ParamString, Description: "acquisition date, YYYY-MM-DD", Required: true},
			{Name: "sale_date", Type: engine.ParamString, Description: "disposal date, YYYY-MM-DD", Required: true},
			{Name: "purchase_price", Type: engine.ParamNumber, Description: "total cost basis in INR", Required: true},
			{Name: "sale_price", Type: engine.ParamNumber, Description: "total sale value in INR", Required: true},
			{Name: "marginal_slab_rate", Type: engine.ParamNumber, Description: "caller's marginal slab rate in percent (e.g. 30 for the 30% slab); required for debt STCG"},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			AssetClass       string   `json:"asset_class"`
			PurchaseDate     string   `json:"purchase_date"`
			SaleDate         string   `json:"sale_date"`
			PurchasePrice    float64  `json:"purchase_price"`
			SalePrice        float64  `json:"sale_price"`
			MarginalSlabRate *float64 `json:"marginal_slab_rate"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		acquired, err := parseDate("purchase_date", args.PurchaseDate)
		if err != nil {
			return nil, err
		}
		disposed, err := parseDate("sale_date", args.SaleDate)
		if err != nil {
			return nil, err
		}
		res, err := capitalgains.ComputeTax(capitalgains.GainEvent{
			Asset:            capitalgains.AssetClass(strings.ToUpper(args.AssetClass)),
			AcquiredOn:       acquired,
			DisposedOn:       disposed,
			CostBasis:        args.PurchasePrice,
			SaleValue:        args.SalePrice,
			MarginalSlabRate: args.MarginalSlabRate,
		})
		if err != nil {
			return nil, err
		}
		return Result{
			"term":           string(res.Term),
			"gain":           rupees(res.Gain),
			"taxable_gain":   rupees(res.TaxableGain),
			"rate_pct":       pct(res.Rate * 100),
			"tax":            rupees(res.Tax),
			"exemption_used": rupees(res.ExemptUsed),
		}, nil
	})
}

func regimeResult(rt tax.RegimeTax) Result {
	return Result{
		"taxable_income": rupees(rt.TaxableIncome),
		"deductions":     rupees(rt.Deductions.Total),
		"slab_tax":       rupees(rt.SlabTax),
		"surcharge":      rupees(rt.Surcharge),
		"cess":           rupees(rt.Cess),
		"total_tax":      rupees(rt.Total),
	}
}
