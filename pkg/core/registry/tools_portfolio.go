package registry

import (
	"strings"

	"finagent/pkg/core/engine"
	"finagent/pkg/core/portfolio"
)

func (r *Registry) registerPortfolioTools() {
	r.add(engine.ToolSpec{
		Name:        "analyze_portfolio_allocation",
		Description: "Value-weighted portfolio breakdown by market-cap class and sector against a caller-supplied price snapshot.",
		Params: []engine.ParamSpec{
			{Name: "holdings", Type: engine.ParamArray, Description: "array of {symbol, quantity}", Required: true},
			{Name: "price_snapshot", Type: engine.ParamObject, Description: "map of symbol to {last_price, market_cap_cr, sector}", Required: true},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			Holdings []struct {
				Symbol   string  `json:"symbol"`
				Quantity float64 `json:"quantity"`
			} `json:"holdings"`
			PriceSnapshot map[string]struct {
				LastPrice   float64 `json:"last_price"`
				MarketCapCr float64 `json:"market_cap_cr"`
				Sector      string  `json:"sector"`
			} `json:"price_snapshot"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}

		holdings := make([]portfolio.Holding, 0, len(args.Holdings))
		for _, h := range args.Holdings {
			holdings = append(holdings, portfolio.Holding{Symbol: h.Symbol, Quantity: h.Quantity})
		}
		snapshot := make(portfolio.PriceSnapshot, len(args.PriceSnapshot))
		for symbol, q := range args.PriceSnapshot {
			snapshot[symbol] = portfolio.Quote{LastPrice: q.LastPrice, MarketCapCr: q.MarketCapCr, Sector: q.Sector}
		}

		res, err := portfolio.AnalyzeAllocation(holdings, snapshot)
		if err != nil {
			return nil, err
		}
		positions := make([]Result, 0, len(res.Positions))
		for _, p := range res.Positions {
			positions = append(positions, Result{
				"symbol":     p.Symbol,
				"quantity":   p.Quantity,
				"price":      p.Price,
				"value":      rupees(p.Value),
				"weight_pct": pct(p.WeightPct),
				"cap_class":  string(p.CapClass),
				"sector":     p.Sector,
			})
		}
		byCap := map[string]float64{}
		for class, w := range res.ByCapPct {
			byCap[string(class)] = pct(w)
		}
		bySector := map[string]float64{}
		for sector, w := range res.BySectorPct {
			bySector[sector] = pct(w)
		}
		return Result{
			"total_value":   rupees(res.TotalValue),
			"positions":     positions,
			"by_cap_pct":    byCap,
			"by_sector_pct": bySector,
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "calculate_age_based_allocation",
		Description: "Equity/debt split from the N-minus-age rule with risk adjustment and sleeve breakdowns.",
		Params: []engine.ParamSpec{
			{Name: "age", Type: engine.ParamInteger, Description: "investor age, 18-100", Required: true},
			{Name: "risk_tolerance", Type: engine.ParamString, Description: "risk tolerance", Required: true, Enum: []string{"CONSERVATIVE", "MODERATE", "AGGRESSIVE"}},
			{Name: "rule_variant", Type: engine.ParamInteger, Description: "N-minus-age constant", Required: true, Enum: []string{"100", "110", "120"}},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			Age           int    `json:"age"`
			RiskTolerance string `json:"risk_tolerance"`
			RuleVariant   int    `json:"rule_variant"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := portfolio.AgeBasedAllocation(args.Age,
			portfolio.RiskTolerance(strings.ToUpper(args.RiskTolerance)), portfolio.RuleVariant(args.RuleVariant))
		if err != nil {
			return nil, err
		}
		return Result{
			"equity_pct": res.EquityPct,
			"debt_pct":   res.DebtPct,
			"equity_breakdown": Result{
				"large_cap":     res.Equity.LargeCapPct,
				"mid_cap":       res.Equity.MidCapPct,
				"small_cap":     res.Equity.SmallCapPct,
				"international": res.Equity.InternationalPct,
			},
			"debt_breakdown": Result{
				"ppf_epf":        res.Debt.PPFEPFPct,
				"debt_funds":     res.Debt.DebtFundsPct,
				"fixed_deposits": res.Debt.FixedDepositsPct,
				"bonds":          res.Debt.BondsPct,
			},
		}, nil
	})

	r.add(engine.ToolSpec{
		Name:        "suggest_rebalancing",
		Description: "Rebalancing trades when the current split drifts more than 5 points from the age-based target.",
		Params: []engine.ParamSpec{
			{Name: "current_equity_pct", Type: engine.ParamNumber, Description: "current equity percent", Required: true},
			{Name: "current_debt_pct", Type: engine.ParamNumber, Description: "current debt percent", Required: true},
			{Name: "age", Type: engine.ParamInteger, Description: "investor age, 18-100", Required: true},
			{Name: "portfolio_value", Type: engine.ParamNumber, Description: "total portfolio value in INR", Required: true},
			{Name: "rule_variant", Type: engine.ParamInteger, Description: "N-minus-age constant", Required: true, Enum: []string{"100", "110", "120"}},
		},
	}, func(raw string) (Result, error) {
		var args struct {
			CurrentEquityPct float64 `json:"current_equity_pct"`
			CurrentDebtPct   float64 `json:"current_debt_pct"`
			Age              int     `json:"age"`
			PortfolioValue   float64 `json:"portfolio_value"`
			RuleVariant      int     `json:"rule_variant"`
		}
		if err := decode(raw, &args); err != nil {
			return nil, err
		}
		res, err := portfolio.SuggestRebalancing(args.CurrentEquityPct, args.CurrentDebtPct,
			args.Age, args.PortfolioValue, portfolio.RuleVariant(args.RuleVariant))
		if err != nil {
			return nil, err
		}
		actions := make([]Result, 0, len(res.Actions))
		for _, a := range res.Actions {
			actions = append(actions, Result{
				"asset_class":   a.AssetClass,
				"direction":     a.Direction,
				"deviation_pct": pct(a.DeviationPct),
				"amount":        rupees(a.Amount),
			})
		}
		return Result{
			"target_equity_pct":    res.TargetEquityPct,
			"target_debt_pct":      res.TargetDebtPct,
			"equity_deviation_pct": pct(res.EquityDeviationPct),
			"debt_deviation_pct":   pct(res.DebtDeviationPct),
			"needs_rebalancing":    res.NeedsRebalancing,
			"actions":              actions,
		}, nil
	})
}
