package portfolio

import (
	"math"
	"sort"

	"finagent/pkg/core/engine"
	"finagent/pkg/core/fincalc"
)

// =============================================================================
// PORTFOLIO ANALYSIS: CAP/SECTOR WEIGHTS
// =============================================================================

// Market-cap class thresholds in crore.
const (
	largeCapFloorCr = 20000.0
	midCapFloorCr   = 5000.0
)

// CapClass buckets a listed company by market capitalisation.
type CapClass string

const (
	CapLarge CapClass = "LARGE"
	CapMid   CapClass = "MID"
	CapSmall CapClass = "SMALL"
)

// Holding is one position in the caller's portfolio.
type Holding struct {
	Symbol   string
	Quantity float64
}

// Quote carries the market context a holding is valued against. Prices are
// supplied by the caller; the engine never fetches them.
type Quote struct {
	LastPrice   float64
	MarketCapCr float64
	Sector      string
}

// PriceSnapshot maps symbol to its quote at a single point in time.
type PriceSnapshot map[string]Quote

// PositionValue is one valued holding in the analysis.
type PositionValue struct {
	Symbol    string
	Quantity  float64
	Price     float64
	Value     float64
	WeightPct float64
	CapClass  CapClass
	Sector    string
}

// AllocationResult is the value-weighted portfolio breakdown.
type AllocationResult struct {
	TotalValue  float64
	Positions   []PositionValue
	ByCapPct    map[CapClass]float64
	BySectorPct map[string]float64
}

func classifyCap(marketCapCr float64) CapClass {
	switch {
	case marketCapCr >= largeCapFloorCr:
		return CapLarge
	case marketCapCr >= midCapFloorCr:
		return CapMid
	default:
		return CapSmall
	}
}

// AnalyzeAllocation values every holding against the snapshot and reports the
// weight of each market-cap class and sector. A holding whose symbol is
// missing from the snapshot is a hard error rather than a silent skip.
func AnalyzeAllocation(holdings []Holding, snapshot PriceSnapshot) (AllocationResult, error) {
	if len(holdings) == 0 {
		return AllocationResult{}, engine.Errorf(engine.InvalidInput, "holdings list is empty")
	}

	res := AllocationResult{
		ByCapPct:    make(map[CapClass]float64),
		BySectorPct: make(map[string]float64),
	}
	for _, h := range holdings {
		if h.Symbol == "" {
			return AllocationResult{}, engine.Errorf(engine.InvalidInput, "holding with empty symbol")
		}
		if h.Quantity <= 0 {
			return AllocationResult{}, engine.Errorf(engine.InvalidInput, "holding %s has non-positive quantity %f", h.Symbol, h.Quantity)
		}
		q, ok := snapshot[h.Symbol]
		if !ok {
			return AllocationResult{}, engine.Errorf(engine.IncompletePriceData, "no quote for %s in price snapshot", h.Symbol)
		}
		if q.LastPrice <= 0 {
			return AllocationResult{}, engine.Errorf(engine.IncompletePriceData, "quote for %s has non-positive price %f", h.Symbol, q.LastPrice)
		}

		value := h.Quantity * q.LastPrice
		res.TotalValue += value
		res.Positions = append(res.Positions, PositionValue{
			Symbol:   h.Symbol,
			Quantity: h.Quantity,
			Price:    q.LastPrice,
			Value:    value,
			CapClass: classifyCap(q.MarketCapCr),
			Sector:   q.Sector,
		})
	}

	for i := range res.Positions {
		p := &res.Positions[i]
		p.WeightPct = fincalc.SafeDiv(p.Value, res.TotalValue) * 100
		res.ByCapPct[p.CapClass] += p.WeightPct
		res.BySectorPct[p.Sector] += p.WeightPct
	}
	sort.Slice(res.Positions, func(i, j int) bool {
		return res.Positions[i].Value > res.Positions[j].Value
	})
	return res, nil
}

// =============================================================================
// AGE-BASED TARGETS AND REBALANCING
// =============================================================================

// RiskTolerance shifts the equity target around the rule-of-thumb baseline.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "CONSERVATIVE"
	RiskModerate     RiskTolerance = "MODERATE"
	RiskAggressive   RiskTolerance = "AGGRESSIVE"
)

// RuleVariant is the N-minus-age constant. The caller must choose one; there
// is no default.
type RuleVariant int

const (
	Rule100 RuleVariant = 100
	Rule110 RuleVariant = 110
	Rule120 RuleVariant = 120
)

// Equity exposure bounds for the age-based rules.
const (
	minEquityPct = 20.0
	maxEquityPct = 80.0
)

// EquityBreakdown sub-allocates the equity sleeve.
type EquityBreakdown struct {
	LargeCapPct      float64
	MidCapPct        float64
	SmallCapPct      float64
	InternationalPct float64
}

// DebtBreakdown sub-allocates the debt sleeve.
type DebtBreakdown struct {
	PPFEPFPct        float64
	DebtFundsPct     float64
	FixedDepositsPct float64
	BondsPct         float64
}

// AgeAllocation is the recommended split for an investor.
type AgeAllocation struct {
	EquityPct float64
	DebtPct   float64
	Equity    EquityBreakdown
	Debt      DebtBreakdown
}

func riskAdjustment(risk RiskTolerance) (float64, error) {
	switch risk {
	case RiskConservative:
		return -10, nil
	case RiskModerate:
		return 0, nil
	case RiskAggressive:
		return 10, nil
	default:
		return 0, engine.Errorf(engine.InvalidInput, "unknown risk tolerance %q", risk)
	}
}

// AgeBasedAllocation applies the N-minus-age rule: equity = rule − age,
// clamped to [20,80] before and after the risk adjustment. The equity sleeve
// is sub-allocated by age bracket, the debt sleeve by a fixed instrument
// table.
func AgeBasedAllocation(age int, risk RiskTolerance, rule RuleVariant) (AgeAllocation, error) {
	if age < 18 || age > 100 {
		return AgeAllocation{}, engine.Errorf(engine.InvalidInput, "age %d outside [18,100]", age)
	}
	if rule != Rule100 && rule != Rule110 && rule != Rule120 {
		return AgeAllocation{}, engine.Errorf(engine.InvalidInput, "rule variant must be 100, 110, or 120, got %d", rule)
	}
	adj, err := riskAdjustment(risk)
	if err != nil {
		return AgeAllocation{}, err
	}

	equity := fincalc.Clamp(float64(rule)-float64(age), minEquityPct, maxEquityPct)
	equity = fincalc.Clamp(equity+adj, minEquityPct, maxEquityPct)

	res := AgeAllocation{
		EquityPct: equity,
		DebtPct:   100 - equity,
		Debt: DebtBreakdown{
			PPFEPFPct:        40,
			DebtFundsPct:     30,
			FixedDepositsPct: 20,
			BondsPct:         10,
		},
	}
	switch {
	case age < 35:
		res.Equity = EquityBreakdown{LargeCapPct: 40, MidCapPct: 35, SmallCapPct: 15, InternationalPct: 10}
	case age <= 50:
		res.Equity = EquityBreakdown{LargeCapPct: 50, MidCapPct: 30, SmallCapPct: 10, InternationalPct: 10}
	default:
		res.Equity = EquityBreakdown{LargeCapPct: 60, MidCapPct: 25, SmallCapPct: 5, InternationalPct: 10}
	}
	return res, nil
}

// Rebalancing acts only when the drift exceeds this many percentage points.
const rebalanceThresholdPct = 5.0

// RebalanceAction is one recommended trade.
type RebalanceAction struct {
	AssetClass   string // "EQUITY" or "DEBT"
	Direction    string // "SELL" or "BUY"
	DeviationPct float64
	Amount       float64
}

// RebalanceResult compares the current split to the age-based target.
type RebalanceResult struct {
	TargetEquityPct    float64
	TargetDebtPct      float64
	EquityDeviationPct float64 // current minus target, signed
	DebtDeviationPct   float64
	NeedsRebalancing   bool
	Actions            []RebalanceAction
}

// SuggestRebalancing measures drift from the moderate age-based target and
// recommends trades when the deviation exceeds the threshold. SELL when the
// class is overweight, BUY when underweight.
func SuggestRebalancing(curEquityPct, curDebtPct float64, age int, portfolioValue float64, rule RuleVariant) (RebalanceResult, error) {
	if portfolioValue <= 0 {
		return RebalanceResult{}, engine.Errorf(engine.InvalidInput, "portfolio value must be positive, got %f", portfolioValue)
	}
	if curEquityPct < 0 || curEquityPct > 100 || curDebtPct < 0 || curDebtPct > 100 {
		return RebalanceResult{}, engine.Errorf(engine.InvalidInput, "allocation percentages must lie in [0,100]")
	}
	if total := curEquityPct + curDebtPct; total < 99 || total > 101 {
		return RebalanceResult{}, engine.Errorf(engine.InvalidInput, "current allocation sums to %.2f%%, expected 100%%", total)
	}

	target, err := AgeBasedAllocation(age, RiskModerate, rule)
	if err != nil {
		return RebalanceResult{}, err
	}

	res := RebalanceResult{
		TargetEquityPct:    target.EquityPct,
		TargetDebtPct:      target.DebtPct,
		EquityDeviationPct: curEquityPct - target.EquityPct,
		DebtDeviationPct:   curDebtPct - target.DebtPct,
	}
	res.NeedsRebalancing = math.Abs(res.EquityDeviationPct) > rebalanceThresholdPct

	if res.NeedsRebalancing {
		res.Actions = append(res.Actions,
			rebalanceAction("EQUITY", res.EquityDeviationPct, portfolioValue),
			rebalanceAction("DEBT", res.DebtDeviationPct, portfolioValue),
		)
	}
	return res, nil
}

func rebalanceAction(class string, deviationPct, portfolioValue float64) RebalanceAction {
	dir := "BUY"
	if deviationPct > 0 {
		dir = "SELL"
	}
	return RebalanceAction{
		AssetClass:   class,
		Direction:    dir,
		DeviationPct: deviationPct,
		Amount:       math.Abs(deviationPct) / 100 * portfolioValue,
	}
}
