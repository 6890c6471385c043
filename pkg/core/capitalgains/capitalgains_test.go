package capitalgains

import (
	"math"
	"testing"
	"time"

	"finagent/pkg/core/engine"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// Equity boundary: exactly 365 days is short-term, 366 is long-term.
func TestClassifyEquityBoundary(t *testing.T) {
	acquired := day(2023, 1, 1)
	cases := []struct {
		disposed time.Time
		expected Term
	}{
		{acquired.AddDate(0, 0, 365), ShortTerm},
		{acquired.AddDate(0, 0, 366), LongTerm},
		{acquired.AddDate(0, 0, 30), ShortTerm},
	}
	for _, c := range cases {
		term, err := Classify(GainEvent{Asset: Equity, AcquiredOn: acquired, DisposedOn: c.disposed})
		if err != nil {
			t.Fatal(err)
		}
		if term != c.expected {
			t.Errorf("disposed %s: expected %s, got %s", c.disposed.Format("2006-01-02"), c.expected, term)
		}
	}
}

// Debt boundary: exactly 36 calendar months is short-term, one day more is
// long-term.
func TestClassifyDebtBoundary(t *testing.T) {
	acquired := day(2021, 3, 15)
	atBoundary := acquired.AddDate(0, 36, 0)

	term, err := Classify(GainEvent{Asset: Debt, AcquiredOn: acquired, DisposedOn: atBoundary})
	if err != nil {
		t.Fatal(err)
	}
	if term != ShortTerm {
		t.Errorf("exactly 36 months must be STCG, got %s", term)
	}

	term, _ = Classify(GainEvent{Asset: Debt, AcquiredOn: acquired, DisposedOn: atBoundary.AddDate(0, 0, 1)})
	if term != LongTerm {
		t.Errorf("36 months + 1 day must be LTCG, got %s", term)
	}
}

func TestClassifyRejectsInvertedDates(t *testing.T) {
	_, err := Classify(GainEvent{Asset: Equity, AcquiredOn: day(2024, 1, 1), DisposedOn: day(2023, 1, 1)})
	if !engine.IsKind(err, engine.InvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

// 2L equity gain held 400 days: 12.5% of (200,000 - 125,000) = 9,375.
func TestEquityLTCGTax(t *testing.T) {
	acquired := day(2023, 1, 1)
	res, err := ComputeTax(GainEvent{
		Asset:      Equity,
		AcquiredOn: acquired,
		DisposedOn: acquired.AddDate(0, 0, 400),
		CostBasis:  500000,
		SaleValue:  700000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Term != LongTerm {
		t.Fatalf("expected LTCG, got %s", res.Term)
	}
	if math.Abs(res.Tax-9375) > 0.01 {
		t.Errorf("expected tax 9375, got %f", res.Tax)
	}
	if res.ExemptUsed != 125000 {
		t.Errorf("expected full exemption use, got %f", res.ExemptUsed)
	}
}

func TestEquitySTCGTax(t *testing.T) {
	acquired := day(2024, 1, 1)
	res, err := ComputeTax(GainEvent{
		Asset:      Equity,
		AcquiredOn: acquired,
		DisposedOn: acquired.AddDate(0, 0, 100),
		CostBasis:  100000,
		SaleValue:  150000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Term != ShortTerm || math.Abs(res.Tax-10000) > 0.01 {
		t.Errorf("expected STCG tax 10000 (20%% of 50000), got %s %f", res.Term, res.Tax)
	}
}

func TestDebtLTCGNoIndexation(t *testing.T) {
	acquired := day(2020, 1, 1)
	res, err := ComputeTax(GainEvent{
		Asset:      Debt,
		AcquiredOn: acquired,
		DisposedOn: acquired.AddDate(0, 48, 0),
		CostBasis:  200000,
		SaleValue:  280000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Term != LongTerm || math.Abs(res.Tax-10000) > 0.01 {
		t.Errorf("expected debt LTCG 10000 (12.5%% of 80000), got %s %f", res.Term, res.Tax)
	}
}

func TestDebtSTCGRequiresSlabRate(t *testing.T) {
	acquired := day(2024, 1, 1)
	event := GainEvent{
		Asset:      Debt,
		AcquiredOn: acquired,
		DisposedOn: acquired.AddDate(0, 6, 0),
		CostBasis:  100000,
		SaleValue:  110000,
	}
	_, err := ComputeTax(event)
	if !engine.IsKind(err, engine.MissingContext) {
		t.Fatalf("missing slab rate must be MissingContext, got %v", err)
	}

	rate := 30.0
	event.MarginalSlabRate = &rate
	res, err := ComputeTax(event)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Tax-3000) > 0.01 {
		t.Errorf("expected 3000 (30%% of 10000), got %f", res.Tax)
	}
}

func TestLossYieldsNoTax(t *testing.T) {
	acquired := day(2023, 1, 1)
	res, err := ComputeTax(GainEvent{
		Asset:      Equity,
		AcquiredOn: acquired,
		DisposedOn: acquired.AddDate(0, 0, 500),
		CostBasis:  100000,
		SaleValue:  80000,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Tax != 0 || res.Gain != -20000 {
		t.Errorf("loss must carry zero tax, got tax=%f gain=%f", res.Tax, res.Gain)
	}
}
