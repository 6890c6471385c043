package tax

import (
	"math"
	"testing"
)

// 18L salary with 80C and 80D maxed but no housing benefits: the New regime's
// wider slabs still win.
// Old: taxable 18L - 50,000 - 175,000 = 15.75L -> 285,000 slab, 296,400 with cess.
// New: taxable 18L - 75,000 = 17.25L -> 207,500 slab, 215,800 with cess.
func TestCompareRegimesMidDeductions(t *testing.T) {
	profile := IncomeProfile{
		GrossSalary: 1800000,
		BasicSalary: 900000,
		Claims: []DeductionClaim{
			Section80C{Amount: 150000},
			Section80D{Premium: 25000},
		},
	}
	cmp, err := CompareRegimes(profile, "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cmp.Old.Total-296400) > 0.01 {
		t.Errorf("Old total expected 296400, got %f", cmp.Old.Total)
	}
	if math.Abs(cmp.New.Total-215800) > 0.01 {
		t.Errorf("New total expected 215800, got %f", cmp.New.Total)
	}
	if cmp.Recommended != RegimeNew {
		t.Errorf("expected New recommendation, got %s", cmp.Recommended)
	}
	if math.Abs(cmp.Delta-80600) > 0.01 {
		t.Errorf("delta expected 80600, got %f", cmp.Delta)
	}
}

// The same salary with the full deduction stack and an HRA exemption flips the
// recommendation: the comparison is symmetric in which regime wins.
// Old: taxable 18L - 50,000 - 450,000 - 120,000 = 11.8L -> 166,500 slab,
// 173,160 with cess, below New's 215,800.
func TestCompareRegimesFullDeductions(t *testing.T) {
	profile := IncomeProfile{
		GrossSalary: 1800000,
		BasicSalary: 900000,
		Exemptions:  120000,
		Claims: []DeductionClaim{
			Section80C{Amount: 150000},
			Section80D{Premium: 50000, SeniorCitizen: true},
			Section80CCD1B{Amount: 50000},
			Section24{Interest: 200000},
		},
	}
	cmp, err := CompareRegimes(profile, "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cmp.Old.Total-173160) > 0.01 {
		t.Errorf("Old total expected 173160, got %f", cmp.Old.Total)
	}
	if cmp.Recommended != RegimeOld {
		t.Errorf("expected Old recommendation, got %s", cmp.Recommended)
	}
	if cmp.Delta >= 0 {
		t.Errorf("delta must be negative when Old wins, got %f", cmp.Delta)
	}
}

// Income at or below the basic exemption yields zero tax in both regimes, and
// the resulting tie resolves to New.
func TestCompareRegimesBelowExemption(t *testing.T) {
	cmp, err := CompareRegimes(IncomeProfile{GrossSalary: 240000}, "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Old.Total != 0 || cmp.New.Total != 0 {
		t.Errorf("expected zero tax, got old=%f new=%f", cmp.Old.Total, cmp.New.Total)
	}
	if cmp.Recommended != RegimeNew {
		t.Errorf("tie must recommend New, got %s", cmp.Recommended)
	}
}

// Surcharge applies before cess. 2.4Cr salary under New regime:
// taxable 23,925,000 -> slab 6,867,500 (hand check below), surcharge 25%,
// cess 4% on slab + surcharge.
func TestSurchargeBeforeCess(t *testing.T) {
	cmp, err := CompareRegimes(IncomeProfile{GrossSalary: 24000000}, "2024-25")
	if err != nil {
		t.Fatal(err)
	}
	// New slab tax on 23,925,000: 140,000 fixed + 30% above 15L
	slab := 140000 + 0.30*(23925000-1500000)
	surcharge := slab * 0.25
	total := (slab + surcharge) * 1.04
	if math.Abs(cmp.New.SlabTax-slab) > 0.01 {
		t.Errorf("slab tax expected %f, got %f", slab, cmp.New.SlabTax)
	}
	if math.Abs(cmp.New.Surcharge-surcharge) > 0.01 {
		t.Errorf("surcharge expected %f, got %f", surcharge, cmp.New.Surcharge)
	}
	if math.Abs(cmp.New.Total-total) > 0.01 {
		t.Errorf("total expected %f, got %f", total, cmp.New.Total)
	}
}

func TestSurchargeBands(t *testing.T) {
	cases := []struct {
		income   float64
		regime   Regime
		expected float64
	}{
		{4000000, RegimeOld, 0},
		{6000000, RegimeOld, 0.10},
		{15000000, RegimeOld, 0.15},
		{30000000, RegimeOld, 0.25},
		{60000000, RegimeOld, 0.37},
		{60000000, RegimeNew, 0.25}, // New regime surcharge cap
	}
	for _, c := range cases {
		if got := surchargeRate(c.income, c.regime); got != c.expected {
			t.Errorf("income %f %s: expected %f, got %f", c.income, c.regime, c.expected, got)
		}
	}
}
