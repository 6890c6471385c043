package fincalc

import (
	"math"
	"testing"
)

func TestEMI(t *testing.T) {
	// 50L loan, 8.5% for 20 years.
	// r = 0.0070833, n = 240
	// Known schedule value ~ 43,391
	emi := EMI(5000000, 8.5, 240)
	if math.Abs(emi-43391) > 1 {
		t.Errorf("EMI expected ~43391, got %f", emi)
	}

	// Zero rate degrades to straight division
	if got := EMI(120000, 0, 12); got != 10000 {
		t.Errorf("zero-rate EMI expected 10000, got %f", got)
	}
}

func TestEMIRoundTrip(t *testing.T) {
	principal := 2500000.0
	emi := EMI(principal, 9.0, 180)
	back := LoanPrincipalForEMI(emi, 9.0, 180)
	if math.Abs(back-principal) > 1 {
		t.Errorf("EMI round trip drifted: %f vs %f", back, principal)
	}
}

func TestCompoundFV(t *testing.T) {
	// 100000 at 6% for 10 years = 100000 * 1.06^10 = 179084.77
	fv := CompoundFV(100000, 6, 10)
	expected := 100000 * math.Pow(1.06, 10)
	if math.Abs(fv-expected) > 0.01 {
		t.Errorf("CompoundFV expected %f, got %f", expected, fv)
	}

	if InflateValue(100000, 6, 10) != fv {
		t.Error("InflateValue must match CompoundFV")
	}
}

func TestAnnuityFV(t *testing.T) {
	// 10000/month for 12 months at 12% annual (1%/month)
	// FV = 10000 * (1.01^12 - 1) / 0.01 = 126825.03
	fv := AnnuityFV(10000, 0.01, 12)
	expected := 10000 * (math.Pow(1.01, 12) - 1) / 0.01
	if math.Abs(fv-expected) > 0.01 {
		t.Errorf("AnnuityFV expected %f, got %f", expected, fv)
	}

	// Annuity due earns exactly one extra period on every payment
	due := AnnuityDueFV(10000, 0.01, 12)
	if math.Abs(due-fv*1.01) > 0.01 {
		t.Errorf("AnnuityDueFV expected %f, got %f", fv*1.01, due)
	}

	// Zero rate: plain sum
	if got := AnnuityFV(500, 0, 10); got != 5000 {
		t.Errorf("zero-rate AnnuityFV expected 5000, got %f", got)
	}
}

func TestAnnuityDuePV(t *testing.T) {
	// Funding 100000/year for 20 years at 1% real rate.
	pv := AnnuityDuePV(100000, 0.01, 20)
	expected := 100000 * ((1 - math.Pow(1.01, -20)) / 0.01) * 1.01
	if math.Abs(pv-expected) > 0.01 {
		t.Errorf("AnnuityDuePV expected %f, got %f", expected, pv)
	}

	// Zero real rate: corpus is just years * expense
	if got := AnnuityDuePV(100000, 0, 20); got != 2000000 {
		t.Errorf("zero-rate AnnuityDuePV expected 2000000, got %f", got)
	}
}

func TestClampAndRounding(t *testing.T) {
	if Clamp(150, 20, 80) != 80 || Clamp(-5, 20, 80) != 20 || Clamp(50, 20, 80) != 50 {
		t.Error("Clamp bounds wrong")
	}
	if RoundRupee(99.5) != 100 || RoundRupee(99.49) != 99 {
		t.Error("RoundRupee wrong")
	}
	if Round2(3.14159) != 3.14 {
		t.Error("Round2 wrong")
	}
	if SafeDiv(10, 0) != 0 {
		t.Error("SafeDiv must return 0 on zero denominator")
	}
}
