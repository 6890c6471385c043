package fincalc

import "math"

// =============================================================================
// NUMERIC PRIMITIVES
// Shared compounding / annuity / amortization math used by every calculator.
// All functions take annual percentage rates (e.g. 12 for 12%) unless the name
// says otherwise, and work in float64. Rounding to whole rupees happens only at
// the tool facade boundary, never here.
// =============================================================================

// MonthlyRate converts an annual percentage rate to a monthly decimal rate.
func MonthlyRate(annualPct float64) float64 {
	return annualPct / 12 / 100
}

// EMI computes the level monthly payment that amortizes principal over the
// given number of months at the given annual rate.
func EMI(principal, annualRatePct float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	r := MonthlyRate(annualRatePct)
	if r == 0 {
		return principal / float64(months)
	}
	factor := math.Pow(1+r, float64(months))
	return principal * r * factor / (factor - 1)
}

// LoanPrincipalForEMI inverts EMI: the principal a level payment can service.
func LoanPrincipalForEMI(emi, annualRatePct float64, months int) float64 {
	if months <= 0 || emi <= 0 {
		return 0
	}
	r := MonthlyRate(annualRatePct)
	if r == 0 {
		return emi * float64(months)
	}
	factor := math.Pow(1+r, float64(months))
	return emi * (factor - 1) / (r * factor)
}

// CompoundFV grows a present value at an annual rate for whole years.
func CompoundFV(present, annualRatePct float64, years int) float64 {
	return present * math.Pow(1+annualRatePct/100, float64(years))
}

// InflateValue is CompoundFV under its financial-planning name: the future
// price of something costing `today` after `years` of inflation.
func InflateValue(today, inflationPct float64, years int) float64 {
	return CompoundFV(today, inflationPct, years)
}

// AnnuityFV is the future value of an ordinary annuity: a level payment made
// at the END of each period, compounding at rate r per period.
// FV = P * [(1+r)^n - 1] / r
func AnnuityFV(payment, r float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if r == 0 {
		return payment * float64(periods)
	}
	return payment * (math.Pow(1+r, float64(periods)) - 1) / r
}

// AnnuityDueFV is the annuity-due variant: payments at the START of each
// period, so every contribution earns one extra period of growth.
func AnnuityDueFV(payment, r float64, periods int) float64 {
	if r == 0 {
		return payment * float64(periods)
	}
	return AnnuityFV(payment, r, periods) * (1 + r)
}

// AnnuityDuePV is the present value of an annuity-due: the corpus that funds a
// level withdrawal at the start of each period for `periods` periods at rate r.
// PV = P * [(1 - (1+r)^-n) / r] * (1+r)
func AnnuityDuePV(payment, r float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if r == 0 {
		return payment * float64(periods)
	}
	return payment * ((1 - math.Pow(1+r, -float64(periods))) / r) * (1 + r)
}

// SafeDiv guards the zero denominator.
func SafeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// RoundRupee rounds to the nearest whole rupee. Output boundaries only.
func RoundRupee(v float64) float64 {
	return math.Round(v)
}

// Round2 rounds to two decimals, for percentage fields in results.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
