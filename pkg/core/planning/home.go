package planning

import (
	"finagent/pkg/core/engine"
	"finagent/pkg/core/fincalc"
)

// =============================================================================
// HOME PLANNING: BUY VS RENT, FOIR AFFORDABILITY
// =============================================================================

// Reference loan terms used when estimating eligibility from a payment.
const (
	referenceLoanRatePct = 8.5
	referenceLoanYears   = 20
)

// BuyVsRentInput collects the comparison assumptions. All percentages are
// annual.
type BuyVsRentInput struct {
	PropertyValue   float64
	MonthlyRent     float64
	DownPaymentPct  float64
	LoanTenureYears int
	LoanRatePct     float64
	RentIncreasePct float64
	AppreciationPct float64
	ComparisonYears int
}

// BuyVsRentResult compares the net cost of each path over the horizon. Buying
// is credited with the property's appreciation over the period.
type BuyVsRentResult struct {
	DownPayment      float64
	LoanAmount       float64
	MonthlyEMI       float64
	TotalEMIPaid     float64
	PropertyValueEnd float64
	BuyNetCost       float64
	TotalRentPaid    float64
	RentNetCost      float64
	BetterOption     string // "BUY" or "RENT"
}

// BuyVsRent runs the comparison: EMI outflow net of appreciation against an
// annually escalating rent stream.
func BuyVsRent(in BuyVsRentInput) (BuyVsRentResult, error) {
	if in.PropertyValue <= 0 || in.MonthlyRent < 0 {
		return BuyVsRentResult{}, engine.Errorf(engine.InvalidInput, "property value must be positive and rent non-negative")
	}
	if in.DownPaymentPct < 0 || in.DownPaymentPct > 100 {
		return BuyVsRentResult{}, engine.Errorf(engine.InvalidInput, "down payment percentage %f outside [0,100]", in.DownPaymentPct)
	}
	if in.LoanTenureYears <= 0 || in.ComparisonYears <= 0 {
		return BuyVsRentResult{}, engine.Errorf(engine.InvalidInput, "tenure and comparison horizon must be positive")
	}

	res := BuyVsRentResult{
		DownPayment: in.PropertyValue * in.DownPaymentPct / 100,
	}
	res.LoanAmount = in.PropertyValue - res.DownPayment
	res.MonthlyEMI = fincalc.EMI(res.LoanAmount, in.LoanRatePct, in.LoanTenureYears*12)
	res.TotalEMIPaid = res.MonthlyEMI * 12 * float64(in.ComparisonYears)
	res.PropertyValueEnd = fincalc.CompoundFV(in.PropertyValue, in.AppreciationPct, in.ComparisonYears)

	rent := in.MonthlyRent
	for year := 0; year < in.ComparisonYears; year++ {
		res.TotalRentPaid += rent * 12
		rent *= 1 + in.RentIncreasePct/100
	}

	res.BuyNetCost = res.DownPayment + res.TotalEMIPaid - (res.PropertyValueEnd - in.PropertyValue)
	res.RentNetCost = res.TotalRentPaid
	if res.BuyNetCost < res.RentNetCost {
		res.BetterOption = "BUY"
	} else {
		res.BetterOption = "RENT"
	}
	return res, nil
}

// FOIRStatus classifies the borrower's obligation headroom.
type FOIRStatus string

const (
	FOIRComfortable   FOIRStatus = "COMFORTABLE"
	FOIRTight         FOIRStatus = "TIGHT"
	FOIROverLeveraged FOIRStatus = "OVER_LEVERAGED"
)

// AffordableEMIResult reports FOIR headroom and the implied loan eligibility
// at the reference terms.
type AffordableEMIResult struct {
	MaxTotalEMI     float64
	AvailableForEMI float64
	LoanEligibility float64
	Status          FOIRStatus
}

// AffordableEMI applies the FOIR rule: total EMIs must not exceed the limit
// fraction of monthly income. Remaining headroom sizes a reference 8.5%/20y
// loan.
func AffordableEMI(monthlyIncome, existingEMIs, foirLimitPct float64) (AffordableEMIResult, error) {
	if monthlyIncome <= 0 {
		return AffordableEMIResult{}, engine.Errorf(engine.InvalidInput, "monthly income must be positive, got %f", monthlyIncome)
	}
	if existingEMIs < 0 {
		return AffordableEMIResult{}, engine.Errorf(engine.InvalidInput, "existing EMIs must be non-negative")
	}
	if foirLimitPct <= 0 || foirLimitPct > 100 {
		return AffordableEMIResult{}, engine.Errorf(engine.InvalidInput, "FOIR limit %f outside (0,100]", foirLimitPct)
	}

	res := AffordableEMIResult{
		MaxTotalEMI: monthlyIncome * foirLimitPct / 100,
	}
	res.AvailableForEMI = res.MaxTotalEMI - existingEMIs
	switch {
	case res.AvailableForEMI <= 0:
		res.AvailableForEMI = 0
		res.Status = FOIROverLeveraged
	case res.AvailableForEMI < monthlyIncome*0.30:
		res.Status = FOIRTight
	default:
		res.Status = FOIRComfortable
	}
	res.LoanEligibility = fincalc.LoanPrincipalForEMI(res.AvailableForEMI, referenceLoanRatePct, referenceLoanYears*12)
	return res, nil
}
