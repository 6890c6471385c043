package tax

import (
	"math"

	"finagent/pkg/core/engine"
)

// =============================================================================
// STATUTORY DEDUCTIONS
// Each section is a distinct typed record carrying its own cap rule, folded
// through the common DeductionClaim abstraction. Under the New regime every
// itemized claim is disallowed; only the regime's standard deduction applies.
// =============================================================================

// DeductionClaim is a statutory deduction a taxpayer declares. Capped returns
// the eligible amount after applying the section's cap; it never exceeds the
// claimed amount or the statutory limit.
type DeductionClaim interface {
	Section() string
	Capped(basicSalary float64) float64
}

// Section80C: PPF, ELSS, life insurance premium, EPF, home-loan principal,
// tuition fees. Combined cap of 150,000.
type Section80C struct {
	Amount float64
}

func (c Section80C) Section() string { return "80C" }
func (c Section80C) Capped(_ float64) float64 {
	return math.Min(c.Amount, 150000)
}

// Section80D: health insurance premium. Cap 25,000, raised to 50,000 when
// either insured party is a senior citizen.
type Section80D struct {
	Premium       float64
	SeniorCitizen bool
}

func (c Section80D) Section() string { return "80D" }
func (c Section80D) Capped(_ float64) float64 {
	limit := 25000.0
	if c.SeniorCitizen {
		limit = 50000
	}
	return math.Min(c.Premium, limit)
}

// Section80CCD1B: employee NPS contribution, additional 50,000 over 80C.
type Section80CCD1B struct {
	Amount float64
}

func (c Section80CCD1B) Section() string { return "80CCD(1B)" }
func (c Section80CCD1B) Capped(_ float64) float64 {
	return math.Min(c.Amount, 50000)
}

// Section80CCD2: employer NPS contribution, capped at 10% of basic salary.
type Section80CCD2 struct {
	EmployerContribution float64
}

func (c Section80CCD2) Section() string { return "80CCD(2)" }
func (c Section80CCD2) Capped(basicSalary float64) float64 {
	return math.Min(c.EmployerContribution, basicSalary*0.10)
}

// Section24: home-loan interest. 200,000 cap for self-occupied property; a
// let-out property has no cap.
type Section24 struct {
	Interest float64
	LetOut   bool
}

func (c Section24) Section() string { return "24" }
func (c Section24) Capped(_ float64) float64 {
	if c.LetOut {
		return c.Interest
	}
	return math.Min(c.Interest, 200000)
}

// DeductionBreakdown reports the eligible amount per section plus the total.
type DeductionBreakdown struct {
	Regime            Regime
	StandardDeduction float64
	BySection         map[string]float64
	Itemized          float64
	Total             float64
}

// ComputeDeductions aggregates claims under the given regime. Negative claim
// amounts are rejected; the Old regime caps each section individually; the
// New regime allows only the standard deduction.
func ComputeDeductions(claims []DeductionClaim, regime Regime, basicSalary float64) (DeductionBreakdown, error) {
	bd := DeductionBreakdown{
		Regime:    regime,
		BySection: make(map[string]float64),
	}
	switch regime {
	case RegimeOld:
		bd.StandardDeduction = StandardDeductionOld
	case RegimeNew:
		bd.StandardDeduction = StandardDeductionNew
	default:
		return bd, engine.Errorf(engine.InvalidInput, "unknown regime %q", regime)
	}

	for _, claim := range claims {
		capped := claim.Capped(basicSalary)
		if capped < 0 {
			return bd, engine.Errorf(engine.InvalidInput, "section %s claim is negative", claim.Section())
		}
		if regime == RegimeNew {
			// Itemized deductions do not exist under the New regime.
			continue
		}
		bd.BySection[claim.Section()] += capped
		bd.Itemized += capped
	}
	bd.Total = bd.StandardDeduction + bd.Itemized
	return bd, nil
}
