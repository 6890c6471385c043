package tax

import (
	"math"

	"finagent/pkg/core/engine"
)

// Salary-component exemptions. These reduce gross salary before slab tax and
// only matter under the Old regime.

// HRAResult breaks down the house-rent-allowance exemption.
type HRAResult struct {
	Exempt             float64
	Taxable            float64
	ActualHRA          float64
	RentMinusTenPct    float64
	BasicSalaryPortion float64
}

// HRAExemption computes the exempt portion of HRA: the minimum of the actual
// HRA received, rent paid minus 10% of basic, and 50% (metro) or 40%
// (non-metro) of basic salary, floored at zero.
func HRAExemption(basicSalary, hraReceived, rentPaid float64, metro bool) (HRAResult, error) {
	if basicSalary < 0 || hraReceived < 0 || rentPaid < 0 {
		return HRAResult{}, engine.Errorf(engine.InvalidInput, "HRA inputs must be non-negative")
	}
	basicPct := 0.40
	if metro {
		basicPct = 0.50
	}
	res := HRAResult{
		ActualHRA:          hraReceived,
		RentMinusTenPct:    math.Max(0, rentPaid-basicSalary*0.10),
		BasicSalaryPortion: basicSalary * basicPct,
	}
	res.Exempt = math.Max(0, math.Min(res.ActualHRA, math.Min(rentPaid-basicSalary*0.10, res.BasicSalaryPortion)))
	res.Taxable = hraReceived - res.Exempt
	return res, nil
}

// LTAExemption computes the exempt leave-travel allowance: min of the amount
// received and the actual travel fare, domestic travel only.
func LTAExemption(received, travelFare float64, international bool) (float64, error) {
	if received < 0 || travelFare < 0 {
		return 0, engine.Errorf(engine.InvalidInput, "LTA inputs must be non-negative")
	}
	if international {
		return 0, nil
	}
	return math.Min(received, travelFare), nil
}
