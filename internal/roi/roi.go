// Package roi implements the return-on-investment estimate shown next to the
// forecast panel: four arithmetic operations plus a payback series for the
// chart.
package roi

import "fmt"

// subsidyRate is the flat government subsidy applied to the upfront cost.
const subsidyRate = 0.10

// Input holds the user-entered numbers for one estimate.
type Input struct {
	UpfrontCost   float64 `json:"upfront_cost"`
	YearlySavings float64 `json:"yearly_savings"`
	LifetimeYears int     `json:"lifetime_years"`
	ApplySubsidy  bool    `json:"apply_subsidy"`
}

// Validate checks the inputs are in range.
func (in Input) Validate() error {
	if in.UpfrontCost < 0 {
		return fmt.Errorf("upfront cost must not be negative")
	}
	if in.YearlySavings < 0 {
		return fmt.Errorf("yearly savings must not be negative")
	}
	if in.LifetimeYears < 1 {
		return fmt.Errorf("lifetime must be at least 1 year")
	}
	return nil
}

// YearPoint is one point of the cumulative payback series.
type YearPoint struct {
	Year              int     `json:"year"`
	CumulativeSavings float64 `json:"cumulative_savings"`
	Cost              float64 `json:"cost"`
}

// Estimate is the computed result. ROIPercent is nil when the effective cost
// is zero, where the ratio is undefined.
type Estimate struct {
	EffectiveCost   float64     `json:"effective_cost"`
	LifetimeSavings float64     `json:"lifetime_savings"`
	ROIPercent      *float64    `json:"roi_percent,omitempty"`
	Payback         []YearPoint `json:"payback"`
}

// Calculate computes the estimate for the given inputs.
func Calculate(in Input) (Estimate, error) {
	if err := in.Validate(); err != nil {
		return Estimate{}, err
	}

	effective := in.UpfrontCost
	if in.ApplySubsidy {
		effective = in.UpfrontCost * (1 - subsidyRate)
	}
	lifetimeSavings := in.YearlySavings * float64(in.LifetimeYears)

	est := Estimate{
		EffectiveCost:   effective,
		LifetimeSavings: lifetimeSavings,
	}
	if effective > 0 {
		roi := (lifetimeSavings - effective) / effective * 100
		est.ROIPercent = &roi
	}

	est.Payback = make([]YearPoint, 0, in.LifetimeYears+1)
	for year := 0; year <= in.LifetimeYears; year++ {
		est.Payback = append(est.Payback, YearPoint{
			Year:              year,
			CumulativeSavings: in.YearlySavings * float64(year),
			Cost:              effective,
		})
	}

	return est, nil
}
