package roi

import (
	"math"
	"testing"
)

func TestCalculate_NoSubsidy(t *testing.T) {
	est, err := Calculate(Input{
		UpfrontCost:   30000,
		YearlySavings: 7000,
		LifetimeYears: 5,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if est.EffectiveCost != 30000 {
		t.Errorf("EffectiveCost = %v, want 30000", est.EffectiveCost)
	}
	if est.LifetimeSavings != 35000 {
		t.Errorf("LifetimeSavings = %v, want 35000", est.LifetimeSavings)
	}
	if est.ROIPercent == nil {
		t.Fatal("ROIPercent should be set")
	}
	want := (35000.0 - 30000.0) / 30000.0 * 100
	if math.Abs(*est.ROIPercent-want) > 1e-9 {
		t.Errorf("ROIPercent = %v, want %v", *est.ROIPercent, want)
	}
}

func TestCalculate_WithSubsidy(t *testing.T) {
	est, err := Calculate(Input{
		UpfrontCost:   30000,
		YearlySavings: 7000,
		LifetimeYears: 5,
		ApplySubsidy:  true,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if est.EffectiveCost != 27000 {
		t.Errorf("EffectiveCost = %v, want 27000 (10%% subsidy)", est.EffectiveCost)
	}
	want := (35000.0 - 27000.0) / 27000.0 * 100
	if math.Abs(*est.ROIPercent-want) > 1e-9 {
		t.Errorf("ROIPercent = %v, want %v", *est.ROIPercent, want)
	}
}

func TestCalculate_ZeroCost(t *testing.T) {
	est, err := Calculate(Input{
		UpfrontCost:   0,
		YearlySavings: 1000,
		LifetimeYears: 3,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if est.ROIPercent != nil {
		t.Errorf("ROIPercent = %v, want nil when effective cost is zero", *est.ROIPercent)
	}
	if est.LifetimeSavings != 3000 {
		t.Errorf("LifetimeSavings = %v, want 3000", est.LifetimeSavings)
	}
}

func TestCalculate_PaybackSeries(t *testing.T) {
	est, err := Calculate(Input{
		UpfrontCost:   10000,
		YearlySavings: 2500,
		LifetimeYears: 4,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if len(est.Payback) != 5 {
		t.Fatalf("len(Payback) = %d, want 5 (years 0..4)", len(est.Payback))
	}
	for i, point := range est.Payback {
		if point.Year != i {
			t.Errorf("Payback[%d].Year = %d, want %d", i, point.Year, i)
		}
		if point.CumulativeSavings != 2500*float64(i) {
			t.Errorf("Payback[%d].CumulativeSavings = %v, want %v", i, point.CumulativeSavings, 2500*float64(i))
		}
		if point.Cost != 10000 {
			t.Errorf("Payback[%d].Cost = %v, want 10000", i, point.Cost)
		}
	}
}

func TestCalculate_InvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{name: "negative upfront", input: Input{UpfrontCost: -1, YearlySavings: 100, LifetimeYears: 1}},
		{name: "negative savings", input: Input{UpfrontCost: 100, YearlySavings: -1, LifetimeYears: 1}},
		{name: "zero lifetime", input: Input{UpfrontCost: 100, YearlySavings: 100, LifetimeYears: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Calculate(tt.input); err == nil {
				t.Error("Calculate should reject invalid input")
			}
		})
	}
}
