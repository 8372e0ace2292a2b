package main

import (
	"math"
	"testing"
)

func TestFitCostModel(t *testing.T) {
	want := CostModel{A: 120, B: 45, C: 8}
	counts := []int{250, 500, 1000, 2000, 3000, 4000}
	times := make([]float64, len(counts))
	for i, n := range counts {
		times[i] = want.Predict(n)
	}

	got, err := FitCostModel(counts, times)
	if err != nil {
		t.Fatalf("FitCostModel: %v", err)
	}
	for _, n := range counts {
		if p, w := got.Predict(n), want.Predict(n); math.Abs(p-w) > 0.01*w {
			t.Errorf("prediction at %d: got %.2f, want %.2f", n, p, w)
		}
	}
}

func TestFitCostModelTooFewPoints(t *testing.T) {
	if _, err := FitCostModel([]int{100, 200}, []float64{1, 2}); err == nil {
		t.Error("expected error for two points")
	}
	if _, err := FitCostModel([]int{100, 200, 300}, []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func TestMaxParticles(t *testing.T) {
	tests := []struct {
		name   string
		model  CostModel
		budget float64
		check  func(t *testing.T, n int, m CostModel)
	}{
		{
			name:   "quadratic",
			model:  CostModel{A: 100, B: 50, C: 10},
			budget: 16667,
			check: func(t *testing.T, n int, m CostModel) {
				if n <= 0 || m.Predict(n) > 16667 || m.Predict(n+2) < 16667 {
					t.Errorf("expected largest count within budget, got %d (%.1fus)", n, m.Predict(n))
				}
			},
		},
		{
			name:   "linear",
			model:  CostModel{A: 1000, B: 1000},
			budget: 5000,
			check: func(t *testing.T, n int, m CostModel) {
				if n != 4000 {
					t.Errorf("expected 4000, got %d", n)
				}
			},
		},
		{
			name:   "over budget at zero",
			model:  CostModel{A: 20000, B: 1},
			budget: 16667,
			check: func(t *testing.T, n int, m CostModel) {
				if n != 0 {
					t.Errorf("expected 0, got %d", n)
				}
			},
		},
		{
			name:   "never reaches budget",
			model:  CostModel{A: 10, B: -1},
			budget: 100,
			check: func(t *testing.T, n int, m CostModel) {
				if n != -1 {
					t.Errorf("expected -1, got %d", n)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, tc.model.MaxParticles(tc.budget), tc.model)
		})
	}
}
