package main

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// CostModel predicts mean tick time in microseconds as A + B·k + C·k²
// where k is the particle count in thousands.
type CostModel struct {
	A, B, C float64
}

// Predict returns the modelled tick time for n particles.
func (m CostModel) Predict(n int) float64 {
	k := float64(n) / 1000
	return m.A + m.B*k + m.C*k*k
}

// MaxParticles returns the largest particle count whose modelled tick time
// fits in budgetUS, or -1 if the model never reaches the budget.
func (m CostModel) MaxParticles(budgetUS float64) int {
	if m.A >= budgetUS {
		return 0
	}
	var k float64
	if math.Abs(m.C) < 1e-12 {
		if m.B <= 0 {
			return -1
		}
		k = (budgetUS - m.A) / m.B
	} else {
		disc := m.B*m.B - 4*m.C*(m.A-budgetUS)
		if disc < 0 {
			return -1
		}
		k = (-m.B + math.Sqrt(disc)) / (2 * m.C)
	}
	if k < 0 {
		return -1
	}
	return int(k * 1000)
}

// FitCostModel fits a CostModel to measured tick times by least squares.
func FitCostModel(particles []int, tickUS []float64) (CostModel, error) {
	if len(particles) != len(tickUS) {
		return CostModel{}, errors.New("particles and tick times differ in length")
	}
	if len(particles) < 3 {
		return CostModel{}, errors.New("need at least 3 sweep points to fit")
	}

	ks := make([]float64, len(particles))
	var mean float64
	for i, n := range particles {
		ks[i] = float64(n) / 1000
		mean += tickUS[i]
	}
	mean /= float64(len(tickUS))

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			var sum float64
			for i, k := range ks {
				r := x[0] + x[1]*k + x[2]*k*k - tickUS[i]
				sum += r * r
			}
			return sum
		},
		Grad: func(grad, x []float64) {
			grad[0], grad[1], grad[2] = 0, 0, 0
			for i, k := range ks {
				r := 2 * (x[0] + x[1]*k + x[2]*k*k - tickUS[i])
				grad[0] += r
				grad[1] += r * k
				grad[2] += r * k * k
			}
		},
	}

	result, err := optimize.Minimize(problem, []float64{mean, 0, 0}, nil, &optimize.BFGS{})
	if err != nil {
		return CostModel{}, err
	}
	return CostModel{A: result.X[0], B: result.X[1], C: result.X[2]}, nil
}
