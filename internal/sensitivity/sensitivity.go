// Package sensitivity shows how the linear IFE approximation drifts from the
// exact formula as the domestic rate moves away from the foreign rate.
package sensitivity

import (
	"errors"
	"fmt"
	"math"

	"fx-valuation/internal/valuation"
)

// Point is one evaluation of the sweep. Exact, Approx and Gap are percents.
type Point struct {
	DomesticRate float64
	ForeignRate  float64
	Exact        float64
	Approx       float64
	Gap          float64
}

// Sweep evaluates the IFE on steps evenly spaced domestic rates in
// [minDomestic, maxDomestic] against a fixed foreign rate.
func Sweep(foreignRate, minDomestic, maxDomestic float64, steps int) ([]Point, error) {
	if steps < 2 {
		return nil, errors.New("sweep needs at least 2 steps")
	}
	for _, v := range []float64{foreignRate, minDomestic, maxDomestic} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("sweep bound %g is not finite", v)
		}
	}
	if !(minDomestic < maxDomestic) {
		return nil, fmt.Errorf("sweep range [%g, %g] is empty", minDomestic, maxDomestic)
	}

	points := make([]Point, 0, steps)
	step := (maxDomestic - minDomestic) / float64(steps-1)
	for i := 0; i < steps; i++ {
		domestic := minDomestic + step*float64(i)
		if i == steps-1 {
			domestic = maxDomestic
		}

		res, err := valuation.CalculateIFE(domestic, foreignRate)
		if err != nil {
			return nil, fmt.Errorf("sweep at domestic rate %g: %w", domestic, err)
		}
		points = append(points, Point{
			DomesticRate: domestic,
			ForeignRate:  foreignRate,
			Exact:        res.PredictedChangeExact,
			Approx:       res.PredictedChangeApprox,
			Gap:          res.ApproximationGap(),
		})
	}
	return points, nil
}

// MaxAbsGap returns the point with the largest approximation error.
func MaxAbsGap(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if math.Abs(p.Gap) > math.Abs(best.Gap) {
			best = p
		}
	}
	return best, true
}
