// Package surfacearea estimates the 3-D surface area of digital elevation
// models.
package surfacearea

import (
	"errors"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidResolution is returned when the resolution is not a positive
	// finite number.
	ErrInvalidResolution = errors.New("invalid resolution")

	// ErrNonFiniteElevation is returned when the DEM contains a NaN or
	// infinite elevation sample.
	ErrNonFiniteElevation = errors.New("non-finite elevation")
)

// An Estimator estimates DEM surface areas.
type Estimator struct {
	concurrency int
}

// An EstimatorOption sets an option on an Estimator.
type EstimatorOption func(*Estimator)

// WithConcurrency sets the number of row bands computed in parallel. Values
// less than two select the sequential path.
func WithConcurrency(concurrency int) EstimatorOption {
	return func(e *Estimator) {
		e.concurrency = concurrency
	}
}

// NewEstimator returns a new Estimator with the given options.
func NewEstimator(options ...EstimatorOption) *Estimator {
	e := &Estimator{
		concurrency: 1,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

var defaultEstimator = NewEstimator()

// EstimateArea estimates the surface area of dem using the default Estimator.
func EstimateArea(dem mat.Matrix, resolution float64) (float64, error) {
	return defaultEstimator.EstimateArea(dem, resolution)
}

// EstimateArea estimates the surface area of dem, a grid of elevation samples
// spaced resolution apart in both axes, in the same linear units as the
// elevations. The result is in squared linear units.
//
// Each overlapping 2x2 neighborhood of samples is split along its
// top-left-to-bottom-right diagonal into two triangles whose 3-D side lengths
// combine the elevation differences with the horizontal sample spacing. The
// triangle areas, computed from the side lengths with the semiperimeter
// formula, are summed over all neighborhoods.
//
// A DEM with fewer than two rows or two columns forms no triangles and has
// surface area zero. The estimate is never less than the flat projected area
// (rows-1)*(cols-1)*resolution*resolution, with equality for a flat DEM.
func (e *Estimator) EstimateArea(dem mat.Matrix, resolution float64) (float64, error) {
	timer := prometheus.NewTimer(estimateDurationSeconds)
	defer timer.ObserveDuration()

	area, err := e.estimateArea(dem, resolution)
	if err != nil {
		estimateErrorsTotal.Inc()
		return 0, err
	}
	estimatesTotal.Inc()
	return area, nil
}

func (e *Estimator) estimateArea(dem mat.Matrix, resolution float64) (float64, error) {
	if math.IsNaN(resolution) || math.IsInf(resolution, 0) || resolution <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResolution, resolution)
	}

	rows, cols := dem.Dims()
	if rows < 2 || cols < 2 {
		return 0, nil
	}

	bands := rows - 1
	workers := min(e.concurrency, bands)
	if workers <= 1 {
		return estimateBands(dem, resolution, 0, bands)
	}

	partialAreas := make([]float64, workers)
	var group errgroup.Group
	for worker := range workers {
		group.Go(func() error {
			begin := worker * bands / workers
			end := (worker + 1) * bands / workers
			partialArea, err := estimateBands(dem, resolution, begin, end)
			if err != nil {
				return err
			}
			partialAreas[worker] = partialArea
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}
	return floats.Sum(partialAreas), nil
}

// estimateBands sums the triangle areas of the neighborhood rows in [begin,
// end). Neighborhood row i spans sample rows i and i+1.
func estimateBands(dem mat.Matrix, resolution float64, begin, end int) (float64, error) {
	_, cols := dem.Dims()
	runSquared := resolution * resolution
	diagonalRunSquared := 2 * runSquared

	rowViewer, _ := dem.(mat.RawRowViewer)
	var topBuffer, bottomBuffer []float64
	if rowViewer == nil {
		topBuffer = make([]float64, cols)
		bottomBuffer = make([]float64, cols)
	}
	rowView := func(i int, buffer []float64) []float64 {
		if rowViewer != nil {
			return rowViewer.RawRowView(i)
		}
		return mat.Row(buffer, i, dem)
	}

	bandAreas := make([]float64, end-begin)
	top := rowView(begin, topBuffer)
	if err := checkFinite(top, begin); err != nil {
		return 0, err
	}
	for i := begin; i < end; i++ {
		bottom := rowView(i+1, bottomBuffer)
		if err := checkFinite(bottom, i+1); err != nil {
			return 0, err
		}
		var bandArea float64
		for j := 0; j+1 < cols; j++ {
			topLeft, topRight := top[j], top[j+1]
			bottomLeft, bottomRight := bottom[j], bottom[j+1]
			edgeTop := edgeLength(topLeft-topRight, runSquared)
			edgeLeft := edgeLength(topLeft-bottomLeft, runSquared)
			edgeDiagonal := edgeLength(topLeft-bottomRight, diagonalRunSquared)
			edgeRight := edgeLength(topRight-bottomRight, runSquared)
			edgeBottom := edgeLength(bottomLeft-bottomRight, runSquared)
			bandArea += triangleArea(edgeDiagonal, edgeLeft, edgeBottom)
			bandArea += triangleArea(edgeDiagonal, edgeTop, edgeRight)
		}
		bandAreas[i-begin] = bandArea
		top = bottom
		topBuffer, bottomBuffer = bottomBuffer, topBuffer
	}
	return floats.Sum(bandAreas), nil
}

// edgeLength returns the 3-D distance between two adjacent samples whose
// elevations differ by rise and whose horizontal separation squared is
// runSquared.
func edgeLength(rise, runSquared float64) float64 {
	return math.Sqrt(rise*rise + runSquared)
}

// triangleArea computes a triangle's area from its three side lengths with
// the semiperimeter formula. Rounding can push the radicand a few ulps
// negative for near-flat triangles, so it is clamped at zero.
func triangleArea(a, b, c float64) float64 {
	s := (a + b + c) / 2
	radicand := s * (s - a) * (s - b) * (s - c)
	if radicand < 0 {
		radicand = 0
	}
	return math.Sqrt(radicand)
}

func checkFinite(row []float64, i int) error {
	for j, sample := range row {
		if math.IsNaN(sample) || math.IsInf(sample, 0) {
			return fmt.Errorf("%w at row %d, column %d: %v", ErrNonFiniteElevation, i, j, sample)
		}
	}
	return nil
}
