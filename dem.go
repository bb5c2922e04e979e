package surfacearea

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var errEmptyGrid = errors.New("empty grid")

// NewDEM returns a DEM with the given row-major elevation samples. All rows
// must have the same length. Any no-data sentinels must be substituted before
// the DEM is used to estimate a surface area.
func NewDEM(samples [][]float64) (*mat.Dense, error) {
	if len(samples) == 0 || len(samples[0]) == 0 {
		return nil, errEmptyGrid
	}
	rows, cols := len(samples), len(samples[0])
	data := make([]float64, 0, rows*cols)
	for i, row := range samples {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d samples, expected %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(rows, cols, data), nil
}
