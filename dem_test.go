package surfacearea_test

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/twpayne/go-surfacearea"
)

func TestNewDEM(t *testing.T) {
	dem, err := surfacearea.NewDEM([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	assert.NoError(t, err)
	rows, cols := dem.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 1.0, dem.At(0, 0))
	assert.Equal(t, 6.0, dem.At(1, 2))
}

func TestNewDEM_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name    string
		samples [][]float64
	}{
		{
			name:    "nil",
			samples: nil,
		},
		{
			name:    "empty_row",
			samples: [][]float64{{}},
		},
		{
			name: "ragged",
			samples: [][]float64{
				{1, 2, 3},
				{4, 5},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := surfacearea.NewDEM(tc.samples)
			assert.Error(t, err)
		})
	}
}
