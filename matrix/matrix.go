// Package matrix holds the class interaction coefficients.
package matrix

import (
	"math"

	"github.com/pkg/errors"

	"github.com/olivierh59500/particlelife/rng"
)

// Levels is the number of quantisation steps of a generated coefficient.
const Levels = 20

// Matrix is a K×K table indexed by (receiver class, source class). It is not
// required to be symmetric and is never modified after construction.
type Matrix struct {
	k      int
	values []float64 // row-major, row = receiver
}

// Generate draws K·K coefficients from src in row-major order. Each raw value
// is one of {-1.0, -0.9, ..., 0.9} and is divided by amplification.
func Generate(k int, amplification float64, src rng.Stream) *Matrix {
	m := &Matrix{k: k, values: make([]float64, k*k)}
	for i := range m.values {
		raw := math.Floor(src.Next()*Levels)/10.0 - 1.0
		m.values[i] = raw / amplification
	}
	return m
}

// FromRows builds a matrix from explicit rows. The rows are copied.
func FromRows(rows [][]float64) (*Matrix, error) {
	k := len(rows)
	if k == 0 {
		return nil, errors.New("matrix: no rows")
	}
	m := &Matrix{k: k, values: make([]float64, 0, k*k)}
	for i, row := range rows {
		if len(row) != k {
			return nil, errors.Errorf("matrix: row %d has %d entries, expected %d", i, len(row), k)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.Errorf("matrix: entry (%d,%d) is not finite", i, j)
			}
		}
		m.values = append(m.values, row...)
	}
	return m, nil
}

// Classes returns K.
func (m *Matrix) Classes() int {
	return m.k
}

// At returns the coefficient applied to the force a particle of class source
// exerts on a particle of class receiver.
func (m *Matrix) At(receiver, source int) float64 {
	return m.values[receiver*m.k+source]
}

// Row returns the coefficients seen by a receiver class. The slice aliases
// the matrix storage and must not be modified.
func (m *Matrix) Row(receiver int) []float64 {
	return m.values[receiver*m.k : (receiver+1)*m.k]
}

// Rows returns a copy of the matrix as nested slices.
func (m *Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.k)
	for i := range rows {
		rows[i] = append([]float64(nil), m.Row(i)...)
	}
	return rows
}

// Equal reports whether both matrices hold identical coefficients.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.k != o.k {
		return false
	}
	for i, v := range m.values {
		if o.values[i] != v {
			return false
		}
	}
	return true
}

// Symmetric reports whether At(i,j) == At(j,i) for every pair.
func (m *Matrix) Symmetric() bool {
	for i := 0; i < m.k; i++ {
		for j := i + 1; j < m.k; j++ {
			if m.At(i, j) != m.At(j, i) {
				return false
			}
		}
	}
	return true
}
