// Package dataset builds sample and target matrices: conversion from ragged
// slices, the synthetic sets used by the demos and the Connect-Four block
// loader.
package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlkit/pkg/errors"
)

// FromRows copies rows into a dense matrix. Every row must have the same
// length.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.NewEmptyDataError("dataset.FromRows")
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.Wrapf(
				errors.NewDimensionError("dataset.FromRows", cols, len(row), 1),
				"row %d", i,
			)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// Column returns values as an n×1 matrix, the target shape expected by the
// linear models.
func Column(values []float64) (*mat.Dense, error) {
	if len(values) == 0 {
		return nil, errors.NewEmptyDataError("dataset.Column")
	}
	return mat.NewDense(len(values), 1, append([]float64(nil), values...)), nil
}

// Rows copies the rows of m into fresh slices.
func Rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(make([]float64, c), i, m)
	}
	return out
}
