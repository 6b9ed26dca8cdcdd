/*
 * matrixhelp.go, part of gophase.
 *
 *
 * Copyright 2024 Raul Mera <rauldotmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * gophase is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package hull

//A bunch of unexported mathematical functions, most of them just for convenience.

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Everything equal or less than this is considered a zero determinant.
const appzero float64 = 1e-14

//Returns an zero-filled Dense with the given dimensions
func gnZeros(r, c int) *mat.Dense {
	f := make([]float64, r*c)
	return mat.NewDense(r, c, f)
}

//normal returns a vector normal to the hyperplane spanned by the d points in
//verts (each of dimension d), using the generalized cross product
//of the edge vectors, v[i]-v[0]. The result is not normalized and its sign is
//arbitrary. It panics if the number of points doesn't match the dimension.
func normal(verts [][]float64) []float64 {
	d := len(verts)
	if d < 2 || len(verts[0]) != d {
		panic("hull: normal needs d points of dimension d, d>1")
	}
	edges := gnZeros(d-1, d)
	row := make([]float64, d)
	for i := 1; i < d; i++ {
		floats.SubTo(row, verts[i], verts[0])
		edges.SetRow(i-1, row)
	}
	ret := make([]float64, d)
	minor := gnZeros(d-1, d-1)
	sign := 1.0
	for j := 0; j < d; j++ {
		for r := 0; r < d-1; r++ {
			c2 := 0
			for c := 0; c < d; c++ {
				if c == j {
					continue
				}
				minor.Set(r, c2, edges.At(r, c))
				c2++
			}
		}
		ret[j] = sign * mat.Det(minor)
		sign = -sign
	}
	return ret
}

//unit scales v in place to unit length and returns its original norm.
func unit(v []float64) float64 {
	n := floats.Norm(v, 2)
	if n == 0 || math.IsNaN(n) {
		return 0
	}
	floats.Scale(1/n, v)
	return n
}

//centroid returns the average of the points with the given indexes.
func centroid(points [][]float64, idx []int) []float64 {
	ret := make([]float64, len(points[idx[0]]))
	for _, i := range idx {
		floats.Add(ret, points[i])
	}
	floats.Scale(1/float64(len(idx)), ret)
	return ret
}
