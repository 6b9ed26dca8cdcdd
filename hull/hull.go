/*
 * hull.go, part of gophase.
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

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/gophase"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//DefaultTol is the default distance under which a point is considered to
//lie on a hyperplane.
const DefaultTol = 1e-10

//Facet is a facet of a convex hull in d dimensions. It is a (d-1)-simplex
//given by d vertices, which are indexes in the point slice used to build the hull.
//Every point x in the facet's hyperplane satisfies Normal·x = Offset. Normal has unit length
//and points outwards.
type Facet struct {
	Vertices []int
	Normal   []float64
	Offset   float64
}

//Distance returns the signed distance from p to the hyperplane of the facet,
//positive if p is on the outer side.
func (F *Facet) Distance(p []float64) float64 {
	return floats.Dot(F.Normal, p) - F.Offset
}

//Has returns true if the point with index i is a vertex of the facet.
func (F *Facet) Has(i int) bool {
	for _, v := range F.Vertices {
		if v == i {
			return true
		}
	}
	return false
}

//Barycentric returns the barycentric coordinates, with respect to the
//vertices of the facet, of the projection x of a point onto the first d-1
//axes (i.e. the last axis is dropped). points must be the slice used to build the hull.
//It returns an error if the projection of the facet is degenerate. The coordinates are
//returned in the order of F.Vertices and sum up to 1. Negative coordinates mean
//that x is outside the projection of the facet.
//To get the coordinates of many points, use a Projector.
func (F *Facet) Barycentric(points [][]float64, x []float64) ([]float64, error) {
	p, err := F.Projector(points)
	if err != nil {
		err.(chem.Error).Decorate("hull.Barycentric")
		return nil, err
	}
	return p.Barycentric(x)
}

//Projector computes barycentric coordinates in the projection of a facet
//onto the first d-1 axes. The matrix of the facet is factorized only once.
type Projector struct {
	d  int
	lu mat.LU
}

//Projector returns the Projector for the facet. points must be the slice used to build the hull.
//It fails with an error of kind chem.ErrDegenerateHull if the projection of the facet has no volume,
//as happens with vertical facets.
func (F *Facet) Projector(points [][]float64) (*Projector, error) {
	d := len(F.Vertices)
	P := &Projector{d: d}
	if d == 1 {
		return P, nil
	}
	A := gnZeros(d, d)
	for j, v := range F.Vertices {
		for i := 0; i < d-1; i++ {
			A.Set(i, j, points[v][i])
		}
		A.Set(d-1, j, 1)
	}
	P.lu.Factorize(A)
	if math.Abs(P.lu.Det()) <= appzero {
		return nil, chem.NewError(chem.ErrDegenerateHull, "facet projection has no volume", "hull.Projector")
	}
	return P, nil
}

//Barycentric returns the barycentric coordinates of x, which has d-1 components,
//as Facet.Barycentric does.
func (P *Projector) Barycentric(x []float64) ([]float64, error) {
	d := P.d
	if len(x) != d-1 {
		return nil, chem.NewError(chem.ErrCompositionOutOfSpace, fmt.Sprintf("projected point has dimension %d, expected %d", len(x), d-1), "hull.Barycentric")
	}
	if d == 1 {
		return []float64{1}, nil
	}
	b := mat.NewVecDense(d, nil)
	for i := 0; i < d-1; i++ {
		b.SetVec(i, x[i])
	}
	b.SetVec(d-1, 1)
	var lambda mat.VecDense
	if err := P.lu.SolveVecTo(&lambda, false, b); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, chem.NewError(chem.ErrDegenerateHull, err.Error(), "hull.Barycentric")
		}
	}
	ret := make([]float64, d)
	for i := range ret {
		ret[i] = lambda.AtVec(i)
	}
	return ret, nil
}

//LowerHuller computes the lower convex hull of a set of points, that is, the
//facets whose outward normal points towards negative values of the last
//coordinate.
type LowerHuller interface {
	LowerHull(points [][]float64) ([]*Facet, error)
}

//Quickhull is a quickhull-style convex hull builder for any dimension.
//It implements LowerHuller.
type Quickhull struct {
	Tol float64
}

//New returns a Quickhull with tolerance tol. If tol is not positive, DefaultTol is used.
func New(tol float64) *Quickhull {
	if tol <= 0 {
		tol = DefaultTol
	}
	return &Quickhull{Tol: tol}
}

//LowerHull returns the facets of the convex hull of points whose normal
//has a negative last component.
func (Q *Quickhull) LowerHull(points [][]float64) ([]*Facet, error) {
	all, err := Q.Hull(points)
	if err != nil {
		chem.ErrDecorate(err, "LowerHull")
		return nil, err
	}
	ret := make([]*Facet, 0, len(all)/2+1)
	for _, f := range all {
		if f.Normal[len(f.Normal)-1] < -Q.Tol {
			ret = append(ret, f)
		}
	}
	return ret, nil
}

//the facet plus the bookkeeping needed during the construction.
type qfacet struct {
	*Facet
	outside []int //points outside this facet and not outside any earlier one
	dead    bool
}

//Hull returns all the facets of the convex hull of points. All points must
//have the same dimension d>0, and there must be at least d+1 affinely independent
//points, otherwise an error of kind chem.ErrDegenerateHull is returned. Points
//closer than Q.Tol to a facet are not taken as vertices.
func (Q *Quickhull) Hull(points [][]float64) ([]*Facet, error) {
	if len(points) == 0 {
		return nil, chem.NewError(chem.ErrDegenerateHull, "no points", "Hull")
	}
	d := len(points[0])
	for i, p := range points {
		if len(p) != d || d == 0 {
			return nil, chem.NewError(chem.ErrDegenerateHull, fmt.Sprintf("point %d has dimension %d, expected %d>0", i, len(p), d), "Hull")
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, chem.NewError(chem.ErrDegenerateHull, fmt.Sprintf("point %d is not finite", i), "Hull")
			}
		}
	}
	if d == 1 {
		return Q.hull1D(points)
	}
	if len(points) < d+1 {
		return nil, chem.NewError(chem.ErrDegenerateHull, fmt.Sprintf("%d points can't span %d dimensions", len(points), d), "Hull")
	}
	simplex, err := Q.initialSimplex(points)
	if err != nil {
		err.(chem.Error).Decorate("Hull")
		return nil, err
	}
	interior := centroid(points, simplex)
	facets := make([]*qfacet, 0, 2*(d+1))
	for i := range simplex {
		verts := make([]int, 0, d)
		verts = append(verts, simplex[:i]...)
		verts = append(verts, simplex[i+1:]...)
		f, err := Q.newFacet(points, verts, interior)
		if err != nil {
			err.(chem.Error).Decorate("Hull")
			return nil, err
		}
		facets = append(facets, f)
	}
	insimplex := make(map[int]bool, len(simplex))
	for _, v := range simplex {
		insimplex[v] = true
	}
	rest := make([]int, 0, len(points)-len(simplex))
	for i := range points {
		if !insimplex[i] {
			rest = append(rest, i)
		}
	}
	Q.assign(points, rest, facets)
	for {
		var current *qfacet
		for _, f := range facets {
			if !f.dead && len(f.outside) > 0 {
				current = f
				break
			}
		}
		if current == nil {
			break
		}
		apex := Q.farthest(points, current)
		visible := make([]*qfacet, 0, 4)
		for _, f := range facets {
			if !f.dead && f.Distance(points[apex]) > Q.Tol {
				visible = append(visible, f)
			}
		}
		horizon := horizonRidges(visible)
		newfacets := make([]*qfacet, 0, len(horizon))
		for _, r := range horizon {
			verts := append(append(make([]int, 0, d), r...), apex)
			f, err := Q.newFacet(points, verts, interior)
			if err != nil {
				err.(chem.Error).Decorate("Hull")
				return nil, err
			}
			newfacets = append(newfacets, f)
		}
		var orphans []int
		for _, f := range visible {
			f.dead = true
			for _, p := range f.outside {
				if p != apex {
					orphans = append(orphans, p)
				}
			}
			f.outside = nil
		}
		alive := facets[:0]
		for _, f := range facets {
			if !f.dead {
				alive = append(alive, f)
			}
		}
		facets = append(alive, newfacets...)
		Q.assign(points, orphans, facets)
	}
	ret := make([]*Facet, 0, len(facets))
	for _, f := range facets {
		ret = append(ret, f.Facet)
	}
	return ret, nil
}

//in 1D, the hull is just the segment between the smallest and largest values.
func (Q *Quickhull) hull1D(points [][]float64) ([]*Facet, error) {
	imin, imax := 0, 0
	for i, p := range points {
		if p[0] < points[imin][0] {
			imin = i
		}
		if p[0] > points[imax][0] {
			imax = i
		}
	}
	if points[imax][0]-points[imin][0] <= Q.Tol {
		return nil, chem.NewError(chem.ErrDegenerateHull, "all points are coincident", "hull1D")
	}
	return []*Facet{
		{Vertices: []int{imin}, Normal: []float64{-1}, Offset: -points[imin][0]},
		{Vertices: []int{imax}, Normal: []float64{1}, Offset: points[imax][0]},
	}, nil
}

//initialSimplex finds d+1 affinely independent points, choosing each time
//the point farthest from the affine span of the ones already chosen.
func (Q *Quickhull) initialSimplex(points [][]float64) ([]int, error) {
	d := len(points[0])
	first := 0
	for i, p := range points {
		if p[0] < points[first][0] {
			first = i
		}
	}
	simplex := []int{first}
	chosen := map[int]bool{first: true}
	basis := make([][]float64, 0, d)
	r := make([]float64, d)
	for len(simplex) < d+1 {
		best, bestdist := -1, 0.0
		var bestr []float64
		for i, p := range points {
			if chosen[i] {
				continue
			}
			floats.SubTo(r, p, points[first])
			for _, b := range basis {
				floats.AddScaled(r, -floats.Dot(r, b), b)
			}
			if dist := floats.Norm(r, 2); dist > bestdist {
				best, bestdist = i, dist
				bestr = append(bestr[:0], r...)
			}
		}
		if best < 0 || bestdist <= Q.Tol {
			return nil, chem.NewError(chem.ErrDegenerateHull, fmt.Sprintf("points span only %d of %d dimensions", len(basis), d), "initialSimplex")
		}
		floats.Scale(1/bestdist, bestr)
		basis = append(basis, bestr)
		simplex = append(simplex, best)
		chosen[best] = true
	}
	return simplex, nil
}

//newFacet builds the facet with the given vertices, oriented so that
//interior is on its inner side.
func (Q *Quickhull) newFacet(points [][]float64, verts []int, interior []float64) (*qfacet, error) {
	sort.Ints(verts)
	vp := make([][]float64, len(verts))
	for i, v := range verts {
		vp[i] = points[v]
	}
	n := normal(vp)
	if unit(n) == 0 {
		return nil, chem.NewError(chem.ErrDegenerateHull, fmt.Sprintf("facet %v has no volume", verts), "newFacet")
	}
	f := &Facet{Vertices: verts, Normal: n, Offset: floats.Dot(n, vp[0])}
	if f.Distance(interior) > 0 {
		floats.Scale(-1, f.Normal)
		f.Offset = -f.Offset
	}
	return &qfacet{Facet: f}, nil
}

//assign puts each point in the outside set of the first facet it is outside of.
//Points not outside any of the facets are inside the hull and are dropped.
func (Q *Quickhull) assign(points [][]float64, pts []int, facets []*qfacet) {
	for _, p := range pts {
		for _, f := range facets {
			if f.Distance(points[p]) > Q.Tol {
				f.outside = append(f.outside, p)
				break
			}
		}
	}
}

func (Q *Quickhull) farthest(points [][]float64, f *qfacet) int {
	best, bestdist := f.outside[0], math.Inf(-1)
	for _, p := range f.outside {
		if dist := f.Distance(points[p]); dist > bestdist {
			best, bestdist = p, dist
		}
	}
	return best
}

//horizonRidges returns the ridges (sets of d-1 vertices) that belong to
//exactly one of the visible facets. Since in a closed hull every ridge is shared by two
//facets, those are the ridges between visible and non-visible facets.
func horizonRidges(visible []*qfacet) [][]int {
	count := make(map[string]int)
	ridges := make(map[string][]int)
	order := make([]string, 0)
	for _, f := range visible {
		for skip := range f.Vertices {
			r := make([]int, 0, len(f.Vertices)-1)
			r = append(r, f.Vertices[:skip]...)
			r = append(r, f.Vertices[skip+1:]...)
			k := ridgeKey(r)
			if count[k] == 0 {
				ridges[k] = r
				order = append(order, k)
			}
			count[k]++
		}
	}
	ret := make([][]int, 0, len(order))
	for _, k := range order {
		if count[k] == 1 {
			ret = append(ret, ridges[k])
		}
	}
	return ret
}

//the vertices are always sorted, see newFacet.
func ridgeKey(r []int) string {
	s := make([]string, len(r))
	for i, v := range r {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ",")
}
