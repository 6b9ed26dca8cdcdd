/*
 * classify.go, part of gophase.
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

package phasediag

import (
	"fmt"
	"math"

	chem "github.com/rmera/gophase"
)

//locate finds the lower hull facet whose projection contains composition c,
//and returns it along with the barycentric coordinates of c in it.
//If c is on the boundary of several facets, the one where c is most "inside" is
//returned; any of them gives the same hull energy.
func (P *PhaseDiagram) locate(c *chem.Composition) (*Facet, []float64, error) {
	x, err := P.coords(c)
	if err != nil {
		err.(chem.Error).Decorate("locate")
		return nil, nil, err
	}
	var best *Facet
	var bestl []float64
	bestmin := math.Inf(-1)
	for _, f := range P.facets {
		if f.proj == nil {
			continue
		}
		l, err := f.proj.Barycentric(x)
		if err != nil {
			continue
		}
		m := l[0]
		for _, v := range l[1:] {
			m = math.Min(m, v)
		}
		if m > bestmin {
			best, bestl, bestmin = f, l, m
		}
		if m >= 0 {
			break
		}
	}
	if best == nil || bestmin < -defBaryTol {
		return nil, nil, chem.NewError(chem.ErrCompositionOutOfSpace, fmt.Sprintf("%s is outside the hull of the %s system", c.Formula(), chem.ChemicalSystem(P.elements)), "locate")
	}
	return best, bestl, nil
}

//hullEnergy interpolates the energy per atom of the hull at the
//barycentric coordinates l of facet f.
func hullEnergy(f *Facet, l []float64) float64 {
	var e float64
	for i, v := range f.Entries {
		e += l[i] * v.EnergyPerAtom()
	}
	return e
}

//decomposition turns the barycentric coordinates into amounts (in atoms) of the
//facet's entries, for natoms atoms. Tiny and slightly negative coordinates are
//dropped and the rest renormalized.
func decomposition(f *Facet, l []float64, natoms, tol float64) map[chem.Entry]float64 {
	ret := make(map[chem.Entry]float64, len(l))
	var sum float64
	for _, v := range l {
		if v > tol {
			sum += v
		}
	}
	for i, v := range l {
		if v > tol {
			ret[f.Entries[i]] += natoms * v / sum
		}
	}
	return ret
}

//evaluate computes the energy above hull and decomposition of any entry with a composition
//within the diagram's system.
func (P *PhaseDiagram) evaluate(entry chem.Entry) (*result, error) {
	c := entry.Composition()
	f, l, err := P.locate(c)
	if err != nil {
		err.(chem.Error).Decorate("evaluate")
		return nil, err
	}
	r := &result{facet: f}
	r.eabove = entry.EnergyPerAtom() - hullEnergy(f, l)
	r.decomp = decomposition(f, l, c.NumAtoms(), defBaryTol)
	return r, nil
}

//classify labels every entry as stable or unstable. Hull vertices are stable by definition, other
//entries are stable only if they lie on the hull within the energy tolerance.
//A negative energy above hull means that the hull is wrong, and aborts the build.
func (P *PhaseDiagram) classify() error {
	vertex := make(map[chem.Entry]*Facet)
	for _, f := range P.facets {
		for _, v := range f.Entries {
			vertex[v] = f
		}
	}
	P.results = make(map[chem.Entry]*result, len(P.entries))
	for _, v := range P.entries {
		if _, ok := P.results[v]; ok {
			continue //the same entry given twice.
		}
		if f, ok := vertex[v]; ok {
			P.results[v] = &result{stable: true, facet: f, decomp: map[chem.Entry]float64{v: v.Composition().NumAtoms()}}
			P.stable = append(P.stable, v)
			continue
		}
		r, err := P.evaluate(v)
		if err != nil {
			err.(chem.Error).Decorate("classify")
			return err
		}
		if r.eabove < -P.opts.EnergyTol {
			return chem.NewError(chem.ErrInternal, fmt.Sprintf("entry %s is %g below the hull", v.Name(), -r.eabove), "classify")
		}
		if r.eabove <= P.opts.EnergyTol {
			r.eabove = 0
			r.stable = true
			r.decomp = map[chem.Entry]float64{v: v.Composition().NumAtoms()}
			P.stable = append(P.stable, v)
		}
		P.results[v] = r
	}
	return nil
}
