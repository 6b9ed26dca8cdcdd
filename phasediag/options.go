/*
 * options.go, part of gophase.
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
	"runtime"

	chem "github.com/rmera/gophase"
	"github.com/rmera/gophase/hull"
	"go.uber.org/zap"
)

const (
	defCompositionTol float64 = chem.DefaultCompositionTol
	defEnergyTol      float64 = 1e-6 //per atom, in the units of the entries' energies
	defHullTol        float64 = hull.DefaultTol
	defBaryTol        float64 = 1e-6 //smallest negative barycentric coordinate accepted as "inside"
)

//Options contains the parameters for building phase diagrams.
type Options struct {
	//Normalized compositions closer than this are considered the same.
	CompositionTol float64
	//Entries with energy above hull up to this are considered stable.
	EnergyTol float64
	//Tolerance for the hull construction, passed to the default hull builder.
	HullTol float64
	//If not nil, only the entries made of these elements are used.
	Elements []*chem.Element
	//Maximum number of diagrams built at the same time by BuildAll.
	Cpus int
	//The convex hull algorithm. If nil, a hull.Quickhull with tolerance HullTol is used.
	Hull hull.LowerHuller
	Logger *zap.Logger
}

//DefaultOptions returns reasonable options. The logger discards everything.
func DefaultOptions() *Options {
	r := new(Options)
	r.CompositionTol = defCompositionTol
	r.EnergyTol = defEnergyTol
	r.HullTol = defHullTol
	r.Cpus = runtime.NumCPU()
	r.Logger = zap.NewNop()
	return r
}

//complete returns a copy of O with all the unset fields at their default values.
//A nil O gives the default options.
func (O *Options) complete() *Options {
	r := DefaultOptions()
	if O == nil {
		r.Hull = hull.New(r.HullTol)
		return r
	}
	if O.CompositionTol > 0 {
		r.CompositionTol = O.CompositionTol
	}
	if O.EnergyTol > 0 {
		r.EnergyTol = O.EnergyTol
	}
	if O.HullTol > 0 {
		r.HullTol = O.HullTol
	}
	if O.Cpus > 0 {
		r.Cpus = O.Cpus
	}
	if O.Logger != nil {
		r.Logger = O.Logger
	}
	if O.Elements != nil {
		r.Elements = make([]*chem.Element, len(O.Elements))
		copy(r.Elements, O.Elements)
	}
	r.Hull = O.Hull
	if r.Hull == nil {
		r.Hull = hull.New(r.HullTol)
	}
	return r
}
