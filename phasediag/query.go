/*
 * query.go, part of gophase.
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
	chem "github.com/rmera/gophase"
)

//Query is the read-only interface of a built phase diagram. None of its methods
//changes the diagram, so a Query can be shared between goroutines.
type Query interface {
	Elements() []*chem.Element
	Entries() []chem.Entry
	StableEntries() []chem.Entry
	UnstableEntries() []chem.Entry
	IsStable(entry chem.Entry) bool
	EAboveHull(entry chem.Entry) (float64, error)
	Decomposition(entry chem.Entry) (map[chem.Entry]float64, error)
	Facets() []*Facet
	FacetFor(c *chem.Composition) (*Facet, error)
	HullEnergy(c *chem.Composition) (float64, error)
	FormationEnergyPerAtom(entry chem.Entry) (float64, error)
}

var _ Query = (*PhaseDiagram)(nil)

//Elements returns the elements of the system, in the order used for the hull axes.
func (P *PhaseDiagram) Elements() []*chem.Element {
	ret := make([]*chem.Element, len(P.elements))
	copy(ret, P.elements)
	return ret
}

//Entries returns all the entries that are part of the diagram.
func (P *PhaseDiagram) Entries() []chem.Entry {
	ret := make([]chem.Entry, len(P.entries))
	copy(ret, P.entries)
	return ret
}

//StableEntries returns the stable entries, in the order they were given.
func (P *PhaseDiagram) StableEntries() []chem.Entry {
	ret := make([]chem.Entry, len(P.stable))
	copy(ret, P.stable)
	return ret
}

//UnstableEntries returns the entries that are not stable, in the order they were given.
func (P *PhaseDiagram) UnstableEntries() []chem.Entry {
	ret := make([]chem.Entry, 0, len(P.entries)-len(P.stable))
	for _, v := range P.entries {
		if r, ok := P.results[v]; ok && !r.stable {
			ret = append(ret, v)
		}
	}
	return ret
}

//IsStable returns true if entry is one of the stable entries of the diagram.
//It is false for any entry that was not used to build the diagram.
func (P *PhaseDiagram) IsStable(entry chem.Entry) bool {
	r, ok := P.results[entry]
	return ok && r.stable
}

//EAboveHull returns the energy per atom of entry above the hull. For the entries of the diagram,
//this is 0 for stable entries and positive otherwise. Other entries are evaluated against the hull
//and can give a negative value, if they are more stable than the diagram's phases.
func (P *PhaseDiagram) EAboveHull(entry chem.Entry) (float64, error) {
	if r, ok := P.results[entry]; ok {
		return r.eabove, nil
	}
	r, err := P.evaluate(entry)
	if err != nil {
		err.(chem.Error).Decorate("EAboveHull")
		return 0, err
	}
	return r.eabove, nil
}

//Decomposition returns the stable entries into which entry decomposes, with their amounts
//in atoms. The amounts sum up to the number of atoms of entry. A stable entry
//"decomposes" into itself.
func (P *PhaseDiagram) Decomposition(entry chem.Entry) (map[chem.Entry]float64, error) {
	r, ok := P.results[entry]
	if !ok {
		var err error
		r, err = P.evaluate(entry)
		if err != nil {
			err.(chem.Error).Decorate("Decomposition")
			return nil, err
		}
	}
	ret := make(map[chem.Entry]float64, len(r.decomp))
	for k, v := range r.decomp {
		ret[k] = v
	}
	return ret, nil
}

//Facets returns the facets of the lower hull.
func (P *PhaseDiagram) Facets() []*Facet {
	ret := make([]*Facet, len(P.facets))
	copy(ret, P.facets)
	return ret
}

//FacetFor returns the facet of the lower hull whose projection contains c.
func (P *PhaseDiagram) FacetFor(c *chem.Composition) (*Facet, error) {
	f, _, err := P.locate(c)
	if err != nil {
		err.(chem.Error).Decorate("FacetFor")
	}
	return f, err
}

//HullEnergy returns the energy per atom of the hull at composition c.
func (P *PhaseDiagram) HullEnergy(c *chem.Composition) (float64, error) {
	f, l, err := P.locate(c)
	if err != nil {
		err.(chem.Error).Decorate("HullEnergy")
		return 0, err
	}
	return hullEnergy(f, l), nil
}
