/*
 * grand.go, part of gophase.
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
	"sort"
	"strings"

	chem "github.com/rmera/gophase"
	"go.uber.org/zap"
)

//GrandEntry is an entry transformed for a system open to a reservoir of some
//elements at fixed chemical potentials. Its energy is the grand potential
//E - sum(mu_i*n_i) over the open elements i, and its composition is that of the
//original entry without the open elements.
type GrandEntry struct {
	original chem.Entry
	comp     *chem.Composition
	energy   float64
}

//NewGrandEntry transforms entry for the given chemical potentials. It fails with an
//error of kind chem.ErrInvalidComposition if entry contains only open elements.
func NewGrandEntry(entry chem.Entry, chempots map[*chem.Element]float64) (*GrandEntry, error) {
	c := entry.Composition()
	open := make([]*chem.Element, 0, len(chempots))
	e := entry.Energy()
	for el, mu := range chempots {
		open = append(open, el)
		e -= mu * c.Amount(el)
	}
	comp, err := c.Without(open...)
	if err != nil {
		err.(chem.Error).Decorate("NewGrandEntry")
		return nil, err
	}
	return &GrandEntry{original: entry, comp: comp, energy: e}, nil
}

//Composition returns the composition without the open elements.
func (G *GrandEntry) Composition() *chem.Composition { return G.comp }

//Energy returns the grand potential.
func (G *GrandEntry) Energy() float64 { return G.energy }

//EnergyPerAtom returns the grand potential per atom of non-open element.
func (G *GrandEntry) EnergyPerAtom() float64 { return G.energy / G.comp.NumAtoms() }

func (G *GrandEntry) Name() string { return G.original.Name() }

func (G *GrandEntry) ID() string { return G.original.ID() }

//Original returns the untransformed entry.
func (G *GrandEntry) Original() chem.Entry { return G.original }

func (G *GrandEntry) String() string {
	return fmt.Sprintf("GrandEntry %s (%s) Phi=%.6g", G.original.Name(), G.comp.Formula(), G.energy)
}

//GrandPotentialDiagram is a phase diagram for a system open to a reservoir of one or
//more elements. Its entries are *GrandEntry values. Its queries also take the original,
//untransformed, entries.
type GrandPotentialDiagram struct {
	*transformed
	chempots map[*chem.Element]float64
}

var _ Query = (*GrandPotentialDiagram)(nil)

//NewGrand builds the grand potential diagram of entries for the open elements and chemical potentials
//in chempots. The open elements are removed from the compositional space, and the entries
//made only of open elements are dropped. At least one element of the system must remain
//closed, otherwise an error of kind chem.ErrInvalidGrandCanonicalConfig is returned.
func NewGrand(entries []chem.Entry, chempots map[*chem.Element]float64, opts *Options) (*GrandPotentialDiagram, error) {
	o := opts.complete()
	if len(chempots) == 0 {
		return nil, chem.NewError(chem.ErrInvalidGrandCanonicalConfig, "no open elements given", "NewGrand")
	}
	mus := make(map[*chem.Element]float64, len(chempots))
	for el, mu := range chempots {
		if el == nil || math.IsNaN(mu) || math.IsInf(mu, 0) {
			return nil, chem.NewError(chem.ErrInvalidGrandCanonicalConfig, fmt.Sprintf("invalid chemical potential %v for %v", mu, el), "NewGrand")
		}
		mus[el] = mu
	}
	var all []*chem.Element
	if o.Elements != nil {
		all = o.Elements
	} else {
		seen := make(map[*chem.Element]bool)
		for _, v := range entries {
			for _, e := range v.Composition().Elements() {
				if !seen[e] {
					seen[e] = true
					all = append(all, e)
				}
			}
		}
		chem.SortElements(all)
	}
	closed := make([]*chem.Element, 0, len(all))
	for _, e := range all {
		if _, ok := mus[e]; !ok {
			closed = append(closed, e)
		}
	}
	if len(closed) == 0 {
		return nil, chem.NewError(chem.ErrInvalidGrandCanonicalConfig, fmt.Sprintf("all the elements of the %s system are open", chem.ChemicalSystem(all)), "NewGrand")
	}
	byOriginal := make(map[chem.Entry]chem.Entry, len(entries))
	gentries := make([]chem.Entry, 0, len(entries))
	dropped := 0
	for _, v := range entries {
		if _, ok := byOriginal[v]; ok {
			continue
		}
		ge, err := NewGrandEntry(v, mus)
		if err != nil {
			dropped++ //only open elements
			continue
		}
		byOriginal[v] = ge
		gentries = append(gentries, ge)
	}
	if dropped > 0 {
		o.Logger.Debug("entries with only open elements dropped", zap.Int("dropped", dropped))
	}
	o.Elements = closed
	P, err := New(gentries, o)
	if err != nil {
		chem.ErrDecorate(err, "NewGrand")
		return nil, err
	}
	transform := func(e chem.Entry) (chem.Entry, error) {
		if ge, ok := e.(*GrandEntry); ok {
			return ge, nil
		}
		return NewGrandEntry(e, mus)
	}
	G := &GrandPotentialDiagram{chempots: mus, transformed: &transformed{PhaseDiagram: P, byOriginal: byOriginal, transform: transform}}
	return G, nil
}

//ChemicalPotentials returns the open elements and their chemical potentials.
func (G *GrandPotentialDiagram) ChemicalPotentials() map[*chem.Element]float64 {
	ret := make(map[*chem.Element]float64, len(G.chempots))
	for k, v := range G.chempots {
		ret[k] = v
	}
	return ret
}

//GrandEntryFor returns the transformed entry that corresponds to the original entry,
//and false if the entry is not part of the diagram.
func (G *GrandPotentialDiagram) GrandEntryFor(original chem.Entry) (*GrandEntry, bool) {
	t, ok := G.transformedFor(original)
	if !ok {
		return nil, false
	}
	return t.(*GrandEntry), true
}

func (G *GrandPotentialDiagram) String() string {
	mus := make([]string, 0, len(G.chempots))
	for e, mu := range G.chempots {
		mus = append(mus, fmt.Sprintf("mu_%s = %.4f", e, mu))
	}
	sort.Strings(mus)
	return fmt.Sprintf("%s\nOpen elements: %s", G.PhaseDiagram.String(), strings.Join(mus, ", "))
}
