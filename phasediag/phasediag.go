/*
 * phasediag.go, part of gophase.
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
	"strconv"
	"strings"

	chem "github.com/rmera/gophase"
	"github.com/rmera/gophase/hull"
	"go.uber.org/zap"
)

//Facet is a facet of the lower hull of a phase diagram. It has one entry per
//element in the system.
type Facet struct {
	Entries []chem.Entry
	//The hyperplane of the facet in the lifted space (fractions of all the elements
	//but the first, then energy per atom). Normal·x = Offset.
	Normal []float64
	Offset float64
	//nil for vertical facets, which contain no composition.
	proj *hull.Projector
}

func (F *Facet) String() string {
	names := make([]string, len(F.Entries))
	for i, v := range F.Entries {
		names[i] = v.Name()
	}
	return strings.Join(names, "-")
}

//the classification of an entry.
type result struct {
	eabove float64
	stable bool
	decomp map[chem.Entry]float64
	facet  *Facet
}

//PhaseDiagram is a built, immutable phase diagram. It implements Query.
type PhaseDiagram struct {
	elements []*chem.Element
	entries  []chem.Entry
	refs     map[*chem.Element]chem.Entry
	//points and hullEntries are index-aligned. The last point is the
	//apex that closes the hull from above, and has no entry.
	points      [][]float64
	hullEntries []chem.Entry
	facets      []*Facet
	results     map[chem.Entry]*result
	stable      []chem.Entry
	opts        *Options
}

//New builds the phase diagram for entries. It fails with an error of kind chem.ErrIncompletePhaseSpace
//if some element has no elemental entry, chem.ErrDegenerateHull if the hull can't be built,
//and chem.ErrInternal (a critical error) if the hull turns out to be inconsistent.
//opts can be nil, in which case DefaultOptions are used.
func New(entries []chem.Entry, opts *Options) (*PhaseDiagram, error) {
	o := opts.complete()
	P := &PhaseDiagram{opts: o}
	if err := P.setEntries(entries); err != nil {
		chem.ErrDecorate(err, "New")
		return nil, err
	}
	if err := P.buildHull(); err != nil {
		chem.ErrDecorate(err, "New")
		return nil, err
	}
	if err := P.classify(); err != nil {
		chem.ErrDecorate(err, "New")
		return nil, err
	}
	o.Logger.Debug("phase diagram built",
		zap.String("system", chem.ChemicalSystem(P.elements)),
		zap.Int("entries", len(P.entries)),
		zap.Int("hullPoints", len(P.hullEntries)),
		zap.Int("facets", len(P.facets)),
		zap.Int("stable", len(P.stable)))
	return P, nil
}

//setEntries determines the elements of the system, filters the entries and
//finds the elemental references.
func (P *PhaseDiagram) setEntries(entries []chem.Entry) error {
	if len(entries) == 0 {
		return chem.NewError(chem.ErrIncompletePhaseSpace, "no entries given", "setEntries")
	}
	if P.opts.Elements != nil {
		P.elements = P.opts.Elements
		chem.SortElements(P.elements)
		in := make(map[*chem.Element]bool, len(P.elements))
		for _, e := range P.elements {
			in[e] = true
		}
		dropped := 0
	entryloop:
		for _, v := range entries {
			for _, e := range v.Composition().Elements() {
				if !in[e] {
					dropped++
					continue entryloop
				}
			}
			P.entries = append(P.entries, v)
		}
		if dropped > 0 {
			P.opts.Logger.Info("entries outside the chemical system ignored",
				zap.String("system", chem.ChemicalSystem(P.elements)), zap.Int("ignored", dropped))
		}
	} else {
		seen := make(map[*chem.Element]bool)
		for _, v := range entries {
			for _, e := range v.Composition().Elements() {
				if !seen[e] {
					seen[e] = true
					P.elements = append(P.elements, e)
				}
			}
		}
		chem.SortElements(P.elements)
		P.entries = make([]chem.Entry, len(entries))
		copy(P.entries, entries)
	}
	if len(P.elements) == 0 {
		return chem.NewError(chem.ErrIncompletePhaseSpace, "no elements in the system", "setEntries")
	}
	if len(P.entries) == 0 {
		return chem.NewError(chem.ErrIncompletePhaseSpace, fmt.Sprintf("no entries in the %s system", chem.ChemicalSystem(P.elements)), "setEntries")
	}
	P.refs = make(map[*chem.Element]chem.Entry, len(P.elements))
	for _, v := range P.entries {
		c := v.Composition()
		if !c.IsElement() {
			continue
		}
		e := c.Elements()[0]
		if r, ok := P.refs[e]; !ok || v.EnergyPerAtom() < r.EnergyPerAtom() {
			P.refs[e] = v
		}
	}
	var missing []string
	for _, e := range P.elements {
		if _, ok := P.refs[e]; !ok {
			missing = append(missing, e.Symbol())
		}
	}
	if len(missing) > 0 {
		return chem.NewError(chem.ErrIncompletePhaseSpace, fmt.Sprintf("no elemental entries for %s", strings.Join(missing, ", ")), "setEntries")
	}
	return nil
}

//compositional coordinates of c: the fractions of all the elements but the first.
func (P *PhaseDiagram) coords(c *chem.Composition) ([]float64, error) {
	for _, e := range c.Elements() {
		if !P.HasElement(e) {
			return nil, chem.NewError(chem.ErrCompositionOutOfSpace, fmt.Sprintf("%s is not part of the %s system", e, chem.ChemicalSystem(P.elements)), "coords")
		}
	}
	x := make([]float64, len(P.elements)-1)
	for i, e := range P.elements[1:] {
		x[i] = c.Fraction(e)
	}
	return x, nil
}

//buildHull keeps the lowest energy entry for each composition, lifts them to the
//composition-energy space and builds the lower hull.
func (P *PhaseDiagram) buildHull() error {
	byComp := make(map[string]int, len(P.entries))
	for _, v := range P.entries {
		k := compKey(v.Composition(), P.opts.CompositionTol)
		dup, ok := byComp[k]
		if !ok {
			byComp[k] = len(P.hullEntries)
			P.hullEntries = append(P.hullEntries, v)
		} else if v.EnergyPerAtom() < P.hullEntries[dup].EnergyPerAtom() {
			P.hullEntries[dup] = v
		}
	}
	emin, emax := math.Inf(1), math.Inf(-1)
	P.points = make([][]float64, 0, len(P.hullEntries)+1)
	for _, v := range P.hullEntries {
		x, err := P.coords(v.Composition())
		if err != nil {
			err.(chem.Error).Decorate("buildHull")
			return err
		}
		e := v.EnergyPerAtom()
		emin = math.Min(emin, e)
		emax = math.Max(emax, e)
		P.points = append(P.points, append(x, e))
	}
	//The apex sits above the center of the composition simplex, so the hull is
	//closed even when only the elemental entries are present.
	n := len(P.elements)
	apex := make([]float64, n)
	for i := 0; i < n-1; i++ {
		apex[i] = 1 / float64(n)
	}
	apex[n-1] = emax + math.Max(1, emax-emin)
	P.points = append(P.points, apex)
	apexi := len(P.points) - 1
	hf, err := P.opts.Hull.LowerHull(P.points)
	if err != nil {
		chem.ErrDecorate(err, "buildHull")
		return err
	}
	for _, f := range hf {
		if f.Has(apexi) {
			continue
		}
		F := &Facet{Normal: f.Normal, Offset: f.Offset}
		F.proj, _ = f.Projector(P.points)
		for _, v := range f.Vertices {
			F.Entries = append(F.Entries, P.hullEntries[v])
		}
		P.facets = append(P.facets, F)
	}
	if len(P.facets) == 0 {
		return chem.NewError(chem.ErrDegenerateHull, "the hull has no lower facets", "buildHull")
	}
	return nil
}

//compKey returns the same string for compositions with the same atomic fractions,
//rounded to multiples of tol.
func compKey(c *chem.Composition, tol float64) string {
	var b strings.Builder
	for _, e := range c.Elements() {
		b.WriteString(e.Symbol())
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(int64(math.Round(c.Fraction(e)/tol)), 10))
		b.WriteByte(';')
	}
	return b.String()
}

//HasElement returns true if e is one of the elements of the diagram.
func (P *PhaseDiagram) HasElement(e *chem.Element) bool {
	for _, v := range P.elements {
		if v == e {
			return true
		}
	}
	return false
}

//ElementalReference returns the lowest energy entry made only of element e, or nil
//if e is not part of the diagram.
func (P *PhaseDiagram) ElementalReference(e *chem.Element) chem.Entry {
	return P.refs[e]
}

//FormationEnergy returns the energy of entry relative to the elemental references.
func (P *PhaseDiagram) FormationEnergy(entry chem.Entry) (float64, error) {
	c := entry.Composition()
	ret := entry.Energy()
	for _, e := range c.Elements() {
		r, ok := P.refs[e]
		if !ok {
			return 0, chem.NewError(chem.ErrCompositionOutOfSpace, fmt.Sprintf("%s is not part of the %s system", e, chem.ChemicalSystem(P.elements)), "FormationEnergy")
		}
		ret -= c.Amount(e) * r.EnergyPerAtom()
	}
	return ret, nil
}

//FormationEnergyPerAtom returns the formation energy of entry divided by its number of atoms.
func (P *PhaseDiagram) FormationEnergyPerAtom(entry chem.Entry) (float64, error) {
	f, err := P.FormationEnergy(entry)
	if err != nil {
		err.(chem.Error).Decorate("FormationEnergyPerAtom")
		return 0, err
	}
	return f / entry.Composition().NumAtoms(), nil
}

//EquilibriumReactionEnergy returns, for a stable entry, its energy per atom relative to the
//hull built without its composition. The result is 0 or negative: the more negative, the
//more stable the entry. Elemental entries can't be removed from a diagram, so they are rejected.
func (P *PhaseDiagram) EquilibriumReactionEnergy(entry chem.Entry) (float64, error) {
	if !P.IsStable(entry) {
		return 0, chem.NewError(chem.ErrCompositionOutOfSpace, fmt.Sprintf("%s is not a stable entry of the diagram", entry.Name()), "EquilibriumReactionEnergy")
	}
	if entry.Composition().IsElement() {
		return 0, chem.NewError(chem.ErrIncompletePhaseSpace, fmt.Sprintf("%s is elemental", entry.Name()), "EquilibriumReactionEnergy")
	}
	others := make([]chem.Entry, 0, len(P.entries))
	for _, v := range P.entries {
		if !chem.SameComposition(v, entry, P.opts.CompositionTol) {
			others = append(others, v)
		}
	}
	o := *P.opts
	o.Elements = P.elements
	Q, err := New(others, &o)
	if err != nil {
		chem.ErrDecorate(err, "EquilibriumReactionEnergy")
		return 0, err
	}
	e, err := Q.EAboveHull(entry)
	if err != nil {
		chem.ErrDecorate(err, "EquilibriumReactionEnergy")
	}
	return e, err
}

func (P *PhaseDiagram) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s phase diagram\n", chem.ChemicalSystem(P.elements))
	fmt.Fprintf(&b, "%d stable phases:\n", len(P.stable))
	names := make([]string, len(P.stable))
	for i, v := range P.stable {
		names[i] = v.Name()
	}
	sort.Strings(names)
	b.WriteString(strings.Join(names, ", "))
	return b.String()
}
