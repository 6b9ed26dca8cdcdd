/*
 * compound.go, part of gophase.
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
	"strings"

	chem "github.com/rmera/gophase"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

//TransformedEntry is an entry expressed as amounts of the terminal compounds of a
//CompoundPhaseDiagram. Its energy is the total energy of the original entry, so its
//energy "per atom" is per formula unit of the terminals.
type TransformedEntry struct {
	original chem.Entry
	comp     *chem.Composition
}

func (T *TransformedEntry) Composition() *chem.Composition { return T.comp }

func (T *TransformedEntry) Energy() float64 { return T.original.Energy() }

func (T *TransformedEntry) EnergyPerAtom() float64 { return T.original.Energy() / T.comp.NumAtoms() }

func (T *TransformedEntry) Name() string { return T.original.Name() }

func (T *TransformedEntry) ID() string { return T.original.ID() }

//Original returns the entry that was transformed.
func (T *TransformedEntry) Original() chem.Entry { return T.original }

func (T *TransformedEntry) String() string {
	return fmt.Sprintf("TransformedEntry %s (%s) E=%.6g", T.original.Name(), T.comp.Formula(), T.Energy())
}

//CompoundPhaseDiagram is a phase diagram whose components are compounds (the terminals)
//instead of elements, such as the Li2O-Fe2O3 pseudo-binary. Its entries are *TransformedEntry
//values, and its elements are pseudo elements, one per terminal, named after the terminal's
//reduced formula. Its queries also take the original entries.
type CompoundPhaseDiagram struct {
	*transformed
	terminals  []*chem.Composition
	components []*chem.Element
}

var _ Query = (*CompoundPhaseDiagram)(nil)

//terminalSpace solves compositions as non-negative combinations of the terminals.
type terminalSpace struct {
	elements   []*chem.Element
	components []*chem.Element
	a          *mat.Dense //elements x terminals
	tol        float64
}

//newTerminalSpace checks that the terminals are linearly independent.
func newTerminalSpace(terminals []*chem.Composition, tol float64) (*terminalSpace, error) {
	if len(terminals) < 2 {
		return nil, chem.NewError(chem.ErrInvalidComposition, fmt.Sprintf("at least 2 terminal compositions needed, %d given", len(terminals)), "newTerminalSpace")
	}
	S := &terminalSpace{tol: tol}
	seen := make(map[*chem.Element]bool)
	for _, t := range terminals {
		if t == nil {
			return nil, chem.NewError(chem.ErrInvalidComposition, "nil terminal composition", "newTerminalSpace")
		}
		for _, e := range t.Elements() {
			if !seen[e] {
				seen[e] = true
				S.elements = append(S.elements, e)
			}
		}
	}
	chem.SortElements(S.elements)
	if len(terminals) > len(S.elements) {
		return nil, chem.NewError(chem.ErrInvalidComposition, fmt.Sprintf("%d terminals can't be independent in the %s system", len(terminals), chem.ChemicalSystem(S.elements)), "newTerminalSpace")
	}
	S.a = mat.NewDense(len(S.elements), len(terminals), nil)
	for j, t := range terminals {
		for i, e := range S.elements {
			S.a.Set(i, j, t.Amount(e))
		}
		S.components = append(S.components, chem.NewPseudoElement(t.ReducedFormula(), j))
	}
	var svd mat.SVD
	if !svd.Factorize(S.a, mat.SVDNone) {
		return nil, chem.NewError(chem.ErrInvalidComposition, "could not factorize the terminal matrix", "newTerminalSpace")
	}
	vals := svd.Values(nil)
	if vals[len(vals)-1] <= tol*vals[0] {
		names := make([]string, len(terminals))
		for i, t := range terminals {
			names[i] = t.Formula()
		}
		return nil, chem.NewError(chem.ErrInvalidComposition, fmt.Sprintf("terminals %s are not linearly independent", strings.Join(names, ", ")), "newTerminalSpace")
	}
	return S, nil
}

//amounts returns the amount of each terminal in c. It fails with chem.ErrCompositionOutOfSpace
//if c contains other elements, or is not a non-negative combination of the terminals.
func (S *terminalSpace) amounts(c *chem.Composition) ([]float64, error) {
	in := make(map[*chem.Element]bool, len(S.elements))
	for _, e := range S.elements {
		in[e] = true
	}
	for _, e := range c.Elements() {
		if !in[e] {
			return nil, chem.NewError(chem.ErrCompositionOutOfSpace, fmt.Sprintf("%s is not part of the %s system", e, chem.ChemicalSystem(S.elements)), "amounts")
		}
	}
	b := mat.NewVecDense(len(S.elements), nil)
	for i, e := range S.elements {
		b.SetVec(i, c.Amount(e))
	}
	var x mat.VecDense
	if err := x.SolveVec(S.a, b); err != nil {
		if _, ok := err.(mat.Condition); !ok {
			return nil, chem.NewError(chem.ErrCompositionOutOfSpace, fmt.Sprintf("%s can't be expressed in the terminals: %v", c.Formula(), err), "amounts")
		}
	}
	var r mat.VecDense
	r.MulVec(S.a, &x)
	r.SubVec(&r, b)
	natoms := c.NumAtoms()
	if mat.Norm(&r, 2) > S.tol*natoms {
		return nil, chem.NewError(chem.ErrCompositionOutOfSpace, fmt.Sprintf("%s is not in the span of the terminals", c.Formula()), "amounts")
	}
	ret := make([]float64, x.Len())
	for i := range ret {
		v := x.AtVec(i)
		if v < -S.tol*natoms {
			return nil, chem.NewError(chem.ErrCompositionOutOfSpace, fmt.Sprintf("%s needs a negative amount of a terminal", c.Formula()), "amounts")
		}
		ret[i] = math.Max(v, 0)
	}
	return ret, nil
}

//transform expresses entry in the terminals.
func (S *terminalSpace) transform(entry chem.Entry) (chem.Entry, error) {
	if t, ok := entry.(*TransformedEntry); ok {
		return t, nil
	}
	x, err := S.amounts(entry.Composition())
	if err != nil {
		err.(chem.Error).Decorate("transform")
		return nil, err
	}
	m := make(map[*chem.Element]float64, len(x))
	for i, v := range x {
		m[S.components[i]] = v
	}
	c, err := chem.NewComposition(m)
	if err != nil {
		err.(chem.Error).Decorate("transform")
		return nil, err
	}
	return &TransformedEntry{original: entry, comp: c}, nil
}

//NewCompound builds the phase diagram of entries in the space spanned by the terminal compositions.
//Each entry is re-expressed as amounts of the terminals, and the entries outside the space (with other
//elements, or needing negative amounts of some terminal) are dropped. The lowest energy entry at
//each terminal composition is the reference for that component, so there must be one for every terminal,
//otherwise an error of kind chem.ErrIncompletePhaseSpace is returned. Terminals that are not linearly
//independent give an error of kind chem.ErrInvalidComposition.
func NewCompound(entries []chem.Entry, terminals []*chem.Composition, opts *Options) (*CompoundPhaseDiagram, error) {
	o := opts.complete()
	S, err := newTerminalSpace(terminals, o.CompositionTol)
	if err != nil {
		err.(chem.Error).Decorate("NewCompound")
		return nil, err
	}
	byOriginal := make(map[chem.Entry]chem.Entry, len(entries))
	tentries := make([]chem.Entry, 0, len(entries))
	dropped := 0
	for _, v := range entries {
		if _, ok := byOriginal[v]; ok {
			continue
		}
		t, err := S.transform(v)
		if err != nil {
			dropped++
			continue
		}
		byOriginal[v] = t
		tentries = append(tentries, t)
	}
	if dropped > 0 {
		o.Logger.Debug("entries outside the terminal space dropped", zap.Int("dropped", dropped))
	}
	o.Elements = S.components
	P, err := New(tentries, o)
	if err != nil {
		chem.ErrDecorate(err, "NewCompound")
		return nil, err
	}
	C := &CompoundPhaseDiagram{
		transformed: &transformed{PhaseDiagram: P, byOriginal: byOriginal, transform: S.transform},
		terminals:   append([]*chem.Composition(nil), terminals...),
		components:  S.components,
	}
	return C, nil
}

//Terminals returns the terminal compositions, in the order given.
func (C *CompoundPhaseDiagram) Terminals() []*chem.Composition {
	return append([]*chem.Composition(nil), C.terminals...)
}

//Component returns the pseudo element that stands for the i-th terminal.
func (C *CompoundPhaseDiagram) Component(i int) *chem.Element {
	return C.components[i]
}

//TransformedEntryFor returns the transformed entry that corresponds to the original entry,
//and false if the entry is not part of the diagram.
func (C *CompoundPhaseDiagram) TransformedEntryFor(original chem.Entry) (*TransformedEntry, bool) {
	t, ok := C.transformedFor(original)
	if !ok {
		return nil, false
	}
	return t.(*TransformedEntry), true
}

func (C *CompoundPhaseDiagram) String() string {
	names := make([]string, len(C.terminals))
	for i, t := range C.terminals {
		names[i] = t.ReducedFormula()
	}
	return fmt.Sprintf("%s\nTerminals: %s", C.PhaseDiagram.String(), strings.Join(names, ", "))
}
