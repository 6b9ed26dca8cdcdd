/*
 * entry.go, part of gophase.
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

package chem

import (
	"fmt"
	"math"
)

//PDEntry is the basic, immutable, Entry: a composition, the total energy for the
//amounts in that composition, a name and an identifier for the source of the data
//(a database ID, a calculation directory, etc.).
type PDEntry struct {
	comp   *Composition
	energy float64
	name   string
	id     string
}

//NewPDEntry returns a new entry. If name is empty, the reduced formula of comp is used.
//id can be empty.
func NewPDEntry(comp *Composition, energy float64, name, id string) (*PDEntry, error) {
	if comp == nil {
		return nil, NewError(ErrInvalidComposition, "nil composition", "NewPDEntry")
	}
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return nil, NewError(ErrInvalidComposition, fmt.Sprintf("non-finite energy for %s", comp.Formula()), "NewPDEntry")
	}
	if name == "" {
		name = comp.ReducedFormula()
	}
	return &PDEntry{comp: comp, energy: energy, name: name, id: id}, nil
}

//NewPDEntryFromFormula parses formula and returns an entry with the given
//energy. The formula, as given, is the name of the entry.
func NewPDEntryFromFormula(formula string, energy float64, id string) (*PDEntry, error) {
	comp, err := ParseFormula(formula)
	if err != nil {
		err.(Error).Decorate("NewPDEntryFromFormula")
		return nil, err
	}
	return NewPDEntry(comp, energy, formula, id)
}

//Composition returns the composition of the entry.
func (P *PDEntry) Composition() *Composition { return P.comp }

//Energy returns the total energy of the entry.
func (P *PDEntry) Energy() float64 { return P.energy }

//EnergyPerAtom returns the energy divided by the number of atoms in the composition.
func (P *PDEntry) EnergyPerAtom() float64 { return P.energy / P.comp.NumAtoms() }

func (P *PDEntry) Name() string { return P.name }

func (P *PDEntry) ID() string { return P.id }

func (P *PDEntry) String() string {
	if P.id == "" {
		return fmt.Sprintf("%s (%s) E=%.6g", P.name, P.comp.Formula(), P.energy)
	}
	return fmt.Sprintf("%s [%s] (%s) E=%.6g", P.name, P.id, P.comp.Formula(), P.energy)
}

//SameComposition returns true if both entries have the same normalized composition within tol.
func SameComposition(a, b Entry, tol float64) bool {
	return a.Composition().AlmostEqual(b.Composition(), tol)
}
