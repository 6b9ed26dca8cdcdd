/*
 * transformed.go, part of gophase.
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

//transformed is a phase diagram built on transformed entries (grand potential or
//compound diagrams). Its queries take either the transformed entries or the
//original ones, which are mapped to their transformed counterparts.
type transformed struct {
	*PhaseDiagram
	byOriginal map[chem.Entry]chem.Entry
	//transforms entries that were not part of the build.
	transform func(chem.Entry) (chem.Entry, error)
}

//lookup returns the entry of the diagram that corresponds to entry.
func (T *transformed) lookup(entry chem.Entry) (chem.Entry, error) {
	if _, ok := T.results[entry]; ok {
		return entry, nil
	}
	if t, ok := T.byOriginal[entry]; ok {
		return t, nil
	}
	return T.transform(entry)
}

//IsStable returns true if entry, or its transformed counterpart, is stable.
func (T *transformed) IsStable(entry chem.Entry) bool {
	t, err := T.lookup(entry)
	if err != nil {
		return false
	}
	return T.PhaseDiagram.IsStable(t)
}

//EAboveHull returns the energy above hull of the transformed entry, per atom of the
//transformed composition.
func (T *transformed) EAboveHull(entry chem.Entry) (float64, error) {
	t, err := T.lookup(entry)
	if err != nil {
		chem.ErrDecorate(err, "EAboveHull")
		return 0, err
	}
	return T.PhaseDiagram.EAboveHull(t)
}

//Decomposition returns the decomposition of the transformed entry, in transformed entries.
func (T *transformed) Decomposition(entry chem.Entry) (map[chem.Entry]float64, error) {
	t, err := T.lookup(entry)
	if err != nil {
		chem.ErrDecorate(err, "Decomposition")
		return nil, err
	}
	return T.PhaseDiagram.Decomposition(t)
}

func (T *transformed) FormationEnergy(entry chem.Entry) (float64, error) {
	t, err := T.lookup(entry)
	if err != nil {
		chem.ErrDecorate(err, "FormationEnergy")
		return 0, err
	}
	return T.PhaseDiagram.FormationEnergy(t)
}

func (T *transformed) FormationEnergyPerAtom(entry chem.Entry) (float64, error) {
	t, err := T.lookup(entry)
	if err != nil {
		chem.ErrDecorate(err, "FormationEnergyPerAtom")
		return 0, err
	}
	return T.PhaseDiagram.FormationEnergyPerAtom(t)
}

func (T *transformed) EquilibriumReactionEnergy(entry chem.Entry) (float64, error) {
	t, err := T.lookup(entry)
	if err != nil {
		chem.ErrDecorate(err, "EquilibriumReactionEnergy")
		return 0, err
	}
	return T.PhaseDiagram.EquilibriumReactionEnergy(t)
}

//transformedFor returns the transformed entry for original, and false if it is not part of the diagram.
func (T *transformed) transformedFor(original chem.Entry) (chem.Entry, bool) {
	t, ok := T.byOriginal[original]
	if !ok {
		return nil, false
	}
	_, ok = T.results[t]
	return t, ok
}
