/*
 * element.go, part of gophase.
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
	"sort"
	"strings"
)

//Element is a chemical element. There is only one Element value per symbol
//in a program, so elements can be compared with ==.
type Element struct {
	symbol string
	z      int
	mass   float64
	x      float64
}

//Symbol returns the atomic symbol of the element.
func (E *Element) Symbol() string { return E.symbol }

//Z returns the atomic number of the element.
func (E *Element) Z() int { return E.z }

//Mass returns the standard atomic mass of the element, in g/mol.
func (E *Element) Mass() float64 { return E.mass }

//Electronegativity returns the Pauling electronegativity of the element,
//or NaN if it is not defined (noble gases).
func (E *Element) Electronegativity() float64 {
	if E.x == 0 {
		return math.NaN()
	}
	return E.x
}

func (E *Element) String() string { return E.symbol }

//ElementBySymbol returns the element with the given atomic symbol. The
//symbol is case-sensitive ("Co" is cobalt, "CO" is not an element).
func ElementBySymbol(symbol string) (*Element, error) {
	e, ok := symbolElement[symbol]
	if !ok {
		return nil, NewError(ErrInvalidComposition, fmt.Sprintf("unknown element symbol %q", symbol), "ElementBySymbol")
	}
	return e, nil
}

//ElementByZ returns the element with atomic number z.
func ElementByZ(z int) (*Element, error) {
	if z <= 0 || z >= len(zElement) {
		return nil, NewError(ErrInvalidComposition, fmt.Sprintf("no element with atomic number %d", z), "ElementByZ")
	}
	return zElement[z], nil
}

//MustElement is like ElementBySymbol but panics for unknown symbols.
//It is meant for literals in programs and tests.
func MustElement(symbol string) *Element {
	e, err := ElementBySymbol(symbol)
	if err != nil {
		panic(err.Error())
	}
	return e
}

//pseudo elements sort after every real element.
const pseudoZ = 1000

//NewPseudoElement returns an element that is not in the periodic table, to be used as
//a component of a compositional space, such as a terminal compound. It has no mass or
//electronegativity. Pseudo elements are not interned, so each call returns a new one.
//They sort after the real elements, in the order of index.
func NewPseudoElement(symbol string, index int) *Element {
	return &Element{symbol: symbol, z: pseudoZ + index}
}

//IsPseudo returns true for the elements created with NewPseudoElement.
func (E *Element) IsPseudo() bool { return E.z >= pseudoZ }

//ParseElements parses a list of symbols, either given as separate strings or
//joined with "-" or "," (as in "Li-Fe-O"). Repeated symbols are ignored.
func ParseElements(symbols ...string) ([]*Element, error) {
	ret := make([]*Element, 0, len(symbols))
	seen := make(map[*Element]bool)
	for _, s := range symbols {
		fields := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == ',' || r == ' ' })
		for _, f := range fields {
			e, err := ElementBySymbol(f)
			if err != nil {
				err.(Error).Decorate("ParseElements")
				return nil, err
			}
			if seen[e] {
				continue
			}
			seen[e] = true
			ret = append(ret, e)
		}
	}
	return ret, nil
}

//SortElements sorts els in place by atomic number.
func SortElements(els []*Element) {
	sort.Slice(els, func(i, j int) bool { return els[i].z < els[j].z })
}

//ChemicalSystem returns the elements joined by "-", in alphabetical order,
//which is the usual way of naming a chemical system ("Fe-Li-O").
func ChemicalSystem(els []*Element) string {
	s := make([]string, 0, len(els))
	for _, v := range els {
		s = append(s, v.symbol)
	}
	sort.Strings(s)
	return strings.Join(s, "-")
}

//sorts by electronegativity, the elements without one go last.
//Ties are broken with the atomic number.
func sortElementsFormula(els []*Element) {
	key := func(e *Element) float64 {
		if e.x == 0 {
			return math.Inf(1)
		}
		return e.x
	}
	sort.Slice(els, func(i, j int) bool {
		ki, kj := key(els[i]), key(els[j])
		if ki != kj {
			return ki < kj
		}
		return els[i].z < els[j].z
	})
}
