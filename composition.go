/*
 * composition.go, part of gophase.
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
	"strconv"
	"strings"
	"unicode"
)

//DefaultCompositionTol is the tolerance used when comparing normalized
//compositions.
const DefaultCompositionTol = 1e-8

//Composition is an immutable chemical composition. It keeps the raw amounts
//given on construction, and offers the normalized (fractional) view of them.
//Two compositions with proportional amounts are Equal.
type Composition struct {
	amounts  map[*Element]float64
	elements []*Element //sorted by atomic number
	natoms   float64
}

//NewComposition returns a composition with the given amounts. Zero amounts
//are dropped. It fails if any amount is negative or not finite, or if
//all the amounts are zero.
func NewComposition(amounts map[*Element]float64) (*Composition, error) {
	C := &Composition{amounts: make(map[*Element]float64, len(amounts))}
	for e, a := range amounts {
		if e == nil {
			return nil, NewError(ErrInvalidComposition, "nil element", "NewComposition")
		}
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return nil, NewError(ErrInvalidComposition, fmt.Sprintf("non-finite amount for %s", e), "NewComposition")
		}
		if a < 0 {
			return nil, NewError(ErrInvalidComposition, fmt.Sprintf("negative amount %g for %s", a, e), "NewComposition")
		}
		if a == 0 {
			continue
		}
		C.amounts[e] = a
		C.elements = append(C.elements, e)
		C.natoms += a
	}
	if len(C.elements) == 0 {
		return nil, NewError(ErrInvalidComposition, "all amounts are zero", "NewComposition")
	}
	SortElements(C.elements)
	return C, nil
}

//NewCompositionFromSymbols is like NewComposition, but the map is keyed by
//atomic symbols.
func NewCompositionFromSymbols(amounts map[string]float64) (*Composition, error) {
	m := make(map[*Element]float64, len(amounts))
	for s, a := range amounts {
		e, err := ElementBySymbol(s)
		if err != nil {
			err.(Error).Decorate("NewCompositionFromSymbols")
			return nil, err
		}
		m[e] += a
	}
	C, err := NewComposition(m)
	if err != nil {
		err.(Error).Decorate("NewCompositionFromSymbols")
	}
	return C, err
}

//MustComposition parses formula and panics on failure. For literals.
func MustComposition(formula string) *Composition {
	C, err := ParseFormula(formula)
	if err != nil {
		panic(err.Error())
	}
	return C
}

//ParseFormula returns the composition for a chemical formula like "Li5FeO4",
//"Ca(OH)2" or "Li0.5CoO2". Whitespace is ignored.
func ParseFormula(formula string) (*Composition, error) {
	p := &formulaParser{s: formula}
	amounts, err := p.group(0)
	if err != nil {
		err.(Error).Decorate("ParseFormula")
		return nil, err
	}
	C, err := NewComposition(amounts)
	if err != nil {
		err.(Error).Decorate(fmt.Sprintf("ParseFormula: %q", formula))
	}
	return C, err
}

type formulaParser struct {
	s   string
	pos int
}

func (p *formulaParser) errorf(format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	return NewError(ErrInvalidComposition, fmt.Sprintf("formula %q, position %d: %s", p.s, p.pos, msg), "formulaParser")
}

//group parses until the end of the string or until the ")" closing
//the current group.
func (p *formulaParser) group(depth int) (map[*Element]float64, error) {
	ret := make(map[*Element]float64)
	for p.pos < len(p.s) {
		c := rune(p.s[p.pos])
		switch {
		case unicode.IsSpace(c):
			p.pos++
		case c == '(':
			p.pos++
			sub, err := p.group(depth + 1)
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.s) || p.s[p.pos] != ')' {
				return nil, p.errorf("unclosed parenthesis")
			}
			p.pos++
			mult, err := p.number()
			if err != nil {
				return nil, err
			}
			for e, a := range sub {
				ret[e] += a * mult
			}
		case c == ')':
			if depth == 0 {
				return nil, p.errorf("unexpected ')'")
			}
			return ret, nil
		case unicode.IsUpper(c):
			start := p.pos
			p.pos++
			for p.pos < len(p.s) && unicode.IsLower(rune(p.s[p.pos])) {
				p.pos++
			}
			e, err := ElementBySymbol(p.s[start:p.pos])
			if err != nil {
				return nil, err
			}
			n, err := p.number()
			if err != nil {
				return nil, err
			}
			ret[e] += n
		default:
			return nil, p.errorf("unexpected character %q", c)
		}
	}
	if depth > 0 {
		return nil, p.errorf("unclosed parenthesis")
	}
	return ret, nil
}

//number reads an amount, 1 if there is none.
func (p *formulaParser) number() (float64, error) {
	start := p.pos
	for p.pos < len(p.s) && (unicode.IsDigit(rune(p.s[p.pos])) || p.s[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 1, nil
	}
	n, err := strconv.ParseFloat(p.s[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf("bad amount %q", p.s[start:p.pos])
	}
	return n, nil
}

//Amount returns the raw amount of element e, 0 if absent.
func (C *Composition) Amount(e *Element) float64 {
	return C.amounts[e]
}

//Fraction returns the atomic fraction of element e, 0 if absent.
func (C *Composition) Fraction(e *Element) float64 {
	return C.amounts[e] / C.natoms
}

//Fractions returns a new map with the atomic fractions of all the elements.
func (C *Composition) Fractions() map[*Element]float64 {
	ret := make(map[*Element]float64, len(C.amounts))
	for e, a := range C.amounts {
		ret[e] = a / C.natoms
	}
	return ret
}

//Elements returns the elements present, sorted by atomic number.
//The returned slice is a copy.
func (C *Composition) Elements() []*Element {
	ret := make([]*Element, len(C.elements))
	copy(ret, C.elements)
	return ret
}

//Contains returns true if e is present in the composition.
func (C *Composition) Contains(e *Element) bool {
	_, ok := C.amounts[e]
	return ok
}

//NumAtoms returns the total number of atoms, i.e. the sum of the raw amounts.
func (C *Composition) NumAtoms() float64 { return C.natoms }

//IsElement returns true if the composition contains only one element.
func (C *Composition) IsElement() bool { return len(C.elements) == 1 }

//Weight returns the formula weight, in g/mol.
func (C *Composition) Weight() float64 {
	var w float64
	for e, a := range C.amounts {
		w += e.mass * a
	}
	return w
}

//Without returns a new composition with the given elements removed. It fails with
//ErrInvalidComposition if nothing is left.
func (C *Composition) Without(els ...*Element) (*Composition, error) {
	m := make(map[*Element]float64, len(C.amounts))
	for e, a := range C.amounts {
		m[e] = a
	}
	for _, e := range els {
		delete(m, e)
	}
	R, err := NewComposition(m)
	if err != nil {
		err.(Error).Decorate("Composition.Without")
	}
	return R, err
}

//AlmostEqual returns true if both compositions have the same atomic
//fractions within tol.
func (C *Composition) AlmostEqual(O *Composition, tol float64) bool {
	for e := range C.amounts {
		if math.Abs(C.Fraction(e)-O.Fraction(e)) > tol {
			return false
		}
	}
	for e := range O.amounts {
		if math.Abs(C.Fraction(e)-O.Fraction(e)) > tol {
			return false
		}
	}
	return true
}

//Equal compares the normalized compositions with DefaultCompositionTol.
func (C *Composition) Equal(O *Composition) bool {
	return C.AlmostEqual(O, DefaultCompositionTol)
}

//Key returns a string that is the same for compositions with the same
//atomic fractions (rounded to 8 decimals), so it can be used as a map key.
func (C *Composition) Key() string {
	var b strings.Builder
	for _, e := range C.elements {
		b.WriteString(e.symbol)
		b.WriteString(strconv.FormatFloat(C.Fraction(e), 'f', 8, 64))
	}
	return b.String()
}

//ChemicalSystem returns the chemical system of the composition ("Fe-Li-O").
func (C *Composition) ChemicalSystem() string {
	return ChemicalSystem(C.elements)
}

//Formula returns the formula with the raw amounts, with the elements in
//order of increasing electronegativity.
func (C *Composition) Formula() string {
	return C.formula(1)
}

//ReducedFormula returns the formula with the amounts divided by their greatest
//common divisor. If some amount is not an integer, it is the same as Formula.
func (C *Composition) ReducedFormula() string {
	var g int64
	for _, a := range C.amounts {
		r := math.Round(a)
		if math.Abs(a-r) > DefaultCompositionTol || r < 1 {
			return C.Formula()
		}
		g = gcd(g, int64(r))
	}
	return C.formula(float64(g))
}

func (C *Composition) formula(divisor float64) string {
	els := C.Elements()
	sortElementsFormula(els)
	var b strings.Builder
	for _, e := range els {
		b.WriteString(e.symbol)
		a := C.amounts[e] / divisor
		if math.Abs(a-1) < DefaultCompositionTol {
			continue
		}
		if r := math.Round(a); math.Abs(a-r) < DefaultCompositionTol {
			b.WriteString(strconv.FormatInt(int64(r), 10))
			continue
		}
		b.WriteString(strconv.FormatFloat(a, 'g', 6, 64))
	}
	return b.String()
}

func (C *Composition) String() string { return C.Formula() }

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
