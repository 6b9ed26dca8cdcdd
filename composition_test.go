package chem

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseFormula(Te *testing.T) {
	cases := []struct {
		formula string
		amounts map[string]float64
		formula2 string
		reduced string
	}{
		{"Li5FeO4", map[string]float64{"Li": 5, "Fe": 1, "O": 4}, "Li5FeO4", "Li5FeO4"},
		{"Ca(OH)2", map[string]float64{"Ca": 1, "O": 2, "H": 2}, "CaH2O2", "CaH2O2"},
		{"Li0.5CoO2", map[string]float64{"Li": 0.5, "Co": 1, "O": 2}, "Li0.5CoO2", "Li0.5CoO2"},
		{"Fe4O6", map[string]float64{"Fe": 4, "O": 6}, "Fe4O6", "Fe2O3"},
		{" O2 ", map[string]float64{"O": 2}, "O2", "O"},
		{"Mg3(Si2(OH)2)2", map[string]float64{"Mg": 3, "Si": 4, "O": 4, "H": 4}, "Mg3Si4H4O4", "Mg3Si4H4O4"},
		{"FeOFe", map[string]float64{"Fe": 2, "O": 1}, "Fe2O", "Fe2O"},
	}
	for _, c := range cases {
		C, err := ParseFormula(c.formula)
		if err != nil {
			Te.Errorf("%s: %v", c.formula, err)
			continue
		}
		var n float64
		for s, a := range c.amounts {
			n += a
			if got := C.Amount(MustElement(s)); math.Abs(got-a) > 1e-12 {
				Te.Errorf("%s: %s amount %g, expected %g", c.formula, s, got, a)
			}
		}
		if len(C.Elements()) != len(c.amounts) {
			Te.Errorf("%s: %d elements, expected %d", c.formula, len(C.Elements()), len(c.amounts))
		}
		if math.Abs(C.NumAtoms()-n) > 1e-12 {
			Te.Errorf("%s: %g atoms, expected %g", c.formula, C.NumAtoms(), n)
		}
		if f := C.Formula(); f != c.formula2 {
			Te.Errorf("%s: formula %s, expected %s", c.formula, f, c.formula2)
		}
		if f := C.ReducedFormula(); f != c.reduced {
			Te.Errorf("%s: reduced formula %s, expected %s", c.formula, f, c.reduced)
		}
	}
}

func TestBadFormula(Te *testing.T) {
	for _, f := range []string{"", "Xx2", "li2O", "Li2O)", "(Li2O", "Li-2", "Li..2O", "O0", "()"} {
		_, err := ParseFormula(f)
		if err == nil {
			Te.Errorf("formula %q accepted", f)
			continue
		}
		if !errors.Is(err, ErrInvalidComposition) {
			Te.Errorf("formula %q: wrong kind of error: %v", f, err)
		}
	}
}

func TestNewComposition(Te *testing.T) {
	Li, O := MustElement("Li"), MustElement("O")
	bad := []map[*Element]float64{
		{},
		{Li: 0, O: 0},
		{Li: -1, O: 2},
		{Li: math.NaN()},
		{Li: math.Inf(1)},
		{nil: 1},
	}
	for i, v := range bad {
		if _, err := NewComposition(v); !errors.Is(err, ErrInvalidComposition) {
			Te.Errorf("case %d: expected an invalid composition error, got %v", i, err)
		}
	}
	C, err := NewComposition(map[*Element]float64{O: 1, Li: 2, MustElement("Fe"): 0})
	if err != nil {
		Te.Fatal(err)
	}
	if len(C.Elements()) != 2 || C.Elements()[0] != Li || C.Contains(MustElement("Fe")) {
		Te.Errorf("wrong elements %v", C.Elements())
	}
	if f := C.Fraction(Li); math.Abs(f-2.0/3) > 1e-12 {
		Te.Errorf("fraction of Li %g", f)
	}
	if _, err := NewCompositionFromSymbols(map[string]float64{"Li": 1, "Q": 1}); !errors.Is(err, ErrInvalidComposition) {
		Te.Errorf("unknown symbol accepted: %v", err)
	}
}

//The normalized composition, and so the key, doesn't depend on the formula unit.
func TestCompositionEquality(Te *testing.T) {
	a, b, c := MustComposition("LiO"), MustComposition("Li2O2"), MustComposition("Li2O")
	if !a.Equal(b) || a.Key() != b.Key() {
		Te.Errorf("%s and %s should be equal (%s, %s)", a, b, a.Key(), b.Key())
	}
	if a.Equal(c) || c.Equal(a) || a.Key() == c.Key() {
		Te.Errorf("%s and %s should differ", a, c)
	}
	if a.Equal(MustComposition("Li")) || MustComposition("Li").Equal(a) {
		Te.Errorf("a compound and an element should differ")
	}
	d := MustComposition("Li1.00000000001O")
	if !a.AlmostEqual(d, 1e-8) || a.AlmostEqual(d, 1e-14) {
		Te.Errorf("tolerance not respected")
	}
	//round trip of the fractions
	fr := MustComposition("Li5FeO4").Fractions()
	e, err := NewComposition(fr)
	if err != nil {
		Te.Fatal(err)
	}
	if !e.Equal(MustComposition("Li5FeO4")) || math.Abs(e.NumAtoms()-1) > 1e-12 {
		Te.Errorf("fractions don't round trip: %s", e)
	}
}

func TestWithout(Te *testing.T) {
	C := MustComposition("Li2FeO3")
	W, err := C.Without(MustElement("O"), MustElement("Na"))
	if err != nil {
		Te.Fatal(err)
	}
	if W.Formula() != "Li2Fe" || W.NumAtoms() != 3 {
		Te.Errorf("wrong composition %s", W)
	}
	if C.NumAtoms() != 6 {
		Te.Errorf("the original composition changed")
	}
	if _, err := MustComposition("O2").Without(MustElement("O")); !errors.Is(err, ErrInvalidComposition) {
		Te.Errorf("removing all the elements should fail, got %v", err)
	}
}

func TestWeightAndSystem(Te *testing.T) {
	C := MustComposition("H2O")
	if w := C.Weight(); math.Abs(w-18.015) > 1e-9 {
		Te.Errorf("weight of water %g", w)
	}
	if s := MustComposition("Li5FeO4").ChemicalSystem(); s != "Fe-Li-O" {
		Te.Errorf("chemical system %s", s)
	}
	if !MustComposition("O2").IsElement() || C.IsElement() {
		Te.Errorf("IsElement failed")
	}
}

func TestElements(Te *testing.T) {
	els, err := ParseElements("Li-Fe-O", "O", "P,Mn")
	if err != nil {
		Te.Fatal(err)
	}
	if ChemicalSystem(els) != "Fe-Li-Mn-O-P" || len(els) != 5 {
		Te.Errorf("wrong elements %v", els)
	}
	SortElements(els)
	if els[0].Symbol() != "Li" || els[4].Symbol() != "Fe" {
		Te.Errorf("wrong order %v", els)
	}
	if _, err := ParseElements("Li-Xy"); !errors.Is(err, ErrInvalidComposition) {
		Te.Errorf("unknown element accepted: %v", err)
	}
	fe, err := ElementByZ(26)
	if err != nil || fe != MustElement("Fe") || fe.Z() != 26 {
		Te.Errorf("ElementByZ failed: %v %v", fe, err)
	}
	if _, err := ElementByZ(0); err == nil {
		Te.Errorf("Z=0 accepted")
	}
	if !math.IsNaN(MustElement("He").Electronegativity()) {
		Te.Errorf("He should have no electronegativity")
	}
}

func TestEntry(Te *testing.T) {
	e, err := NewPDEntryFromFormula("Li4O2", -12, "mp-1960")
	if err != nil {
		Te.Fatal(err)
	}
	if e.Name() != "Li4O2" || e.EnergyPerAtom() != -2 || e.ID() != "mp-1960" {
		Te.Errorf("wrong entry %s", e)
	}
	e2, err := NewPDEntry(MustComposition("Li4O2"), -6, "", "")
	if err != nil {
		Te.Fatal(err)
	}
	if e2.Name() != "Li2O" {
		Te.Errorf("default name %s", e2.Name())
	}
	if !SameComposition(e, e2, DefaultCompositionTol) {
		Te.Errorf("same composition not detected")
	}
	if _, err := NewPDEntry(MustComposition("Li"), math.NaN(), "", ""); !errors.Is(err, ErrInvalidComposition) {
		Te.Errorf("NaN energy accepted")
	}
	if _, err := NewPDEntry(nil, 0, "", ""); err == nil {
		Te.Errorf("nil composition accepted")
	}
	if !strings.Contains(e.String(), "mp-1960") {
		Te.Errorf("no id in %s", e)
	}
}

func TestErrors(Te *testing.T) {
	err := NewError(ErrDegenerateHull, "flat", "inner")
	ErrDecorate(err, "middle")
	ErrDecorate(err, "outer")
	if s := err.Error(); s != "outer: middle: inner: degenerate hull: flat" {
		Te.Errorf("wrong message %q", s)
	}
	if !errors.Is(err, ErrDegenerateHull) || errors.Is(err, ErrInternal) || err.Critical() {
		Te.Errorf("wrong kind")
	}
	ierr := NewError(ErrInternal, "bug", "")
	var c CriticalError
	if !errors.As(error(ierr), &c) || !c.Critical() {
		Te.Errorf("internal errors must be critical")
	}
	plain := errors.New("plain")
	if ErrDecorate(plain, "x") != plain || ErrDecorate(nil, "x") != nil {
		Te.Errorf("ErrDecorate changed a foreign error")
	}
}
