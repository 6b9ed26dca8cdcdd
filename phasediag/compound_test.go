package phasediag

import (
	"context"
	"errors"
	"testing"

	chem "github.com/rmera/gophase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func li2oFe2o3Terminals() []*chem.Composition {
	return []*chem.Composition{chem.MustComposition("Li2O"), chem.MustComposition("Fe2O3")}
}

//The Li2O-Fe2O3 pseudo-binary. In units of the terminals, Li5FeO4 is 2.5 Li2O + 0.5 Fe2O3,
//LiFeO2 is 0.5 Li2O + 0.5 Fe2O3 and Li2Fe4O7 is Li2O + 2 Fe2O3.
func TestCompoundLi2OFe2O3(t *testing.T) {
	li2o, fe2o3 := entry(t, "Li2O", -6.2), entry(t, "Fe2O3", -8.5)
	li5feo4, lifeo2 := entry(t, "Li5FeO4", -25), entry(t, "LiFeO2", -8.6)
	li2fe4o7 := entry(t, "Li2Fe4O7", -24.7)
	outside := []chem.Entry{entry(t, "Li", 0), entry(t, "Fe", 0), entry(t, "O2", 0),
		entry(t, "FeO", -2.8), entry(t, "Li2FeO3", -9), entry(t, "Li2O2", -6.4), entry(t, "LiCl", -3)}
	entries := append([]chem.Entry{li2o, fe2o3, li5feo4, lifeo2, li2fe4o7}, outside...)
	opts := DefaultOptions()
	opts.Logger = zaptest.NewLogger(t)
	C, err := NewCompound(entries, li2oFe2o3Terminals(), opts)
	require.NoError(t, err)
	checkProperties(t, C.PhaseDiagram)

	assert.Len(t, C.Elements(), 2)
	assert.True(t, C.Component(0).IsPseudo())
	assert.Equal(t, "Li2O", C.Component(0).Symbol())
	assert.Equal(t, "Fe2O3", C.Component(1).Symbol())
	assert.Len(t, C.Entries(), 5)
	for _, v := range outside {
		_, ok := C.TransformedEntryFor(v)
		assert.False(t, ok, v.Name())
		assert.False(t, C.IsStable(v), v.Name())
	}
	assert.Equal(t, []string{"Fe2O3", "Li2O", "Li5FeO4", "LiFeO2"}, names(C.StableEntries()))
	assert.Equal(t, []string{"Li2Fe4O7"}, names(C.UnstableEntries()))

	tli5, ok := C.TransformedEntryFor(li5feo4)
	require.True(t, ok)
	assert.Equal(t, li5feo4, tli5.Original())
	assert.InDelta(t, 2.5, tli5.Composition().Amount(C.Component(0)), 1e-10)
	assert.InDelta(t, 0.5, tli5.Composition().Amount(C.Component(1)), 1e-10)
	assert.InDelta(t, -25.0/3, tli5.EnergyPerAtom(), 1e-10)

	formation := map[chem.Entry]float64{li5feo4: -5.25, lifeo2: -1.25, li2o: 0, fe2o3: 0, li2fe4o7: -1.5}
	for v, want := range formation {
		f, err := C.FormationEnergy(v)
		require.NoError(t, err, v.Name())
		assert.InDelta(t, want, f, 1e-10, v.Name())
		assert.True(t, v == li2fe4o7 || C.IsStable(v), v.Name())
	}

	//the hull at 2/3 Fe2O3 is on the LiFeO2-Fe2O3 tie line.
	e, err := C.EAboveHull(li2fe4o7)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, e, 1e-10)
	d, err := C.Decomposition(li2fe4o7)
	require.NoError(t, err)
	tlifeo2, _ := C.TransformedEntryFor(lifeo2)
	tfe2o3, _ := C.TransformedEntryFor(fe2o3)
	require.Len(t, d, 2)
	assert.InDelta(t, 2, d[tlifeo2], 1e-10)
	assert.InDelta(t, 1, d[tfe2o3], 1e-10)

	//transformed on the fly.
	e, err = C.EAboveHull(entry(t, "Li2Fe4O7", -26.2))
	require.NoError(t, err)
	assert.InDelta(t, -1.0/6, e, 1e-10)
	_, err = C.EAboveHull(entry(t, "FeO", -2.8))
	assert.True(t, errors.Is(err, chem.ErrCompositionOutOfSpace), "%v", err)

	assert.Contains(t, C.String(), "Terminals: Li2O, Fe2O3")
	assert.Len(t, C.Terminals(), 2)
}

func TestCompoundInvalid(t *testing.T) {
	entries := []chem.Entry{entry(t, "Li2O", -6.2), entry(t, "Fe2O3", -8.5), entry(t, "LiFeO2", -8.6)}
	cases := map[string][]*chem.Composition{
		"empty":        nil,
		"one terminal": {chem.MustComposition("Li2O")},
		"proportional": {chem.MustComposition("Li2O"), chem.MustComposition("Li4O2")},
		"dependent":    {chem.MustComposition("Li2O"), chem.MustComposition("Fe2O3"), chem.MustComposition("LiFeO2")},
		"nil":          {chem.MustComposition("Li2O"), nil},
		"too many":     {chem.MustComposition("Li"), chem.MustComposition("O"), chem.MustComposition("LiO")},
	}
	for name, terminals := range cases {
		_, err := NewCompound(entries, terminals, nil)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, chem.ErrInvalidComposition), "%s: %v", name, err)
	}
	//no entry for the Fe2O3 terminal.
	_, err := NewCompound(entries[:1], li2oFe2o3Terminals(), nil)
	assert.True(t, errors.Is(err, chem.ErrIncompletePhaseSpace), "%v", err)
}

//The compound diagram of the Li-Fe-O entries agrees with the full ternary on what is stable
//along the Li2O-Fe2O3 line.
func TestCompoundAgreesWithTernary(t *testing.T) {
	entries := lifeoEntries(t)
	full, err := New(entries, nil)
	require.NoError(t, err)
	res, err := BuildAll(context.Background(), []Request{{Name: "Li2O-Fe2O3", Entries: entries, Terminals: li2oFe2o3Terminals()}}, nil)
	require.NoError(t, err)
	C, ok := res[0].(*CompoundPhaseDiagram)
	require.True(t, ok)
	for _, v := range entries {
		if _, ok := C.TransformedEntryFor(v); !ok {
			continue
		}
		if full.IsStable(v) {
			assert.True(t, C.IsStable(v), v.Name())
		}
	}
}
