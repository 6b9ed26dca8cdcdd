package pdplot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/gophase"
	"github.com/rmera/gophase/phasediag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diagram(t *testing.T, data map[string]float64) *phasediag.PhaseDiagram {
	t.Helper()
	var entries []chem.Entry
	for f, e := range data {
		entry, err := chem.NewPDEntryFromFormula(f, e, "")
		require.NoError(t, err)
		entries = append(entries, entry)
	}
	pd, err := phasediag.New(entries, nil)
	require.NoError(t, err)
	return pd
}

func nonEmpty(t *testing.T, name string) {
	t.Helper()
	info, err := os.Stat(name)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBinaryHull(t *testing.T) {
	pd := diagram(t, map[string]float64{"Li": -1.9, "O2": -9.8, "Li2O": -14.3, "Li2O2": -19.0, "LiO3": -10, "Li3O": -9})
	dir := t.TempDir()
	for _, name := range []string{"hull.png", "hull.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, BinaryHull(pd, "Li-O", path))
		nonEmpty(t, path)
	}
	require.NoError(t, EAboveHist(pd, "Li-O", filepath.Join(dir, "hist.png")))
	nonEmpty(t, filepath.Join(dir, "hist.png"))
}

func TestUnsupported(t *testing.T) {
	dir := t.TempDir()
	ternary := diagram(t, map[string]float64{"Li": 0, "Fe": 0, "O2": 0, "LiFeO2": -8})
	err := BinaryHull(ternary, "", filepath.Join(dir, "t.png"))
	assert.True(t, errors.Is(err, ErrUnsupported))

	allStable := diagram(t, map[string]float64{"Li": 0, "O2": 0, "Li2O": -6})
	err = EAboveHist(allStable, "", filepath.Join(dir, "h.png"))
	assert.True(t, errors.Is(err, ErrUnsupported))
}
