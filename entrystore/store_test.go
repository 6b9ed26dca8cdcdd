package entrystore

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"

	chem "github.com/rmera/gophase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "entries.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(t *testing.T, formula string, energy float64, id string) chem.Entry {
	t.Helper()
	e, err := chem.NewPDEntryFromFormula(formula, energy, id)
	require.NoError(t, err)
	return e
}

func ids(entries []chem.Entry) []string {
	ret := make([]string, len(entries))
	for i, v := range entries {
		ret[i] = v.ID()
	}
	sort.Strings(ret)
	return ret
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	li2o := entry(t, "Li2O", -14.3, "mp-1960")
	require.NoError(t, s.Put(ctx, li2o, entry(t, "Li", -1.9, "mp-135")))
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.Get(ctx, "mp-1960")
	require.NoError(t, err)
	assert.Equal(t, "Li2O", got.Name())
	assert.Equal(t, -14.3, got.Energy())
	assert.True(t, got.Composition().Equal(li2o.Composition()))
	assert.Equal(t, 3.0, got.Composition().NumAtoms())

	_, err = s.Get(ctx, "mp-0")
	assert.True(t, errors.Is(err, ErrNotFound))

	//upsert
	require.NoError(t, s.Put(ctx, entry(t, "Li4O2", -28.0, "mp-1960")))
	got, err = s.Get(ctx, "mp-1960")
	require.NoError(t, err)
	assert.Equal(t, "Li4O2", got.Name())
	assert.Equal(t, 6.0, got.Composition().NumAtoms())
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	err = s.Put(ctx, entry(t, "O2", -9.8, ""))
	assert.True(t, errors.Is(err, ErrNoID))
	require.NoError(t, s.Put(ctx))
}

func TestInChemicalSystem(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	require.NoError(t, s.Put(ctx,
		entry(t, "Li", -1.9, "li"),
		entry(t, "Fe", -8.3, "fe"),
		entry(t, "O2", -9.8, "o"),
		entry(t, "Li2O", -14.3, "li2o"),
		entry(t, "Fe2O3", -38.0, "fe2o3"),
		entry(t, "LiFeO2", -29.1, "lifeo2"),
		entry(t, "LiFePO4", -50.0, "lifepo4"),
		entry(t, "P", -5.4, "p"),
	))
	El := func(syms ...string) []*chem.Element {
		els, err := chem.ParseElements(syms...)
		require.NoError(t, err)
		return els
	}
	got, err := s.InChemicalSystem(ctx, El("Li-O")...)
	require.NoError(t, err)
	assert.Equal(t, []string{"li", "li2o", "o"}, ids(got))

	got, err = s.InChemicalSystem(ctx, El("Li-Fe-O")...)
	require.NoError(t, err)
	assert.Equal(t, []string{"fe", "fe2o3", "li", "li2o", "lifeo2", "o"}, ids(got))
	//insertion order
	assert.Equal(t, "li", got[0].ID())

	got, err = s.InChemicalSystem(ctx, El("Li-Fe-O-P")...)
	require.NoError(t, err)
	assert.Len(t, got, 8)

	got, err = s.InChemicalSystem(ctx, El("Na")...)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "entries.db")
	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, entry(t, "Li", -1.9, "li")))
	require.NoError(t, s.Close())
	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
