package entryio

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	chem "github.com/rmera/gophase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Name,Li,Fe,O,Energy,ID
Li,1,0,0,-1.9,mp-135
Fe,0,1,0,-8.3,mp-13
O2,0,0,2,-9.8,mp-12957
# a comment
Li2O,2,0,1,-14.3,
LiFeO2,1,1,2,-29.1,mp-19419
`

func TestReadCSV(t *testing.T) {
	els, entries, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, els, 3)
	assert.Equal(t, "Fe-Li-O", chem.ChemicalSystem(els))
	require.Len(t, entries, 5)
	assert.Equal(t, "LiFeO2", entries[4].Name())
	assert.Equal(t, "mp-19419", entries[4].ID())
	assert.InDelta(t, -29.1, entries[4].Energy(), 1e-12)
	assert.Equal(t, 2.0, entries[2].Composition().Amount(chem.MustElement("O")))
	assert.True(t, entries[0].Composition().IsElement())
	//generated, and stable
	id := entries[3].ID()
	assert.NotEmpty(t, id)
	_, again, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, id, again[3].ID())
}

func TestReadCSVNoOptional(t *testing.T) {
	in := "Li,O,Energy\n2,1,-14.3\n"
	_, entries, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Li2O", entries[0].Name())
	assert.NotEmpty(t, entries[0].ID())
}

//Two calculations can give the same row, they are still different entries.
func TestReadCSVRepeatedRows(t *testing.T) {
	in := "Li,O,Energy\n2,1,-14.3\n2,1,-14.3\n"
	_, entries, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ID(), entries[1].ID())
	_, again, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, entries[0].ID(), again[0].ID())
	assert.Equal(t, entries[1].ID(), again[1].ID())
}

func TestReadCSVErrors(t *testing.T) {
	cases := map[string]struct {
		in   string
		kind error
	}{
		"empty":       {"", ErrFormat},
		"no energy":   {"Name,Li,O\nLi2O,2,1\n", ErrFormat},
		"no elements": {"Name,Energy\nX,1\n", ErrFormat},
		"bad element": {"Name,Li,Xx,Energy\nA,1,1,0\n", chem.ErrInvalidComposition},
		"repeated":    {"Name,Li,Li,Energy\nA,1,1,0\n", ErrFormat},
		"bad amount":  {"Name,Li,O,Energy\nA,two,1,0\n", ErrFormat},
		"negative":    {"Name,Li,O,Energy\nA,-2,1,0\n", chem.ErrInvalidComposition},
		"all zero":    {"Name,Li,O,Energy\nA,0,0,0\n", chem.ErrInvalidComposition},
		"bad energy":  {"Name,Li,O,Energy\nA,2,1,low\n", ErrFormat},
		"NaN energy":  {"Name,Li,O,Energy\nA,2,1,NaN\n", chem.ErrInvalidComposition},
		"short row":   {"Name,Li,O,Energy\nA,2,1\n", nil},
	}
	for name, c := range cases {
		_, _, err := ReadCSV(strings.NewReader(c.in))
		require.Error(t, err, name)
		if c.kind != nil {
			assert.True(t, errors.Is(err, c.kind), "%s: %v", name, err)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	els, entries, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	var b bytes.Buffer
	require.NoError(t, WriteCSV(&b, nil, entries))
	assert.True(t, strings.HasPrefix(b.String(), "Name,Li,O,Fe,Energy,ID\n"))
	els2, entries2, err := ReadCSV(&b)
	require.NoError(t, err)
	assert.Equal(t, "Fe-Li-O", chem.ChemicalSystem(els2))
	require.Len(t, entries2, len(entries))
	for i, v := range entries {
		w := entries2[i]
		assert.Equal(t, v.Name(), w.Name())
		assert.Equal(t, v.ID(), w.ID())
		assert.Equal(t, v.Energy(), w.Energy())
		assert.True(t, v.Composition().Equal(w.Composition()))
	}
	err = WriteCSV(&b, els[:2], entries)
	assert.True(t, errors.Is(err, chem.ErrCompositionOutOfSpace))
}

func TestFiles(t *testing.T) {
	_, entries, err := ReadCSV(strings.NewReader(sample))
	require.NoError(t, err)
	dir := t.TempDir()
	for _, name := range []string{"entries.csv", "entries.csv.gz", "entries.csv.zst"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, nil, entries), name)
		_, read, err := ReadFile(path)
		require.NoError(t, err, name)
		require.Len(t, read, len(entries), name)
		for i, v := range entries {
			assert.Equal(t, v.ID(), read[i].ID())
			assert.Equal(t, v.Energy(), read[i].Energy())
		}
	}
	assert.Equal(t, "zstd", Compression("a.CSV.ZST"))
	assert.Equal(t, "gzip", Compression("a.csv.gz"))
	assert.Equal(t, "", Compression("a.csv"))
	_, _, err = ReadFile(filepath.Join(dir, "nope.csv"))
	assert.Error(t, err)
}
