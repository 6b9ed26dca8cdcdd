package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	chem "github.com/rmera/gophase"
	"github.com/rmera/gophase/report"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entries = `Name,Li,O,Energy,ID
Li,1,0,0,li
O2,0,2,0,o2
Li2O,2,1,-6,li2o
Li2O2,2,2,-7,li2o2
LiO3,1,3,-1,lio3
`

func writeEntries(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "entries.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

//resetFlags brings the flags back to their defaults, cobra keeps them between executions.
func resetFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags(rootCmd.PersistentFlags())
	resetFlags(buildCmd.Flags())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestParseChemPots(t *testing.T) {
	mus, err := parseChemPots([]string{"O=-5.2", " Li = -1 "})
	require.NoError(t, err)
	assert.Equal(t, map[*chem.Element]float64{chem.MustElement("O"): -5.2, chem.MustElement("Li"): -1}, mus)
	for _, bad := range []string{"O", "Xx=1", "O=low"} {
		_, err := parseChemPots([]string{bad})
		assert.Error(t, err, bad)
	}
	mus, err = parseChemPots(nil)
	assert.NoError(t, err)
	assert.Nil(t, mus)
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeEntries(t, dir, entries)
	out := run(t, "build", path, "--format", "json", "--plot", filepath.Join(dir, "hull.png"))
	var S report.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &S))
	assert.Equal(t, "Li-O", S.System)
	assert.Equal(t, 4, S.Stats.Stable)
	_, err := os.Stat(filepath.Join(dir, "hull.png"))
	assert.NoError(t, err)

	out = run(t, "build", path, "--format", "text", "--mu", "O=-2")
	assert.Contains(t, out, "mu_O = -2.0000")
	assert.Contains(t, out, "1 stable")

	//Li is dropped, LiO3 is above the Li2O2-O2 tie line.
	out = run(t, "build", path, "--format", "yaml", "--terminal", "Li2O", "--terminal", "O2")
	assert.Contains(t, out, "system: Li2O-O\n")
	assert.Contains(t, out, "stable: 3")
}

func TestImportAndBuildFromStore(t *testing.T) {
	dir := t.TempDir()
	path := writeEntries(t, dir, entries)
	db := filepath.Join(dir, "entries.db")
	out := run(t, "import", path, "--db", db)
	assert.Contains(t, out, "5 entries imported")
	out = run(t, "build", "--db", db, "--system", "Li-O", "--system", "Li", "--format", "yaml")
	assert.Contains(t, out, "system: Li-O")
	assert.Contains(t, out, "system: Li\n")
}

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := writeEntries(t, dir, entries)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out syncBuffer
	done := make(chan error)
	go func() { done <- watch(ctx, &out, path) }()
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "4 stable") }, 5*time.Second, 20*time.Millisecond)
	//LiO3 goes below the Li2O2-O tie line, Li2O2 stays stable.
	writeEntries(t, dir, strings.Replace(entries, "LiO3,1,3,-1", "LiO3,1,3,-4", 1))
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "5 stable") }, 5*time.Second, 20*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}
