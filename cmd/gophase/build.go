/*
 * build.go, part of gophase.
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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	chem "github.com/rmera/gophase"
	"github.com/rmera/gophase/entryio"
	"github.com/rmera/gophase/entrystore"
	"github.com/rmera/gophase/pdplot"
	"github.com/rmera/gophase/phasediag"
	"github.com/rmera/gophase/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var buildCmd = &cobra.Command{
	Use:   "build [entries.csv[.gz|.zst]]",
	Short: "Build phase diagrams and report the stability of the entries",
	Long: `Build the phase diagram of the entries in a file, or, with --db, of the entries
in the store. Each --system gives one diagram, built concurrently with the others;
without --system the diagram spans all the elements in the entries.
With one or more --mu El=value, grand potential diagrams open to those elements are built.
With two or more --terminal, a single diagram is built in the space spanned by those
compositions, like Li2O and Fe2O3, and --system and --mu are ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.StringArray("system", nil, "chemical system, like Li-Fe-O (repeatable)")
	f.StringArray("mu", nil, "chemical potential of an open element, like O=-5.2 (repeatable)")
	f.StringArray("terminal", nil, "terminal composition of a compound diagram, like Li2O (repeatable)")
	f.String("plot", "", "plot the hull of a binary diagram to this file (png, svg, pdf...)")
	f.String("hist", "", "plot a histogram of the energies above hull to this file")
	rootCmd.AddCommand(buildCmd)
}

//parseChemPots parses El=value pairs.
func parseChemPots(mus []string) (map[*chem.Element]float64, error) {
	if len(mus) == 0 {
		return nil, nil
	}
	ret := make(map[*chem.Element]float64, len(mus))
	for _, v := range mus {
		sym, val, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("chemical potential %q is not El=value", v)
		}
		e, err := chem.ElementBySymbol(strings.TrimSpace(sym))
		if err != nil {
			return nil, err
		}
		mu, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("chemical potential %q: %w", v, err)
		}
		ret[e] = mu
	}
	return ret, nil
}

//loadEntries reads the entries from the file, if given, or from the store, for the given systems.
func loadEntries(ctx context.Context, file string, systems [][]*chem.Element) ([]chem.Entry, error) {
	if file != "" {
		_, entries, err := entryio.ReadFile(file)
		return entries, err
	}
	if cfg.DB == "" {
		return nil, errors.New("an entry file or --db is needed")
	}
	if len(systems) == 0 {
		return nil, errors.New("--system is needed to build from the store")
	}
	store, err := entrystore.Open(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	//all the requested systems together, the builds take their part.
	var all []*chem.Element
	seen := make(map[*chem.Element]bool)
	for _, s := range systems {
		for _, e := range s {
			if !seen[e] {
				seen[e] = true
				all = append(all, e)
			}
		}
	}
	return store.InChemicalSystem(ctx, all...)
}

//parseTerminals parses the terminal formulas, and returns them along with the elements they contain.
func parseTerminals(formulas []string) ([]*chem.Composition, []*chem.Element, error) {
	var terminals []*chem.Composition
	var els []*chem.Element
	seen := make(map[*chem.Element]bool)
	for _, f := range formulas {
		c, err := chem.ParseFormula(strings.TrimSpace(f))
		if err != nil {
			return nil, nil, err
		}
		terminals = append(terminals, c)
		for _, e := range c.Elements() {
			if !seen[e] {
				seen[e] = true
				els = append(els, e)
			}
		}
	}
	chem.SortElements(els)
	return terminals, els, nil
}

func requests(entries []chem.Entry, systems [][]*chem.Element, mus map[*chem.Element]float64, terminals []*chem.Composition) []phasediag.Request {
	if len(terminals) > 0 {
		names := make([]string, len(terminals))
		for i, t := range terminals {
			names[i] = t.ReducedFormula()
		}
		return []phasediag.Request{{Name: strings.Join(names, "-"), Entries: entries, Terminals: terminals}}
	}
	if len(systems) == 0 {
		return []phasediag.Request{{Name: "all", Entries: entries, ChemPots: mus}}
	}
	reqs := make([]phasediag.Request, 0, len(systems))
	for _, s := range systems {
		reqs = append(reqs, phasediag.Request{Name: chem.ChemicalSystem(s), Entries: entries, Elements: s, ChemPots: mus})
	}
	return reqs
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sysflags, _ := cmd.Flags().GetStringArray("system")
	muflags, _ := cmd.Flags().GetStringArray("mu")
	plotfile, _ := cmd.Flags().GetString("plot")
	histfile, _ := cmd.Flags().GetString("hist")
	termflags, _ := cmd.Flags().GetStringArray("terminal")
	var systems [][]*chem.Element
	for _, s := range sysflags {
		els, err := chem.ParseElements(s)
		if err != nil {
			return err
		}
		chem.SortElements(els)
		systems = append(systems, els)
	}
	mus, err := parseChemPots(muflags)
	if err != nil {
		return err
	}
	terminals, tels, err := parseTerminals(termflags)
	if err != nil {
		return err
	}
	if len(terminals) > 0 {
		systems = [][]*chem.Element{tels}
	}
	var file string
	if len(args) > 0 {
		file = args[0]
	}
	entries, err := loadEntries(ctx, file, systems)
	if err != nil {
		return fmt.Errorf("loading entries: %w", err)
	}
	logger.Info("entries loaded", zap.Int("entries", len(entries)), zap.String("source", source(file)))
	reqs := requests(entries, systems, mus, terminals)
	diagrams, err := phasediag.BuildAll(ctx, reqs, cfg.Options(logger))
	if err != nil {
		return err
	}
	for _, q := range diagrams {
		if err := writeReport(cmd.OutOrStdout(), q); err != nil {
			return err
		}
	}
	if plotfile != "" {
		if err := pdplot.BinaryHull(diagrams[0], reqs[0].Name, plotfile); err != nil {
			return err
		}
	}
	if histfile != "" {
		if err := pdplot.EAboveHist(diagrams[0], reqs[0].Name, histfile); err != nil {
			return err
		}
	}
	return nil
}

func source(file string) string {
	if file != "" {
		return file
	}
	return cfg.DB
}

func writeReport(w io.Writer, q phasediag.Query) error {
	S, err := report.New(q)
	if err != nil {
		return err
	}
	return report.Write(w, S, cfg.Format)
}
