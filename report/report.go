/*
 * report.go, part of gophase.
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

//Package report turns a built phase diagram into a plain data structure
//that can be serialized as JSON, YAML or TOML, or printed as a table,
//so other programs can use the results without linking to gophase.
package report

import (
	"math"
	"sort"

	chem "github.com/rmera/gophase"
	"github.com/rmera/gophase/phasediag"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Part is one product of a decomposition.
type Part struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	ID     string  `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Amount float64 `json:"amount" yaml:"amount" toml:"amount"`
}

//Row is the report for one entry. Energies are in the units of the entries.
type Row struct {
	Name                   string  `json:"name" yaml:"name" toml:"name"`
	ID                     string  `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Formula                string  `json:"formula" yaml:"formula" toml:"formula"`
	Energy                 float64 `json:"energy" yaml:"energy" toml:"energy"`
	EnergyPerAtom          float64 `json:"energy_per_atom" yaml:"energy_per_atom" toml:"energy_per_atom"`
	FormationEnergyPerAtom float64 `json:"formation_energy_per_atom" yaml:"formation_energy_per_atom" toml:"formation_energy_per_atom"`
	EAboveHull             float64 `json:"e_above_hull" yaml:"e_above_hull" toml:"e_above_hull"`
	Stable                 bool    `json:"stable" yaml:"stable" toml:"stable"`
	Decomposition          []Part  `json:"decomposition" yaml:"decomposition" toml:"decomposition"`
}

//Stats summarizes the energies above hull of all the entries.
type Stats struct {
	Entries          int     `json:"entries" yaml:"entries" toml:"entries"`
	Stable           int     `json:"stable" yaml:"stable" toml:"stable"`
	MeanEAboveHull   float64 `json:"mean_e_above_hull" yaml:"mean_e_above_hull" toml:"mean_e_above_hull"`
	StdEAboveHull    float64 `json:"std_e_above_hull" yaml:"std_e_above_hull" toml:"std_e_above_hull"`
	MedianEAboveHull float64 `json:"median_e_above_hull" yaml:"median_e_above_hull" toml:"median_e_above_hull"`
	MaxEAboveHull    float64 `json:"max_e_above_hull" yaml:"max_e_above_hull" toml:"max_e_above_hull"`
}

//Summary is the whole report of a phase diagram.
type Summary struct {
	System   string   `json:"system" yaml:"system" toml:"system"`
	Elements []string `json:"elements" yaml:"elements" toml:"elements"`
	//Only for grand potential diagrams.
	ChemicalPotentials map[string]float64 `json:"chemical_potentials,omitempty" yaml:"chemical_potentials,omitempty" toml:"chemical_potentials,omitempty"`
	Stats              Stats              `json:"stats" yaml:"stats" toml:"stats"`
	//The entries of each facet of the hull, by name.
	Facets [][]string `json:"facets" yaml:"facets" toml:"facets"`
	Rows   []Row      `json:"entries" yaml:"entries" toml:"entries"`
}

//New builds the report for q. For grand potential diagrams, the
//energies are grand potentials, and the formulas those of the original entries.
func New(q phasediag.Query) (*Summary, error) {
	S := new(Summary)
	els := q.Elements()
	S.System = chem.ChemicalSystem(els)
	for _, e := range els {
		S.Elements = append(S.Elements, e.Symbol())
	}
	if g, ok := q.(*phasediag.GrandPotentialDiagram); ok {
		S.ChemicalPotentials = make(map[string]float64)
		for e, mu := range g.ChemicalPotentials() {
			S.ChemicalPotentials[e.Symbol()] = mu
		}
	}
	for _, f := range q.Facets() {
		names := make([]string, len(f.Entries))
		for i, v := range f.Entries {
			names[i] = v.Name()
		}
		S.Facets = append(S.Facets, names)
	}
	entries := q.Entries()
	eabove := make([]float64, 0, len(entries))
	for _, v := range entries {
		r, err := row(q, v)
		if err != nil {
			chem.ErrDecorate(err, "report.New")
			return nil, err
		}
		if r.Stable {
			S.Stats.Stable++
		}
		eabove = append(eabove, r.EAboveHull)
		S.Rows = append(S.Rows, r)
	}
	S.Stats.Entries = len(entries)
	S.Stats.MeanEAboveHull, S.Stats.StdEAboveHull = stat.MeanStdDev(eabove, nil)
	if len(eabove) < 2 {
		S.Stats.StdEAboveHull = 0
	}
	sort.Float64s(eabove)
	if len(eabove) > 0 {
		S.Stats.MedianEAboveHull = stat.Quantile(0.5, stat.Empirical, eabove, nil)
		S.Stats.MaxEAboveHull = floats.Max(eabove)
	}
	if math.IsNaN(S.Stats.MeanEAboveHull) {
		S.Stats.MeanEAboveHull = 0
	}
	return S, nil
}

func row(q phasediag.Query, v chem.Entry) (Row, error) {
	formula := v.Composition().Formula()
	//grand and compound entries
	if g, ok := v.(interface{ Original() chem.Entry }); ok {
		formula = g.Original().Composition().Formula()
	}
	r := Row{Name: v.Name(), ID: v.ID(), Formula: formula, Energy: v.Energy(), EnergyPerAtom: v.EnergyPerAtom(), Stable: q.IsStable(v)}
	var err error
	if r.FormationEnergyPerAtom, err = q.FormationEnergyPerAtom(v); err != nil {
		return r, err
	}
	if r.EAboveHull, err = q.EAboveHull(v); err != nil {
		return r, err
	}
	d, err := q.Decomposition(v)
	if err != nil {
		return r, err
	}
	for p, a := range d {
		r.Decomposition = append(r.Decomposition, Part{Name: p.Name(), ID: p.ID(), Amount: a})
	}
	sort.Slice(r.Decomposition, func(i, j int) bool { return r.Decomposition[i].Name < r.Decomposition[j].Name })
	return r, nil
}

//StableRows returns only the rows of stable entries.
func (S *Summary) StableRows() []Row {
	ret := make([]Row, 0, S.Stats.Stable)
	for _, r := range S.Rows {
		if r.Stable {
			ret = append(ret, r)
		}
	}
	return ret
}
