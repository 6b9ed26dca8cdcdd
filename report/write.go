/*
 * write.go, part of gophase.
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

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//The supported output formats.
const (
	JSON = "json"
	YAML = "yaml"
	TOML = "toml"
	Text = "text"
)

//ErrFormat is returned for unknown output formats.
var ErrFormat = errors.New("unknown report format")

//Formats returns the supported output formats.
func Formats() []string {
	return []string{Text, JSON, YAML, TOML}
}

//Write writes S to w in the given format.
func Write(w io.Writer, S *Summary, format string) error {
	var err error
	switch strings.ToLower(format) {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(S)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(S); err == nil {
			err = enc.Close()
		}
	case TOML:
		err = toml.NewEncoder(w).Encode(S)
	case Text, "":
		err = writeText(w, S)
	default:
		return fmt.Errorf("report: %q: %w", format, ErrFormat)
	}
	if err != nil {
		return fmt.Errorf("report: writing %s: %w", format, err)
	}
	return nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func f4(f float64) string { return strconv.FormatFloat(f, 'f', 4, 64) }

func writeText(w io.Writer, S *Summary) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(S.System + " phase diagram"))
	b.WriteString("\n")
	if len(S.ChemicalPotentials) > 0 {
		mus := make([]string, 0, len(S.ChemicalPotentials))
		for e, mu := range S.ChemicalPotentials {
			mus = append(mus, fmt.Sprintf("mu_%s = %s", e, f4(mu)))
		}
		sort.Strings(mus)
		b.WriteString("Open elements: " + strings.Join(mus, ", ") + "\n")
	}
	fmt.Fprintf(&b, "%d entries, %d stable. E above hull: mean %s, std %s, median %s, max %s\n",
		S.Stats.Entries, S.Stats.Stable, f4(S.Stats.MeanEAboveHull), f4(S.Stats.StdEAboveHull),
		f4(S.Stats.MedianEAboveHull), f4(S.Stats.MaxEAboveHull))
	rows := make([][]string, 0, len(S.Rows))
	for _, r := range S.Rows {
		stable := ""
		if r.Stable {
			stable = "*"
		}
		parts := make([]string, len(r.Decomposition))
		for i, p := range r.Decomposition {
			parts[i] = fmt.Sprintf("%s %s", strconv.FormatFloat(p.Amount, 'g', 4, 64), p.Name)
		}
		rows = append(rows, []string{r.Name, r.Formula, f4(r.EnergyPerAtom), f4(r.FormationEnergyPerAtom), f4(r.EAboveHull), stable, strings.Join(parts, " + ")})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Formula", "E/atom", "Ef/atom", "E above hull", "Stable", "Decomposition").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	b.WriteString(t.String())
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
