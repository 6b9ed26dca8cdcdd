/*
 * csv.go, part of gophase.
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

//Package entryio reads and writes lists of entries as CSV files, optionally
//compressed with gzip or zstd.
package entryio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	chem "github.com/rmera/gophase"
)

//Names of the non-element columns.
const (
	NameColumn   = "Name"
	EnergyColumn = "Energy"
	IDColumn     = "ID"
)

//idSpace is the namespace for the IDs generated for rows without one.
var idSpace = uuid.MustParse("5b0e3c4e-8f1a-4c53-9a8e-3d7f2a1c6e90")

//ErrFormat is returned, wrapped, for malformed files.
var ErrFormat = errors.New("malformed entry file")

//ReadCSV reads entries from r. The first row is the header: a Name column,
//one column per element, with the element symbol as title, an Energy column
//and, optionally, an ID column. Each following row is one entry, with the amount
//of each element and the total energy. Rows without ID get one derived from their
//line number and contents, so reading the same file twice gives the same IDs, and
//repeated rows get different ones.
//ReadCSV returns the elements in the header, in order, and the entries.
func ReadCSV(r io.Reader) ([]*chem.Element, []chem.Entry, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("entryio: empty file: %w", ErrFormat)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("entryio: reading header: %w", err)
	}
	namecol, energycol, idcol := -1, -1, -1
	elcols := make(map[int]*chem.Element)
	var elements []*chem.Element
	for i, v := range header {
		v = strings.TrimSpace(v)
		switch v {
		case NameColumn:
			namecol = i
		case EnergyColumn:
			energycol = i
		case IDColumn:
			idcol = i
		default:
			e, err := chem.ElementBySymbol(v)
			if err != nil {
				return nil, nil, fmt.Errorf("entryio: header column %d: %w", i+1, err)
			}
			for _, prev := range elements {
				if prev == e {
					return nil, nil, fmt.Errorf("entryio: repeated column %s: %w", e, ErrFormat)
				}
			}
			elcols[i] = e
			elements = append(elements, e)
		}
	}
	if energycol < 0 || len(elements) == 0 {
		return nil, nil, fmt.Errorf("entryio: the header needs an %s column and at least one element: %w", EnergyColumn, ErrFormat)
	}
	var entries []chem.Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("entryio: %w", err)
		}
		line, _ := cr.FieldPos(0)
		amounts := make(map[*chem.Element]float64, len(elcols))
		for i, e := range elcols {
			a, err := parseFloat(rec[i])
			if err != nil {
				return nil, nil, fmt.Errorf("entryio: line %d, %s: %w", line, e, err)
			}
			amounts[e] = a
		}
		comp, err := chem.NewComposition(amounts)
		if err != nil {
			return nil, nil, fmt.Errorf("entryio: line %d: %w", line, err)
		}
		energy, err := parseFloat(rec[energycol])
		if err != nil {
			return nil, nil, fmt.Errorf("entryio: line %d, energy: %w", line, err)
		}
		var name, id string
		if namecol >= 0 {
			name = strings.TrimSpace(rec[namecol])
		}
		if idcol >= 0 {
			id = strings.TrimSpace(rec[idcol])
		}
		if id == "" {
			id = uuid.NewSHA1(idSpace, []byte(strconv.Itoa(line)+":"+strings.Join(rec, ","))).String()
		}
		entry, err := chem.NewPDEntry(comp, energy, name, id)
		if err != nil {
			return nil, nil, fmt.Errorf("entryio: line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	return elements, entries, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", s, ErrFormat)
	}
	return f, nil
}

//WriteCSV writes the entries to w in the format read by ReadCSV, with an ID column.
//If elements is nil, the columns are all the elements in entries, by atomic number.
//It is an error for an entry to contain elements not in elements.
func WriteCSV(w io.Writer, elements []*chem.Element, entries []chem.Entry) error {
	if elements == nil {
		seen := make(map[*chem.Element]bool)
		for _, v := range entries {
			for _, e := range v.Composition().Elements() {
				if !seen[e] {
					seen[e] = true
					elements = append(elements, e)
				}
			}
		}
		chem.SortElements(elements)
	}
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(elements)+3)
	header = append(header, NameColumn)
	for _, e := range elements {
		header = append(header, e.Symbol())
	}
	header = append(header, EnergyColumn, IDColumn)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("entryio: %w", err)
	}
	rec := make([]string, len(header))
	for _, v := range entries {
		c := v.Composition()
		n := 0
		rec[0] = v.Name()
		for i, e := range elements {
			a := c.Amount(e)
			if a != 0 {
				n++
			}
			rec[i+1] = strconv.FormatFloat(a, 'g', -1, 64)
		}
		if n != len(c.Elements()) {
			return fmt.Errorf("entryio: %s has elements outside %s: %w", v.Name(), chem.ChemicalSystem(elements), chem.ErrCompositionOutOfSpace)
		}
		rec[len(rec)-2] = strconv.FormatFloat(v.Energy(), 'g', -1, 64)
		rec[len(rec)-1] = v.ID()
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("entryio: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("entryio: %w", err)
	}
	return nil
}
