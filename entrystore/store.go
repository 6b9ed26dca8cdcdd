/*
 * store.go, part of gophase.
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

//Package entrystore keeps entries in a local SQLite database, so the
//entries of a chemical system can be retrieved without reading all the
//data again.
package entrystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	chem "github.com/rmera/gophase"
	_ "modernc.org/sqlite"
)

var (
	//ErrNotFound is returned by Get for unknown IDs.
	ErrNotFound = errors.New("entry not found")
	//ErrNoID is returned by Put for entries with an empty ID.
	ErrNoID = errors.New("entry without ID")
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id       TEXT PRIMARY KEY,
    name     TEXT NOT NULL,
    formula  TEXT NOT NULL,
    system   TEXT NOT NULL,
    energy   REAL NOT NULL,
    added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS amounts (
    entry_id TEXT NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
    element  TEXT NOT NULL,
    amount   REAL NOT NULL,
    PRIMARY KEY(entry_id, element)
);

CREATE INDEX IF NOT EXISTS amounts_element ON amounts(element);
`

//Store is a SQLite-backed collection of entries, indexed by their IDs.
type Store struct {
	db *sql.DB
}

//Open opens, or creates, the store in the file path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("entrystore: open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", "PRAGMA foreign_keys=ON"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("entrystore: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("entrystore: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

//Close closes the database.
func (S *Store) Close() error {
	return S.db.Close()
}

//Put adds the entries to the store in one transaction. An entry with the ID of
//one already stored replaces it.
func (S *Store) Put(ctx context.Context, entries ...chem.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := S.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("entrystore: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck
	const qentry = `
		INSERT INTO entries (id, name, formula, system, energy)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name    = excluded.name,
			formula = excluded.formula,
			system  = excluded.system,
			energy  = excluded.energy`
	estmt, err := tx.PrepareContext(ctx, qentry)
	if err != nil {
		return fmt.Errorf("entrystore: prepare entry upsert: %w", err)
	}
	defer estmt.Close()
	astmt, err := tx.PrepareContext(ctx, "INSERT INTO amounts (entry_id, element, amount) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("entrystore: prepare amount insert: %w", err)
	}
	defer astmt.Close()
	for _, v := range entries {
		if v.ID() == "" {
			return fmt.Errorf("entrystore: %s: %w", v.Name(), ErrNoID)
		}
		c := v.Composition()
		if _, err := estmt.ExecContext(ctx, v.ID(), v.Name(), c.Formula(), c.ChemicalSystem(), v.Energy()); err != nil {
			return fmt.Errorf("entrystore: put %s: %w", v.ID(), err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM amounts WHERE entry_id = ?", v.ID()); err != nil {
			return fmt.Errorf("entrystore: put %s: %w", v.ID(), err)
		}
		for _, e := range c.Elements() {
			if _, err := astmt.ExecContext(ctx, v.ID(), e.Symbol(), c.Amount(e)); err != nil {
				return fmt.Errorf("entrystore: put %s: %w", v.ID(), err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("entrystore: commit: %w", err)
	}
	return nil
}

//Get returns the entry with the given ID, or an error wrapping ErrNotFound.
func (S *Store) Get(ctx context.Context, id string) (chem.Entry, error) {
	const q = `
		SELECT e.id, e.name, e.energy, a.element, a.amount
		FROM entries e JOIN amounts a ON a.entry_id = e.id
		WHERE e.id = ?`
	entries, err := S.query(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("entrystore: get %q: %w", id, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("entrystore: get %q: %w", id, ErrNotFound)
	}
	return entries[0], nil
}

//InChemicalSystem returns all the stored entries made only of the given elements,
//i.e. all the entries needed to build the phase diagram of that system.
//The entries are returned in the order they were first stored.
func (S *Store) InChemicalSystem(ctx context.Context, elements ...*chem.Element) ([]chem.Entry, error) {
	if len(elements) == 0 {
		return nil, nil
	}
	args := make([]any, len(elements))
	marks := make([]string, len(elements))
	for i, e := range elements {
		args[i] = e.Symbol()
		marks[i] = "?"
	}
	q := fmt.Sprintf(`
		SELECT e.id, e.name, e.energy, a.element, a.amount
		FROM entries e JOIN amounts a ON a.entry_id = e.id
		WHERE NOT EXISTS (
			SELECT 1 FROM amounts o WHERE o.entry_id = e.id AND o.element NOT IN (%s)
		)
		ORDER BY e.rowid`, strings.Join(marks, ", "))
	entries, err := S.query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("entrystore: entries in %s: %w", chem.ChemicalSystem(elements), err)
	}
	return entries, nil
}

//Count returns the number of entries stored.
func (S *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := S.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		return 0, fmt.Errorf("entrystore: count: %w", err)
	}
	return n, nil
}

//query runs q, which must select id, name, energy, element, amount with the rows
//of each entry together, and assembles the entries.
func (S *Store) query(ctx context.Context, q string, args ...any) ([]chem.Entry, error) {
	rows, err := S.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	type partial struct {
		id, name string
		energy   float64
		amounts  map[*chem.Element]float64
	}
	var order []*partial
	byid := make(map[string]*partial)
	for rows.Next() {
		var id, name, symbol string
		var energy, amount float64
		if err := rows.Scan(&id, &name, &energy, &symbol, &amount); err != nil {
			return nil, err
		}
		p, ok := byid[id]
		if !ok {
			p = &partial{id: id, name: name, energy: energy, amounts: make(map[*chem.Element]float64)}
			byid[id] = p
			order = append(order, p)
		}
		e, err := chem.ElementBySymbol(symbol)
		if err != nil {
			return nil, err
		}
		p.amounts[e] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	ret := make([]chem.Entry, 0, len(order))
	for _, p := range order {
		c, err := chem.NewComposition(p.amounts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.id, err)
		}
		entry, err := chem.NewPDEntry(c, p.energy, p.name, p.id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.id, err)
		}
		ret = append(ret, entry)
	}
	return ret, nil
}
