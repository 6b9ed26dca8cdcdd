/*
 * doc.go, part of gophase.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package chem is the main package of the gophase library. It provides the elements,
compositions and energy entries that the rest of the library works on.

	**gophase Capabilities**

	Interned periodic table (symbol, atomic number, mass, electronegativity).

	Compositions from element maps or from formulas such as Li5FeO4 or Ca(OH)2,
	with normalized (fractional) views and reduced formulas.

	Energy entries (chem.PDEntry) and the chem.Entry interface.

	Phase diagrams (package phasediag): convex hull in composition-energy space
	(package hull), stable phases, decomposition products and energies above hull,
	both for closed systems and for systems open to an element reservoir
	(grand potential diagrams).

	Reading and writing of entry files (entryio), a local SQLite entry store
	(entrystore), reports in JSON, YAML, TOML or text (report) and plots of binary
	diagrams (pdplot).

All the errors returned by the library implement chem.Error and unwrap to one
of the chem.Err* values, so they can be checked with errors.Is.
*/
package chem
