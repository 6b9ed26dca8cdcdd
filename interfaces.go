/*
 * interfaces.go, part of gophase.
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

package chem

//Entry is anything with a composition and an energy that can take part in
//a phase diagram. The energy is the total energy of the amounts given by the
//composition (not normalized), and must use the same reference for all the
//entries in a diagram.
type Entry interface {
	Composition() *Composition
	Energy() float64
	EnergyPerAtom() float64
	//A human readable name, normally the reduced formula.
	Name() string
	//An identifier for the entry's source, can be empty.
	ID() string
}

//Errors

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Adds the caller to the decoration slice and returns the slice. If passed an empty string, it just returns the current value.
}

//CriticalError is implemented by errors that signal a bug in the library
//rather than bad input. A critical error should never be ignored.
type CriticalError interface {
	Error
	Critical() bool
}
