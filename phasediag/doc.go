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

/*
Package phasediag builds compositional phase diagrams from sets of energy entries.

An entry's composition is taken as a point in the simplex of atomic fractions of the
n elements of the system, and its energy per atom as an additional axis. The lower convex hull of
those points gives the equilibrium phases: the entries on the hull are stable, and every
other entry decomposes into the vertices of the hull facet below it. The vertical
distance to that facet is the energy above hull.

New builds a diagram for a closed system, NewGrand one for a system open to a reservoir of
one or more elements at fixed chemical potentials, and BuildAll builds several independent
diagrams concurrently. Every diagram is immutable once built. All of them implement Query.

The energies of the entries can be formation energies or raw total energies, as long as all
of them share the same reference. Every element of the system needs at least one entry made
only of that element.
*/
package phasediag
