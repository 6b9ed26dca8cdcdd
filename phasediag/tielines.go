/*
 * tielines.go, part of gophase.
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

package phasediag

import (
	chem "github.com/rmera/gophase"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

//PhaseNode is a stable entry as a node of the tie-line graph.
type PhaseNode struct {
	Entry chem.Entry
	id    int64
}

//ID implements gonum's graph.Node
func (N *PhaseNode) ID() int64 { return N.id }

//TieLines returns an undirected graph where the nodes (*PhaseNode) are the
//stable entries at the vertices of the hull, and the edges join the entries that
//share a facet, i.e. the phases that can coexist at equilibrium.
func (P *PhaseDiagram) TieLines() graph.Undirected {
	g := simple.NewUndirectedGraph()
	nodes := make(map[chem.Entry]*PhaseNode)
	node := func(e chem.Entry) *PhaseNode {
		n, ok := nodes[e]
		if !ok {
			n = &PhaseNode{Entry: e, id: int64(len(nodes))}
			nodes[e] = n
			g.AddNode(n)
		}
		return n
	}
	for _, f := range P.facets {
		for i, a := range f.Entries {
			na := node(a)
			for _, b := range f.Entries[i+1:] {
				nb := node(b)
				if !g.HasEdgeBetween(na.ID(), nb.ID()) {
					g.SetEdge(g.NewEdge(na, nb))
				}
			}
		}
	}
	return g
}
