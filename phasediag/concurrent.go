/*
 * concurrent.go, part of gophase.
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
	"context"
	"fmt"

	chem "github.com/rmera/gophase"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//Request describes one phase diagram for BuildAll.
type Request struct {
	Name    string
	Entries []chem.Entry
	//If not nil, replaces the Elements in the options.
	Elements []*chem.Element
	//If not empty, a grand potential diagram is built with these open elements.
	ChemPots map[*chem.Element]float64
	//If not empty, a compound phase diagram is built with these terminals. ChemPots is then ignored.
	Terminals []*chem.Composition
}

//BuildAll builds the diagrams for all requests, using up to opts.Cpus goroutines. The builds share
//nothing, and the results are returned in the order of the requests. The first error
//cancels the builds not yet started, and is returned. A cancelled ctx has the same effect.
func BuildAll(ctx context.Context, reqs []Request, opts *Options) ([]Query, error) {
	o := opts.complete()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Cpus)
	ret := make([]Query, len(reqs))
	for i, r := range reqs {
		i, r := i, r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o2 := *o
			o2.Logger = o.Logger.With(zap.String("request", r.Name))
			if r.Elements != nil {
				o2.Elements = r.Elements
			}
			var q Query
			var err error
			switch {
			case len(r.Terminals) > 0:
				q, err = NewCompound(r.Entries, r.Terminals, &o2)
			case len(r.ChemPots) > 0:
				q, err = NewGrand(r.Entries, r.ChemPots, &o2)
			default:
				q, err = New(r.Entries, &o2)
			}
			if err != nil {
				chem.ErrDecorate(err, fmt.Sprintf("BuildAll: %s", r.Name))
				return err
			}
			ret[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}
