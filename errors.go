/*
 * errors.go, part of gophase.
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

import (
	"errors"
	"fmt"
	"strings"
)

//The kinds of errors returned by this library. The errors returned are
//*CError values that unwrap to one of these, so use errors.Is to tell them apart.
var (
	//Malformed, empty or negative composition, or unknown element.
	ErrInvalidComposition = errors.New("invalid composition")
	//An element of the system has no elemental reference entry.
	ErrIncompletePhaseSpace = errors.New("incomplete phase space")
	//Not enough affinely independent points to build a hull.
	ErrDegenerateHull = errors.New("degenerate hull")
	//A composition lies outside the space spanned by the diagram.
	ErrCompositionOutOfSpace = errors.New("composition out of space")
	//Every element of the system was opened to a reservoir.
	ErrInvalidGrandCanonicalConfig = errors.New("invalid grand canonical configuration")
	//An internal consistency check failed. This is always a bug.
	ErrInternal = errors.New("internal consistency failure")
)

//CError is the error type used in the whole library.
type CError struct {
	kind     error
	msg      string
	deco     []string
	critical bool
}

//NewError returns a new error of the given kind (one of the Err* variables)
//with message msg. caller, if not empty, is the first decoration.
//Errors of kind ErrInternal are always critical.
func NewError(kind error, msg, caller string) *CError {
	err := &CError{kind: kind, msg: msg, critical: kind == ErrInternal}
	if caller != "" {
		err.deco = []string{caller}
	}
	return err
}

func (err *CError) Error() string {
	if len(err.deco) == 0 {
		return fmt.Sprintf("%s: %s", err.kind, err.msg)
	}
	//the decorations go from innermost to outermost function.
	d := make([]string, len(err.deco))
	for i, v := range err.deco {
		d[len(d)-1-i] = v
	}
	return fmt.Sprintf("%s: %s: %s", strings.Join(d, ": "), err.kind, err.msg)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Unwrap returns the kind of the error.
func (err *CError) Unwrap() error { return err.kind }

//Critical returns true if the error signals a bug in the library.
func (err *CError) Critical() bool { return err.critical }

//ErrDecorate decorates err with caller if err implements Error, and returns it.
//Other errors are returned unchanged. It is meant for the sub-packages.
func ErrDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}
