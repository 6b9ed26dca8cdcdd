/*
 * file.go, part of gophase.
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

package entryio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/gophase"
	"go.uber.org/multierr"
)

//zstd's Decoder's Close doesn't return an error, so it is not an io.ReadCloser.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//Compression returns the compression used for a file, from its name:
//"zstd" for the .zst suffix, "gzip" for .gz and "" otherwise.
func Compression(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".zst"):
		return "zstd"
	case strings.HasSuffix(n, ".gz"):
		return "gzip"
	default:
		return ""
	}
}

//ReadFile reads the entries in the file name, uncompressing it if needed
//(see Compression).
func ReadFile(name string) ([]*chem.Element, []chem.Entry, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("entryio: %w", err)
	}
	defer f.Close()
	var r io.ReadCloser
	b := bufio.NewReader(f)
	switch Compression(name) {
	case "zstd":
		d, err := zstd.NewReader(b)
		if err != nil {
			return nil, nil, fmt.Errorf("entryio: %s: %w", name, err)
		}
		r = zstdReadCloser{d}
	case "gzip":
		r, err = gzip.NewReader(b)
		if err != nil {
			return nil, nil, fmt.Errorf("entryio: %s: %w", name, err)
		}
	default:
		r = io.NopCloser(b)
	}
	defer r.Close()
	els, entries, err := ReadCSV(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	return els, entries, nil
}

//WriteFile writes entries to the file name, as WriteCSV does, compressing them
//according to the name of the file (see Compression).
func WriteFile(name string, elements []*chem.Element, entries []chem.Entry) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("entryio: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	var w io.WriteCloser
	switch Compression(name) {
	case "zstd":
		w, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return fmt.Errorf("entryio: %s: %w", name, err)
		}
	case "gzip":
		w = gzip.NewWriter(f)
	default:
		return WriteCSV(f, elements, entries)
	}
	err = WriteCSV(w, elements, entries)
	return multierr.Append(err, w.Close())
}
