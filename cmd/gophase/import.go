/*
 * import.go, part of gophase.
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

package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rmera/gophase/entryio"
	"github.com/rmera/gophase/entrystore"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import entries.csv[.gz|.zst]...",
	Short: "Add the entries in the files to the store given with --db",
	Long: `Add the entries in one or more files to the SQLite store given with --db.
Entries with the ID of a stored entry replace it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DB == "" {
			return errors.New("import needs --db")
		}
		ctx := cmd.Context()
		store, err := entrystore.Open(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		var added int64
		for _, file := range args {
			_, entries, err := entryio.ReadFile(file)
			if err != nil {
				return err
			}
			if err := store.Put(ctx, entries...); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			logger.Debug("file imported", zap.String("file", file), zap.Int("entries", len(entries)))
			added += int64(len(entries))
		}
		total, err := store.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s entries imported, %s in %s\n", humanize.Comma(added), humanize.Comma(int64(total)), cfg.DB)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
