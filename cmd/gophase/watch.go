/*
 * watch.go, part of gophase.
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
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	chem "github.com/rmera/gophase"
	"github.com/rmera/gophase/entryio"
	"github.com/rmera/gophase/phasediag"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//Editors and scripts often write a file in several steps.
const settle = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch entries.csv[.gz|.zst]",
	Short: "Rebuild the phase diagram every time the entry file changes",
	Long: `Build the phase diagram of the entries in the file and print the stable entries.
Then, every time the file changes, build it again from scratch. Errors in the
file are reported, and the previous diagram is kept until the file is fixed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watch(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func rebuild(w io.Writer, file string) {
	_, entries, err := entryio.ReadFile(file)
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", file, err)
		return
	}
	pd, err := phasediag.New(entries, cfg.Options(logger))
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", file, err)
		return
	}
	names := make([]string, 0, len(pd.StableEntries()))
	for _, v := range pd.StableEntries() {
		names = append(names, v.Name())
	}
	fmt.Fprintf(w, "[%s] %s: %d entries, %d stable: %s\n", time.Now().Format(time.TimeOnly),
		chem.ChemicalSystem(pd.Elements()), len(entries), len(names), strings.Join(names, ", "))
}

//watch watches the directory of the file, so the file can be replaced, not only written.
func watch(ctx context.Context, w io.Writer, file string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: %s: %w", file, err)
	}
	rebuild(w, file)
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("entry file changed", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(settle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			rebuild(w, file)
		}
	}
}
