/*
 * root.go, part of gophase.
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
	"os"
	"os/signal"
	"syscall"

	"github.com/rmera/gophase/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "gophase",
	Short: "Thermodynamic phase stability from computed energies",
	Long: `gophase builds the phase diagram (the lower convex hull in composition-energy space)
of a set of entries, each a composition with its total energy, and reports which
entries are stable, how far above the hull the rest are, and what they decompose into.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		zc := zap.NewProductionConfig()
		if cfg.Verbose {
			zc = zap.NewDevelopmentConfig()
		}
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

//Execute runs the command line.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default .gophase.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output")
	pf.String("db", "", "SQLite entry store")
	pf.String("format", "text", "output format: text, json, yaml or toml")
	pf.Int("cpus", 0, "maximum number of diagrams built at the same time (default: all CPUs)")
	for _, name := range []string{"verbose", "db", "format", "cpus"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".gophase")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}
	viper.SetEnvPrefix("GOPHASE")
	viper.AutomaticEnv()

	//No config file is fine, there are defaults.
	_ = viper.ReadInConfig()
}
