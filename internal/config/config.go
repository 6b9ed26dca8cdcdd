/*
 * config.go, part of gophase.
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

//Package config collects the settings of the gophase command from
//.gophase.yaml, GOPHASE_* environment variables and command line flags.
package config

import (
	"fmt"
	"slices"

	"github.com/rmera/gophase/phasediag"
	"github.com/rmera/gophase/report"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

//Config holds the runtime configuration for gophase.
type Config struct {
	//SQLite entry store. Empty means no store.
	DB             string  `mapstructure:"db"`
	Format         string  `mapstructure:"format"`
	CompositionTol float64 `mapstructure:"composition_tol"`
	EnergyTol      float64 `mapstructure:"energy_tol"`
	HullTol        float64 `mapstructure:"hull_tol"`
	Cpus           int     `mapstructure:"cpus"`
	Verbose        bool    `mapstructure:"verbose"`
}

//Load reads the configuration from viper, with defaults for the values not
//set in the config file, the environment or the flags. It fails for
//unknown output formats and non-positive tolerances.
func Load() (Config, error) {
	d := phasediag.DefaultOptions()
	viper.SetDefault("db", "")
	viper.SetDefault("format", report.Text)
	viper.SetDefault("composition_tol", d.CompositionTol)
	viper.SetDefault("energy_tol", d.EnergyTol)
	viper.SetDefault("hull_tol", d.HullTol)
	viper.SetDefault("cpus", d.Cpus)
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if !slices.Contains(report.Formats(), cfg.Format) {
		return cfg, fmt.Errorf("config: format %q not one of %v", cfg.Format, report.Formats())
	}
	for name, v := range map[string]float64{"composition_tol": cfg.CompositionTol, "energy_tol": cfg.EnergyTol, "hull_tol": cfg.HullTol} {
		if v <= 0 {
			return cfg, fmt.Errorf("config: %s must be positive, not %g", name, v)
		}
	}
	return cfg, nil
}

//Options returns the phase diagram options for the configuration.
func (c Config) Options(logger *zap.Logger) *phasediag.Options {
	o := phasediag.DefaultOptions()
	o.CompositionTol = c.CompositionTol
	o.EnergyTol = c.EnergyTol
	o.HullTol = c.HullTol
	if c.Cpus > 0 {
		o.Cpus = c.Cpus
	}
	if logger != nil {
		o.Logger = logger
	}
	return o
}
