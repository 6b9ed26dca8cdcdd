package config

import (
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"DB", cfg.DB, ""},
		{"Format", cfg.Format, "text"},
		{"CompositionTol", cfg.CompositionTol, 1e-8},
		{"EnergyTol", cfg.EnergyTol, 1e-6},
		{"HullTol", cfg.HullTol, 1e-10},
		{"Verbose", cfg.Verbose, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
	if cfg.Cpus < 1 {
		t.Errorf("Cpus = %d", cfg.Cpus)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{"db", "GOPHASE_DB", "/tmp/entries.db", func(c Config) any { return c.DB }, "/tmp/entries.db"},
		{"format", "GOPHASE_FORMAT", "yaml", func(c Config) any { return c.Format }, "yaml"},
		{"energy_tol", "GOPHASE_ENERGY_TOL", "0.001", func(c Config) any { return c.EnergyTol }, 0.001},
		{"cpus", "GOPHASE_CPUS", "3", func(c Config) any { return c.Cpus }, 3},
		{"verbose", "GOPHASE_VERBOSE", "true", func(c Config) any { return c.Verbose }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			viper.SetEnvPrefix("GOPHASE")
			viper.AutomaticEnv()
			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if got := tt.field(cfg); got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_Invalid(t *testing.T) {
	for key, val := range map[string]any{"format": "xml", "hull_tol": -1.0, "energy_tol": 0.0} {
		viper.Reset()
		viper.Set(key, val)
		if _, err := Load(); err == nil {
			t.Errorf("%s=%v accepted", key, val)
		}
	}
	viper.Reset()
}

func TestOptions(t *testing.T) {
	viper.Reset()
	viper.Set("energy_tol", 0.01)
	viper.Set("cpus", 2)
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	o := cfg.Options(zap.NewNop())
	if o.EnergyTol != 0.01 || o.Cpus != 2 || o.CompositionTol != 1e-8 || o.Logger == nil {
		t.Errorf("wrong options %+v", o)
	}
	viper.Reset()
}
