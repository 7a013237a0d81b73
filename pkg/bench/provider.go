package bench

import "github.com/df07/go-optics-bench/pkg/log"

// Selection names the bench to assemble: the YAML file at ConfigPath when
// set, otherwise the preset called Preset
type Selection struct {
	Preset     string
	ConfigPath string
	Seed       int64
	SeedSet    bool // Seed overrides the seed of a config file
	Verbose    bool // Turn on mirror diagnostics
}

// Provide assembles the selected bench
func Provide(sel Selection, logger log.Logger) (*Bench, error) {
	var (
		cfg *Config
		err error
	)
	if sel.ConfigPath == "" {
		cfg, err = PresetConfig(sel.Preset, sel.Seed)
	} else {
		cfg, err = LoadConfigFile(sel.ConfigPath)
		if err == nil && sel.SeedSet {
			cfg.Seed = sel.Seed
		}
	}
	if err != nil {
		return nil, err
	}
	cfg.Verbose = cfg.Verbose || sel.Verbose

	return cfg.Build(logger)
}
