package pipeline

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/socnet/pkg/cache"
	"github.com/matzehuels/socnet/pkg/errors"
	"github.com/matzehuels/socnet/pkg/render"
)

// ConfigFileName is looked up in the working directory when no explicit
// config path is given.
const ConfigFileName = "socnet.toml"

// FileConfig is the on-disk configuration:
//
//	[layout]
//	kind = "spring"
//	seed = 7
//	algorithms = "gonum"
//
//	[render]
//	width = 1024
//	node_color = "rgb(31, 119, 180)"
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
type FileConfig struct {
	Layout LayoutConfig  `toml:"layout"`
	Render render.Config `toml:"render"`
	Cache  cache.Config  `toml:"cache"`
}

// LayoutConfig is the [layout] table.
type LayoutConfig struct {
	Kind       string `toml:"kind"`
	Seed       uint64 `toml:"seed"`
	Algorithms string `toml:"algorithms"`
	Weight     string `toml:"weight"`
}

// DefaultFileConfig returns the configuration used when no file exists.
func DefaultFileConfig() FileConfig {
	return FileConfig{Render: render.DefaultConfig()}
}

// LoadConfig reads a TOML config file. Tables and keys missing from the
// file keep their defaults. An empty path tries [ConfigFileName] and
// returns the defaults when it does not exist.
func LoadConfig(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()
	explicit := path != ""
	if !explicit {
		path = ConfigFileName
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	cfg.Render.SetDefaults()
	return cfg, nil
}

// Apply copies the file settings into opts for every field opts leaves
// unset. Explicit options win.
func (c FileConfig) Apply(opts *Options) {
	if opts.Layout == "" {
		opts.Layout = c.Layout.Kind
	}
	if opts.Seed == 0 {
		opts.Seed = c.Layout.Seed
	}
	if opts.Algorithms == "" {
		opts.Algorithms = c.Layout.Algorithms
	}
	if opts.Weight == "" {
		opts.Weight = c.Layout.Weight
	}
	if opts.Render == (render.Config{}) {
		opts.Render = c.Render
	}
}
