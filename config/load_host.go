//go:build !(rp2040 || rp2350)

package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Load reads a TOML file over the defaults. A missing path is not an error;
// the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}
