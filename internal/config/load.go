package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Load reads the configuration file at path. A missing file is not an error;
// it yields the defaults. Settings absent from the file keep their default
// values, so partial files are fine.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}
