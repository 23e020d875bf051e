// Package yaml loads libcache configuration files.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fwojciec/libcache"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the configuration at path, expanding ${VAR} references
// from the environment before decoding. Returns ENOTFOUND if the file does
// not exist.
func LoadConfig(path string) (*libcache.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, libcache.Errorf(libcache.ENOTFOUND, "configuration file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes configuration data and applies defaults.
func ParseConfig(data []byte) (*libcache.Config, error) {
	expanded := os.ExpandEnv(string(data))

	var config libcache.Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, libcache.Errorf(libcache.EINVALID, "invalid config: %s", err)
	}

	config.ApplyDefaults()
	return &config, nil
}
