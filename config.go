package libcache

// DefaultPython is the interpreter used when none is configured.
const DefaultPython = "python3"

// Config holds settings shared by the CLI commands.
type Config struct {
	Python       string   `yaml:"python"`
	SearchPaths  []string `yaml:"searchPaths"`
	FallbackDirs []string `yaml:"fallbackDirs"`
	CacheDir     string   `yaml:"cacheDir"`
}

// ApplyDefaults fills unset fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Python == "" {
		c.Python = DefaultPython
	}
}
