package config

// Config represents the complete structmap configuration.
// It can be loaded from .structmap/config.yml with environment variable
// overrides.
type Config struct {
	Discovery DiscoveryConfig `yaml:"discovery" mapstructure:"discovery"`
	Scan      ScanConfig      `yaml:"scan" mapstructure:"scan"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Watch     WatchConfig     `yaml:"watch" mapstructure:"watch"`
}

// DiscoveryConfig configures how app directories are located.
type DiscoveryConfig struct {
	ProjectMarker string `yaml:"project_marker" mapstructure:"project_marker"` // file that identifies the project root, e.g. "settings.py"
	AppMarker     string `yaml:"app_marker" mapstructure:"app_marker"`         // file that identifies an app directory, e.g. "apps.py"
}

// ScanConfig configures which files the aggregator scans.
type ScanConfig struct {
	Extensions   []string `yaml:"extensions" mapstructure:"extensions"`       // source extensions, e.g. [".py"]
	Ignore       []string `yaml:"ignore" mapstructure:"ignore"`               // glob patterns to ignore
	GeneratedDir string   `yaml:"generated_dir" mapstructure:"generated_dir"` // generated-content directory name, e.g. "migrations"
	KeepFile     string   `yaml:"keep_file" mapstructure:"keep_file"`         // file kept inside generated dirs, e.g. "__init__.py"
}

// OutputConfig configures where the project model is written.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // output document path
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before a re-scan fires
}

// Default returns a configuration with sensible defaults for a Django
// project layout.
func Default() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			ProjectMarker: "settings.py",
			AppMarker:     "apps.py",
		},
		Scan: ScanConfig{
			Extensions: []string{".py"},
			Ignore: []string{
				"**/__pycache__/**",
				"**/.venv/**",
				"**/venv/**",
				"**/node_modules/**",
				"**/.git/**",
			},
			GeneratedDir: "migrations",
			KeepFile:     "__init__.py",
		},
		Output: OutputConfig{
			Path: "project_structure.json",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}
