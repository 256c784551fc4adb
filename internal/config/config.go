package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"

	"fmdl-tool/internal/fmdl"
)

// EnvVar names a config file to use instead of the discovered one.
const EnvVar = "FMDLTOOL_CONFIG"

// FileName is the config file looked up next to the executable and in the cwd.
const FileName = "fmdltool.json"

// Config holds decode, dictionary and preview settings.
type Config struct {
	// Decoding
	Profile         string `json:"profile"`
	VertexAlignment string `json:"vertex_alignment"`
	BugCompatible   bool   `json:"bug_compatible"`

	// Names
	Dictionaries       []string `json:"dictionaries"`
	DictionaryEncoding string   `json:"dictionary_encoding"`

	// Output
	DebugStats bool   `json:"debug_stats"`
	LogLevel   string `json:"log_level"`
	OutputDir  string `json:"output_dir"`

	// Preview settings
	PreviewSize   int    `json:"preview_size"`
	Supersample   int    `json:"supersample"`
	PreviewFormat string `json:"preview_format"`
	Workers       int    `json:"workers"`

	// dir is the directory of the file this config came from, used to
	// resolve relative dictionary paths.
	dir string
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}
	cfg.dir = filepath.Dir(path)

	return cfg, nil
}

// Discover loads the first config found via EnvVar, next to the executable,
// then in the working directory. No file at all yields defaults. It returns
// the path used, or "" when none was found.
func Discover() (Config, string, error) {
	if p := os.Getenv(EnvVar); p != "" {
		cfg, err := Load(p)
		return cfg, p, err
	}

	var candidates []string
	if exe, _ := os.Executable(); exe != "" {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), FileName))
	}
	if cwd, _ := os.Getwd(); cwd != "" {
		candidates = append(candidates, filepath.Join(cwd, FileName))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			cfg, err := Load(c)
			return cfg, c, err
		}
	}
	return Config{}, "", nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.PreviewFormat != "" {
		c.PreviewFormat = flags.PreviewFormat
	}

	if c.dir != "" {
		for i, d := range c.Dictionaries {
			if !filepath.IsAbs(d) {
				c.Dictionaries[i] = filepath.Join(c.dir, d)
			}
		}
	}

	if c.Profile == "" {
		c.Profile = "auto"
	}
	if c.VertexAlignment == "" {
		c.VertexAlignment = "profile"
	}
	if c.DictionaryEncoding == "" {
		c.DictionaryEncoding = "utf-8"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	// Defaults for preview settings
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.PreviewFormat == "" {
		c.PreviewFormat = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	OutputDir     string
	Workers       int
	PreviewFormat string
}

// Options converts the decode settings to fmdl.Options.
func (c *Config) Options() (fmdl.Options, error) {
	align, err := fmdl.ParseAlignMode(c.VertexAlignment)
	if err != nil {
		return fmdl.Options{}, errors.Wrap(err, "config: vertex_alignment")
	}
	if c.Profile != "" && c.Profile != "auto" {
		if _, err := fmdl.ProfileByName(c.Profile); err != nil {
			return fmdl.Options{}, errors.Wrap(err, "config: profile")
		}
	}
	return fmdl.Options{
		Profile:       c.Profile,
		Alignment:     align,
		BugCompatible: c.BugCompatible,
	}, nil
}
