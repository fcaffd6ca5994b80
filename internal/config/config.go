// Package config loads the optional pytd project file. Projects may
// carry a pytd.toml or pytd.yaml next to their declaration files;
// absence of the file means defaults everywhere.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	semver "github.com/Masterminds/semver/v3"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format identifies the project-file encoding.
type Format int

const (
	// FormatAuto detects the format from the file extension.
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Duration decodes from duration strings such as "200ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for both decoders.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config holds the project settings.
type Config struct {
	// RequiredVersion is a semver constraint the running tool version
	// must satisfy, e.g. ">=0.4.0, <1.0.0". Empty means any version.
	RequiredVersion string `toml:"required_version" yaml:"required_version"`

	// Color selects diagnostic styling: auto, always, or never.
	Color string `toml:"color" yaml:"color"`

	Fmt   FmtConfig   `toml:"fmt" yaml:"fmt"`
	Watch WatchConfig `toml:"watch" yaml:"watch"`
}

// FmtConfig holds formatter settings.
type FmtConfig struct {
	// Write rewrites files in place by default instead of printing to
	// stdout.
	Write bool `toml:"write" yaml:"write"`

	// Indent is the number of spaces per indentation level in
	// canonical output.
	Indent int `toml:"indent" yaml:"indent"`
}

// WatchConfig holds watch-mode settings.
type WatchConfig struct {
	// Debounce is how long to wait after the last event before
	// re-parsing.
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Default returns the settings used when no project file exists.
func Default() Config {
	return Config{
		Color: "auto",
		Fmt:   FmtConfig{Indent: 4},
		Watch: WatchConfig{Debounce: Duration(200 * time.Millisecond)},
	}
}

// projectFileNames are probed in order by Discover.
var projectFileNames = []string{"pytd.toml", "pytd.yaml", "pytd.yml"}

// Discover returns the path of the project file in dir, if any.
func Discover(dir string) (string, bool) {
	for _, name := range projectFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads and decodes the project file at path. The format is
// detected from the extension. Fields absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := decode(content, detectFormat(path))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDir discovers and loads the project file in dir. When no file
// exists, the defaults are returned with an empty path.
func LoadDir(dir string) (Config, string, error) {
	path, ok := Discover(dir)
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

// LoadFromString decodes configuration from a string. FormatAuto is
// treated as TOML.
func LoadFromString(content string, format Format) (Config, error) {
	return decode([]byte(content), format)
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func decode(content []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, err
		}
	default:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// CheckVersion verifies that the running tool version satisfies the
// project's required_version constraint.
func (c Config) CheckVersion(version string) error {
	if strings.TrimSpace(c.RequiredVersion) == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.RequiredVersion)
	if err != nil {
		return fmt.Errorf("invalid required_version %q: %w", c.RequiredVersion, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("pytd %s does not satisfy required_version %q", version, c.RequiredVersion)
	}
	return nil
}
