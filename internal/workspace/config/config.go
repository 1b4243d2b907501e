// Package config parses .corerope.yml, the per-project workspace
// configuration: source roots, ignored folder globs, the syntax-error
// policy, and the clusters file path. Modeled directly on the teacher's
// internal/ext/config.go (LoadConfig/ParseConfig/FindConfig/validate/
// setDefaults), swapping funxy.yaml's Go-dependency schema for corerope's
// workspace schema.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SyntaxErrorPolicy controls how a workspace reacts when a resource fails
// to parse (spec §7 ModuleSyntaxError).
type SyntaxErrorPolicy string

const (
	// PolicyStrict surfaces a ModuleSyntaxError to the caller and excludes
	// the resource from any cross-file operation until it is fixed.
	PolicyStrict SyntaxErrorPolicy = "strict"
	// PolicyLenient loads an unparseable resource as an empty module
	// (nothing is logged) and lets the rest of the workspace continue, the
	// default.
	PolicyLenient SyntaxErrorPolicy = "lenient"
)

// Config is the top-level .corerope.yml configuration.
type Config struct {
	// SourceRoots lists the directories (relative to the config file)
	// that are scanned for modules. Defaults to ["."].
	SourceRoots []string `yaml:"source_roots,omitempty"`

	// IgnoredFolders lists additional glob patterns (matched against a
	// folder's base name) to exclude from enumeration, on top of the
	// dot-prefixed folders and compiled-artifact names the workspace
	// enumerator always excludes per spec §6.
	IgnoredFolders []string `yaml:"ignored_folders,omitempty"`

	// SyntaxErrorPolicy is "strict" or "lenient". Defaults to "lenient".
	SyntaxErrorPolicy SyntaxErrorPolicy `yaml:"syntax_error_policy,omitempty"`

	// ClustersFile is a path (relative to the config file) to the
	// clusters file used by the restructure refactoring. Optional.
	ClustersFile string `yaml:"clusters_file,omitempty"`
}

// LoadConfig reads and parses a .corerope.yml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses .corerope.yml content from bytes. path is used only
// for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for .corerope.yml starting from dir and walking up
// to parent directories, the way the teacher's FindConfig locates
// funxy.yaml. Returns the path and nil error if found, or an empty string
// and nil error if not found anywhere above dir.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range []string{".corerope.yml", ".corerope.yaml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	switch c.SyntaxErrorPolicy {
	case "", PolicyStrict, PolicyLenient:
	default:
		return fmt.Errorf("%s: syntax_error_policy: must be %q or %q, got %q",
			path, PolicyStrict, PolicyLenient, c.SyntaxErrorPolicy)
	}

	configDir := filepath.Dir(path)
	for i, root := range c.SourceRoots {
		p := root
		if !filepath.IsAbs(p) {
			p = filepath.Join(configDir, p)
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("%s: source_roots[%d] (%s): not found: %w", path, i, root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s: source_roots[%d] (%s): not a directory", path, i, root)
		}
	}

	if c.ClustersFile != "" {
		p := c.ClustersFile
		if !filepath.IsAbs(p) {
			p = filepath.Join(configDir, p)
		}
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%s: clusters_file (%s): not found: %w", path, c.ClustersFile, err)
		}
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if len(c.SourceRoots) == 0 {
		c.SourceRoots = []string{"."}
	}
	if c.SyntaxErrorPolicy == "" {
		c.SyntaxErrorPolicy = PolicyLenient
	}
}

// ResolvedSourceRoots returns SourceRoots joined against configDir
// (the directory containing the loaded .corerope.yml), as absolute paths.
func (c *Config) ResolvedSourceRoots(configDir string) []string {
	out := make([]string, len(c.SourceRoots))
	for i, root := range c.SourceRoots {
		if filepath.IsAbs(root) {
			out[i] = root
		} else {
			out[i] = filepath.Join(configDir, root)
		}
	}
	return out
}

// IsIgnoredFolder reports whether base (a folder's base name) matches one
// of IgnoredFolders' glob patterns. It does not decide dot-prefixed
// folders or compiled-artifact exclusion — that's unconditional, spec §6
// behavior owned by the workspace enumerator, not configurable here.
func (c *Config) IsIgnoredFolder(base string) bool {
	for _, pattern := range c.IgnoredFolders {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
