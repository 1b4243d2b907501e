package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClusterRule is one pattern/goal rule for the restructure refactoring,
// adapted from rope's restructure.py: Pattern is matched against the AST
// (refactor.PatternMatcher's wildcard syntax, e.g. "${obj}.get(${key},
// None)"), Goal is the textual replacement ("${obj}[${key}]" style), Args
// narrows a wildcard to a type hint (e.g. "obj: instance=mod.Dict"), and
// Imports lists import lines to add to any resource the rule rewrites.
type ClusterRule struct {
	Name    string            `yaml:"name"`
	Pattern string            `yaml:"pattern"`
	Goal    string            `yaml:"goal"`
	Args    map[string]string `yaml:"args,omitempty"`
	Imports []string          `yaml:"imports,omitempty"`
}

// ClustersFile is the top-level shape of a clusters file referenced by
// Config.ClustersFile.
type ClustersFile struct {
	Clusters []ClusterRule `yaml:"clusters"`
}

// LoadClusters reads and parses a clusters file.
func LoadClusters(path string) (*ClustersFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading clusters file %s: %w", path, err)
	}
	return ParseClusters(data, path)
}

// ParseClusters parses clusters file content from bytes. path is used
// only for error messages.
func ParseClusters(data []byte, path string) (*ClustersFile, error) {
	var cf ClustersFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing clusters file %s: %w", path, err)
	}
	if err := cf.validate(path); err != nil {
		return nil, err
	}
	return &cf, nil
}

func (cf *ClustersFile) validate(path string) error {
	seen := make(map[string]bool)
	for i, rule := range cf.Clusters {
		if rule.Name == "" {
			return fmt.Errorf("%s: clusters[%d]: name is required", path, i)
		}
		if seen[rule.Name] {
			return fmt.Errorf("%s: clusters[%d]: duplicate name %q", path, i, rule.Name)
		}
		seen[rule.Name] = true
		if rule.Pattern == "" {
			return fmt.Errorf("%s: clusters[%d] (%s): pattern is required", path, i, rule.Name)
		}
		if rule.Goal == "" {
			return fmt.Errorf("%s: clusters[%d] (%s): goal is required", path, i, rule.Name)
		}
	}
	return nil
}

// ByName returns the rule with the given name, or ok=false.
func (cf *ClustersFile) ByName(name string) (ClusterRule, bool) {
	for _, r := range cf.Clusters {
		if r.Name == name {
			return r, true
		}
	}
	return ClusterRule{}, false
}
