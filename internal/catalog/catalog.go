// Package catalog loads and applies the file type catalog, the ordered
// set of rules mapping data file names to ARES import subdirectories.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates the catalog file exists but its contents are unusable.
// Use errors.Is() to check for it in calling code.
var ErrInvalid = errors.New("invalid type catalog")

// Rule maps a file name pattern to an import subdirectory. Patterns are
// matched against base names, anchored at the start of the name.
type Rule struct {
	Type    string `yaml:"type" json:"type"`
	Pattern string `yaml:"pattern" json:"pattern"`
	Dir     string `yaml:"dir" json:"dir"`

	re *regexp.Regexp
}

// Catalog is an ordered rule list. List order is the match priority: the
// first rule whose pattern matches wins.
type Catalog struct {
	rules []Rule
}

// Load reads a catalog from a YAML or JSON file, selected by extension.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read type catalog: %w", err)
	}

	var rules []Rule
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s must be a yaml or json file", ErrInvalid, path)
	}

	return New(rules)
}

// New validates a rule list and compiles its patterns into a catalog.
func New(rules []Rule) (*Catalog, error) {
	seen := make(map[string]struct{}, len(rules))
	for i := range rules {
		r := &rules[i]
		if r.Type == "" {
			return nil, fmt.Errorf("%w: rule %d has no type name", ErrInvalid, i+1)
		}
		if _, dup := seen[r.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate type %q", ErrInvalid, r.Type)
		}
		seen[r.Type] = struct{}{}

		if r.Pattern == "" {
			return nil, fmt.Errorf("%w: type %q has no pattern", ErrInvalid, r.Type)
		}
		if r.Dir == "" {
			return nil, fmt.Errorf("%w: type %q has no destination dir", ErrInvalid, r.Type)
		}
		if filepath.IsAbs(r.Dir) {
			return nil, fmt.Errorf("%w: type %q: dir %q must be relative", ErrInvalid, r.Type, r.Dir)
		}

		re, err := regexp.Compile("^(?:" + r.Pattern + ")")
		if err != nil {
			return nil, fmt.Errorf("%w: type %q: bad pattern: %v", ErrInvalid, r.Type, err)
		}
		r.re = re
	}
	return &Catalog{rules: rules}, nil
}

// Rules returns the rules in priority order.
func (c *Catalog) Rules() []Rule {
	return c.rules
}

// Len returns the number of rules.
func (c *Catalog) Len() int {
	return len(c.rules)
}

// Classify returns the first rule whose pattern matches the file's base
// name. ok is false when no rule matches; that is a per-file skip for the
// caller, not an error.
func (c *Catalog) Classify(baseName string) (Rule, bool) {
	for _, r := range c.rules {
		if r.re.MatchString(baseName) {
			return r, true
		}
	}
	return Rule{}, false
}

// Lookup returns the rule registered under a type name.
func (c *Catalog) Lookup(typeName string) (Rule, bool) {
	for _, r := range c.rules {
		if r.Type == typeName {
			return r, true
		}
	}
	return Rule{}, false
}
