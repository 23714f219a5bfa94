// Package taxonomy provides the curated classification suggestion list.
// Suggestions exist purely for input convenience; classification is
// free-form and nothing here constrains what the backend stores.
package taxonomy

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaults mirrors the list users see when no suggestions file is
// configured.
var defaults = []string{
	"Quick Commerce",
	"Ecommerce",
	"Subscriptions",
	"Public Transport",
	"Office Lunch",
	"Grocery",
	"Eating Out",
	"Personal Transfer",
	"Fuel",
	"Personal Contact",
	"Entertainment",
	"Healthcare",
	"Shopping",
	"Utilities",
	"Other",
}

// Suggestions is an ordered classification suggestion list.
type Suggestions struct {
	names []string
}

type suggestionsFile struct {
	Classifications []string `yaml:"classifications"`
}

// Default returns the built-in suggestion list.
func Default() *Suggestions {
	names := make([]string, len(defaults))
	copy(names, defaults)
	return &Suggestions{names: names}
}

// LoadFile reads a YAML suggestions file of the form:
//
//	classifications:
//	  - Grocery
//	  - Fuel
//
// Blank entries are dropped; an empty list is an error so a bad file cannot
// silently wipe the suggestions.
func LoadFile(path string) (*Suggestions, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suggestions file: %w", err)
	}
	var f suggestionsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse suggestions file %s: %w", path, err)
	}

	var names []string
	for _, n := range f.Classifications {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("suggestions file %s contains no classifications", path)
	}
	return &Suggestions{names: names}, nil
}

// Names returns the suggestion list in order.
func (s *Suggestions) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Match returns the suggestions containing the input, case-insensitively.
// A blank input returns the whole list.
func (s *Suggestions) Match(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return s.Names()
	}
	needle := strings.ToLower(input)
	var matches []string
	for _, n := range s.names {
		if strings.Contains(strings.ToLower(n), needle) {
			matches = append(matches, n)
		}
	}
	return matches
}

// IsCustom reports whether the input names a classification outside the
// suggestion list. Custom values are perfectly valid; callers only use this
// to label them.
func (s *Suggestions) IsCustom(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	for _, n := range s.names {
		if strings.EqualFold(n, input) {
			return false
		}
	}
	return true
}

// Merged returns the suggestions plus any extra names, deduplicated
// case-insensitively and with the extras sorted after the curated list.
// Sessions use this to offer classifications seen in live data.
func (s *Suggestions) Merged(extra []string) []string {
	out := s.Names()
	seen := make(map[string]bool, len(out))
	for _, n := range out {
		seen[strings.ToLower(n)] = true
	}
	var added []string
	for _, n := range extra {
		n = strings.TrimSpace(n)
		if n == "" || seen[strings.ToLower(n)] {
			continue
		}
		seen[strings.ToLower(n)] = true
		added = append(added, n)
	}
	sort.Strings(added)
	return append(out, added...)
}
