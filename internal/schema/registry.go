// Package schema loads per-section document shapes from YAML and validates
// section data against them.
package schema

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Node types.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeAny     = "any"
)

// Node is a recursive shape description.
type Node struct {
	Type       string           `yaml:"type"`
	Required   []string         `yaml:"required,omitempty"`
	Properties map[string]*Node `yaml:"properties,omitempty"`
	Items      *Node            `yaml:"items,omitempty"`
	// Additional allows keys not listed in Properties. Defaults to true.
	Additional *bool `yaml:"additional,omitempty"`
}

func (n *Node) allowsAdditional() bool {
	return n.Additional == nil || *n.Additional
}

// Section is the registered shape for one section name.
type Section struct {
	// Localized documents are objects keyed by locale; each locale holds a
	// document matching Schema.
	Localized bool  `yaml:"localized"`
	Schema    *Node `yaml:"schema"`
}

type file struct {
	Sections map[string]Section `yaml:"sections"`
}

// Registry maps section names to their shapes. It is read-only after load.
type Registry struct {
	sections map[string]Section
}

// Empty returns a registry with no schemas; every section is free-form.
func Empty() *Registry {
	return &Registry{sections: map[string]Section{}}
}

// Load parses a registry document.
func Load(r io.Reader) (*Registry, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse schema registry: %w", err)
	}
	reg := Empty()
	for name, s := range f.Sections {
		if s.Schema == nil {
			s.Schema = &Node{Type: TypeAny}
		}
		if err := check(name, s.Schema); err != nil {
			return nil, err
		}
		reg.sections[name] = s
	}
	return reg, nil
}

// LoadDefault returns the embedded registry, with entries from overridePath
// (if non-empty) replacing the defaults of the same name.
func LoadDefault(overridePath string) (*Registry, error) {
	reg, err := Load(bytes.NewReader(defaultsYAML))
	if err != nil {
		return nil, err
	}
	if overridePath == "" {
		return reg, nil
	}
	f, err := os.Open(overridePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	over, err := Load(f)
	if err != nil {
		return nil, err
	}
	for name, s := range over.sections {
		reg.sections[name] = s
	}
	return reg, nil
}

func (r *Registry) Lookup(name string) (Section, bool) {
	s, ok := r.sections[name]
	return s, ok
}

// Names lists registered section names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.sections))
	for n := range r.sections {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func check(section string, n *Node) error {
	switch n.Type {
	case TypeObject:
		for k, p := range n.Properties {
			if p == nil {
				return fmt.Errorf("schema %s: property %q has no definition", section, k)
			}
			if err := check(section, p); err != nil {
				return err
			}
		}
	case TypeArray:
		if n.Items != nil {
			return check(section, n.Items)
		}
	case TypeString, TypeNumber, TypeBoolean, TypeAny:
	case "":
		n.Type = TypeAny
	default:
		return fmt.Errorf("schema %s: unknown type %q", section, n.Type)
	}
	return nil
}
