// Package catalog holds the per-procedure enumeration of controllable
// operating-room equipment. Catalogs are immutable for the lifetime of a
// session; everything downstream (reasoner, state store) treats them as
// read-only.
package catalog

import (
	"fmt"
	"strings"
)

// Machine is one controllable piece of equipment. Name is the canonical
// identifier used everywhere downstream; Aliases are the shorthands an
// operator might say instead.
type Machine struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Aliases     []string `yaml:"aliases" json:"aliases"`
}

// AliasKeys returns the lowercased canonical name followed by the
// lowercased aliases, in declaration order.
func (m Machine) AliasKeys() []string {
	keys := make([]string, 0, len(m.Aliases)+1)
	keys = append(keys, strings.ToLower(m.Name))
	for _, alias := range m.Aliases {
		keys = append(keys, strings.ToLower(alias))
	}
	return keys
}

// Catalog is an ordered set of machines for one procedure. Order is
// significant: it is the tie-break order for ambiguous name resolution.
type Catalog struct {
	Procedure string    `yaml:"procedure" json:"procedure"`
	Machines  []Machine `yaml:"machines" json:"machines"`
}

// Names returns the canonical machine names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c.Machines))
	for i, machine := range c.Machines {
		names[i] = machine.Name
	}
	return names
}

// Contains reports whether name is a canonical machine name in this catalog.
func (c Catalog) Contains(name string) bool {
	for _, machine := range c.Machines {
		if machine.Name == name {
			return true
		}
	}
	return false
}

// AliasIndex returns a lowercased alias -> canonical name map. Canonical
// names themselves are included as keys so exact-match lookups need only one
// map. When two machines share an alias the earlier machine wins, consistent
// with catalog-order tie-breaking.
func (c Catalog) AliasIndex() map[string]string {
	index := map[string]string{}
	for _, machine := range c.Machines {
		keys := append([]string{machine.Name}, machine.Aliases...)
		for _, key := range keys {
			key = strings.ToLower(key)
			if _, taken := index[key]; !taken {
				index[key] = machine.Name
			}
		}
	}
	return index
}

func (c Catalog) validate() error {
	if c.Procedure == "" {
		return fmt.Errorf("catalog has no procedure name")
	}
	if len(c.Machines) == 0 {
		return fmt.Errorf("catalog %q has no machines", c.Procedure)
	}

	seen := map[string]bool{}
	for _, machine := range c.Machines {
		if machine.Name == "" {
			return fmt.Errorf("catalog %q has a machine without a name", c.Procedure)
		}
		if seen[machine.Name] {
			return fmt.Errorf("catalog %q lists %q twice", c.Procedure, machine.Name)
		}
		seen[machine.Name] = true
	}
	return nil
}

// Get returns the built-in catalog for a procedure identifier.
func Get(procedure string) (Catalog, error) {
	for _, c := range builtin {
		if c.Procedure == procedure {
			return c, nil
		}
	}
	return Catalog{}, fmt.Errorf("unknown procedure: %q", procedure)
}

// Procedures lists the identifiers of all built-in catalogs.
func Procedures() []string {
	procedures := make([]string, len(builtin))
	for i, c := range builtin {
		procedures[i] = c.Procedure
	}
	return procedures
}
