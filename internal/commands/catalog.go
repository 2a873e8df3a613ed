// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"
)

// Prefix marks a line as a command.
const Prefix = "/"

// =============================================================================
// COMMAND DESCRIPTOR
// =============================================================================

// Descriptor binds a command name to its handler and argument shape.
// Descriptors are not modified after they are added to a Catalog.
type Descriptor struct {
	// Name is the command name without the prefix (e.g., "get")
	Name string

	// Description is the one-line summary shown by /info
	Description string

	// Shape declares the arguments and carries the handler
	Shape Shape

	// Returns describes what the handler produces
	Returns string

	// Examples are complete invocations, prefix included
	Examples []string
}

// Command returns the prefixed name (e.g., "/get").
func (d *Descriptor) Command() string {
	return Prefix + d.Name
}

// Usage returns the argument syntax.
func (d *Descriptor) Usage() string {
	switch s := d.Shape.(type) {
	case SingleString:
		if s.Optional {
			return fmt.Sprintf("%s [%s]", d.Command(), s.Name)
		}
		return fmt.Sprintf("%s <%s>", d.Command(), s.Name)
	case StringPair:
		if s.AllowNone {
			return fmt.Sprintf("%s [<%s> <%s>]", d.Command(), s.First, s.Second)
		}
		return fmt.Sprintf("%s <%s> <%s>", d.Command(), s.First, s.Second)
	default:
		return d.Command()
	}
}

// DescriptorView is the printable form of a Descriptor.
type DescriptorView struct {
	Name     string   `json:"name"`
	Usage    string   `json:"usage"`
	Shape    string   `json:"shape"`
	Returns  string   `json:"returns"`
	Examples []string `json:"examples"`
}

// View returns the printable form of the descriptor.
func (d *Descriptor) View() DescriptorView {
	return DescriptorView{
		Name:     d.Name,
		Usage:    d.Usage(),
		Shape:    d.Shape.Kind(),
		Returns:  d.Returns,
		Examples: append([]string(nil), d.Examples...),
	}
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog holds the commands in declared order. It only grows.
type Catalog struct {
	order  []*Descriptor
	byName map[string]*Descriptor
}

// NewCatalog creates a catalog with the built-in commands bound to env.
func NewCatalog(env *Env) *Catalog {
	c := &Catalog{byName: make(map[string]*Descriptor)}
	env.bind(c)
	for _, d := range builtins(env) {
		if err := c.Add(d); err != nil {
			panic(err)
		}
	}
	return c
}

// Add appends a command. Names must be unique.
func (c *Catalog) Add(d *Descriptor) error {
	name := strings.TrimPrefix(d.Name, Prefix)
	if name == "" {
		return fmt.Errorf("command name must not be empty")
	}
	if d.Shape == nil {
		return fmt.Errorf("command %s: shape must not be nil", name)
	}
	if _, dup := c.byName[name]; dup {
		return fmt.Errorf("command %s already registered", name)
	}
	d.Name = name
	c.order = append(c.order, d)
	c.byName[name] = d
	return nil
}

// Lookup finds a command by name, with or without the prefix.
func (c *Catalog) Lookup(name string) (*Descriptor, bool) {
	d, ok := c.byName[strings.TrimPrefix(name, Prefix)]
	return d, ok
}

// Names returns the prefixed command names in declared order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	for i, d := range c.order {
		names[i] = d.Command()
	}
	return names
}

// Descriptors returns the descriptors in declared order.
func (c *Catalog) Descriptors() []*Descriptor {
	return append([]*Descriptor(nil), c.order...)
}

// Descriptions maps each command name to its one-line description.
func (c *Catalog) Descriptions() map[string]string {
	out := make(map[string]string, len(c.order))
	for _, d := range c.order {
		out[d.Name] = d.Description
	}
	return out
}
