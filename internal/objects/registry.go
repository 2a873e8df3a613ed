// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package objects provides the registry of in-process values exposed to the
// introspection commands.
package objects

import (
	"errors"
	"fmt"
)

// =============================================================================
// CATEGORIES
// =============================================================================

// Category groups registry entries.
type Category string

const (
	CategoryList     Category = "list"
	CategoryDict     Category = "dict"
	CategoryModule   Category = "module"
	CategoryFunction Category = "function"
	CategoryClass    Category = "class"
	CategoryLocal    Category = "local"
	CategoryGlobal   Category = "global"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryList,
	CategoryDict,
	CategoryModule,
	CategoryFunction,
	CategoryClass,
	CategoryLocal,
	CategoryGlobal,
}

// Wildcard matches every category or every name.
const Wildcard = "*"

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when no entry matches a lookup.
	ErrNotFound = errors.New("not found")

	// ErrNotClearable is returned when a matched entry rejects clearing.
	ErrNotClearable = errors.New("not clearable")
)

// EntryError reports a registry failure for a (category, name) selector.
type EntryError struct {
	Category string
	Name     string
	Reason   string
	Err      error
}

func (e *EntryError) Error() string {
	msg := fmt.Sprintf("%s/%s: %v", e.Category, e.Name, e.Err)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ENTRY TYPES
// =============================================================================

// Accessor returns the current value of an entry.
type Accessor func() any

// Entry is one resolved registry value.
type Entry struct {
	Category Category
	Name     string
	Value    any
}

// Key returns "category/name".
func (e Entry) Key() string {
	return string(e.Category) + "/" + e.Name
}

// Mutability says whether a writable entry may be cleared.
type Mutability int

const (
	// Clearable entries may be emptied by Clear.
	Clearable Mutability = iota
	// AppendOnly entries may grow but are never cleared.
	AppendOnly
)

func (m Mutability) String() string {
	switch m {
	case Clearable:
		return "clearable"
	case AppendOnly:
		return "append-only"
	default:
		return "unknown"
	}
}

// DeferredAction is a side effect a handler asks the dispatcher to apply
// against the live session after the handler returns.
type DeferredAction int

const (
	// DeferredNone requests nothing.
	DeferredNone DeferredAction = iota
	// TruncateExternalHistory empties the model session's view of the
	// conversation so it stays in sync with the local history.
	TruncateExternalHistory
)

func (a DeferredAction) String() string {
	switch a {
	case DeferredNone:
		return ""
	case TruncateExternalHistory:
		return "truncate-external-history"
	default:
		return fmt.Sprintf("deferred(%d)", int(a))
	}
}

// Writable describes the write side of an entry.
type Writable struct {
	Mutability Mutability

	// Clear empties the value and returns what it held before.
	// Unused for AppendOnly entries.
	Clear func() any

	// Deferred is requested whenever this entry is cleared.
	Deferred DeferredAction
}

// ClearResult is the outcome of a successful Clear.
type ClearResult struct {
	Cleared  []Entry
	Deferred []DeferredAction
}

// =============================================================================
// REGISTRY
// =============================================================================

type table[T any] struct {
	names  []string
	values map[string]T
}

func (t *table[T]) put(name string, v T) {
	if _, ok := t.values[name]; !ok {
		t.names = append(t.names, name)
	}
	t.values[name] = v
}

// Registry is the statically declared catalog of readable and writable
// values. The read table and the write table are kept separate.
type Registry struct {
	read  map[Category]*table[Accessor]
	write map[Category]*table[Writable]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{
		read:  make(map[Category]*table[Accessor]),
		write: make(map[Category]*table[Writable]),
	}
	for _, c := range Categories {
		r.read[c] = &table[Accessor]{values: make(map[string]Accessor)}
		r.write[c] = &table[Writable]{values: make(map[string]Writable)}
	}
	return r
}

// Register adds a read-only entry.
func (r *Registry) Register(cat Category, name string, get Accessor) error {
	if err := r.checkKey(cat, name); err != nil {
		return err
	}
	if get == nil {
		return fmt.Errorf("objects: %s/%s: nil accessor", cat, name)
	}
	r.read[cat].put(name, get)
	return nil
}

// RegisterWritable adds an entry that appears in both tables.
func (r *Registry) RegisterWritable(cat Category, name string, get Accessor, w Writable) error {
	if w.Mutability == Clearable && w.Clear == nil {
		return fmt.Errorf("objects: %s/%s: clearable entry needs a Clear func", cat, name)
	}
	if err := r.Register(cat, name, get); err != nil {
		return err
	}
	r.write[cat].put(name, w)
	return nil
}

// MustRegister is Register for static startup tables.
func (r *Registry) MustRegister(cat Category, name string, get Accessor) {
	if err := r.Register(cat, name, get); err != nil {
		panic(err)
	}
}

// MustRegisterWritable is RegisterWritable for static startup tables.
func (r *Registry) MustRegisterWritable(cat Category, name string, get Accessor, w Writable) {
	if err := r.RegisterWritable(cat, name, get, w); err != nil {
		panic(err)
	}
}

func (r *Registry) checkKey(cat Category, name string) error {
	if _, ok := r.read[cat]; !ok {
		return fmt.Errorf("objects: unknown category %q", cat)
	}
	if name == "" || name == Wildcard {
		return fmt.Errorf("objects: invalid entry name %q", name)
	}
	return nil
}

// selectCategories resolves the category part of a selector.
func (r *Registry) selectCategories(category string) []Category {
	if category == Wildcard {
		return Categories
	}
	c := Category(category)
	if _, ok := r.read[c]; !ok {
		return nil
	}
	return []Category{c}
}

// selectNames resolves the name part of a selector within one category.
func (r *Registry) selectNames(cat Category, name string) []string {
	t := r.read[cat]
	if name == Wildcard {
		return t.names
	}
	if _, ok := t.values[name]; ok {
		return []string{name}
	}
	return nil
}

// Lookup returns every entry matching the selector. Either part may be the
// wildcard; "*" "*" returns the whole registry.
func (r *Registry) Lookup(category, name string) ([]Entry, error) {
	var out []Entry
	for _, cat := range r.selectCategories(category) {
		for _, n := range r.selectNames(cat, name) {
			out = append(out, Entry{
				Category: cat,
				Name:     n,
				Value:    r.read[cat].values[n](),
			})
		}
	}
	if len(out) == 0 {
		return nil, &EntryError{Category: category, Name: name, Err: ErrNotFound}
	}
	return out, nil
}

// Clear empties every clearable entry matching the selector.
//
// A single non-clearable match yields ErrNotClearable and leaves the value
// untouched. Wildcard selectors skip non-clearable matches and only fail if
// nothing could be cleared.
func (r *Registry) Clear(category, name string) (ClearResult, error) {
	var (
		result   ClearResult
		matched  int
		rejected *EntryError
		seen     = make(map[DeferredAction]bool)
	)

	for _, cat := range r.selectCategories(category) {
		for _, n := range r.selectNames(cat, name) {
			matched++
			w, ok := r.write[cat].values[n]
			if !ok {
				rejected = &EntryError{Category: string(cat), Name: n, Reason: "read-only", Err: ErrNotClearable}
				continue
			}
			if w.Mutability != Clearable {
				rejected = &EntryError{Category: string(cat), Name: n, Reason: w.Mutability.String(), Err: ErrNotClearable}
				continue
			}
			result.Cleared = append(result.Cleared, Entry{Category: cat, Name: n, Value: w.Clear()})
			if w.Deferred != DeferredNone && !seen[w.Deferred] {
				seen[w.Deferred] = true
				result.Deferred = append(result.Deferred, w.Deferred)
			}
		}
	}

	switch {
	case matched == 0:
		return ClearResult{}, &EntryError{Category: category, Name: name, Err: ErrNotFound}
	case len(result.Cleared) == 0:
		if matched > 1 {
			return ClearResult{}, &EntryError{Category: category, Name: name, Reason: "no clearable entries matched", Err: ErrNotClearable}
		}
		return ClearResult{}, rejected
	}
	return result, nil
}

// Counts returns the number of readable entries per category.
func (r *Registry) Counts() map[Category]int {
	out := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		out[c] = len(r.read[c].names)
	}
	return out
}

// Size returns the total number of readable entries.
func (r *Registry) Size() int {
	n := 0
	for _, c := range Categories {
		n += len(r.read[c].names)
	}
	return n
}

// Mutability reports the write-side flag of an entry. The second result is
// false for read-only or unknown entries.
func (r *Registry) Mutability(cat Category, name string) (Mutability, bool) {
	t, ok := r.write[cat]
	if !ok {
		return 0, false
	}
	w, ok := t.values[name]
	return w.Mutability, ok
}
