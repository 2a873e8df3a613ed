// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package objects

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

// indentUnit is the per-level indentation of nested values.
const indentUnit = "    "

// maxDepth caps nesting. Deeper values render as "...".
const maxDepth = 32

// cycleMarker replaces a container that already encloses itself.
const cycleMarker = "<cycle>"

// Format renders a value as nested text. Mappings render key-by-key with
// aligned keys, sequences element-by-element, both with recursive
// indentation. Struct fields render like mapping keys. Self-referencing
// maps, slices and pointers render their repeat as "<cycle>".
func Format(v any) string {
	p := printer{active: make(map[visitKey]bool)}
	p.value(reflect.ValueOf(v), 0)
	return p.b.String()
}

// Render writes Format(v) followed by a newline.
func Render(w io.Writer, v any) error {
	_, err := io.WriteString(w, Format(v)+"\n")
	return err
}

// RenderEntries writes each entry as "category/name = value".
func RenderEntries(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s = %s\n", e.Key(), Format(e.Value)); err != nil {
			return err
		}
	}
	return nil
}

// visitKey identifies a reference-typed container on the current path.
type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

type printer struct {
	b strings.Builder

	// active holds the containers enclosing the value being printed.
	// Shared but acyclic references are printed in full each time.
	active map[visitKey]bool
}

// enter marks v as being printed. It returns false if v already encloses
// the current position.
func (p *printer) enter(v reflect.Value) (leave func(), ok bool) {
	key := visitKey{ptr: v.Pointer(), typ: v.Type()}
	if key.ptr == 0 {
		return func() {}, true
	}
	if p.active[key] {
		return nil, false
	}
	p.active[key] = true
	return func() { delete(p.active, key) }, true
}

func (p *printer) value(v reflect.Value, depth int) {
	if !v.IsValid() {
		p.b.WriteString("null")
		return
	}

	if s, ok := asStringer(v); ok {
		p.b.WriteString(s)
		return
	}

	if depth > maxDepth {
		p.b.WriteString("...")
		return
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			p.b.WriteString("null")
			return
		}
		p.value(v.Elem(), depth)

	case reflect.Pointer:
		if v.IsNil() {
			p.b.WriteString("null")
			return
		}
		leave, ok := p.enter(v)
		if !ok {
			p.b.WriteString(cycleMarker)
			return
		}
		defer leave()
		p.value(v.Elem(), depth)

	case reflect.Map:
		leave, ok := p.enter(v)
		if !ok {
			p.b.WriteString(cycleMarker)
			return
		}
		defer leave()

		keys := v.MapKeys()
		labels := make([]string, len(keys))
		for i, k := range keys {
			labels[i] = fmt.Sprint(k.Interface())
		}
		order := make([]int, len(keys))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, c int) bool { return labels[order[a]] < labels[order[c]] })

		fields := make([]field, len(order))
		for i, idx := range order {
			fields[i] = field{label: labels[idx], value: v.MapIndex(keys[idx])}
		}
		p.fields(fields, depth)

	case reflect.Struct:
		t := v.Type()
		var fields []field
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			fields = append(fields, field{label: fieldLabel(sf), value: v.Field(i)})
		}
		p.fields(fields, depth)

	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			p.b.WriteString("[]")
			return
		}
		if v.Kind() == reflect.Slice {
			leave, ok := p.enter(v)
			if !ok {
				p.b.WriteString(cycleMarker)
				return
			}
			defer leave()
		}
		inner := strings.Repeat(indentUnit, depth+1)
		p.b.WriteString("[\n")
		for i := 0; i < v.Len(); i++ {
			p.b.WriteString(inner)
			p.value(v.Index(i), depth+1)
			if i < v.Len()-1 {
				p.b.WriteString(",")
			}
			p.b.WriteString("\n")
		}
		p.b.WriteString(strings.Repeat(indentUnit, depth))
		p.b.WriteString("]")

	default:
		fmt.Fprint(&p.b, v.Interface())
	}
}

type field struct {
	label string
	value reflect.Value
}

func (p *printer) fields(fields []field, depth int) {
	if len(fields) == 0 {
		p.b.WriteString("{}")
		return
	}
	width := 0
	for _, f := range fields {
		if w := runewidth.StringWidth(f.label); w > width {
			width = w
		}
	}
	inner := strings.Repeat(indentUnit, depth+1)
	p.b.WriteString("{\n")
	for _, f := range fields {
		p.b.WriteString(inner)
		p.b.WriteString(runewidth.FillRight(f.label, width))
		p.b.WriteString(" : ")
		p.value(f.value, depth+1)
		p.b.WriteString("\n")
	}
	p.b.WriteString(strings.Repeat(indentUnit, depth))
	p.b.WriteString("}")
}

func fieldLabel(sf reflect.StructField) string {
	if tag, ok := sf.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}

func asStringer(v reflect.Value) (string, bool) {
	if !v.CanInterface() {
		return "", false
	}
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return "", false
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String(), true
	}
	return "", false
}

// Layout maps each exported field of a struct to its Go type, using the
// same labels Format does. Non-struct values yield an empty map.
func Layout(v any) map[string]string {
	out := make(map[string]string)
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		out[fieldLabel(sf)] = sf.Type.String()
	}
	return out
}
