// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package jsexec provides the persistent JavaScript namespace behind the
// /exec command.
//
// WARNING: this is an unrestricted escape hatch. Code runs in-process with
// no sandbox, no resource limits and full access to everything exposed to
// the runtime. It exists for power users and must never be reachable from
// model output.
package jsexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dop251/goja"
)

// Namespace is a goja runtime whose globals persist across evaluations.
type Namespace struct {
	vm       *goja.Runtime
	out      io.Writer
	baseline map[string]bool
}

// New creates a namespace that prints to out.
func New(out io.Writer) *Namespace {
	ns := &Namespace{out: out}
	ns.init()
	return ns
}

func (ns *Namespace) init() {
	ns.vm = goja.New()
	ns.setupGlobals()

	// Everything present now is built in; Names reports only what the user
	// defines afterwards.
	ns.baseline = make(map[string]bool)
	for _, k := range ns.globalNames() {
		ns.baseline[k] = true
	}
}

func (ns *Namespace) setupGlobals() {
	printFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, a := range call.Arguments {
			parts[i] = a.String()
		}
		fmt.Fprintln(ns.out, strings.Join(parts, " "))
		return goja.Undefined()
	}
	ns.vm.Set("print", printFn)

	console := ns.vm.NewObject()
	_ = console.Set("log", printFn)
	_ = console.Set("error", printFn)
	ns.vm.Set("console", console)
}

// Eval runs src in the namespace. The value of the final expression is
// returned unless it is undefined.
//
// Cancelling ctx interrupts the script; the namespace stays usable and
// keeps every global defined before the interrupt.
func (ns *Namespace) Eval(ctx context.Context, src string) (result string, hasResult bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("exec panicked: %v", r)
		}
	}()

	vm := ns.vm
	done := make(chan struct{})
	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		select {
		case <-ctx.Done():
			// Safe to call from another goroutine.
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	v, err := vm.RunString(src)
	close(done)
	<-watcherDone
	// An interrupt that lands after RunString returned must not leak into
	// the next evaluation.
	vm.ClearInterrupt()

	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) && ctx.Err() != nil {
			return "", false, fmt.Errorf("exec interrupted: %w", ctx.Err())
		}
		return "", false, fmt.Errorf("exec: %w", err)
	}
	if v == nil || goja.IsUndefined(v) {
		return "", false, nil
	}
	return v.String(), true, nil
}

// Names lists the globals defined by user code, sorted.
func (ns *Namespace) Names() []string {
	var out []string
	for _, k := range ns.globalNames() {
		if !ns.baseline[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot returns the exported values of the user-defined globals.
func (ns *Namespace) Snapshot() map[string]any {
	out := make(map[string]any)
	global := ns.vm.GlobalObject()
	for _, k := range ns.Names() {
		v := global.Get(k)
		if v == nil {
			continue
		}
		if _, isFn := goja.AssertFunction(v); isFn {
			out[k] = "function"
			continue
		}
		out[k] = v.Export()
	}
	return out
}

// Reset discards the runtime and every user-defined global. It returns the
// names that were dropped.
func (ns *Namespace) Reset() []string {
	dropped := ns.Names()
	ns.init()
	return dropped
}

func (ns *Namespace) globalNames() []string {
	return ns.vm.GlobalObject().Keys()
}
