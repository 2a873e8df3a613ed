// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// objects.go - The statically declared object registry for a chat session.
package cli

import (
	"time"

	"github.com/jeranaias/gemchat/internal/commands"
	"github.com/jeranaias/gemchat/internal/config"
	"github.com/jeranaias/gemchat/internal/gemini"
	"github.com/jeranaias/gemchat/internal/objects"
	"github.com/jeranaias/gemchat/internal/session"
)

// genaiPackage is reported by module/genai.
const genaiPackage = "google.golang.org/genai"

// ModelInfo describes the configured model.
type ModelInfo interface {
	Name() string
	Backend() string
}

// UsageReporter reports request counters for the running session.
type UsageReporter interface {
	Usage() gemini.Usage
}

// Namespace is the exec namespace as seen by the registry.
type Namespace interface {
	Snapshot() map[string]any
	Reset() []string
}

// RegistrySources is everything the registry exposes. Accessors read the
// live values on every lookup, so later mutation is always visible.
type RegistrySources struct {
	Config    *config.Config
	History   *session.History
	Info      *session.Info
	Model     ModelInfo
	Usage     UsageReporter
	Namespace Namespace
	Catalog   *commands.Catalog
}

// PopulateRegistry declares every session object in reg. A nil source
// leaves its entries out.
func PopulateRegistry(reg *objects.Registry, src RegistrySources) {
	// list
	if src.History != nil {
		reg.MustRegisterWritable(objects.CategoryList, "history",
			func() any { return src.History.Turns() },
			objects.Writable{
				Mutability: objects.Clearable,
				Clear:      func() any { return src.History.Clear() },
				Deferred:   objects.TruncateExternalHistory,
			})
	}
	if src.Catalog != nil {
		reg.MustRegisterWritable(objects.CategoryList, "options",
			func() any { return src.Catalog.Names() },
			objects.Writable{Mutability: objects.AppendOnly})
	}
	if src.Config != nil {
		reg.MustRegister(objects.CategoryList, "safety_settings",
			func() any { return src.Config.Safety })
	}

	// dict
	if src.Catalog != nil {
		reg.MustRegister(objects.CategoryDict, "options_info",
			func() any { return src.Catalog.Descriptions() })
	}
	if src.Config != nil {
		reg.MustRegister(objects.CategoryDict, "generation_config",
			func() any { return src.Config.Generation })
	}

	// module
	if src.Model != nil {
		reg.MustRegister(objects.CategoryModule, "genai", func() any {
			return map[string]string{
				"package": genaiPackage,
				"model":   src.Model.Name(),
				"backend": src.Model.Backend(),
			}
		})
	}

	// function
	if src.Catalog != nil {
		for _, d := range src.Catalog.Descriptors() {
			reg.MustRegister(objects.CategoryFunction, d.Name,
				func() any { return d.View() })
		}
	}

	// class
	reg.MustRegister(objects.CategoryClass, "Turn",
		func() any { return objects.Layout(session.Turn{}) })
	reg.MustRegister(objects.CategoryClass, "Descriptor",
		func() any { return objects.Layout(commands.DescriptorView{}) })

	// local
	if src.Namespace != nil {
		reg.MustRegisterWritable(objects.CategoryLocal, "namespace",
			func() any { return src.Namespace.Snapshot() },
			objects.Writable{
				Mutability: objects.Clearable,
				Clear: func() any {
					before := src.Namespace.Snapshot()
					src.Namespace.Reset()
					return before
				},
			})
	}

	// global
	if src.Info != nil {
		reg.MustRegister(objects.CategoryGlobal, "user_name",
			func() any { return src.Info.UserName })
		reg.MustRegister(objects.CategoryGlobal, "session_id",
			func() any { return src.Info.ID })
		reg.MustRegister(objects.CategoryGlobal, "started_at",
			func() any { return src.Info.StartedAt.Format(time.RFC3339) })
	}
	if src.Model != nil {
		reg.MustRegister(objects.CategoryGlobal, "model",
			func() any { return src.Model.Name() })
	}
	if src.Usage != nil {
		reg.MustRegister(objects.CategoryGlobal, "usage",
			func() any { return src.Usage.Usage() })
	}
}
