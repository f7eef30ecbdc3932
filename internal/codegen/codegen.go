// Package codegen assembles generated documents: it owns the backend
// registry and the pipeline that drives a backend through one run. The
// backend contract itself lives in the emitter subpackage so concrete
// backends can depend on it without importing the registry.
package codegen

import "github.com/typeforge-platform/typeforge/internal/codegen/emitter"

// Language is the backend capability set. See emitter.Language.
type Language = emitter.Language

// Options carries common backend settings. See emitter.Options.
type Options = emitter.Options
