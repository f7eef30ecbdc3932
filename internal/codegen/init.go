package codegen

import (
	"github.com/typeforge-platform/typeforge/internal/codegen/python"
	"github.com/typeforge-platform/typeforge/internal/codegen/typescript"
)

// DefaultRegistry holds the built-in backends.
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register("python", func(opts Options) Language {
		return python.NewGenerator(opts)
	})

	// py as an alias for python
	DefaultRegistry.Register("py", func(opts Options) Language {
		return python.NewGenerator(opts)
	})

	DefaultRegistry.Register("typescript", func(opts Options) Language {
		return typescript.NewGenerator(opts)
	})

	// ts as an alias for typescript
	DefaultRegistry.Register("ts", func(opts Options) Language {
		return typescript.NewGenerator(opts)
	})
}
