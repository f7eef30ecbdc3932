package codegen

import (
	"fmt"
	"sort"
)

// Factory builds a fresh backend instance for one generation run.
type Factory func(opts Options) Language

// Registry manages the available target-language backends.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a backend factory under a language name.
func (r *Registry) Register(language string, factory Factory) {
	r.factories[language] = factory
}

// Get returns a fresh backend for the given language. Every call produces a
// new instance so concurrent runs never share import state.
func (r *Registry) Get(language string, opts Options) (Language, error) {
	factory, ok := r.factories[language]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}
	return factory(opts), nil
}

// Languages returns the registered language names, sorted.
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.factories))
	for lang := range r.factories {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
