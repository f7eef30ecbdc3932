package emitter

import (
	"github.com/typeforge-platform/typeforge/internal/codegen/writer"
	"github.com/typeforge-platform/typeforge/internal/schema"
)

// Version is stamped into every generated document's identity header. The
// CLI overrides it with the build version at startup.
var Version = "dev"

// Language is the capability set every target backend implements. The
// pipeline is polymorphic over this interface: adding a target language
// means providing one new implementation, never touching the IR, orderer,
// propagator, or decomposer.
//
// A Language instance is scoped to a single generation run. It owns its own
// import registry and type-variable set, so independent runs for different
// targets can proceed in parallel without shared state.
type Language interface {
	// Language returns the backend's registry name (e.g. "python").
	Language() string

	// FileExtension returns the extension for generated artifacts (".py").
	FileExtension() string

	// TypeMap returns the base-name substitution table applied before any
	// other resolution of Simple or Generic names.
	TypeMap() map[string]string

	// BeginFile writes the generator-identity header.
	BeginFile(w *writer.Writer, data *schema.ParsedData)

	// FormatSimpleType resolves a bare name, registering any import the
	// name requires.
	FormatSimpleType(name string, generics []string) (string, error)

	// FormatGenericType resolves a parameterized name.
	FormatGenericType(name string, params []schema.TypeRef, generics []string) (string, error)

	// FormatSpecialType resolves a built-in container or primitive.
	FormatSpecialType(ref *schema.SpecialRef, generics []string) (string, error)

	// WriteStruct emits one named record declaration.
	WriteStruct(w *writer.Writer, s *schema.Struct) error

	// WriteEnum emits one enum declaration, decomposing algebraic enums
	// into the target's representation.
	WriteEnum(w *writer.Writer, e *schema.Enum) error

	// WriteTypeAlias emits one name-to-type binding.
	WriteTypeAlias(w *writer.Writer, a *schema.TypeAlias) error

	// WriteImports flushes the accumulated import block (and any type
	// variable declarations the target needs), sorted and deduplicated.
	// Called exactly once per run, after every declaration has been
	// formatted.
	WriteImports(w *writer.Writer) error
}

// Options carries common settings the driver can hand to a backend factory.
type Options struct {
	// TypeMappings extends the backend's base-name substitution table.
	TypeMappings map[string]string

	// IncludeComments controls whether schema comments are carried into
	// the generated document.
	IncludeComments bool
}
