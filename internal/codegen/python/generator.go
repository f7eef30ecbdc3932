package python

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/typeforge-platform/typeforge/internal/codegen/emitter"
	"github.com/typeforge-platform/typeforge/internal/codegen/writer"
	"github.com/typeforge-platform/typeforge/internal/schema"
)

// Generator emits runtime-validated pydantic record classes. Structs become
// BaseModel subclasses (GenericModel when parameterized), unit enums become
// Literal unions, and algebraic enums are decomposed into a kind enumeration,
// per-variant payload classes, and a wrapper class holding the tag and a
// Union over the payloads.
type Generator struct {
	typeMappings    includeMap
	imports         *emitter.ImportMap
	typeVars        map[string]struct{}
	includeComments bool
}

type includeMap = map[string]string

// defaultTypeMappings substitutes well-known base names before ordinary
// resolution.
var defaultTypeMappings = includeMap{
	"DateTime": "datetime",
	"Url":      "AnyUrl",
}

// requiredImports is the fixed base-name→import table consulted every time a
// simple or generic base name is resolved.
var requiredImports = map[string][2]string{
	"DateTime": {"datetime", "datetime"},
	"Url":      {"pydantic.networks", "AnyUrl"},
}

// NewGenerator creates a fresh backend instance for one generation run.
func NewGenerator(opts emitter.Options) *Generator {
	mappings := make(includeMap, len(defaultTypeMappings)+len(opts.TypeMappings))
	for k, v := range defaultTypeMappings {
		mappings[k] = v
	}
	for k, v := range opts.TypeMappings {
		mappings[k] = v
	}
	return &Generator{
		typeMappings:    mappings,
		imports:         emitter.NewImportMap(),
		typeVars:        make(map[string]struct{}),
		includeComments: opts.IncludeComments,
	}
}

// Language returns the name of the target language.
func (g *Generator) Language() string {
	return "python"
}

// FileExtension returns the file extension for generated artifacts.
func (g *Generator) FileExtension() string {
	return ".py"
}

// TypeMap returns the base-name substitution table.
func (g *Generator) TypeMap() map[string]string {
	return g.typeMappings
}

// BeginFile writes the generator-identity header.
func (g *Generator) BeginFile(w *writer.Writer, _ *schema.ParsedData) {
	w.Line(`"""`)
	w.Linef(" Generated by typeforge %s", emitter.Version)
	w.Line(`"""`)
}

// FormatSimpleType resolves a bare name, registering any import the name
// requires. The name may be a declared type, a generic parameter in scope,
// or a mapped base name.
func (g *Generator) FormatSimpleType(name string, _ []string) (string, error) {
	g.registerBaseImports(name)
	if mapped, ok := g.typeMappings[name]; ok {
		return mapped, nil
	}
	return name, nil
}

// FormatGenericType resolves a parameterized name. Mapped base names swallow
// their parameters; everything else renders as Base[P1, P2].
func (g *Generator) FormatGenericType(name string, params []schema.TypeRef, generics []string) (string, error) {
	if mapped, ok := g.typeMappings[name]; ok {
		g.registerBaseImports(name)
		return mapped, nil
	}

	base, err := g.FormatSimpleType(name, generics)
	if err != nil {
		return "", err
	}
	if len(params) == 0 {
		return base, nil
	}

	formatted := make([]string, 0, len(params))
	for _, p := range params {
		s, err := emitter.FormatType(g, p, generics)
		if err != nil {
			return "", err
		}
		formatted = append(formatted, s)
	}
	return fmt.Sprintf("%s[%s]", base, strings.Join(formatted, ", ")), nil
}

// FormatSpecialType resolves built-in containers and primitives. All integer
// widths collapse to int and both float widths to float; the wire-level
// width distinction is intentionally not preserved.
func (g *Generator) FormatSpecialType(ref *schema.SpecialRef, generics []string) (string, error) {
	switch {
	case ref.Kind == schema.KindList, ref.Kind == schema.KindFixedArray, ref.Kind == schema.KindSlice:
		g.imports.Add("typing", "List")
		elem, err := emitter.FormatType(g, ref.Elem, generics)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("List[%s]", elem), nil
	case ref.Kind == schema.KindOptional:
		// Optionality is applied above the type-formatting level.
		return emitter.FormatType(g, ref.Elem, generics)
	case ref.Kind == schema.KindMap:
		if name, bare := emitter.MapKeyGeneric(ref.Key, generics); bare {
			return "", &emitter.GenericKeyForbiddenError{Name: name}
		}
		g.imports.Add("typing", "Dict")
		key, err := emitter.FormatType(g, ref.Key, generics)
		if err != nil {
			return "", err
		}
		value, err := emitter.FormatType(g, ref.Value, generics)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Dict[%s, %s]", key, value), nil
	case ref.Kind == schema.KindUnit:
		return "None", nil
	case ref.Kind == schema.KindString, ref.Kind == schema.KindChar:
		return "str", nil
	case ref.Kind.IsInteger():
		return "int", nil
	case ref.Kind.IsFloat():
		return "float", nil
	case ref.Kind == schema.KindBool:
		return "bool", nil
	default:
		panic(fmt.Sprintf("unhandled special kind %d", ref.Kind))
	}
}

// WriteStruct emits one record class.
func (g *Generator) WriteStruct(w *writer.Writer, s *schema.Struct) error {
	for _, generic := range s.Generics {
		g.addTypeVar(generic)
	}

	bases := "BaseModel"
	if len(s.Generics) > 0 {
		g.imports.Add("pydantic.generics", "GenericModel")
		g.imports.Add("typing", "Generic")
		bases = fmt.Sprintf("GenericModel, Generic[%s]", strings.Join(s.Generics, ", "))
	}
	w.Linef("class %s(%s):", s.Name.Wire, bases)

	g.writeDocstring(w, s.Comments, 1)
	g.writeModelConfig(w, s.Fields)

	for _, f := range s.Fields {
		if err := g.writeField(w, f, s.Generics); err != nil {
			return err
		}
	}
	if len(s.Fields) == 0 {
		w.Line("    pass")
	} else {
		w.Newline()
	}
	w.Newline()

	g.imports.Add("pydantic", "BaseModel")
	return nil
}

// WriteTypeAlias emits a direct name-to-type binding, parameterized when the
// alias declares generics.
func (g *Generator) WriteTypeAlias(w *writer.Writer, a *schema.TypeAlias) error {
	formatted, err := emitter.FormatType(g, a.Type, a.Generics)
	if err != nil {
		return err
	}

	g.writeDocstring(w, a.Comments, 0)
	params := ""
	if len(a.Generics) > 0 {
		for _, generic := range a.Generics {
			g.addTypeVar(generic)
		}
		params = fmt.Sprintf("[%s]", strings.Join(a.Generics, ", "))
	}
	w.Linef("%s%s = %s", a.Name.Wire, params, formatted)
	w.Newline()
	w.Newline()
	return nil
}

// WriteEnum emits a unit enum as a Literal union, or decomposes an algebraic
// enum into its kind enumeration, payload classes, and wrapper class.
func (g *Generator) WriteEnum(w *writer.Writer, e *schema.Enum) error {
	// Anonymous struct variants become standalone named classes first.
	for _, promoted := range emitter.PromoteVariantStructs(e) {
		if err := g.WriteStruct(w, promoted); err != nil {
			return err
		}
	}

	if !e.IsAlgebraic() {
		return g.writeUnitEnum(w, e)
	}
	return g.writeAlgebraicEnum(w, e)
}

func (g *Generator) writeUnitEnum(w *writer.Writer, e *schema.Enum) error {
	g.imports.Add("typing", "Literal")

	literals := make([]string, 0, len(e.Variants))
	for _, v := range e.Variants {
		unit, ok := v.(*schema.UnitVariant)
		if !ok {
			panic(fmt.Sprintf("unit enum %s has a payload variant %s", e.Name.Original, v.VariantName().Original))
		}
		literals = append(literals, fmt.Sprintf("%q", unit.Name.Wire))
	}

	g.writeDocstring(w, e.Comments, 0)
	w.Linef("%s = Literal[%s]", e.Name.Wire, strings.Join(literals, ", "))
	w.Newline()
	return nil
}

func (g *Generator) writeAlgebraicEnum(w *writer.Writer, e *schema.Enum) error {
	for _, generic := range e.Generics {
		g.addTypeVar(generic)
	}
	g.imports.Add("typing", "Union")
	g.imports.Add("enum", "Enum")
	g.imports.Add("pydantic", "ConfigDict")

	// Kind enumeration: one string-literal member per variant.
	g.writeDocstring(w, e.Comments, 0)
	w.Linef("class %sTypes(str, Enum):", e.Name.Wire)
	for _, v := range e.Variants {
		wire := v.VariantName().Wire
		w.Linef("    %s = %q", strcase.ToScreamingSnake(wire), wire)
	}
	w.Newline()

	// One payload class per variant. Anonymous struct variants were already
	// promoted, so only unit and tuple payloads are written here.
	payloadNames := make([]string, 0, len(e.Variants))
	for _, v := range e.Variants {
		className := emitter.VariantStructName(e, v)
		payloadNames = append(payloadNames, className)

		switch variant := v.(type) {
		case *schema.UnitVariant:
			g.imports.Add("typing", "Literal")
			g.imports.Add("pydantic", "BaseModel")
			w.Linef("class %s(BaseModel):", className)
			w.Linef("    %s: Literal[%q]", e.ContentKey, variant.Name.Wire)
			w.Newline()
		case *schema.TupleVariant:
			g.imports.Add("typing", "Literal")
			generics := schema.CollectGenerics(variant.Type, e.Generics)
			if len(generics) == 0 {
				g.imports.Add("pydantic", "BaseModel")
				w.Linef("class %s(BaseModel):", className)
			} else {
				g.imports.Add("typing", "Generic")
				g.imports.Add("pydantic.generics", "GenericModel")
				w.Linef("class %s(GenericModel, Generic[%s]):", className, strings.Join(generics, ", "))
			}
			formatted, err := emitter.FormatType(g, variant.Type, e.Generics)
			if err != nil {
				return err
			}
			w.Linef("    %s: %s", e.ContentKey, formatted)
			w.Newline()
		case *schema.StructVariant:
			// Written as a promoted standalone class already.
		}
	}

	// Wrapper: the tag typed by the kind enumeration, the content typed as a
	// union over every payload class in variant order.
	w.Linef("class %s(BaseModel):", e.Name.Wire)
	w.Line("    model_config = ConfigDict(use_enum_values=True)")
	w.Linef("    %s: %sTypes", e.TagKey, e.Name.Wire)
	w.Linef("    %s: Union[%s]", e.ContentKey, strings.Join(payloadNames, ", "))
	w.Newline()

	g.imports.Add("pydantic", "BaseModel")
	return nil
}

// WriteImports flushes the import block and the type-variable block, each
// internally sorted so repeated runs over the same bundle are byte-identical.
func (g *Generator) WriteImports(w *writer.Writer) error {
	w.Line("from __future__ import annotations")
	w.BlankLine()

	for _, ns := range g.imports.Namespaces() {
		w.Linef("from %s import %s", ns, strings.Join(g.imports.Symbols(ns), ", "))
	}
	w.BlankLine()

	typeVars := make([]string, 0, len(g.typeVars))
	for name := range g.typeVars {
		typeVars = append(typeVars, name)
	}
	if len(typeVars) == 0 {
		w.BlankLine()
		return nil
	}
	sort.Strings(typeVars)
	for _, name := range typeVars {
		w.Linef("%s = TypeVar(%q)", name, name)
	}
	w.BlankLine()
	w.BlankLine()
	return nil
}

// writeField emits one field line: safe identifier, formatted type,
// optionality wrapper, alias annotation, and null default.
func (g *Generator) writeField(w *writer.Writer, f schema.Field, generics []string) error {
	pythonType, err := emitter.FormatType(g, f.Type, generics)
	if err != nil {
		return err
	}

	fieldName := propertyAwareRename(f.Name.Original)
	if fieldName != f.Name.Wire {
		g.imports.Add("typing", "Annotated")
		g.imports.Add("pydantic", "Field")
		pythonType = fmt.Sprintf("Annotated[%s, Field(alias=%q)]", pythonType, f.Name.Wire)
	}
	if schema.IsOptional(f.Type) {
		g.imports.Add("typing", "Optional")
		pythonType = fmt.Sprintf("Optional[%s]", pythonType)
	}

	if f.HasDefault && schema.IsOptional(f.Type) {
		w.Linef("    %s: %s = None", fieldName, pythonType)
	} else {
		w.Linef("    %s: %s", fieldName, pythonType)
	}

	g.writeDocstring(w, f.Comments, 1)
	return nil
}

// writeModelConfig opts a whole class into alias-based population when any
// field's safe identifier differs from its wire name. The decision is made
// once, by scanning every field before any is emitted.
func (g *Generator) writeModelConfig(w *writer.Writer, fields []schema.Field) {
	for _, f := range fields {
		if propertyAwareRename(f.Name.Original) != f.Name.Wire {
			g.imports.Add("pydantic", "ConfigDict")
			w.Line("    model_config = ConfigDict(populate_by_name=True)")
			w.BlankLine()
			return
		}
	}
}

func (g *Generator) writeDocstring(w *writer.Writer, comments []string, indentLevel int) {
	if !g.includeComments || len(comments) == 0 {
		return
	}
	indent := strings.Repeat("    ", indentLevel)
	w.Linef(`%s"""`, indent)
	for _, line := range comments {
		w.Linef("%s%s", indent, line)
	}
	w.Linef(`%s"""`, indent)
}

// registerBaseImports consults the fixed base-name→import table.
func (g *Generator) registerBaseImports(name string) {
	if required, ok := requiredImports[name]; ok {
		g.imports.Add(required[0], required[1])
	}
}

func (g *Generator) addTypeVar(name string) {
	g.imports.Add("typing", "TypeVar")
	g.typeVars[name] = struct{}{}
}
