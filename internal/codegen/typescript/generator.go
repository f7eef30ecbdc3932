package typescript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/typeforge-platform/typeforge/internal/codegen/emitter"
	"github.com/typeforge-platform/typeforge/internal/codegen/writer"
	"github.com/typeforge-platform/typeforge/internal/schema"
)

// Generator emits TypeScript type declarations. Unlike the python backend it
// targets a language with native discriminated unions, so algebraic enums
// render as a union of tagged object types instead of the four-part
// decomposition.
type Generator struct {
	typeMappings    map[string]string
	imports         *emitter.ImportMap
	includeComments bool
}

var defaultTypeMappings = map[string]string{
	"DateTime": "Date",
}

// NewGenerator creates a fresh backend instance for one generation run.
func NewGenerator(opts emitter.Options) *Generator {
	mappings := make(map[string]string, len(defaultTypeMappings)+len(opts.TypeMappings))
	for k, v := range defaultTypeMappings {
		mappings[k] = v
	}
	for k, v := range opts.TypeMappings {
		mappings[k] = v
	}
	return &Generator{
		typeMappings:    mappings,
		imports:         emitter.NewImportMap(),
		includeComments: opts.IncludeComments,
	}
}

// Language returns the name of the target language.
func (g *Generator) Language() string {
	return "typescript"
}

// FileExtension returns the file extension for generated artifacts.
func (g *Generator) FileExtension() string {
	return ".ts"
}

// TypeMap returns the base-name substitution table.
func (g *Generator) TypeMap() map[string]string {
	return g.typeMappings
}

// BeginFile writes the generator-identity header.
func (g *Generator) BeginFile(w *writer.Writer, _ *schema.ParsedData) {
	w.Line("/*")
	w.Linef(" Generated by typeforge %s", emitter.Version)
	w.Line("*/")
}

// FormatSimpleType resolves a bare name.
func (g *Generator) FormatSimpleType(name string, _ []string) (string, error) {
	if mapped, ok := g.typeMappings[name]; ok {
		return mapped, nil
	}
	return name, nil
}

// FormatGenericType resolves a parameterized name as Base<P1, P2>.
func (g *Generator) FormatGenericType(name string, params []schema.TypeRef, generics []string) (string, error) {
	if mapped, ok := g.typeMappings[name]; ok {
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
	return fmt.Sprintf("%s<%s>", base, strings.Join(formatted, ", ")), nil
}

// FormatSpecialType resolves built-in containers and primitives. Integer and
// float widths all collapse to number.
func (g *Generator) FormatSpecialType(ref *schema.SpecialRef, generics []string) (string, error) {
	switch {
	case ref.Kind == schema.KindList, ref.Kind == schema.KindFixedArray, ref.Kind == schema.KindSlice:
		elem, err := emitter.FormatType(g, ref.Elem, generics)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	case ref.Kind == schema.KindOptional:
		return emitter.FormatType(g, ref.Elem, generics)
	case ref.Kind == schema.KindMap:
		if name, bare := emitter.MapKeyGeneric(ref.Key, generics); bare {
			return "", &emitter.GenericKeyForbiddenError{Name: name}
		}
		key, err := emitter.FormatType(g, ref.Key, generics)
		if err != nil {
			return "", err
		}
		value, err := emitter.FormatType(g, ref.Value, generics)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Record<%s, %s>", key, value), nil
	case ref.Kind == schema.KindUnit:
		return "null", nil
	case ref.Kind == schema.KindString, ref.Kind == schema.KindChar:
		return "string", nil
	case ref.Kind.IsInteger(), ref.Kind.IsFloat():
		return "number", nil
	case ref.Kind == schema.KindBool:
		return "boolean", nil
	default:
		panic(fmt.Sprintf("unhandled special kind %d", ref.Kind))
	}
}

// WriteStruct emits one interface declaration.
func (g *Generator) WriteStruct(w *writer.Writer, s *schema.Struct) error {
	g.writeJSDoc(w, s.Comments)
	w.Linef("export interface %s%s {", s.Name.Wire, typeParams(s.Generics))
	w.Indent()
	for _, f := range s.Fields {
		if err := g.writeField(w, f, s.Generics); err != nil {
			return err
		}
	}
	w.Dedent()
	w.Line("}")
	w.BlankLine()
	return nil
}

// WriteTypeAlias emits a type alias binding.
func (g *Generator) WriteTypeAlias(w *writer.Writer, a *schema.TypeAlias) error {
	formatted, err := emitter.FormatType(g, a.Type, a.Generics)
	if err != nil {
		return err
	}

	g.writeJSDoc(w, a.Comments)
	w.Linef("export type %s%s = %s;", a.Name.Wire, typeParams(a.Generics), formatted)
	w.BlankLine()
	return nil
}

// WriteEnum emits a unit enum as a string-literal union, or an algebraic
// enum as a native discriminated union over tagged object types.
func (g *Generator) WriteEnum(w *writer.Writer, e *schema.Enum) error {
	for _, promoted := range emitter.PromoteVariantStructs(e) {
		if err := g.WriteStruct(w, promoted); err != nil {
			return err
		}
	}

	g.writeJSDoc(w, e.Comments)
	if !e.IsAlgebraic() {
		literals := make([]string, 0, len(e.Variants))
		for _, v := range e.Variants {
			unit, ok := v.(*schema.UnitVariant)
			if !ok {
				panic(fmt.Sprintf("unit enum %s has a payload variant %s", e.Name.Original, v.VariantName().Original))
			}
			literals = append(literals, fmt.Sprintf("%q", unit.Name.Wire))
		}
		w.Linef("export type %s = %s;", e.Name.Wire, strings.Join(literals, " | "))
		w.BlankLine()
		return nil
	}

	w.Linef("export type %s%s =", e.Name.Wire, typeParams(e.Generics))
	w.Indent()
	for i, v := range e.Variants {
		terminator := ""
		if i == len(e.Variants)-1 {
			terminator = ";"
		}
		switch variant := v.(type) {
		case *schema.UnitVariant:
			w.Linef("| { %s: %q }%s", propertyName(e.TagKey), variant.Name.Wire, terminator)
		case *schema.TupleVariant:
			formatted, err := emitter.FormatType(g, variant.Type, e.Generics)
			if err != nil {
				return err
			}
			w.Linef("| { %s: %q, %s: %s }%s",
				propertyName(e.TagKey), variant.Name.Wire,
				propertyName(e.ContentKey), formatted, terminator)
		case *schema.StructVariant:
			payload := emitter.VariantStructName(e, variant)
			payload += typeParams(schema.CollectGenericsForFields(variant.Fields, e.Generics))
			w.Linef("| { %s: %q, %s: %s }%s",
				propertyName(e.TagKey), variant.Name.Wire,
				propertyName(e.ContentKey), payload, terminator)
		}
	}
	w.Dedent()
	w.BlankLine()
	return nil
}

// WriteImports flushes any accumulated imports. TypeScript output rarely
// needs them; the block is omitted entirely when empty.
func (g *Generator) WriteImports(w *writer.Writer) error {
	for _, ns := range g.imports.Namespaces() {
		w.Linef("import { %s } from %q;", strings.Join(g.imports.Symbols(ns), ", "), ns)
	}
	w.BlankLine()
	return nil
}

func (g *Generator) writeField(w *writer.Writer, f schema.Field, generics []string) error {
	formatted, err := emitter.FormatType(g, f.Type, generics)
	if err != nil {
		return err
	}

	g.writeJSDoc(w, f.Comments)
	optional := ""
	if schema.IsOptional(f.Type) {
		optional = "?"
	}
	w.Linef("%s%s: %s;", propertyName(f.Name.Wire), optional, formatted)
	return nil
}

func (g *Generator) writeJSDoc(w *writer.Writer, comments []string) {
	if !g.includeComments || len(comments) == 0 {
		return
	}
	if len(comments) == 1 {
		w.Linef("/** %s */", comments[0])
		return
	}
	w.Line("/**")
	for _, line := range comments {
		w.Linef(" * %s", line)
	}
	w.Line(" */")
}

func typeParams(generics []string) string {
	if len(generics) == 0 {
		return ""
	}
	return fmt.Sprintf("<%s>", strings.Join(generics, ", "))
}

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// propertyName quotes a wire name that is not a bare identifier. TypeScript
// properties carry the wire name directly, so no alias metadata is needed.
func propertyName(name string) string {
	if identPattern.MatchString(name) {
		return name
	}
	return fmt.Sprintf("%q", name)
}
