package emitter

import (
	"fmt"

	"github.com/typeforge-platform/typeforge/internal/schema"
)

// FormatType maps one type reference, in the scope of the enclosing
// declaration's generic parameters, to target-language syntax by dispatching
// to the backend's formatting hooks.
//
// Optional is deliberately not handled here: the inner type is formatted and
// the caller re-applies optionality one level above, where it also decides
// on default values and optional-wrapper imports.
func FormatType(lang Language, ref schema.TypeRef, generics []string) (string, error) {
	switch t := ref.(type) {
	case *schema.SimpleRef:
		return lang.FormatSimpleType(t.Name, generics)
	case *schema.GenericRef:
		return lang.FormatGenericType(t.Name, t.Params, generics)
	case *schema.SpecialRef:
		if t.Kind == schema.KindOptional {
			return FormatType(lang, t.Elem, generics)
		}
		return lang.FormatSpecialType(t, generics)
	default:
		panic(fmt.Sprintf("unhandled type reference %T", ref))
	}
}

// MapKeyGeneric returns the name of the generic parameter used as a bare map
// key, if the reference is such a key. Backends call this before formatting
// a map key to produce GenericKeyForbiddenError.
func MapKeyGeneric(key schema.TypeRef, generics []string) (string, bool) {
	simple, ok := key.(*schema.SimpleRef)
	if !ok {
		return "", false
	}
	for _, g := range generics {
		if g == simple.Name {
			return simple.Name, true
		}
	}
	return "", false
}

// PromoteVariantStructs synthesizes a standalone struct for every
// anonymous-struct variant of an enum, named by joining the enum and variant
// identifiers. The promoted struct is then referenced like an ordinary
// tuple-style payload by the enum's decomposition.
func PromoteVariantStructs(e *schema.Enum) []*schema.Struct {
	var promoted []*schema.Struct
	for _, v := range e.Variants {
		variant, ok := v.(*schema.StructVariant)
		if !ok {
			continue
		}
		name := VariantStructName(e, variant)
		promoted = append(promoted, &schema.Struct{
			Name:     schema.Ident{Original: name, Wire: name},
			Generics: schema.CollectGenericsForFields(variant.Fields, e.Generics),
			Fields:   variant.Fields,
			Comments: []string{fmt.Sprintf(
				"Generated type representing the anonymous struct variant `%s` of the `%s` enum",
				variant.Name.Original, e.Name.Original,
			)},
		})
	}
	return promoted
}

// VariantStructName deterministically names a promoted anonymous-struct
// variant.
func VariantStructName(e *schema.Enum, v schema.Variant) string {
	return e.Name.Original + v.VariantName().Original
}
