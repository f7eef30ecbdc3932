package schema

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// The schema front end hands typeforge a JSON bundle: one document holding
// the structs, enums, and aliases of a generation run. Type references are
// tagged objects discriminated by "kind", variants by "shape". The bundle is
// assumed structurally valid; this loader rejects unknown tags but performs
// no semantic validation.

// LoadBundle reads and decodes a ParsedData bundle from disk.
func LoadBundle(path string) (*ParsedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}

	parsed, err := ParseBundle(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bundle %s: %w", path, err)
	}
	return parsed, nil
}

// ParseBundle decodes a ParsedData bundle from raw JSON.
func ParseBundle(data []byte) (*ParsedData, error) {
	var doc bundleDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	parsed := &ParsedData{}
	for _, raw := range doc.Structs {
		s, err := decodeStruct(raw)
		if err != nil {
			return nil, err
		}
		parsed.Structs = append(parsed.Structs, s)
	}
	for _, raw := range doc.Enums {
		e, err := decodeEnum(raw)
		if err != nil {
			return nil, err
		}
		parsed.Enums = append(parsed.Enums, e)
	}
	for _, raw := range doc.Aliases {
		a, err := decodeAlias(raw)
		if err != nil {
			return nil, err
		}
		parsed.Aliases = append(parsed.Aliases, a)
	}

	Normalize(parsed)
	return parsed, nil
}

type bundleDoc struct {
	Structs []json.RawMessage `json:"structs"`
	Enums   []json.RawMessage `json:"enums"`
	Aliases []json.RawMessage `json:"aliases"`
}

type structDoc struct {
	Name     Ident      `json:"name"`
	Generics []string   `json:"generics"`
	Fields   []fieldDoc `json:"fields"`
	Comments []string   `json:"comments"`
}

type fieldDoc struct {
	Name       Ident           `json:"name"`
	Type       json.RawMessage `json:"type"`
	HasDefault bool            `json:"hasDefault"`
	Comments   []string        `json:"comments"`
}

type enumDoc struct {
	Name       Ident             `json:"name"`
	Generics   []string          `json:"generics"`
	TagKey     string            `json:"tagKey"`
	ContentKey string            `json:"contentKey"`
	Variants   []json.RawMessage `json:"variants"`
	Comments   []string          `json:"comments"`
}

type variantDoc struct {
	Shape    string          `json:"shape"`
	Name     Ident           `json:"name"`
	Type     json.RawMessage `json:"type"`
	Fields   []fieldDoc      `json:"fields"`
	Comments []string        `json:"comments"`
}

type aliasDoc struct {
	Name     Ident           `json:"name"`
	Generics []string        `json:"generics"`
	Type     json.RawMessage `json:"type"`
	Comments []string        `json:"comments"`
}

type typeRefDoc struct {
	Kind   string            `json:"kind"`
	Name   string            `json:"name"`
	Params []json.RawMessage `json:"params"`
	Elem   json.RawMessage   `json:"elem"`
	Inner  json.RawMessage   `json:"inner"`
	Key    json.RawMessage   `json:"key"`
	Value  json.RawMessage   `json:"value"`
	Size   int               `json:"size"`
}

// primitiveKinds maps bundle kind tags to parameterless special kinds.
var primitiveKinds = map[string]SpecialKind{
	"unit":   KindUnit,
	"string": KindString,
	"char":   KindChar,
	"i8":     KindI8,
	"i16":    KindI16,
	"i32":    KindI32,
	"i64":    KindI64,
	"isize":  KindISize,
	"u8":     KindU8,
	"u16":    KindU16,
	"u32":    KindU32,
	"u64":    KindU64,
	"usize":  KindUSize,
	"f32":    KindF32,
	"f64":    KindF64,
	"bool":   KindBool,
}

func decodeStruct(raw json.RawMessage) (*Struct, error) {
	var doc structDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid struct: %w", err)
	}

	fields, err := decodeFields(doc.Fields, doc.Name.Original)
	if err != nil {
		return nil, err
	}
	return &Struct{
		Name:     doc.Name,
		Generics: doc.Generics,
		Fields:   fields,
		Comments: doc.Comments,
	}, nil
}

func decodeAlias(raw json.RawMessage) (*TypeAlias, error) {
	var doc aliasDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid alias: %w", err)
	}

	ref, err := decodeTypeRef(doc.Type)
	if err != nil {
		return nil, fmt.Errorf("alias %s: %w", doc.Name.Original, err)
	}
	return &TypeAlias{
		Name:     doc.Name,
		Generics: doc.Generics,
		Type:     ref,
		Comments: doc.Comments,
	}, nil
}

func decodeEnum(raw json.RawMessage) (*Enum, error) {
	var doc enumDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid enum: %w", err)
	}

	enum := &Enum{
		Name:       doc.Name,
		Generics:   doc.Generics,
		TagKey:     doc.TagKey,
		ContentKey: doc.ContentKey,
		Comments:   doc.Comments,
	}
	for _, rawVariant := range doc.Variants {
		variant, err := decodeVariant(rawVariant, doc.Name.Original)
		if err != nil {
			return nil, err
		}
		enum.Variants = append(enum.Variants, variant)
	}
	return enum, nil
}

func decodeVariant(raw json.RawMessage, enumName string) (Variant, error) {
	var doc variantDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("enum %s: invalid variant: %w", enumName, err)
	}

	shared := VariantShared{Name: doc.Name, Comments: doc.Comments}
	switch doc.Shape {
	case "unit":
		return &UnitVariant{VariantShared: shared}, nil
	case "tuple":
		ref, err := decodeTypeRef(doc.Type)
		if err != nil {
			return nil, fmt.Errorf("enum %s variant %s: %w", enumName, doc.Name.Original, err)
		}
		return &TupleVariant{VariantShared: shared, Type: ref}, nil
	case "struct":
		fields, err := decodeFields(doc.Fields, enumName+"."+doc.Name.Original)
		if err != nil {
			return nil, err
		}
		return &StructVariant{VariantShared: shared, Fields: fields}, nil
	default:
		return nil, fmt.Errorf("enum %s variant %s: unknown shape %q", enumName, doc.Name.Original, doc.Shape)
	}
}

func decodeFields(docs []fieldDoc, owner string) ([]Field, error) {
	fields := make([]Field, 0, len(docs))
	for _, doc := range docs {
		ref, err := decodeTypeRef(doc.Type)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", owner, doc.Name.Original, err)
		}
		fields = append(fields, Field{
			Name:       doc.Name,
			Type:       ref,
			HasDefault: doc.HasDefault,
			Comments:   doc.Comments,
		})
	}
	return fields, nil
}

func decodeTypeRef(raw json.RawMessage) (TypeRef, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing type reference")
	}

	var doc typeRefDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid type reference: %w", err)
	}

	switch doc.Kind {
	case "simple":
		return &SimpleRef{Name: doc.Name}, nil
	case "generic":
		params := make([]TypeRef, 0, len(doc.Params))
		for _, rawParam := range doc.Params {
			param, err := decodeTypeRef(rawParam)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
		return &GenericRef{Name: doc.Name, Params: params}, nil
	case "list", "slice":
		elem, err := decodeTypeRef(doc.Elem)
		if err != nil {
			return nil, err
		}
		kind := KindList
		if doc.Kind == "slice" {
			kind = KindSlice
		}
		return &SpecialRef{Kind: kind, Elem: elem}, nil
	case "fixedArray":
		elem, err := decodeTypeRef(doc.Elem)
		if err != nil {
			return nil, err
		}
		return &SpecialRef{Kind: KindFixedArray, Elem: elem, Size: doc.Size}, nil
	case "optional":
		inner, err := decodeTypeRef(doc.Inner)
		if err != nil {
			return nil, err
		}
		return &SpecialRef{Kind: KindOptional, Elem: inner}, nil
	case "map":
		key, err := decodeTypeRef(doc.Key)
		if err != nil {
			return nil, err
		}
		value, err := decodeTypeRef(doc.Value)
		if err != nil {
			return nil, err
		}
		return &SpecialRef{Kind: KindMap, Key: key, Value: value}, nil
	default:
		if kind, ok := primitiveKinds[doc.Kind]; ok {
			return &SpecialRef{Kind: kind}, nil
		}
		return nil, fmt.Errorf("unknown type kind %q", doc.Kind)
	}
}
