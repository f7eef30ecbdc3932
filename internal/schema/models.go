package schema

// ParsedData is the bundle produced by the schema front end: the flat,
// unordered collections of top-level declarations for one generation run.
// The pipeline owns it for the duration of the run and never mutates it.
type ParsedData struct {
	Structs []*Struct    `json:"structs"`
	Enums   []*Enum      `json:"enums"`
	Aliases []*TypeAlias `json:"aliases"`
}

// Ident carries the two names every declaration and field has: the original
// schema identifier and the finalized wire (serialization) name.
type Ident struct {
	Original string `json:"original"`
	Wire     string `json:"wire"`
}

// Field is a single named member of a struct or anonymous-struct variant.
type Field struct {
	Name       Ident    `json:"name"`
	Type       TypeRef  `json:"type"`
	HasDefault bool     `json:"hasDefault"`
	Comments   []string `json:"comments"`
}

// Struct represents a named record declaration.
type Struct struct {
	Name     Ident    `json:"name"`
	Generics []string `json:"generics"`
	Fields   []Field  `json:"fields"`
	Comments []string `json:"comments"`
}

// TypeAlias binds a name (optionally parameterized) directly to a type.
type TypeAlias struct {
	Name     Ident    `json:"name"`
	Generics []string `json:"generics"`
	Type     TypeRef  `json:"type"`
	Comments []string `json:"comments"`
}

// Enum represents a closed set of named variants. An enum with an empty
// TagKey is a unit enum: every variant is payload-free and the whole type is
// a set of string literals. An algebraic enum carries the wire field names
// used to discriminate (TagKey) and to hold the payload (ContentKey).
type Enum struct {
	Name       Ident     `json:"name"`
	Generics   []string  `json:"generics"`
	Variants   []Variant `json:"variants"`
	TagKey     string    `json:"tagKey"`
	ContentKey string    `json:"contentKey"`
	Comments   []string  `json:"comments"`
}

// IsAlgebraic reports whether the enum is tagged-union shaped.
func (e *Enum) IsAlgebraic() bool {
	return e.TagKey != ""
}

// Variant is one alternative of an enum. Exactly three shapes exist:
// UnitVariant (no payload), TupleVariant (a single payload type), and
// StructVariant (an inline field list that gets promoted to a standalone
// struct during decomposition).
type Variant interface {
	VariantName() Ident
	VariantComments() []string
}

// VariantShared holds the parts common to all variant shapes.
type VariantShared struct {
	Name     Ident    `json:"name"`
	Comments []string `json:"comments"`
}

func (v VariantShared) VariantName() Ident        { return v.Name }
func (v VariantShared) VariantComments() []string { return v.Comments }

// UnitVariant is a variant with no payload.
type UnitVariant struct {
	VariantShared
}

// TupleVariant is a variant whose payload is a single type.
type TupleVariant struct {
	VariantShared
	Type TypeRef `json:"type"`
}

// StructVariant is a variant whose payload is an inline anonymous struct.
type StructVariant struct {
	VariantShared
	Fields []Field `json:"fields"`
}

// Declaration is the uniform emission unit handled by the orderer and the
// emitter pipeline.
type Declaration interface {
	DeclName() Ident
}

func (s *Struct) DeclName() Ident    { return s.Name }
func (e *Enum) DeclName() Ident      { return e.Name }
func (a *TypeAlias) DeclName() Ident { return a.Name }

// Declarations flattens the bundle into the uniform emission units, aliases
// first, then structs, then enums, preserving bundle order within each group.
func (p *ParsedData) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(p.Aliases)+len(p.Structs)+len(p.Enums))
	for _, a := range p.Aliases {
		decls = append(decls, a)
	}
	for _, s := range p.Structs {
		decls = append(decls, s)
	}
	for _, e := range p.Enums {
		decls = append(decls, e)
	}
	return decls
}
