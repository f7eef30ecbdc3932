package schema

// TypeRef is a recursive reference to a type as it appears in a field,
// alias, or variant payload. Exactly three shapes exist: SimpleRef (a bare
// name), GenericRef (a name applied to type parameters), and SpecialRef (the
// closed set of built-in container and primitive types).
type TypeRef interface {
	typeRef()
}

// SimpleRef is a reference to a type by bare name. The name may be a
// declared type or a generic parameter of the enclosing declaration.
type SimpleRef struct {
	Name string `json:"name"`
}

// GenericRef is a reference to a named type applied to type parameters,
// e.g. Wrapper<String>.
type GenericRef struct {
	Name   string    `json:"name"`
	Params []TypeRef `json:"params"`
}

// SpecialKind enumerates the built-in container and primitive types.
type SpecialKind int

const (
	KindList SpecialKind = iota
	KindFixedArray
	KindSlice
	KindOptional
	KindMap
	KindUnit
	KindString
	KindChar
	KindI8
	KindI16
	KindI32
	KindI64
	KindISize
	KindU8
	KindU16
	KindU32
	KindU64
	KindUSize
	KindF32
	KindF64
	KindBool
)

// SpecialRef is a built-in type. Which auxiliary fields are meaningful
// depends on Kind: Elem for List/FixedArray/Slice/Optional, Key and Value
// for Map, Size for FixedArray. Primitive kinds carry nothing.
type SpecialRef struct {
	Kind  SpecialKind `json:"kind"`
	Elem  TypeRef     `json:"elem,omitempty"`
	Key   TypeRef     `json:"key,omitempty"`
	Value TypeRef     `json:"value,omitempty"`
	Size  int         `json:"size,omitempty"`
}

func (*SimpleRef) typeRef()  {}
func (*GenericRef) typeRef() {}
func (*SpecialRef) typeRef() {}

// IsOptional reports whether the reference is Optional at the top level.
// Optionality is handled one level above type formatting, so emitters use
// this to decide whether to wrap the formatted inner type.
func IsOptional(ref TypeRef) bool {
	s, ok := ref.(*SpecialRef)
	return ok && s.Kind == KindOptional
}

// IsInteger reports whether the kind is one of the fixed-width or
// pointer-sized integer primitives of either signedness.
func (k SpecialKind) IsInteger() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64, KindISize,
		KindU8, KindU16, KindU32, KindU64, KindUSize:
		return true
	}
	return false
}

// IsFloat reports whether the kind is a floating-point primitive.
func (k SpecialKind) IsFloat() bool {
	return k == KindF32 || k == KindF64
}

// HasElem reports whether the kind carries a single element type.
func (k SpecialKind) HasElem() bool {
	switch k {
	case KindList, KindFixedArray, KindSlice, KindOptional:
		return true
	}
	return false
}

// Simple returns a bare name reference.
func Simple(name string) TypeRef { return &SimpleRef{Name: name} }

// Generic returns a parameterized name reference.
func Generic(name string, params ...TypeRef) TypeRef {
	return &GenericRef{Name: name, Params: params}
}

// Special returns a parameterless built-in reference.
func Special(kind SpecialKind) TypeRef { return &SpecialRef{Kind: kind} }

// ListOf returns a List reference over elem.
func ListOf(elem TypeRef) TypeRef {
	return &SpecialRef{Kind: KindList, Elem: elem}
}

// SliceOf returns a Slice reference over elem.
func SliceOf(elem TypeRef) TypeRef {
	return &SpecialRef{Kind: KindSlice, Elem: elem}
}

// ArrayOf returns a FixedArray reference over elem with the given size.
func ArrayOf(elem TypeRef, size int) TypeRef {
	return &SpecialRef{Kind: KindFixedArray, Elem: elem, Size: size}
}

// OptionalOf returns an Optional reference over inner.
func OptionalOf(inner TypeRef) TypeRef {
	return &SpecialRef{Kind: KindOptional, Elem: inner}
}

// MapOf returns a Map reference from key to value.
func MapOf(key, value TypeRef) TypeRef {
	return &SpecialRef{Kind: KindMap, Key: key, Value: value}
}
