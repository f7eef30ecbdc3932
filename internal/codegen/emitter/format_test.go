package emitter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge-platform/typeforge/internal/schema"
)

func TestMapKeyGeneric(t *testing.T) {
	// Test: Only a bare simple reference to an in-scope generic counts
	name, bare := MapKeyGeneric(schema.Simple("T"), []string{"T", "U"})
	assert.True(t, bare)
	assert.Equal(t, "T", name)

	_, bare = MapKeyGeneric(schema.Simple("Concrete"), []string{"T"})
	assert.False(t, bare)

	_, bare = MapKeyGeneric(schema.Special(schema.KindString), []string{"T"})
	assert.False(t, bare)

	// A parameterized reference is not a bare generic key.
	_, bare = MapKeyGeneric(schema.Generic("T", schema.Simple("U")), []string{"T", "U"})
	assert.False(t, bare)
}

func TestPromoteVariantStructs(t *testing.T) {
	// Test: Anonymous struct variants become standalone named structs
	// declaring only the generics their fields use
	e := &schema.Enum{
		Name:       schema.Ident{Original: "ItemChange", Wire: "ItemChange"},
		Generics:   []string{"T", "U"},
		TagKey:     "type",
		ContentKey: "content",
		Variants: []schema.Variant{
			&schema.UnitVariant{VariantShared: schema.VariantShared{
				Name: schema.Ident{Original: "Cleared", Wire: "cleared"},
			}},
			&schema.StructVariant{
				VariantShared: schema.VariantShared{
					Name: schema.Ident{Original: "SetValue", Wire: "setValue"},
				},
				Fields: []schema.Field{
					{Name: schema.Ident{Original: "value", Wire: "value"}, Type: schema.Simple("T")},
				},
			},
		},
	}

	promoted := PromoteVariantStructs(e)
	require.Len(t, promoted, 1)

	s := promoted[0]
	assert.Equal(t, "ItemChangeSetValue", s.Name.Original)
	assert.Equal(t, "ItemChangeSetValue", s.Name.Wire)
	assert.Equal(t, []string{"T"}, s.Generics)
	assert.Equal(t, e.Variants[1].(*schema.StructVariant).Fields, s.Fields)
	require.Len(t, s.Comments, 1)
	assert.Contains(t, s.Comments[0], "anonymous struct variant `SetValue`")
}

func TestPromoteVariantStructs_NoAnonymousVariants(t *testing.T) {
	// Test: Enums without anonymous struct variants promote nothing
	e := &schema.Enum{
		Name: schema.Ident{Original: "Color", Wire: "Color"},
		Variants: []schema.Variant{
			&schema.UnitVariant{VariantShared: schema.VariantShared{
				Name: schema.Ident{Original: "Red", Wire: "red"},
			}},
		},
	}
	assert.Empty(t, PromoteVariantStructs(e))
}

func TestVariantStructName(t *testing.T) {
	// Test: Promoted names join the enum and variant original identifiers
	e := &schema.Enum{Name: schema.Ident{Original: "AutofilledBy", Wire: "AutofilledBy"}}
	v := &schema.UnitVariant{VariantShared: schema.VariantShared{
		Name: schema.Ident{Original: "Us", Wire: "us"},
	}}
	assert.Equal(t, "AutofilledByUs", VariantStructName(e, v))
}
