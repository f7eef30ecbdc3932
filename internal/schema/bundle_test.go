package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBundle = `{
	"structs": [
		{
			"name": {"original": "Person", "wire": "Person"},
			"generics": [],
			"fields": [
				{"name": {"original": "name", "wire": "name"}, "type": {"kind": "string"}},
				{"name": {"original": "age", "wire": "age"}, "type": {"kind": "u32"}},
				{"name": {"original": "info", "wire": "info"}, "type": {"kind": "optional", "inner": {"kind": "string"}}, "hasDefault": true},
				{"name": {"original": "emails", "wire": "emails"}, "type": {"kind": "list", "elem": {"kind": "string"}}},
				{"name": {"original": "tags", "wire": "tags"}, "type": {"kind": "map", "key": {"kind": "string"}, "value": {"kind": "generic", "name": "Wrapper", "params": [{"kind": "bool"}]}}}
			],
			"comments": ["A person."]
		}
	],
	"enums": [
		{
			"name": {"original": "Event", "wire": "Event"},
			"tagKey": "type",
			"contentKey": "content",
			"variants": [
				{"shape": "unit", "name": {"original": "Ping", "wire": "ping"}},
				{"shape": "tuple", "name": {"original": "Count", "wire": "count"}, "type": {"kind": "i64"}},
				{"shape": "struct", "name": {"original": "Note", "wire": "note"}, "fields": [
					{"name": {"original": "text", "wire": "text"}, "type": {"kind": "string"}}
				]}
			]
		}
	],
	"aliases": [
		{
			"name": {"original": "Ids"},
			"type": {"kind": "slice", "elem": {"kind": "fixedArray", "elem": {"kind": "u8"}, "size": 16}}
		}
	]
}`

func TestParseBundle_Structs(t *testing.T) {
	// Test: Struct declarations decode with fields, optionality, and
	// container types intact
	parsed, err := ParseBundle([]byte(sampleBundle))
	require.NoError(t, err)
	require.Len(t, parsed.Structs, 1)

	person := parsed.Structs[0]
	assert.Equal(t, "Person", person.Name.Original)
	assert.Equal(t, []string{"A person."}, person.Comments)
	require.Len(t, person.Fields, 5)

	assert.Equal(t, Special(KindString), person.Fields[0].Type)
	assert.Equal(t, Special(KindU32), person.Fields[1].Type)

	info := person.Fields[2]
	assert.True(t, info.HasDefault)
	assert.True(t, IsOptional(info.Type))

	emails, ok := person.Fields[3].Type.(*SpecialRef)
	require.True(t, ok)
	assert.Equal(t, KindList, emails.Kind)
	assert.Equal(t, Special(KindString), emails.Elem)

	tags, ok := person.Fields[4].Type.(*SpecialRef)
	require.True(t, ok)
	assert.Equal(t, KindMap, tags.Kind)
	wrapper, ok := tags.Value.(*GenericRef)
	require.True(t, ok)
	assert.Equal(t, "Wrapper", wrapper.Name)
	require.Len(t, wrapper.Params, 1)
}

func TestParseBundle_EnumVariantShapes(t *testing.T) {
	// Test: All three variant shapes decode to their IR types
	parsed, err := ParseBundle([]byte(sampleBundle))
	require.NoError(t, err)
	require.Len(t, parsed.Enums, 1)

	event := parsed.Enums[0]
	assert.True(t, event.IsAlgebraic())
	assert.Equal(t, "type", event.TagKey)
	assert.Equal(t, "content", event.ContentKey)
	require.Len(t, event.Variants, 3)

	_, ok := event.Variants[0].(*UnitVariant)
	assert.True(t, ok)

	count, ok := event.Variants[1].(*TupleVariant)
	require.True(t, ok)
	assert.Equal(t, Special(KindI64), count.Type)
	assert.Equal(t, "count", count.Name.Wire)

	note, ok := event.Variants[2].(*StructVariant)
	require.True(t, ok)
	require.Len(t, note.Fields, 1)
	assert.Equal(t, "text", note.Fields[0].Name.Original)
}

func TestParseBundle_AliasAndNormalization(t *testing.T) {
	// Test: Aliases decode and a missing wire name defaults to the original
	parsed, err := ParseBundle([]byte(sampleBundle))
	require.NoError(t, err)
	require.Len(t, parsed.Aliases, 1)

	ids := parsed.Aliases[0]
	assert.Equal(t, "Ids", ids.Name.Wire)

	slice, ok := ids.Type.(*SpecialRef)
	require.True(t, ok)
	assert.Equal(t, KindSlice, slice.Kind)
	array, ok := slice.Elem.(*SpecialRef)
	require.True(t, ok)
	assert.Equal(t, KindFixedArray, array.Kind)
	assert.Equal(t, 16, array.Size)
	assert.Equal(t, Special(KindU8), array.Elem)
}

func TestParseBundle_UnknownKind(t *testing.T) {
	// Test: An unknown type kind is rejected with a descriptive error
	_, err := ParseBundle([]byte(`{"structs": [{
		"name": {"original": "Bad"},
		"fields": [{"name": {"original": "f"}, "type": {"kind": "quaternion"}}]
	}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type kind "quaternion"`)
	assert.Contains(t, err.Error(), "Bad.f")
}

func TestParseBundle_UnknownVariantShape(t *testing.T) {
	// Test: An unknown variant shape is rejected
	_, err := ParseBundle([]byte(`{"enums": [{
		"name": {"original": "E"},
		"tagKey": "type",
		"variants": [{"shape": "record", "name": {"original": "V"}}]
	}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown shape "record"`)
}

func TestLoadBundle_MissingFile(t *testing.T) {
	// Test: A missing bundle surfaces a wrapped read error
	_, err := LoadBundle(filepath.Join(t.TempDir(), "nope.bundle.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read bundle")
}

func TestLoadBundle_RoundTrip(t *testing.T) {
	// Test: A bundle written to disk loads cleanly
	path := filepath.Join(t.TempDir(), "types.bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleBundle), 0644))

	parsed, err := LoadBundle(path)
	require.NoError(t, err)
	assert.Len(t, parsed.Structs, 1)
	assert.Len(t, parsed.Enums, 1)
	assert.Len(t, parsed.Aliases, 1)
}
