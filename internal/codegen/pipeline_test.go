package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeforge-platform/typeforge/internal/codegen/emitter"
	"github.com/typeforge-platform/typeforge/internal/codegen/writer"
	"github.com/typeforge-platform/typeforge/internal/schema"
)

// failingLanguage rejects one struct by name to exercise partial output.
type failingLanguage struct {
	mockLanguage
	rejectStruct string
}

func (f *failingLanguage) WriteStruct(w *writer.Writer, s *schema.Struct) error {
	if s.Name.Original == f.rejectStruct {
		w.Line("torso that must not appear")
		return &emitter.GenericKeyForbiddenError{Name: "K"}
	}
	return f.mockLanguage.WriteStruct(w, s)
}

func testParsedData() *schema.ParsedData {
	return &schema.ParsedData{
		Structs: []*schema.Struct{
			{Name: schema.Ident{Original: "User", Wire: "User"}, Fields: []schema.Field{
				{Name: schema.Ident{Original: "id", Wire: "id"}, Type: schema.Special(schema.KindString)},
			}},
			{Name: schema.Ident{Original: "Account", Wire: "Account"}},
		},
		Enums: []*schema.Enum{
			{Name: schema.Ident{Original: "Role", Wire: "Role"}, Variants: []schema.Variant{
				&schema.UnitVariant{VariantShared: schema.VariantShared{
					Name: schema.Ident{Original: "Admin", Wire: "admin"},
				}},
			}},
		},
		Aliases: []*schema.TypeAlias{
			{Name: schema.Ident{Original: "UserId", Wire: "UserId"}, Type: schema.Special(schema.KindString)},
		},
	}
}

func TestPipeline_AssemblesDocument(t *testing.T) {
	// Test: Header comes first and every declaration is dispatched
	p := NewPipeline(&mockLanguage{lang: "mock"}, zerolog.Nop())

	out, err := p.Generate(testParsedData())
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "// mock\n"))
	assert.Contains(t, doc, "alias UserId")
	assert.Contains(t, doc, "struct User")
	assert.Contains(t, doc, "struct Account")
	assert.Contains(t, doc, "enum Role")
}

func TestPipeline_Determinism(t *testing.T) {
	// Test: Generating the same bundle twice yields byte-identical output
	data := testParsedData()

	first, err := NewPipeline(&mockLanguage{lang: "mock"}, zerolog.Nop()).Generate(data)
	require.NoError(t, err)
	second, err := NewPipeline(&mockLanguage{lang: "mock"}, zerolog.Nop()).Generate(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPipeline_SkipsForbiddenDeclaration(t *testing.T) {
	// Test: A declaration failing with GenericKeyForbiddenError is skipped,
	// reported, and leaves no partial text; the rest still emits
	lang := &failingLanguage{mockLanguage: mockLanguage{lang: "mock"}, rejectStruct: "User"}
	p := NewPipeline(lang, zerolog.Nop())

	out, err := p.Generate(testParsedData())
	require.Error(t, err)

	var forbidden *emitter.GenericKeyForbiddenError
	assert.True(t, errors.As(err, &forbidden))
	assert.Equal(t, "K", forbidden.Name)
	assert.Contains(t, err.Error(), "declaration User")

	doc := string(out)
	assert.NotContains(t, doc, "torso")
	assert.NotContains(t, doc, "struct User")
	assert.Contains(t, doc, "struct Account")
	assert.Contains(t, doc, "enum Role")
}
