package codegen

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/typeforge-platform/typeforge/internal/codegen/emitter"
	"github.com/typeforge-platform/typeforge/internal/codegen/writer"
	"github.com/typeforge-platform/typeforge/internal/schema"
)

// Pipeline drives one backend through one generation run: order the
// declarations, dispatch each to the backend, flush the import block, and
// assemble the final document.
type Pipeline struct {
	lang   Language
	logger zerolog.Logger
}

// NewPipeline creates a pipeline around a single backend instance. The
// instance must be fresh: its import registry carries state across one run
// only.
func NewPipeline(lang Language, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		lang:   lang,
		logger: logger.With().Str("language", lang.Language()).Logger(),
	}
}

// Generate produces the target document for a bundle. The document is
// assembled in fixed order: identity header, import block, type-variable
// block, then declarations in dependency order.
//
// A declaration that fails with GenericKeyForbiddenError is skipped and
// reported; the rest of the run proceeds and the partial document is still
// returned alongside the joined error. Any other failure aborts the run.
func (p *Pipeline) Generate(data *schema.ParsedData) ([]byte, error) {
	head := writer.New("    ")
	p.lang.BeginFile(head, data)

	decls := schema.SortDeclarations(data.Declarations())

	var body []byte
	var skipped []error
	for _, decl := range decls {
		// Each declaration renders into its own scratch writer so a failure
		// partway through leaves no torso in the document.
		scratch := writer.New("    ")
		var err error
		switch d := decl.(type) {
		case *schema.Struct:
			err = p.lang.WriteStruct(scratch, d)
		case *schema.Enum:
			err = p.lang.WriteEnum(scratch, d)
		case *schema.TypeAlias:
			err = p.lang.WriteTypeAlias(scratch, d)
		default:
			panic(fmt.Sprintf("unhandled declaration %T", decl))
		}
		if err == nil {
			body = append(body, scratch.Bytes()...)
			continue
		}

		var forbidden *emitter.GenericKeyForbiddenError
		if !errors.As(err, &forbidden) {
			return nil, fmt.Errorf("failed to write %s: %w", decl.DeclName().Original, err)
		}
		p.logger.Warn().
			Str("declaration", decl.DeclName().Original).
			Str("generic", forbidden.Name).
			Msg("skipping declaration: generic map key is not representable")
		skipped = append(skipped, fmt.Errorf("declaration %s: %w", decl.DeclName().Original, err))
	}

	if err := p.lang.WriteImports(head); err != nil {
		return nil, fmt.Errorf("failed to write imports: %w", err)
	}

	document := append(head.Bytes(), body...)
	return document, errors.Join(skipped...)
}
