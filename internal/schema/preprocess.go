package schema

// Normalize fills in the parts of a bundle the front end is allowed to omit:
// wire names default to the original identifier, and an algebraic enum with
// a tag key but no content key falls back to the conventional "content".
// Declarations themselves are assumed structurally valid upstream.
func Normalize(p *ParsedData) {
	for _, s := range p.Structs {
		s.Name = normalizeIdent(s.Name)
		normalizeFields(s.Fields)
	}
	for _, a := range p.Aliases {
		a.Name = normalizeIdent(a.Name)
	}
	for _, e := range p.Enums {
		e.Name = normalizeIdent(e.Name)
		if e.TagKey != "" && e.ContentKey == "" {
			e.ContentKey = "content"
		}
		for _, v := range e.Variants {
			switch variant := v.(type) {
			case *UnitVariant:
				variant.Name = normalizeIdent(variant.Name)
			case *TupleVariant:
				variant.Name = normalizeIdent(variant.Name)
			case *StructVariant:
				variant.Name = normalizeIdent(variant.Name)
				normalizeFields(variant.Fields)
			}
		}
	}
}

func normalizeFields(fields []Field) {
	for i := range fields {
		fields[i].Name = normalizeIdent(fields[i].Name)
	}
}

func normalizeIdent(id Ident) Ident {
	if id.Wire == "" {
		id.Wire = id.Original
	}
	return id
}
