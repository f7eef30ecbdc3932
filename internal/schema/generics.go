package schema

// CollectGenerics walks a variant payload (or any type reference) and
// returns the subset of the enclosing declaration's generic parameters that
// the payload actually uses. Decomposed variant payloads become standalone
// declarations, and those declarations must declare only the parameters they
// reference, not the parent's full list.
//
// The result is in first-occurrence order with duplicates removed, so a
// parameter referenced from several positions (e.g. both sides of a map)
// appears exactly once. The walk is deterministic and idempotent.
func CollectGenerics(ref TypeRef, declared []string) []string {
	var found []string
	collectGenerics(ref, declared, &found)
	return dedup(found)
}

// CollectGenericsForFields is CollectGenerics over every field of an inline
// field list, in field order. Promoted anonymous-struct variants use this to
// declare exactly the parameters their fields reference.
func CollectGenericsForFields(fields []Field, declared []string) []string {
	var found []string
	for _, f := range fields {
		collectGenerics(f.Type, declared, &found)
	}
	return dedup(found)
}

func collectGenerics(ref TypeRef, declared []string, found *[]string) {
	switch t := ref.(type) {
	case *SimpleRef:
		if containsName(declared, t.Name) {
			*found = append(*found, t.Name)
		}
	case *GenericRef:
		if containsName(declared, t.Name) {
			*found = append(*found, t.Name)
		}
		for _, p := range t.Params {
			collectGenerics(p, declared, found)
		}
	case *SpecialRef:
		switch {
		case t.Kind == KindMap:
			collectGenerics(t.Key, declared, found)
			collectGenerics(t.Value, declared, found)
		case t.Kind.HasElem():
			collectGenerics(t.Elem, declared, found)
		}
	}
}

// dedup removes duplicates from names, keeping the first occurrence of each.
func dedup(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	unique := names[:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		unique = append(unique, n)
	}
	return unique
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
