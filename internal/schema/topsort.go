package schema

// SortDeclarations orders the flat declaration collection so that a
// declaration referencing another by name is emitted after the declaration
// it references, with ties broken by original relative order. Reference
// cycles do not fail or loop: the cycle is broken by falling back to
// original order among the cyclic set, relying on the target's support for
// forward references within one document.
func SortDeclarations(decls []Declaration) []Declaration {
	byName := make(map[string]int, len(decls))
	for i, d := range decls {
		byName[d.DeclName().Original] = i
	}

	// deps[i] holds the indices declaration i references.
	deps := make([]map[int]struct{}, len(decls))
	dependents := make([][]int, len(decls))
	for i, d := range decls {
		deps[i] = make(map[int]struct{})
		for _, name := range referencedNames(d) {
			j, ok := byName[name]
			if !ok || j == i {
				continue
			}
			if _, dup := deps[i][j]; dup {
				continue
			}
			deps[i][j] = struct{}{}
			dependents[j] = append(dependents[j], i)
		}
	}

	ordered := make([]Declaration, 0, len(decls))
	emitted := make([]bool, len(decls))
	remaining := len(decls)
	for remaining > 0 {
		next := -1
		// Lowest-index declaration with all dependencies satisfied; keeps
		// the sort stable with respect to the original order.
		for i := range decls {
			if !emitted[i] && len(deps[i]) == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			// The remaining declarations are stuck behind a cycle. Emit the
			// earliest one actually on a cycle; its dependents resolve
			// through a forward reference. Declarations merely downstream of
			// the cycle keep waiting for their dependencies.
			for i := range decls {
				if !emitted[i] && onCycle(i, deps) {
					next = i
					break
				}
			}
		}
		emitted[next] = true
		remaining--
		ordered = append(ordered, decls[next])
		for _, dep := range dependents[next] {
			delete(deps[dep], next)
		}
	}
	return ordered
}

// onCycle reports whether declaration i can reach itself by following unmet
// dependencies. Unmet dependencies only ever point at unemitted declarations,
// so whenever the sort is stuck at least one remaining declaration is on a
// cycle.
func onCycle(i int, deps []map[int]struct{}) bool {
	seen := make(map[int]struct{})
	stack := make([]int, 0, len(deps[i]))
	for j := range deps[i] {
		stack = append(stack, j)
	}
	for len(stack) > 0 {
		j := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if j == i {
			return true
		}
		if _, ok := seen[j]; ok {
			continue
		}
		seen[j] = struct{}{}
		for k := range deps[j] {
			stack = append(stack, k)
		}
	}
	return false
}

// referencedNames collects every Simple or Generic base name a declaration
// mentions, minus its own generic parameters.
func referencedNames(d Declaration) []string {
	var names []string
	switch t := d.(type) {
	case *Struct:
		for _, f := range t.Fields {
			collectNames(f.Type, t.Generics, &names)
		}
	case *TypeAlias:
		collectNames(t.Type, t.Generics, &names)
	case *Enum:
		for _, v := range t.Variants {
			switch variant := v.(type) {
			case *TupleVariant:
				collectNames(variant.Type, t.Generics, &names)
			case *StructVariant:
				for _, f := range variant.Fields {
					collectNames(f.Type, t.Generics, &names)
				}
			}
		}
	}
	return dedup(names)
}

func collectNames(ref TypeRef, generics []string, names *[]string) {
	switch t := ref.(type) {
	case *SimpleRef:
		if !containsName(generics, t.Name) {
			*names = append(*names, t.Name)
		}
	case *GenericRef:
		if !containsName(generics, t.Name) {
			*names = append(*names, t.Name)
		}
		for _, p := range t.Params {
			collectNames(p, generics, names)
		}
	case *SpecialRef:
		switch {
		case t.Kind == KindMap:
			collectNames(t.Key, generics, names)
			collectNames(t.Value, generics, names)
		case t.Kind.HasElem():
			collectNames(t.Elem, generics, names)
		}
	}
}
