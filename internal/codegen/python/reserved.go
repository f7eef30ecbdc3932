package python

import "github.com/iancoleman/strcase"

// pythonKeywords are the identifiers that cannot be used as attribute names.
var pythonKeywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {}, "finally": {},
	"for": {}, "from": {}, "global": {}, "if": {}, "import": {}, "in": {},
	"is": {}, "lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

// propertyAwareRename converts a schema identifier into a safe attribute
// name: idiomatic snake_case, with a trailing underscore appended when the
// result collides with a keyword.
func propertyAwareRename(name string) string {
	snake := strcase.ToSnake(name)
	if _, reserved := pythonKeywords[snake]; reserved {
		return snake + "_"
	}
	return snake
}
