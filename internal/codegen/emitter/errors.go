package emitter

import "fmt"

// GenericKeyForbiddenError reports a map keyed by a bare generic parameter
// of the enclosing declaration. Target-language map keys must resolve to
// concrete, hashable shapes, so the offending declaration cannot be emitted.
// The error is recoverable at the pipeline level: the declaration is skipped
// and the run continues.
type GenericKeyForbiddenError struct {
	Name string
}

func (e *GenericKeyForbiddenError) Error() string {
	return fmt.Sprintf("map key cannot be the generic parameter %s", e.Name)
}
