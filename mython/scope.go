package mython

// Scope maps names to values for a single activation frame. Method calls
// get a fresh scope; the top-level program runs in the global one.
type Scope map[string]Value

// returnedValue is the reserved scope key that marks an early return.
// Only Return writes it and only Compound/MethodBody read it. The
// parser never produces it as a user identifier and rejects return
// statements outside method bodies, so the sentinel only ever appears
// in the fresh scope of a method call, never in the global scope.
const returnedValue = "returned_value"

func NewScope() Scope {
	return make(Scope)
}
