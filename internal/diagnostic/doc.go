// Package diagnostic provides structured, position-aware errors and warnings
// produced while resolving column bindings.
//
// Each diagnostic is scoped to one class (and optionally one member) so a
// failing class never hides the results of unrelated classes.
package diagnostic
