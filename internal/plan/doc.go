// Package plan resolves scanned classes into validated column bindings
// consumed by code generation.
//
// Resolution pipeline, per class:
//  1. Reject markers on elements that are neither fields nor methods
//  2. Require a struct with a reachable zero-argument constructor
//  3. Bind reachable fields directly and unreachable ones through setters
//  4. Validate marked methods, categories and column uniqueness
//  5. Pick getters for encoding and names for builder methods
//
// A class with any error yields no ResolvedClass; other classes are unaffected.
package plan
