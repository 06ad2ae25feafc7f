// Package analyze loads Go packages and extracts the classes carrying the
// mappable marker.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// per-pass model of every marked struct: its embedded ancestor chain (closest
// first), the members bound to columns, and the setter and getter shaped
// methods of its pointer method set.
//
// Markers:
//   - //rowmapper:mappable in a type's doc comment marks the class
//   - the struct tag `column:"name[,optional]"` binds a field
//   - //rowmapper:column name[,optional] in a method's doc comment binds a method
package analyze
