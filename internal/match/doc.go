// Package match holds the naming heuristics used while resolving bindings.
//
// Key functions:
//   - DeriveAccessorNames: setter candidates for a field, in priority order
//   - DeriveGetterNames: getter candidates used by generated encoders
//   - ExportedIdent / SnakeCase: identifiers and file names derived from names
//   - Suggest: closest existing method names for remediation hints
package match
