// Package gen renders one mapper file per resolved class.
//
// Generation uses text/template + go/format. Every mapper exposes:
//   - DecodeOne / DecodeOneWith: first cursor row to *T
//   - DecodeList / DecodeListWith: every cursor row to []*T
//   - NewValuesBuilder: a typed builder staging rowmap.Values
//   - Encode: the column values of an existing item
//
// Column indexes are resolved once per cursor; every column read is guarded
// by its index so optional columns can be absent.
package gen
