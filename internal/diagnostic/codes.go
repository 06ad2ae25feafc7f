package diagnostic

// Code identifies a kind of diagnostic.
type Code string

// Structural.
const (
	CodeNotFieldOrMethod       Code = "not_field_or_method"
	CodeNotStruct              Code = "not_struct"
	CodeNoZeroArgConstructor   Code = "no_zero_arg_constructor"
	CodeEmptyColumn            Code = "empty_column"
	CodeInvalidColumnOption    Code = "invalid_column_option"
	CodeEmbeddedPointerBinding Code = "embedded_pointer_binding"
)

// Visibility.
const (
	CodeMissingSetter              Code = "missing_setter"
	CodeSetterNotExported          Code = "setter_not_exported"
	CodeInaccessibleInheritedField Code = "inaccessible_inherited_field"
)

// Shape.
const (
	CodeSetterArity         Code = "setter_arity"
	CodeSetterTypeMismatch  Code = "setter_type_mismatch"
	CodeSetterValueReceiver Code = "setter_value_receiver"
)

const (
	CodeColumnCollision     Code = "column_collision"
	CodeUnsupportedType     Code = "unsupported_type"
	CodeMapperNameCollision Code = "mapper_name_collision"

	// CodeMissingGetter is a warning: the column is decoded but left out of Encode.
	CodeMissingGetter Code = "missing_getter"

	// CodeLockDrift reports resolved bindings that differ from the lock file.
	CodeLockDrift Code = "lock_drift"
)
