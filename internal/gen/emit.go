package gen

import (
	"fmt"
	"strconv"

	"rowmapper-generator/internal/classify"
	"rowmapper-generator/internal/plan"
)

// codec is how one category travels between a cursor, a field and a value bag.
type codec struct {
	// Reader is the cursor method returning the stored value.
	Reader string
	// Decode turns the stored value v into the field value.
	Decode string
	// Put is the Values method staging an encoded value.
	Put string
	// Encode turns the field value into the stored value.
	Encode string
	// NeedsTime is set when the generated code refers to package time.
	NeedsTime bool
}

// codecFor returns the codec of a category. It panics on a category the
// classifier never produces.
func codecFor(c classify.Category) codec {
	switch c {
	case classify.Int32:
		return codec{Reader: "Int32", Decode: "v", Put: "PutInt32", Encode: "value"}
	case classify.Int64:
		return codec{Reader: "Int64", Decode: "v", Put: "PutInt64", Encode: "value"}
	case classify.Int16:
		return codec{Reader: "Int16", Decode: "v", Put: "PutInt16", Encode: "value"}
	case classify.Float32:
		return codec{Reader: "Float32", Decode: "v", Put: "PutFloat32", Encode: "value"}
	case classify.Float64:
		return codec{Reader: "Float64", Decode: "v", Put: "PutFloat64", Encode: "value"}
	case classify.Bool:
		return codec{Reader: "Int32", Decode: "v != 0", Put: "PutBool", Encode: "value"}
	case classify.Bytes:
		return codec{Reader: "Blob", Decode: "v", Put: "PutBlob", Encode: "value"}
	case classify.Text:
		return codec{Reader: "String", Decode: "v", Put: "PutString", Encode: "value"}
	case classify.Timestamp:
		return codec{
			Reader:    "Int64",
			Decode:    "time.UnixMilli(v).UTC()",
			Put:       "PutInt64",
			Encode:    "value.UnixMilli()",
			NeedsTime: true,
		}
	default:
		panic(fmt.Sprintf("unsupported category %s", c))
	}
}

// decodeStep is one guarded column read of decodeRow.
type decodeStep struct {
	Index   int
	Column  string // quoted
	Strict  bool
	Reader  string
	Comment string
	// Assign is the complete statement storing the decoded value.
	Assign string
}

// builderStep is the value and null method pair of one column.
type builderStep struct {
	Method    string
	Column    string // quoted
	ParamType string
	Put       string
	Encode    string
	// Getter reads the column back from an item; empty when unreadable.
	Getter string
}

// CodeEmitter renders the per-binding parts of a mapper.
type CodeEmitter struct {
	comments bool
}

// NewCodeEmitter creates an emitter. With comments set, every decode step is
// annotated with the member it writes.
func NewCodeEmitter(comments bool) *CodeEmitter {
	return &CodeEmitter{comments: comments}
}

// DecodeStep builds the guarded decode statement of the i-th binding.
func (e *CodeEmitter) DecodeStep(i int, b *plan.Binding) decodeStep {
	c := codecFor(b.Category)

	step := decodeStep{
		Index:  i,
		Column: strconv.Quote(b.Column),
		Strict: b.Strict,
		Reader: c.Reader,
	}

	switch b.Kind {
	case plan.BindingField:
		step.Assign = fmt.Sprintf("item.%s = %s", b.Field.Selector, c.Decode)
	case plan.BindingAccessor:
		step.Assign = fmt.Sprintf("item.%s(%s)", b.Accessor.Method, c.Decode)
	default:
		panic(fmt.Sprintf("binding %s has no target", b.Column))
	}

	if e.comments {
		step.Comment = fmt.Sprintf("%s (%s) from %s", b.Member, b.Category, b.Owner.Qualified())
	}

	return step
}

// BuilderStep builds the builder methods of a binding.
func (e *CodeEmitter) BuilderStep(b *plan.Binding) builderStep {
	c := codecFor(b.Category)

	step := builderStep{
		Method:    b.BuilderMethod,
		Column:    strconv.Quote(b.Column),
		ParamType: b.Category.GoType(),
		Put:       c.Put,
		Encode:    c.Encode,
	}

	if b.Getter != nil {
		step.Getter = "item." + b.Getter.Expr
	}

	return step
}

// needsTime reports whether any binding makes the mapper refer to package time.
func needsTime(bindings []plan.Binding) bool {
	for _, b := range bindings {
		if codecFor(b.Category).NeedsTime {
			return true
		}
	}

	return false
}
