// Package valid declares mappable types that resolve without errors, both
// next to the types and from a separate output package.
package valid

import "rowmapper-generator/internal/fixtures/valid/base"

// Record mixes direct fields, setters, an inherited column and a marked method.
//
//rowmapper:mappable
type Record struct {
	base.Stamp

	Name   string  `column:"name"`
	mScore float64 `column:"score"`
	hidden int64   `column:"hidden,optional"`

	label string
}

func NewRecord() *Record {
	return &Record{Name: "unnamed"}
}

func (r *Record) SetScore(v float64) {
	r.mScore = v
}

func (r *Record) Score() float64 {
	return r.mScore
}

func (r *Record) SetHidden(v int64) {
	r.hidden = v
}

// ApplyLabel has no getter, so Encode leaves the label out.
//
//rowmapper:column label
func (r *Record) ApplyLabel(v string) {
	r.label = v
}

func (r *Record) Describe() string {
	return r.Name + ":" + r.label
}

// Plain is not mappable.
type Plain struct {
	Name string `column:"name"`
}
