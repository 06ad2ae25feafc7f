package diagnostic

import (
	"bytes"
	"go/token"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	pos := token.Position{Filename: "model/customer.go", Line: 12, Column: 2}

	d := Diagnostic{
		Severity: DiagnosticError,
		Code:     CodeMissingSetter,
		Message:  "setter expected",
		Class:    "model.Customer",
		Member:   "email",
		Pos:      pos,
	}

	assert.Equal(t, "model/customer.go:12:2: model.Customer.email: [missing_setter] setter expected", d.String())

	d.Pos = token.Position{}
	d.Member = ""
	assert.Equal(t, "model.Customer: [missing_setter] setter expected", d.String())

	d.Class = ""
	d.Code = ""
	assert.Equal(t, "setter expected", d.String())
}

func TestDiagnostics_Scoping(t *testing.T) {
	var d Diagnostics

	assert.True(t, d.IsValid())
	require.NoError(t, d.Error())

	d.AddError(CodeColumnCollision, token.Position{}, "a.One", "ID", "dup")
	d.AddError(CodeNotStruct, token.Position{}, "a.Two", "", "not a struct")
	d.AddWarning(CodeMissingGetter, token.Position{}, "a.One", "secret", "no getter")

	assert.True(t, d.HasErrors())
	assert.Len(t, d.ForClass("a.One"), 1)
	assert.Len(t, d.WithCode(CodeMissingGetter), 1)
	assert.Equal(t, "warning", d.Warnings[0].Severity.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(7).String())

	err := d.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[column_collision] dup")
	assert.Contains(t, err.Error(), "[not_struct] not a struct")

	var other Diagnostics
	other.AddInfo(CodeMissingGetter, token.Position{}, "", "", "x")
	d.Merge(other)
	assert.Len(t, d.Infos, 1)
}

func TestReport(t *testing.T) {
	color.NoColor = true

	var d Diagnostics
	d.AddError(CodeMissingSetter, token.Position{}, "m.User", "name", "no setter", "add SetName(string)")
	d.AddWarning(CodeMissingGetter, token.Position{}, "m.User", "name", "no getter")

	var buf bytes.Buffer
	Report(&buf, d)

	assert.Equal(t,
		"error: m.User.name: [missing_setter] no setter\n"+
			"    hint: add SetName(string)\n"+
			"warning: m.User.name: [missing_getter] no getter\n",
		buf.String())
}
