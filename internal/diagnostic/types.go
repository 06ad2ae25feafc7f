package diagnostic

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"rowmapper-generator/internal/common"
)

// Diagnostics holds all diagnostic information from a pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Message is the human-readable description.
	Message string
	// Class is the qualified name of the class this relates to (if any).
	Class string
	// Member is the field or method name this relates to (if any).
	Member string
	// Pos is the offending source location.
	Pos token.Position
	// Suggestions are potential fixes.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends a diagnostic to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, pos token.Position, class, member, message string, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    DiagnosticError,
		Code:        code,
		Message:     message,
		Class:       class,
		Member:      member,
		Pos:         pos,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, pos token.Position, class, member, message string) {
	d.Add(Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Class:    class,
		Member:   member,
		Pos:      pos,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code Code, pos token.Position, class, member, message string) {
	d.Add(Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Class:    class,
		Member:   member,
		Pos:      pos,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// ForClass returns the error diagnostics reported against class.
func (d *Diagnostics) ForClass(class string) []Diagnostic {
	var out []Diagnostic

	for _, e := range d.Errors {
		if e.Class == class {
			out = append(out, e)
		}
	}

	return out
}

// WithCode returns all diagnostics of every severity carrying code.
func (d *Diagnostics) WithCode(code Code) []Diagnostic {
	var out []Diagnostic

	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "\n"))
}

// Subject returns "Class.Member", "Class" or "Member", whichever is known.
func (d Diagnostic) Subject() string {
	switch {
	case d.Class != "" && d.Member != "":
		return d.Class + "." + d.Member
	case d.Class != "":
		return d.Class
	default:
		return d.Member
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Pos.IsValid() {
		prefix = append(prefix, d.Pos.String()+":")
	}

	if subject := d.Subject(); subject != "" {
		prefix = append(prefix, subject+":")
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + " " + msg
	}

	return msg
}
