package diagnostic

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan)
	hintColor    = color.New(color.Faint)
)

// Report writes every diagnostic to w, errors first, followed by its suggestions.
func Report(w io.Writer, d Diagnostics) {
	for _, list := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			fmt.Fprintf(w, "%s %s\n", label(diag.Severity), diag)

			for _, s := range diag.Suggestions {
				fmt.Fprintf(w, "    %s\n", hintColor.Sprint("hint: "+s))
			}
		}
	}
}

func label(s DiagnosticSeverity) string {
	switch s {
	case DiagnosticError:
		return errorLabel.Sprint("error:")
	case DiagnosticWarning:
		return warningLabel.Sprint("warning:")
	default:
		return infoLabel.Sprint(s.String() + ":")
	}
}
