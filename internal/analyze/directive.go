package analyze

import (
	"go/ast"
	"go/token"
	"strings"
)

const directivePrefix = "//rowmapper:"

// Directive names.
const (
	DirectiveMappable = "mappable"
	DirectiveColumn   = "column"
)

// Directive is one //rowmapper:name args comment line.
type Directive struct {
	Name string
	Args string
	Pos  token.Pos
}

func directives(groups ...*ast.CommentGroup) []Directive {
	var out []Directive

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, directivePrefix)
			if !ok {
				continue
			}

			name, args, _ := strings.Cut(rest, " ")
			out = append(out, Directive{
				Name: strings.TrimSpace(name),
				Args: strings.TrimSpace(args),
				Pos:  c.Slash,
			})
		}
	}

	return out
}

func findDirective(dirs []Directive, name string) (Directive, bool) {
	for _, d := range dirs {
		if d.Name == name {
			return d, true
		}
	}

	return Directive{}, false
}

// receiverName returns the base type name of a method receiver expression.
func receiverName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return receiverName(e.X)
	case *ast.IndexExpr:
		return receiverName(e.X)
	case *ast.IndexListExpr:
		return receiverName(e.X)
	case *ast.ParenExpr:
		return receiverName(e.X)
	case *ast.Ident:
		return e.Name
	default:
		return ""
	}
}
