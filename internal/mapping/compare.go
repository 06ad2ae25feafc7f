package mapping

import (
	"fmt"
	"go/token"
	"strings"

	"rowmapper-generator/internal/common"
	"rowmapper-generator/internal/diagnostic"
	"rowmapper-generator/internal/plan"
)

// Compare reports every difference between the locked manifest and the
// current one as a lock_drift error. Classes and columns are visited in lock
// order, then whatever is new.
func Compare(locked, current *plan.Manifest) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics

	if locked == nil || current == nil {
		res.AddError(diagnostic.CodeLockDrift, token.Position{}, "", "", "nothing to compare")
		return res
	}

	now := indexClasses(current.Classes)
	seen := make(map[string]struct{}, len(locked.Classes))

	for i := range locked.Classes {
		lc := &locked.Classes[i]
		seen[lc.Type] = struct{}{}

		cc, ok := now[lc.Type]
		if !ok {
			drift(&res, lc.Type, "", "is locked but has no mapper anymore")
			continue
		}

		compareClass(&res, lc, cc)
	}

	for i := range current.Classes {
		cc := &current.Classes[i]
		if _, ok := seen[cc.Type]; !ok {
			drift(&res, cc.Type, "", "has a mapper but is not in the lock file")
		}
	}

	return res
}

func compareClass(res *diagnostic.Diagnostics, locked, current *plan.ManifestClass) {
	for _, d := range []struct {
		what     string
		was, now string
	}{
		{"mapper", locked.Mapper, current.Mapper},
		{"package", locked.Package, current.Package},
		{"constructor", locked.Constructor, current.Constructor},
		{"ancestors", strings.Join(locked.Ancestors, ", "), strings.Join(current.Ancestors, ", ")},
	} {
		if d.was != d.now {
			drift(res, locked.Type, "", fmt.Sprintf("%s changed from %q to %q", d.what, d.was, d.now))
		}
	}

	now := make(map[string]*plan.ManifestBinding, len(current.Bindings))
	for i := range current.Bindings {
		now[current.Bindings[i].Column] = &current.Bindings[i]
	}

	seen := make(map[string]struct{}, len(locked.Bindings))

	for i := range locked.Bindings {
		lb := &locked.Bindings[i]
		seen[lb.Column] = struct{}{}

		cb, ok := now[lb.Column]
		if !ok {
			drift(res, locked.Type, lb.Member, fmt.Sprintf("column %q is locked but no longer bound", lb.Column))
			continue
		}

		if changes := bindingChanges(lb, cb); len(changes) > 0 {
			drift(res, locked.Type, cb.Member,
				fmt.Sprintf("column %q changed: %s", lb.Column, strings.Join(changes, ", ")))
		}
	}

	for i := range current.Bindings {
		cb := &current.Bindings[i]
		if _, ok := seen[cb.Column]; !ok {
			drift(res, locked.Type, cb.Member, fmt.Sprintf("column %q is bound but not in the lock file", cb.Column))
		}
	}
}

func bindingChanges(was, now *plan.ManifestBinding) []string {
	var out []string

	diff := func(what, a, b string) {
		if a != b {
			out = append(out, fmt.Sprintf("%s %q -> %q", what, a, b))
		}
	}

	diff("member", was.Member, now.Member)
	diff("kind", was.Kind, now.Kind)
	diff("via", was.Via, now.Via)
	diff("owner", was.Owner, now.Owner)
	diff("category", was.Category, now.Category)
	diff("builder", was.Builder, now.Builder)
	diff("encode", was.Encode, now.Encode)

	if was.Strict != now.Strict {
		out = append(out, fmt.Sprintf("strict %t -> %t", was.Strict, now.Strict))
	}

	return out
}

func drift(res *diagnostic.Diagnostics, typ, member, message string) {
	res.AddError(diagnostic.CodeLockDrift, token.Position{}, qualified(typ), member, message)
}

func indexClasses(classes []plan.ManifestClass) map[string]*plan.ManifestClass {
	out := make(map[string]*plan.ManifestClass, len(classes))
	for i := range classes {
		out[classes[i].Type] = &classes[i]
	}

	return out
}

// pkgOf splits "example.com/app/people.Customer" into its package path.
func pkgOf(typ string) string {
	if i := strings.LastIndex(typ, "."); i > 0 && !strings.Contains(typ[i:], "/") {
		return typ[:i]
	}

	return ""
}

func qualified(typ string) string {
	pkg := pkgOf(typ)
	if pkg == "" {
		return typ
	}

	return common.QualifiedName(pkg, typ[len(pkg)+1:])
}
