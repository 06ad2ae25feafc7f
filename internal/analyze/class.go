package analyze

import (
	"go/ast"
	"go/types"
	"reflect"
	"slices"

	"rowmapper-generator/internal/match"
)

// buildClass collects everything about one marked type.
func (a *Analyzer) buildClass(pkgInfo *PackageInfo, obj *types.TypeName, spec *ast.TypeSpec) *ClassInfo {
	info := &ClassInfo{
		ID:      TypeID{PkgPath: pkgInfo.Path, Name: obj.Name()},
		PkgName: pkgInfo.Name,
		Dir:     pkgInfo.Dir,
		Pos:     a.fset.Position(obj.Pos()),
	}

	if obj.IsAlias() {
		info.Kind = "alias"
		return info
	}

	named, ok := obj.Type().(*types.Named)
	if !ok {
		info.Kind = kindName(obj.Type())
		return info
	}

	info.Named = named
	info.Generic = named.TypeParams().Len() > 0

	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		info.Kind = kindName(named.Underlying())
		return info
	}

	info.Kind = "struct"

	if astStruct, ok := spec.Type.(*ast.StructType); ok {
		a.collectFieldComments(info, astStruct)
	}

	a.collectFields(info, named, st)
	a.collectMethods(info, named)
	info.Constructor = a.findConstructor(obj)

	return info
}

// collectFieldComments reports column directives written as field comments
// instead of struct tags.
func (a *Analyzer) collectFieldComments(info *ClassInfo, st *ast.StructType) {
	for _, field := range st.Fields.List {
		d, ok := findDirective(directives(field.Doc, field.Comment), DirectiveColumn)
		if !ok {
			continue
		}

		element := "field comment"
		if len(field.Names) > 0 {
			element = "field comment on " + field.Names[0].Name
		}

		info.Markers = append(info.Markers, a.marker(d, element, info.ID))
	}
}

type embeddedStruct struct {
	named *types.Named
	st    *types.Struct
	path  []PathSegment
	ptr   bool
	depth int
}

// collectFields walks the class and its embedded structs breadth first so
// ancestors come out closest first.
func (a *Analyzer) collectFields(info *ClassInfo, class *types.Named, st *types.Struct) {
	queue := []embeddedStruct{{named: class, st: st}}
	seen := map[*types.Named]bool{class.Origin(): true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		owner := idOf(cur.named)

		for i := range cur.st.NumFields() {
			field := cur.st.Field(i)
			raw, tagged := reflect.StructTag(cur.st.Tag(i)).Lookup(a.config.TagKey)

			if field.Embedded() {
				if tagged {
					info.Markers = append(info.Markers, Marker{
						Directive: DirectiveColumn,
						Element:   "embedded field " + field.Name(),
						Class:     info.ID,
						Pos:       a.fset.Position(field.Pos()),
					})
				}

				named, ptr, ok := asEmbeddedStruct(field.Type())
				if !ok || seen[named.Origin()] {
					continue
				}

				seen[named.Origin()] = true

				path := append(slices.Clone(cur.path), PathSegment{
					Name:     field.Name(),
					Exported: field.Exported(),
					Pointer:  ptr,
					DeclPkg:  pkgPathOf(field),
				})

				next := embeddedStruct{
					named: named,
					st:    named.Underlying().(*types.Struct),
					path:  path,
					ptr:   cur.ptr || ptr,
					depth: cur.depth + 1,
				}

				info.Ancestors = append(info.Ancestors, Ancestor{
					ID:      idOf(named),
					Path:    path,
					Depth:   next.depth,
					Pointer: next.ptr,
				})
				queue = append(queue, next)

				continue
			}

			if !tagged {
				continue
			}

			info.Columns = append(info.Columns, Member{
				Kind:       MemberField,
				Name:       field.Name(),
				Tag:        ParseColumnTag(raw),
				Owner:      owner,
				DeclPkg:    pkgPathOf(field),
				Exported:   field.Exported(),
				Path:       cur.path,
				Promoted:   isPromoted(class, field),
				ViaPointer: cur.ptr,
				Type:       field.Type(),
				Pos:        a.fset.Position(field.Pos()),
			})
		}
	}
}

// collectMethods records marked, setter-shaped and getter-shaped methods of
// the class's pointer method set, including promoted ones.
func (a *Analyzer) collectMethods(info *ClassInfo, class *types.Named) {
	ms := types.NewMethodSet(types.NewPointer(class))

	for i := range ms.Len() {
		sel := ms.At(i)

		fn, ok := sel.Obj().(*types.Func)
		if !ok {
			continue
		}

		sig, ok := fn.Type().(*types.Signature)
		if !ok || sig.Recv() == nil {
			continue
		}

		recv, ptrRecv := receiverOf(sig)
		if recv == nil {
			continue
		}

		method := Method{
			Name:        fn.Name(),
			DeclPkg:     pkgPathOf(fn),
			Exported:    fn.Exported(),
			Owner:       idOf(recv),
			Signature:   sig,
			PointerRecv: ptrRecv,
			ViaPointer:  pathHasPointer(class, sel.Index()),
			Pos:         a.fset.Position(fn.Pos()),
		}

		if d, ok := a.methodDirective(method.Owner, method.Name); ok {
			member := Member{
				Kind:        MemberMethod,
				Name:        method.Name,
				Tag:         ParseColumnTag(d.Args),
				Owner:       method.Owner,
				DeclPkg:     method.DeclPkg,
				Exported:    method.Exported,
				ViaPointer:  method.ViaPointer,
				Signature:   sig,
				PointerRecv: ptrRecv,
				Pos:         method.Pos,
			}

			if sig.Params().Len() == 1 {
				member.Type = sig.Params().At(0).Type()
			}

			info.Columns = append(info.Columns, member)
		}

		if match.IsSetterShaped(method.Name) {
			info.Setters = append(info.Setters, method)
		}

		if sig.Params().Len() == 0 && sig.Results().Len() == 1 {
			info.Getters = append(info.Getters, method)
		}
	}
}

// findConstructor looks up New<T> (or new<T> for unexported classes) in the
// class's package.
func (a *Analyzer) findConstructor(obj *types.TypeName) *Constructor {
	scope := obj.Pkg().Scope()
	base := match.Capitalize(obj.Name())

	for _, name := range []string{"New" + base, "new" + base} {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok {
			continue
		}

		sig := fn.Type().(*types.Signature)
		ctor := &Constructor{
			Name:     name,
			Params:   sig.Params().Len(),
			Variadic: sig.Variadic(),
			Exported: fn.Exported(),
			Pos:      a.fset.Position(fn.Pos()),
		}

		if sig.Results().Len() == 1 {
			res := sig.Results().At(0).Type()
			if types.Identical(res, obj.Type()) {
				ctor.ReturnsClass = true
			} else if p, ok := res.(*types.Pointer); ok && types.Identical(p.Elem(), obj.Type()) {
				ctor.ReturnsClass = true
				ctor.ReturnsPointer = true
			}
		}

		return ctor
	}

	return nil
}

func idOf(named *types.Named) TypeID {
	obj := named.Obj()
	if obj.Pkg() == nil {
		return TypeID{Name: obj.Name()}
	}

	return TypeID{PkgPath: obj.Pkg().Path(), Name: obj.Name()}
}

func pkgPathOf(obj types.Object) string {
	if obj.Pkg() == nil {
		return ""
	}

	return obj.Pkg().Path()
}

// asEmbeddedStruct unwraps an embedded field type to a named struct.
func asEmbeddedStruct(t types.Type) (*types.Named, bool, bool) {
	ptr := false
	if p, ok := types.Unalias(t).(*types.Pointer); ok {
		ptr = true
		t = p.Elem()
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil, false, false
	}

	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil, false, false
	}

	return named, ptr, true
}

func receiverOf(sig *types.Signature) (*types.Named, bool) {
	t := sig.Recv().Type()
	ptr := false

	if p, ok := t.(*types.Pointer); ok {
		ptr = true
		t = p.Elem()
	}

	named, _ := types.Unalias(t).(*types.Named)

	return named, ptr
}

func isPromoted(class *types.Named, field *types.Var) bool {
	obj, _, _ := types.LookupFieldOrMethod(types.NewPointer(class), true, field.Pkg(), field.Name())
	return obj == field
}

// pathHasPointer reports whether a promoted selection passes through an
// embedded pointer.
func pathHasPointer(class *types.Named, index []int) bool {
	var t types.Type = class

	for _, i := range index[:len(index)-1] {
		st, ok := types.Unalias(t).Underlying().(*types.Struct)
		if !ok {
			return false
		}

		field := st.Field(i)
		if _, ok := types.Unalias(field.Type()).(*types.Pointer); ok {
			return true
		}

		t = field.Type()
	}

	return false
}

func kindName(t types.Type) string {
	switch tt := t.Underlying().(type) {
	case *types.Interface:
		return "interface"
	case *types.Basic:
		return tt.Name()
	case *types.Pointer:
		return "pointer"
	case *types.Slice:
		return "slice"
	case *types.Array:
		return "array"
	case *types.Map:
		return "map"
	case *types.Signature:
		return "func"
	case *types.Chan:
		return "chan"
	default:
		return t.String()
	}
}
