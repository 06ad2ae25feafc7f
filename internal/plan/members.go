package plan

import (
	"fmt"
	"go/token"
	"go/types"
	"slices"
	"strings"

	"rowmapper-generator/internal/analyze"
	"rowmapper-generator/internal/classify"
	"rowmapper-generator/internal/diagnostic"
	"rowmapper-generator/internal/match"
)

var knownOptions = []string{OptionOptional}

// resolveMember turns one marked member into a binding, reporting every
// problem it finds against the class.
func (c *classResolution) resolveMember(m *analyze.Member) (*Binding, bool) {
	if !c.checkTag(m) {
		return nil, false
	}

	if m.ViaPointer {
		c.errorf(diagnostic.CodeEmbeddedPointerBinding, m.Pos, m.Name,
			"%s binds column %q through an embedded pointer; embed %s by value so a decoded item never dereferences nil",
			analyze.MemberPath(c.class.ID, m), m.Tag.Name, m.Owner.Name)

		return nil, false
	}

	var (
		b  *Binding
		ok bool
	)

	switch m.Kind {
	case analyze.MemberField:
		b, ok = c.resolveField(m)
	case analyze.MemberMethod:
		b, ok = c.resolveMethod(m)
	}

	if !ok {
		return nil, false
	}

	category, supported := classify.Of(b.Type)
	if !supported {
		c.errorf(diagnostic.CodeUnsupportedType, m.Pos, m.Name,
			"type %s of %s %s in %s is not supported; use one of %s",
			types.TypeString(b.Type, relativeTo(c.outPkg)), m.Kind, m.Name, c.class.ID.Name, supportedTypes())

		return nil, false
	}

	b.Category = category

	if first, dup := c.byColumn[b.Column]; dup {
		c.errorf(diagnostic.CodeColumnCollision, m.Pos, m.Name,
			"%s %s in %s is bound to column name = %q, but this column name is already used by %s %s in %s",
			m.Kind, m.Name, m.Owner.Qualified(), b.Column, first.Kind, first.Name, first.Owner.Qualified())

		return nil, false
	}

	c.byColumn[b.Column] = m

	if b.Getter == nil {
		c.diags.AddWarning(diagnostic.CodeMissingGetter, m.Pos, c.name(), m.Name,
			fmt.Sprintf("column %q cannot be read back from %s; Encode leaves it out (add an exported getter %s() %s)",
				b.Column, c.class.ID.Name, builderBase(b), category.GoType()))
	}

	return b, true
}

func (c *classResolution) checkTag(m *analyze.Member) bool {
	ok := true

	if m.Tag.Name == "" {
		c.errorf(diagnostic.CodeEmptyColumn, m.Pos, m.Name,
			"%s %s has an empty column name", m.Kind, analyze.MemberPath(c.class.ID, m))

		ok = false
	}

	for _, opt := range m.Tag.Options {
		if !slices.Contains(knownOptions, opt) {
			c.errorf(diagnostic.CodeInvalidColumnOption, m.Pos, m.Name,
				"unknown column option %q on %s; known options: %s", opt, m.Name, strings.Join(knownOptions, ", "))

			ok = false
		}
	}

	return ok
}

func (c *classResolution) newBinding(m *analyze.Member, kind BindingKind) *Binding {
	return &Binding{
		Column: m.Tag.Name,
		Owner:  m.Owner,
		Member: m.Name,
		Kind:   kind,
		Type:   m.Type,
		Strict: !m.Tag.Has(OptionOptional),
		Pos:    m.Pos,
	}
}

// resolveField binds a reachable field directly and an unreachable one
// through its setter.
func (c *classResolution) resolveField(m *analyze.Member) (*Binding, bool) {
	if selector, ok := c.fieldSelector(m); ok {
		b := c.newBinding(m, BindingField)
		b.Field = &FieldTarget{Name: m.Name, Selector: selector}
		b.Getter = &Getter{Expr: selector}

		return b, true
	}

	setter, ok := c.findSetter(m)
	if !ok {
		return nil, false
	}

	b := c.newBinding(m, BindingAccessor)
	b.Accessor = &AccessorTarget{Method: setter.Name, Field: m.Name}
	b.Getter = c.findGetter(match.DeriveGetterNames(m.Name), m.Type)

	return b, true
}

// fieldSelector returns how the output package reaches the field, if it can.
func (c *classResolution) fieldSelector(m *analyze.Member) (string, bool) {
	if !c.reachable(m.Exported, m.DeclPkg) {
		return "", false
	}

	if m.Promoted {
		return m.Name, true
	}

	parts := make([]string, 0, len(m.Path)+1)
	for _, seg := range m.Path {
		if !c.reachable(seg.Exported, seg.DeclPkg) {
			return "", false
		}

		parts = append(parts, seg.Name)
	}

	return strings.Join(append(parts, m.Name), "."), true
}

// findSetter tries the derived setter names in priority order. The first
// candidate that fits the field wins; when every existing candidate is
// rejected, the first rejection is reported.
func (c *classResolution) findSetter(m *analyze.Member) (analyze.Method, bool) {
	candidates := match.DeriveAccessorNames(m.Name)
	fieldType := types.TypeString(m.Type, relativeTo(c.outPkg))

	var rejected *setterProblem

	for _, name := range candidates {
		setter, ok := c.class.Setter(name)
		if !ok {
			continue
		}

		problem := c.checkSetter(m, setter)
		if problem == nil {
			return setter, true
		}

		if rejected == nil {
			rejected = problem
		}
	}

	if rejected != nil {
		c.errorf(rejected.code, rejected.pos, m.Name, "%s", rejected.message)

		return analyze.Method{}, false
	}

	for _, name := range candidates {
		lower := "s" + name[1:]
		if setter, ok := c.class.Setter(lower); ok && !c.reachable(setter.Exported, setter.DeclPkg) {
			c.errorf(diagnostic.CodeSetterNotExported, setter.Pos, m.Name,
				"setter %s for field %s in %s is not exported and cannot be called from package %s; rename it to %s",
				lower, m.Name, c.class.ID.Name, c.outPkg, name)

			return analyze.Method{}, false
		}
	}

	if m.Inherited(c.class.ID) && m.DeclPkg != c.class.ID.PkgPath {
		c.diags.AddError(diagnostic.CodeInaccessibleInheritedField, m.Pos, c.name(), m.Name,
			fmt.Sprintf("field %s is unexported in %s and can not be accessed from %s: %s is declared in package %s, "+
				"outside package %s of %s",
				m.Name, m.Owner.Qualified(), c.class.ID.Name, m.Owner.Name, m.Owner.PkgPath, c.class.ID.PkgPath, c.class.ID.Name),
			fmt.Sprintf("move %s into package %s", m.Owner.Name, c.class.ID.PkgPath),
			fmt.Sprintf("export the field, or add an exported setter %s(%s) to %s", candidates[0], fieldType, m.Owner.Name))

		return analyze.Method{}, false
	}

	suggestions := []string{
		fmt.Sprintf("add func (x *%s) %s(value %s)", m.Owner.Name, candidates[0], fieldType),
		fmt.Sprintf("or mark your own setter with //rowmapper:column %s", m.Tag.Name),
	}

	for _, near := range match.Suggest(candidates[0], c.class.SetterNames(), 2) {
		suggestions = append(suggestions, "did you mean "+near+"?")
	}

	c.diags.AddError(diagnostic.CodeMissingSetter, m.Pos, c.name(), m.Name,
		fmt.Sprintf("the field %s in %s is not reachable from package %s. A corresponding setter method %s(%s) "+
			"is expected but was not found",
			m.Name, c.class.ID.Name, c.outPkg, candidates[0], fieldType),
		suggestions...)

	return analyze.Method{}, false
}

// setterProblem is the reason a derived setter cannot write its field.
type setterProblem struct {
	code    diagnostic.Code
	pos     token.Position
	message string
}

// checkSetter validates a derived setter against the field it writes and
// returns nil when it fits.
func (c *classResolution) checkSetter(m *analyze.Member, setter analyze.Method) *setterProblem {
	fieldType := types.TypeString(m.Type, relativeTo(c.outPkg))
	reject := func(code diagnostic.Code, format string, args ...any) *setterProblem {
		return &setterProblem{code: code, pos: setter.Pos, message: fmt.Sprintf(format, args...)}
	}

	if !c.reachable(setter.Exported, setter.DeclPkg) {
		return reject(diagnostic.CodeSetterNotExported,
			"setter %s for field %s is not reachable from package %s", setter.Name, m.Name, c.outPkg)
	}

	if setter.ViaPointer {
		return reject(diagnostic.CodeEmbeddedPointerBinding,
			"setter %s for field %s is promoted through an embedded pointer", setter.Name, m.Name)
	}

	params := setter.Signature.Params()
	if params.Len() != 1 || setter.Signature.Variadic() {
		return reject(diagnostic.CodeSetterArity,
			"setter %s for field %s must take exactly one parameter of type %s, it takes %d",
			setter.Name, m.Name, fieldType, params.Len())
	}

	if !types.Identical(params.At(0).Type(), m.Type) {
		return reject(diagnostic.CodeSetterTypeMismatch,
			"setter %s(%s) does not match the type of field %s; expected %s(%s)",
			setter.Name, types.TypeString(params.At(0).Type(), relativeTo(c.outPkg)), m.Name, setter.Name, fieldType)
	}

	if !setter.PointerRecv {
		return reject(diagnostic.CodeSetterValueReceiver,
			"setter %s for field %s has a value receiver and cannot modify the decoded item", setter.Name, m.Name)
	}

	return nil
}

// resolveMethod validates a method carrying the column marker itself.
func (c *classResolution) resolveMethod(m *analyze.Member) (*Binding, bool) {
	if !c.reachable(m.Exported, m.DeclPkg) {
		c.errorf(diagnostic.CodeSetterNotExported, m.Pos, m.Name,
			"method %s in %s is marked with column %q but is not reachable from package %s",
			m.Name, m.Owner.Qualified(), m.Tag.Name, c.outPkg)

		return nil, false
	}

	if m.Signature.Params().Len() != 1 || m.Signature.Variadic() {
		c.errorf(diagnostic.CodeSetterArity, m.Pos, m.Name,
			"method %s in %s is marked with column %q and must take exactly one parameter, it takes %d",
			m.Name, m.Owner.Qualified(), m.Tag.Name, m.Signature.Params().Len())

		return nil, false
	}

	if !m.PointerRecv {
		c.errorf(diagnostic.CodeSetterValueReceiver, m.Pos, m.Name,
			"method %s in %s has a value receiver and cannot modify the decoded item", m.Name, m.Owner.Qualified())

		return nil, false
	}

	b := c.newBinding(m, BindingAccessor)
	b.Accessor = &AccessorTarget{Method: m.Name}

	base := match.PropertyName(m.Name, true)
	b.Getter = c.findGetter([]string{base, match.GetterVerb + base}, m.Type)

	return b, true
}

// findGetter returns the first reachable getter candidate returning typ.
func (c *classResolution) findGetter(candidates []string, typ types.Type) *Getter {
	for _, name := range candidates {
		getter, ok := c.class.Getter(name)
		if !ok || getter.ViaPointer || !c.reachable(getter.Exported, getter.DeclPkg) {
			continue
		}

		if !types.Identical(getter.Signature.Results().At(0).Type(), typ) {
			continue
		}

		return &Getter{Expr: name + "()"}
	}

	return nil
}

func relativeTo(pkgPath string) types.Qualifier {
	return func(p *types.Package) string {
		if p.Path() == pkgPath {
			return ""
		}

		return p.Name()
	}
}

func supportedTypes() string {
	var names []string
	for _, c := range classify.All() {
		names = append(names, c.GoType())
	}

	return strings.Join(names, ", ")
}
