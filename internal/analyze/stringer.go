package analyze

import (
	"strings"
)

// TypePath builds a readable path string for a member.
// Examples:
//   - "Customer" for the class itself
//   - "Customer.Email" for an own field
//   - "Customer.Person.mLastname" for a field of an embedded struct
//   - "Customer.*Audit.Version" for a field behind an embedded pointer
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// Pointer marks the last element as reached through a pointer.
func (p *TypePath) Pointer() *TypePath {
	if len(p.parts) == 0 {
		return &TypePath{parts: []string{"*"}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] = "*" + newParts[len(newParts)-1]

	return &TypePath{parts: newParts}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// MemberPath renders where a member sits relative to its class.
// Methods are shown on the class; fields show the embedded path.
func MemberPath(class TypeID, m *Member) string {
	path := NewTypePath(class.Name)

	if m.Kind == MemberField {
		for _, seg := range m.Path {
			path = path.Field(seg.Name)
			if seg.Pointer {
				path = path.Pointer()
			}
		}
	}

	return path.Field(m.Name).String()
}
