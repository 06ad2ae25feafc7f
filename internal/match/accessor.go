package match

import (
	"unicode"
	"unicode/utf8"
)

// SetterVerb prefixes every derived setter name.
const SetterVerb = "Set"

// GetterVerb prefixes the secondary getter candidate.
const GetterVerb = "Get"

// StripNotation removes the informal "m" member prefix: a name made of a
// lowercase 'm' followed by an uppercase letter loses the 'm' and has the next
// letter lowercased ("mLastname" -> "lastname", "mX" -> "x").
// It reports whether the prefix was present.
func StripNotation(name string) (string, bool) {
	if !hasNotation(name) {
		return name, false
	}

	rest := name[1:]
	r, size := utf8.DecodeRuneInString(rest)

	return string(unicode.ToLower(r)) + rest[size:], true
}

func hasNotation(name string) bool {
	if len(name) < 2 || name[0] != 'm' {
		return false
	}

	r, _ := utf8.DecodeRuneInString(name[1:])

	return unicode.IsUpper(r)
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}

	r, size := utf8.DecodeRuneInString(s)

	return string(unicode.ToUpper(r)) + s[size:]
}

// DeriveAccessorNames returns the setter names a field may be written
// through, in the order they must be tried: the notation-stripped form first,
// then the unstripped form. Names never repeat.
//
//	"firstname" -> ["SetFirstname"]
//	"mLastname" -> ["SetLastname", "SetMLastname"]
func DeriveAccessorNames(field string) []string {
	return derive(field, func(base string) []string {
		return []string{SetterVerb + Capitalize(base)}
	})
}

// DeriveGetterNames returns the getter names a field may be read through:
// the bare capitalized name, then the Get-prefixed one, stripped forms first.
//
//	"mLastname" -> ["Lastname", "GetLastname", "MLastname", "GetMLastname"]
func DeriveGetterNames(field string) []string {
	return derive(field, func(base string) []string {
		name := Capitalize(base)
		return []string{name, GetterVerb + name}
	})
}

func derive(field string, expand func(string) []string) []string {
	if field == "" {
		return nil
	}

	bases := []string{field}
	if stripped, ok := StripNotation(field); ok {
		bases = []string{stripped, field}
	}

	seen := make(map[string]struct{})

	var out []string

	for _, base := range bases {
		for _, name := range expand(base) {
			if _, dup := seen[name]; dup {
				continue
			}

			seen[name] = struct{}{}
			out = append(out, name)
		}
	}

	return out
}

// PropertyName returns the property a member stands for: the stripped and
// capitalized field name, or a setter name without its verb.
//
//	"mLastname" -> "Lastname"
//	"SetFirstname" -> "Firstname"
func PropertyName(member string, isMethod bool) string {
	if isMethod {
		if rest, ok := cutVerb(member); ok {
			return rest
		}

		return Capitalize(member)
	}

	stripped, _ := StripNotation(member)

	return Capitalize(stripped)
}

// IsSetterShaped reports whether name looks like a setter: "Set" or "set"
// followed by an uppercase letter.
func IsSetterShaped(name string) bool {
	_, ok := cutVerb(name)
	return ok
}

func cutVerb(name string) (string, bool) {
	if len(name) <= len(SetterVerb) {
		return "", false
	}

	if name[:3] != SetterVerb && name[:3] != "set" {
		return "", false
	}

	rest := name[3:]
	r, _ := utf8.DecodeRuneInString(rest)

	if !unicode.IsUpper(r) {
		return "", false
	}

	return rest, true
}
