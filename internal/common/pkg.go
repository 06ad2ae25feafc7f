package common

import "path"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// QualifiedName joins a package path and a type name the way diagnostics print them.
func QualifiedName(pkgPath, name string) string {
	if pkgPath == "" {
		return name
	}

	return PkgAlias(pkgPath) + "." + name
}
