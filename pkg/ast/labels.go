package ast

import "strings"

// FileStaticPrefix marks compiler-generated file-scope symbols such as .L.str.1.
// They are spelled like local labels but resolve from every scope.
const FileStaticPrefix = ".L."

// IsLocal reports whether name is spelled as a local label.
func IsLocal(name string) bool {
	return strings.HasPrefix(name, ".")
}

// IsFileStatic reports whether name is a local-looking label that is
// nevertheless stored in the global table.
func IsFileStatic(name string) bool {
	return strings.HasPrefix(name, FileStaticPrefix)
}

// IsScoped reports whether name lives in the table of its enclosing global label.
func IsScoped(name string) bool {
	return IsLocal(name) && !IsFileStatic(name)
}

// OpensScope reports whether defining name makes it the current global scope.
func OpensScope(name string) bool {
	return !IsLocal(name)
}
