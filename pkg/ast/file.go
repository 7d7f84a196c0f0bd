package ast

import (
	"fmt"
	"io"
	"slices"
)

// Import is one import declaration.
type Import struct {
	path  string
	alias string
}

// NewImport imports path under its own name.
func NewImport(path string) *Import {
	return &Import{path: path}
}

// NewAliasedImport imports path under alias.
func NewAliasedImport(path, alias string) *Import {
	return &Import{path: path, alias: alias}
}

// Path returns the imported path.
func (i *Import) Path() string { return i.path }

// Alias returns the import alias and whether one was given.
func (i *Import) Alias() (string, bool) { return i.alias, i.alias != "" }

// ImportSpec collects the attributes of an import while it is being parsed.
type ImportSpec struct {
	Path  string
	Alias string
}

// Build converts the spec into an Import.
func (s ImportSpec) Build() (*Import, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("%w: import path is required", ErrIncompleteSpec)
	}
	if s.Alias == "" {
		return NewImport(s.Path), nil
	}
	return NewAliasedImport(s.Path, s.Alias), nil
}

// File is the root of a syntax tree: a package clause and its imports.
type File struct {
	pkg     string
	imports []*Import
}

// NewFile takes ownership of imports.
func NewFile(pkg string, imports []*Import) *File {
	return &File{pkg: pkg, imports: imports}
}

// Package returns the package name.
func (f *File) Package() string { return f.pkg }

// Imports returns a copy of the imports in source order.
func (f *File) Imports() []*Import { return slices.Clone(f.imports) }

// Render implements Node.
func (f *File) Render(w io.Writer, level int) error   { return render(w, f, level) }
func (i *Import) Render(w io.Writer, level int) error { return render(w, i, level) }
