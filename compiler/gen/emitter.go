package gen

import "github.com/dave/jennifer/jen"

// =============================================================================
// Emission: descriptions are rendered to Go by an Emitter
// =============================================================================

// TypeEmitter renders the members of one variant type.
// It is called once per changed type, concurrently for different types.
type TypeEmitter interface {
	// EmitType renders the descriptions of the type into a file of the
	// given package.
	EmitType(pkg *Package, d *TypeDescriptor, members []*MemberDescription) (*jen.File, error)
}

// PackageEmitter renders the declarations shared by the types of a package.
type PackageEmitter interface {
	// EmitConstraints renders the shared constraint interfaces.
	EmitConstraints(pkg *Package, decls []ConstraintDecl) (*jen.File, error)
}

// Emitter is the full emission interface used by the Generator.
type Emitter interface {
	TypeEmitter
	PackageEmitter
}

// Package describes the target package of the emitted files.
type Package struct {
	// Path is the import path of the package.
	Path string
	// Name is the package name.
	Name string
	// Header is the comment written at the top of each file.
	Header string
}

// NewFile returns an empty file of the package.
func (p *Package) NewFile() *jen.File {
	var f *jen.File
	if p.Path != "" {
		f = jen.NewFilePathName(p.Path, p.Name)
	} else {
		f = jen.NewFile(p.Name)
	}
	if p.Header != "" {
		f.HeaderComment(p.Header)
	}
	return f
}
