// Package scope builds the per-module scope tree and name tables described
// in spec §4.E: a `_GlobalVisitor`-style walk that populates Module, Class
// and Function scopes with their bindings.
package scope

import "github.com/corerope/corerope/internal/ast"

// Kind identifies what a Scope represents.
type Kind int

const (
	ModuleScope Kind = iota
	ClassScope
	FunctionScope
)

func (k Kind) String() string {
	switch k {
	case ModuleScope:
		return "module"
	case ClassScope:
		return "class"
	case FunctionScope:
		return "function"
	}
	return "?"
}

// StarImportRef records a `from MODULE import *` contribution on a module
// scope; expanded lazily at attribute lookup (spec §9 "Star-imports").
type StarImportRef struct {
	Level  int
	Module string
}

// Scope is one node of the scope tree: a Module, a Class body, or a
// Function body. Nested scopes appear in source order and their
// [StartPos, EndPos) ranges nest without overlapping siblings, mirroring
// the AST (spec §3 invariants).
type Scope struct {
	Kind     Kind
	Node     ast.Node // *ast.Module, *ast.ClassDef or *ast.FunctionDef
	Parent   *Scope
	Module   *Scope // the root Module scope of this scope's tree
	Children []*Scope

	Names map[string]*Name

	// StarImports is populated only on Module scopes.
	StarImports []StarImportRef

	// Globals/Nonlocals record names a Function scope declared with
	// `global`/`nonlocal`; binds for these names are rerouted at bind time
	// (spec §4.E).
	Globals   map[string]bool
	Nonlocals map[string]bool

	StartPos int
	EndPos   int
}

func newScope(kind Kind, node ast.Node, parent *Scope) *Scope {
	s := &Scope{
		Kind:     kind,
		Node:     node,
		Parent:   parent,
		Names:    make(map[string]*Name),
		StartPos: node.Pos(),
		EndPos:   node.End(),
	}
	if kind == FunctionScope {
		s.Globals = make(map[string]bool)
		s.Nonlocals = make(map[string]bool)
	}
	if parent != nil {
		s.Module = parent.Module
		parent.Children = append(parent.Children, s)
	} else {
		s.Module = s
	}
	return s
}

// FindInnerScopeForOffset returns the most deeply nested scope whose range
// contains offset, walking children in source order.
func (s *Scope) FindInnerScopeForOffset(offset int) *Scope {
	for _, c := range s.Children {
		if offset >= c.StartPos && offset < c.EndPos {
			return c.FindInnerScopeForOffset(offset)
		}
	}
	return s
}

// Local returns the name bound directly in this scope, without walking
// parents.
func (s *Scope) Local(name string) (*Name, bool) {
	n, ok := s.Names[name]
	return n, ok
}

// NameKind is the tag of the Name sum type (spec §3 "Name" and §9 "tagged
// sum with a single resolver trait").
type NameKind int

const (
	AssignedNameKind NameKind = iota
	DefinedNameKind
	ImportedNameKind
	ImportedModuleKind
	ParameterNameKind
	UnboundNameKind
	StarImportNameKind
)

func (k NameKind) String() string {
	switch k {
	case AssignedNameKind:
		return "assigned"
	case DefinedNameKind:
		return "defined"
	case ImportedNameKind:
		return "imported"
	case ImportedModuleKind:
		return "imported-module"
	case ParameterNameKind:
		return "parameter"
	case UnboundNameKind:
		return "unbound"
	case StarImportNameKind:
		return "star-import"
	}
	return "?"
}

// Assignment is one RHS site accumulated by an AssignedName (spec §4.H
// "Assignment accumulation": the inferred type is the union of all sites).
type Assignment struct {
	Value ast.Expression

	// Path selects into a tuple/list-destructured Value: Path == nil means
	// "the whole value"; Path == [0, 1] means "element 1 of element 0".
	// A -1 entry means "the starred remainder" (`*rest`).
	Path []int

	// IsIteration marks a `for TGT in ITER:` binding: Value holds ITER and
	// inference must apply the iteration protocol rather than using ITER's
	// type directly.
	IsIteration bool

	// IsContextEnter marks a `with EXPR as TGT:` binding: Value holds EXPR
	// and inference must apply the context-manager enter protocol.
	IsContextEnter bool

	// IsExceptBinding marks an `except X as e:` binding: Value holds X and
	// inference must produce an Instance of X rather than X itself
	// (design note §9).
	IsExceptBinding bool
}

// Name is a binding recorded in a scope's name table: the pair
// (identifier, entity-producing-site) plus provenance. Exactly one of the
// kind-specific fields below is meaningful, selected by Kind.
type Name struct {
	Kind       NameKind
	Identifier string
	Owner      *Scope // the scope this Name is reachable from (spec §3 invariant)

	// AssignedNameKind
	Assignments []*Assignment

	// DefinedNameKind
	Defined ast.Node // *ast.FunctionDef or *ast.ClassDef

	// ImportedNameKind: `from ImportedModule import ImportedOriginal as Identifier`
	ImportedModule   string
	ImportedOriginal string
	ImportLevel      int

	// ImportedModuleKind: dotted path bound by `import ModulePath` or
	// `import ModulePath as Identifier`.
	ModulePath string

	// ParameterNameKind
	ParamIndex    int
	ParamFunction *Scope
	IsVararg      bool
	IsKwarg       bool
}
