package workspace

import (
	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/lines"
	"github.com/corerope/corerope/internal/locator"
	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/occurrence"
	"github.com/corerope/corerope/internal/scope"
)

// PyNameAt resolves the word covering offset in resource to the Name it
// binds to (spec §6 "pyname_at(resource, offset) → Name"): an Identifier
// resolves by scope lookup, an attribute's Attr resolves by inferring its
// receiver and looking the attribute up on the receiver's attribute map.
func (w *Workspace) PyNameAt(resource string, offset int) (*scope.Name, error) {
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		return nil, err
	}
	src, _ := w.sourceFor(mod.Resource)
	return w.resolveNameAt(mod, src, offset)
}

func (w *Workspace) resolveNameAt(mod *object.Module, source string, offset int) (*scope.Name, error) {
	loc := locator.New(source)
	start, end, err := loc.WordRange(offset)
	if err != nil {
		return nil, err
	}
	node := occurrence.FindNodeCovering(mod.AST, start, end)
	sc := mod.Scope.FindInnerScopeForOffset(start)

	switch n := node.(type) {
	case *ast.Identifier:
		resolved, ok := scope.Lookup(sc, n.Name)
		if !ok {
			return nil, &NameNotFoundError{Identifier: n.Name, Resource: mod.Resource, Offset: offset}
		}
		return resolved, nil
	case *ast.AttributeExpr:
		base := w.Inferer.InferAt(n.Value, sc, mod)
		attrs := base.GetAttributes()
		resolved, ok := attrs[n.Attr.Name]
		if !ok {
			return nil, &AttributeNotFoundError{Attribute: n.Attr.Name, On: base.Kind().String()}
		}
		return resolved, nil
	}
	return nil, &NameNotFoundError{Identifier: source[start:end], Resource: mod.Resource, Offset: offset}
}

// EntityAt resolves both the Name at offset and the Name reachable from
// the start of its enclosing primary expression (spec §6 "entity_at
// (resource, offset) → (Name, primary Name)", spec glossary "Primary —
// the longest attribute/subscript/call chain ending at a given offset").
// The primary Name is nil, not an error, when the primary's receiver
// can't be resolved (e.g. it starts on an unknown-typed expression).
func (w *Workspace) EntityAt(resource string, offset int) (name *scope.Name, primary *scope.Name, err error) {
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		return nil, nil, err
	}
	src, _ := w.sourceFor(mod.Resource)

	name, err = w.resolveNameAt(mod, src, offset)
	if err != nil {
		return nil, nil, err
	}

	loc := locator.New(src)
	primaryStart, _, perr := loc.PrimaryRange(offset)
	if perr != nil {
		return name, nil, nil
	}
	primary, perr = w.resolveNameAt(mod, src, primaryStart)
	if perr != nil {
		return name, nil, nil
	}
	return name, primary, nil
}

// Definition is one assignment/definition site (spec §4 "SUPPLEMENTED
// FEATURES": workspace.Definitions, the findit-style "every assignment
// site" complement to the single canonical DefinitionLocation).
type Definition struct {
	Resource string
	Lineno   int
}

// DefinitionLocation returns the single canonical definition site of the
// Name at offset (spec §6 "definition_location(resource, offset) →
// (resource, lineno)"). ok is false when offset doesn't resolve to a Name
// or that Name's binding site can't be located (an imported/unbound
// name whose origin module failed to load).
func (w *Workspace) DefinitionLocation(resource string, offset int) (res string, lineno int, ok bool, err error) {
	n, err := w.PyNameAt(resource, offset)
	if err != nil {
		return "", 0, false, err
	}
	return w.locateName(n)
}

// Definitions returns every assignment-site definition of the Name at
// offset (spec §4 supplemented feature, mirroring rope's
// contrib.findit). For an accumulated AssignedNameKind binding this is
// one entry per Assignment; for any other Name kind it degrades to the
// single DefinitionLocation-equivalent site.
func (w *Workspace) Definitions(resource string, offset int) ([]Definition, error) {
	n, err := w.PyNameAt(resource, offset)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	if n.Kind != scope.AssignedNameKind {
		res, lineno, ok, lerr := w.locateName(n)
		if lerr != nil || !ok {
			return nil, lerr
		}
		return []Definition{{Resource: res, Lineno: lineno}}, nil
	}

	ownerResource := w.resourceOfScope(n.Owner)
	if ownerResource == "" {
		return nil, nil
	}
	var defs []Definition
	for _, a := range n.Assignments {
		if a.Value == nil {
			continue
		}
		if res, lineno, ok := w.lineAt(ownerResource, a.Value.Pos()); ok {
			defs = append(defs, Definition{Resource: res, Lineno: lineno})
		}
	}
	return defs, nil
}

func (w *Workspace) locateName(n *scope.Name) (string, int, bool, error) {
	if n == nil {
		return "", 0, false, nil
	}
	switch n.Kind {
	case scope.DefinedNameKind:
		res := w.resourceOfScope(n.Owner)
		if res == "" {
			return "", 0, false, nil
		}
		r, line, ok := w.lineAt(res, n.Defined.Pos())
		return r, line, ok, nil

	case scope.AssignedNameKind:
		if len(n.Assignments) == 0 {
			return "", 0, false, nil
		}
		res := w.resourceOfScope(n.Owner)
		if res == "" {
			return "", 0, false, nil
		}
		last := n.Assignments[len(n.Assignments)-1]
		r, line, ok := w.lineAt(res, last.Value.Pos())
		return r, line, ok, nil

	case scope.ParameterNameKind:
		if n.ParamFunction == nil {
			return "", 0, false, nil
		}
		res := w.resourceOfScope(n.ParamFunction)
		if res == "" {
			return "", 0, false, nil
		}
		r, line, ok := w.lineAt(res, n.ParamFunction.StartPos)
		return r, line, ok, nil

	case scope.ImportedModuleKind:
		ent, err := w.Module(n.ModulePath, "")
		if err != nil {
			return "", 0, false, nil
		}
		return w.locationOfModuleEntity(ent)

	case scope.ImportedNameKind:
		depEnt, ok := w.importedDependency(n)
		if !ok {
			return "", 0, false, nil
		}
		attrs := depEnt.GetAttributes()
		if sub, ok := attrs[n.ImportedOriginal]; ok {
			return w.locateName(sub)
		}
		return w.locationOfModuleEntity(depEnt)
	}
	return "", 0, false, nil
}

// importedDependency loads the module an ImportedNameKind binding imports
// from, honoring ImportLevel (spec §2.E "from . import x" / "from ..pkg
// import y" relative imports) the same way inferName's ImportedNameKind
// case already does for inference — locateName previously called w.Module
// unconditionally and so mislocated every relative import.
func (w *Workspace) importedDependency(n *scope.Name) (object.Entity, bool) {
	if n.ImportLevel > 0 {
		ownerResource := w.resourceOfScope(n.Owner)
		if ownerResource == "" {
			return nil, false
		}
		ownerMod, err := w.ResourceToModule(ownerResource)
		if err != nil {
			return nil, false
		}
		mod, ok := w.LoadRelativeModule(ownerMod.Resource, ownerMod.Dotted, n.ImportLevel, n.ImportedModule)
		if !ok {
			return nil, false
		}
		return mod, true
	}
	ent, err := w.Module(n.ImportedModule, "")
	if err != nil {
		return nil, false
	}
	return ent, true
}

// resolveImportedName follows an ImportedNameKind binding through to the
// Name it actually denotes — `from pkg.mod import g as h`'s "h" resolves to
// pkg.mod's "g" — so a rename/occurrence search started from either spelling
// converges on the same Name (spec §8 scenario 3). Non-imported Names, and
// imports whose origin can't be resolved, are returned unchanged. The seen
// guard stops a cycle of re-exporting imports from looping forever.
func (w *Workspace) resolveImportedName(n *scope.Name) *scope.Name {
	seen := map[*scope.Name]bool{}
	for n != nil && n.Kind == scope.ImportedNameKind && !seen[n] {
		seen[n] = true
		dep, ok := w.importedDependency(n)
		if !ok {
			return n
		}
		sub, ok := dep.GetAttributes()[n.ImportedOriginal]
		if !ok {
			return n
		}
		n = sub
	}
	return n
}

func (w *Workspace) locationOfModuleEntity(ent object.Entity) (string, int, bool, error) {
	switch e := ent.(type) {
	case *object.Module:
		return e.Resource, 1, true, nil
	case *object.Package:
		if e.InitModule != nil {
			return e.InitModule.Resource, 1, true, nil
		}
		return e.Path, 1, true, nil
	}
	return "", 0, false, nil
}

func (w *Workspace) lineAt(resource string, pos int) (string, int, bool) {
	src, ok := w.sourceFor(resource)
	if !ok {
		return resource, 0, false
	}
	ix := lines.New(src)
	return resource, ix.LineNumber(pos), true
}
