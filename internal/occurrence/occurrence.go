// Package occurrence implements spec §4.I: find every occurrence of a
// target name across a set of resources by a cheap word scan followed by
// a precise per-candidate identity check, returned in resource/offset
// order. Results come back as one slice once the search ends, not as a
// lazy stream; a caller can stop a search early through Find's cancel
// callback and then gets the matches found so far.
package occurrence

import (
	"sort"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/inference"
	"github.com/corerope/corerope/internal/lines"
	"github.com/corerope/corerope/internal/locator"
	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/scope"
)

// Occurrence is one match record (spec §4.I).
type Occurrence struct {
	Resource     string
	StartOffset  int
	EndOffset    int
	PrimaryStart int
	IsWritten    bool
	IsUnsure     bool
	Lineno       int
}

// ResourceModule is everything the finder needs about one loaded module;
// the workspace cache builds these, occurrence only reads them.
type ResourceModule struct {
	Resource string
	Source   string
	Module   *object.Module
}

// Target identifies what counts as a match: the binding the search started
// from, resolved via PyNameFilter identity, optionally widened by
// InHierarchyFilter to same-named methods up/down a class hierarchy.
type Target struct {
	Name   *scope.Name
	Entity object.Entity // the class owning Name, when Name is a method — used by InHierarchyFilter
}

// Options controls which candidate occurrences are accepted.
type Options struct {
	// InHierarchy also accepts same-named methods on subclasses/
	// superclasses of Target's owning class (InHierarchyFilter).
	InHierarchy bool
	// Imports controls whether matches inside import statements count
	// (ImportsFilter).
	Imports bool
	// Unsure, when true, additionally yields occurrences whose precise
	// identity could not be determined (e.g. an attribute access on a
	// receiver of unknown type) marked IsUnsure.
	Unsure bool
}

// Finder runs occurrence searches against an Inferer shared with the rest
// of the workspace, so identity checks see the same entities callers do.
type Finder struct {
	Inferer *inference.Inferer

	// ResolveImport follows an ImportedNameKind binding through to the Name
	// it actually denotes (e.g. `from pkg.mod import g as h`'s "h" to
	// pkg.mod's "g"), so an aliased import and its origin compare equal by
	// identity rather than as two distinct Names (spec §8 scenario 3). Set
	// by workspace, which alone has the module-loading capability this
	// needs; nil means "no resolution", i.e. imported Names only ever
	// match themselves.
	ResolveImport func(*scope.Name) *scope.Name
}

// New creates a Finder backed by inf.
func New(inf *inference.Inferer) *Finder {
	return &Finder{Inferer: inf}
}

func (f *Finder) resolve(n *scope.Name) *scope.Name {
	if f.ResolveImport == nil || n == nil {
		return n
	}
	return f.ResolveImport(n)
}

// Find collects occurrences of target's name across resources into one
// slice, in the order
// resources are given and in-file offset order within each (spec §5
// "Ordering guarantees"). names is every local spelling that might denote
// target — the defining identifier plus, when target is reached through an
// aliased import elsewhere (spec §8 scenario 3), each of those aliases — so
// a single search resource is only ever scanned once regardless of how many
// spellings it might contain. cancelled is polled between resources; once
// it returns true, Find stops and returns what it already produced.
func (f *Finder) Find(names []string, target Target, resources []ResourceModule, opts Options, cancelled func() bool) []Occurrence {
	var out []Occurrence
	for _, rm := range resources {
		if cancelled != nil && cancelled() {
			break
		}
		out = append(out, f.findInResource(names, target, rm, opts)...)
	}
	return out
}

func (f *Finder) findInResource(names []string, target Target, rm ResourceModule, opts Options) []Occurrence {
	nameSet := make(map[string]bool, len(names))
	seen := map[int]bool{}
	var candidates []int
	for _, name := range names {
		nameSet[name] = true
		for _, off := range wordOffsets(rm.Source, name) {
			if !seen[off] {
				seen[off] = true
				candidates = append(candidates, off)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Ints(candidates)
	ix := lines.New(rm.Source)
	loc := locator.New(rm.Source)
	var out []Occurrence

	for _, off := range candidates {
		start, end, err := loc.WordRange(off)
		if err != nil || !nameSet[rm.Source[start:end]] {
			continue
		}
		if !opts.Imports && insideImport(rm.Module.AST, start) {
			continue
		}
		verdict := f.classify(target, rm, start, end, opts)
		if verdict == noMatch {
			continue
		}
		if verdict == unsureMatch && !opts.Unsure {
			continue
		}
		primaryStart, _, perr := loc.PrimaryRange(end)
		if perr != nil {
			primaryStart = start
		}
		out = append(out, Occurrence{
			Resource:     rm.Resource,
			StartOffset:  start,
			EndOffset:    end,
			PrimaryStart: primaryStart,
			IsWritten:    isWriteOccurrence(rm.Module.AST, start, end),
			IsUnsure:     verdict == unsureMatch,
			Lineno:       ix.LineNumber(start),
		})
	}
	return out
}

type matchVerdict int

const (
	noMatch matchVerdict = iota
	certainMatch
	unsureMatch
)

// classify is the "precise check": find the scope at this offset, resolve
// the identifier there to a Name (or, for an attribute, to the attribute
// Name on the inferred receiver type), and compare against target.
func (f *Finder) classify(target Target, rm ResourceModule, start, end int, opts Options) matchVerdict {
	node := FindNodeCovering(rm.Module.AST, start, end)
	if node == nil {
		// Import statement names aren't represented as Identifier nodes
		// (spec §4.D keeps ImportAlias a plain string), so there is no
		// binding to resolve precisely; a textual match is all
		// ImportsFilter can offer here. insideImport already gated
		// reaching this branch on opts.Imports.
		if opts.Imports && insideImport(rm.Module.AST, start) {
			return certainMatch
		}
		return noMatch
	}
	sc := rm.Module.Scope.FindInnerScopeForOffset(start)

	targetName := f.resolve(target.Name)

	switch n := node.(type) {
	case *ast.Identifier:
		resolved, ok := scope.Lookup(sc, n.Name)
		if !ok {
			return noMatch
		}
		if samePyName(f.resolve(resolved), targetName) {
			return certainMatch
		}
		return f.hierarchyVerdict(resolved, target, opts)
	case *ast.AttributeExpr:
		if n.Attr.Name != targetName.Identifier {
			return noMatch
		}
		base := f.Inferer.InferAt(n.Value, sc, rm.Module)
		if base == object.Unknown {
			return unsureMatch
		}
		attrs := base.GetAttributes()
		resolved, ok := attrs[n.Attr.Name]
		if !ok {
			return noMatch
		}
		if samePyName(f.resolve(resolved), targetName) {
			return certainMatch
		}
		return f.hierarchyVerdict(resolved, target, opts)
	}
	return noMatch
}

// hierarchyVerdict implements InHierarchyFilter: a resolved binding counts
// as a match when it shares target's identifier and its owning class is a
// sub/superclass of target's owning class.
func (f *Finder) hierarchyVerdict(resolved *scope.Name, target Target, opts Options) matchVerdict {
	if !opts.InHierarchy || resolved == nil {
		return noMatch
	}
	owner, ok := target.Entity.(*object.Class)
	if !ok || resolved.Identifier != target.Name.Identifier {
		return noMatch
	}
	resolvedClass := f.Inferer.ClassFor(resolved.Owner)
	if resolvedClass == nil {
		return noMatch
	}
	if isRelatedClass(owner, resolvedClass) {
		return certainMatch
	}
	return noMatch
}

func isRelatedClass(a, b *object.Class) bool {
	if a == b {
		return true
	}
	for _, s := range a.GetSuperclasses() {
		if isRelatedClass(s, b) {
			return true
		}
	}
	for _, s := range b.GetSuperclasses() {
		if isRelatedClass(a, s) {
			return true
		}
	}
	return false
}

func samePyName(a, b *scope.Name) bool {
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// FindNodeCovering returns the innermost Identifier or AttributeExpr whose
// own name token spans exactly [start, end). Exported so workspace can
// reuse the same precise-resolution step for pyname_at/entity_at instead
// of duplicating it.
func FindNodeCovering(mod *ast.Module, start, end int) ast.Node {
	var found ast.Node
	ast.CallForNodes(mod, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.Identifier:
			if v.StartPos == start && v.EndPos == end {
				found = v
			}
		case *ast.AttributeExpr:
			if v.Attr != nil && v.Attr.StartPos == start && v.Attr.EndPos == end {
				found = v
			}
		}
		return false
	})
	return found
}

// wordOffsets returns every byte offset in src where name appears as a
// standalone run of word bytes (the cheap pre-filter scan; the precise
// check happens afterward).
func wordOffsets(src, name string) []int {
	if name == "" {
		return nil
	}
	var out []int
	for i := 0; i+len(name) <= len(src); i++ {
		if src[i:i+len(name)] != name {
			continue
		}
		if i > 0 && isWordByte(src[i-1]) {
			continue
		}
		j := i + len(name)
		if j < len(src) && isWordByte(src[j]) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c >= 0x80
}

// insideImport reports whether offset falls within any ImportStatement or
// FromImportStatement in mod (spec's ImportsFilter).
func insideImport(mod *ast.Module, offset int) bool {
	inside := false
	ast.CallForNodes(mod, func(n ast.Node) bool {
		switch n.(type) {
		case *ast.ImportStatement, *ast.FromImportStatement:
			if n.Pos() <= offset && offset < n.End() {
				inside = true
			}
			return true
		}
		return false
	})
	return inside
}

// isWriteOccurrence reports whether the word at [start,end) is the target
// of an assignment-like binding: the left side of `=`, a for-target, a
// with-as target, an except-as target, or a def/class name.
func isWriteOccurrence(mod *ast.Module, start, end int) bool {
	isWrite := false
	ast.CallForNodes(mod, func(n ast.Node) bool {
		switch s := n.(type) {
		case *ast.AssignStatement:
			for _, t := range s.Targets {
				if spansIdentifier(t, start, end) {
					isWrite = true
				}
			}
		case *ast.AnnAssignStatement:
			if spansIdentifier(s.Target, start, end) {
				isWrite = true
			}
		case *ast.AugAssignStatement:
			if spansIdentifier(s.Target, start, end) {
				isWrite = true
			}
		case *ast.ForStatement:
			if spansIdentifier(s.Target, start, end) {
				isWrite = true
			}
		case *ast.WithStatement:
			for _, item := range s.Items {
				if item.OptionalVars != nil && spansIdentifier(item.OptionalVars, start, end) {
					isWrite = true
				}
			}
		case *ast.TryStatement:
			for _, h := range s.Handlers {
				if h.Name != nil && h.Name.StartPos == start && h.Name.EndPos == end {
					isWrite = true
				}
			}
		case *ast.FunctionDef:
			if s.Name.StartPos == start && s.Name.EndPos == end {
				isWrite = true
			}
		case *ast.ClassDef:
			if s.Name.StartPos == start && s.Name.EndPos == end {
				isWrite = true
			}
		}
		return false
	})
	return isWrite
}

func spansIdentifier(target ast.Expression, start, end int) bool {
	found := false
	ast.CallForNodes(target, func(n ast.Node) bool {
		if id, ok := n.(*ast.Identifier); ok && id.StartPos == start && id.EndPos == end {
			found = true
		}
		return false
	})
	return found
}
