package refactor

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/resolver"
	"github.com/corerope/corerope/internal/scope"
)

// ImportsOf collects every import statement in mod into resolver.ImportInfo
// values, the per-file primitive rope's importutils needs for reorganize
// imports (SPEC_FULL.md §4 supplemented feature). resourcePath and
// resourceDotted describe the module doing the importing, so relative
// `from .pkg import x` references resolve against the right package, the
// same currentPackage derivation workspace.Workspace.LoadRelativeModule
// uses against resolver.ResolveRelative's documented convention.
func ImportsOf(mod *ast.Module, res *resolver.Resolver, resourcePath, resourceDotted string) []resolver.ImportInfo {
	currentPackage := resourceDotted
	if filepath.Base(resourcePath) != resolver.InitFile {
		if i := strings.LastIndex(resourceDotted, "."); i >= 0 {
			currentPackage = resourceDotted[:i]
		} else {
			currentPackage = ""
		}
	}

	var out []resolver.ImportInfo
	for _, stmt := range mod.Body {
		switch s := stmt.(type) {
		case *ast.ImportStatement:
			for _, alias := range s.Names {
				name := alias.AsName
				dotted := alias.Name
				if name == "" {
					name = rootSegment(dotted)
				}
				info := resolver.ImportInfo{Module: dotted, Names: []string{name}}
				if result, err := res.Resolve(dotted); err == nil {
					info.Resolved = result
				}
				out = append(out, info)
			}
		case *ast.FromImportStatement:
			if s.IsStar {
				out = append(out, resolveFromImport(res, currentPackage, s, nil, true))
				continue
			}
			names := make([]string, 0, len(s.Names))
			for _, alias := range s.Names {
				name := alias.AsName
				if name == "" {
					name = alias.Name
				}
				names = append(names, name)
			}
			out = append(out, resolveFromImport(res, currentPackage, s, names, false))
		}
	}
	return out
}

func resolveFromImport(res *resolver.Resolver, currentPackage string, s *ast.FromImportStatement, names []string, isStar bool) resolver.ImportInfo {
	info := resolver.ImportInfo{Module: s.Module, Level: s.Level, Names: names, IsStar: isStar}
	var result *resolver.Result
	var err error
	if s.Level > 0 {
		result, err = res.ResolveRelative(currentPackage, s.Level, s.Module)
	} else {
		result, err = res.Resolve(s.Module)
	}
	if err == nil {
		info.Resolved = result
	}
	return info
}

func rootSegment(dotted string) string {
	if i := strings.Index(dotted, "."); i >= 0 {
		return dotted[:i]
	}
	return dotted
}

// UnusedImport is one import binding that no Identifier in the module
// text references. Whether the import resolves is not checked.
type UnusedImport struct {
	Info resolver.ImportInfo
	Name string // the specific local binding that's unused (one per Names entry)
}

// FindUnusedImports classifies each import binding in mod/sc as used or
// unused by counting Identifier references to it anywhere else in the
// module (rope's "is this name resolvable / unused" classification,
// SPEC_FULL.md §4). A star import is never reported as unused — there is
// no way to tell which of its names are referenced without resolving the
// source module, which reorganize-imports treats conservatively.
func FindUnusedImports(mod *ast.Module, sc *scope.Scope, imports []resolver.ImportInfo) []UnusedImport {
	counts := identifierCounts(mod)

	var out []UnusedImport
	for _, info := range imports {
		if info.IsStar {
			continue
		}
		for _, name := range info.Names {
			n, ok := sc.Names[name]
			if !ok || (n.Kind != scope.ImportedModuleKind && n.Kind != scope.ImportedNameKind) {
				continue
			}
			if counts[name] == 0 {
				out = append(out, UnusedImport{Info: info, Name: name})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type identifierCounter struct {
	ast.BaseVisitor
	counts map[string]int
}

func (c *identifierCounter) VisitIdentifier(n *ast.Identifier) {
	c.counts[n.Name]++
}

// identifierCounts counts every Identifier node in mod by name. Import
// statements bind names via ImportAlias (plain strings), never an
// Identifier node, so a name's only count comes from its actual uses.
func identifierCounts(mod *ast.Module) map[string]int {
	c := &identifierCounter{counts: map[string]int{}}
	c.BaseVisitor.Self = c
	mod.Accept(c)
	return c.counts
}
