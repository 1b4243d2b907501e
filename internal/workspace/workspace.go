// Package workspace implements spec §5 (concurrency & resource model) and
// §6 (external interfaces): the root container owning file resources and
// the process-wide module cache, built on top of internal/parser,
// internal/scope, internal/object and internal/inference. It loads
// resources on demand, validates them against disk mtimes, and dedupes
// concurrent loads of the same resource with golang.org/x/sync/singleflight
// the way the teacher's cmd/lsp server dedupes concurrent requests for the
// same document.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/inference"
	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/occurrence"
	"github.com/corerope/corerope/internal/parser"
	"github.com/corerope/corerope/internal/resolver"
	"github.com/corerope/corerope/internal/scope"
	"github.com/corerope/corerope/internal/workspace/cache"
	"github.com/corerope/corerope/internal/workspace/config"
)

// alwaysIgnoredDirs are excluded from enumeration unconditionally (spec §6
// "Dot-prefixed folders and generated .pyc-style byte-compile artifacts
// are excluded from source enumeration"), on top of whatever
// Config.IgnoredFolders adds.
var alwaysIgnoredDirs = map[string]bool{"__pycache__": true}

type cachedModule struct {
	module  *object.Module
	source  string
	modTime time.Time
}

// Workspace is the root container: configuration, the source-root
// resolver, the shared Inferer and Finder, and the process-wide module
// cache (spec §5 "Shared resource policy").
type Workspace struct {
	Config    *config.Config
	ConfigDir string
	Resolver  *resolver.Resolver
	Inferer   *inference.Inferer
	Finder    *occurrence.Finder

	// Cache is the optional persisted textual-record store (spec §6
	// "Persisted state layout"). Nil unless the caller opens one.
	Cache *cache.Store

	policy parser.Policy

	mu            sync.Mutex
	modules       map[string]*cachedModule  // keyed by absolute resource path
	scopeResource map[*scope.Scope]string   // root module scope -> resource path
	watchers      map[string][]func(string) // resource -> resource-changed callbacks

	group    singleflight.Group
	evidence *evidenceStore
}

// New creates a Workspace rooted at cfg's source roots, resolved against
// configDir (the directory containing the loaded .corerope.yml, or the
// project root when running without one).
func New(cfg *config.Config, configDir string) *Workspace {
	w := &Workspace{
		Config:        cfg,
		ConfigDir:     configDir,
		modules:       map[string]*cachedModule{},
		scopeResource: map[*scope.Scope]string{},
		watchers:      map[string][]func(string){},
	}
	w.Resolver = resolver.New(cfg.ResolvedSourceRoots(configDir))
	w.Inferer = inference.New(w)
	w.Finder = occurrence.New(w.Inferer)
	w.Finder.ResolveImport = w.resolveImportedName
	w.evidence = newEvidenceStore()
	w.Inferer.ParameterEvidence = w.evidence.paramsFor
	w.Inferer.ReturnEvidence = w.evidence.returnsFor
	if cfg.SyntaxErrorPolicy == config.PolicyStrict {
		w.policy = parser.Strict
	} else {
		w.policy = parser.Lenient
	}
	return w
}

// LoadModule implements inference.ModuleLoader, letting the Inferer
// resolve `import`/`from import` targets through this workspace's cache
// without importing workspace itself (inference only depends on the
// narrow ModuleLoader interface it declares).
func (w *Workspace) LoadModule(dotted string) (*object.Module, bool) {
	ent, err := w.Module(dotted, "")
	if err != nil {
		return nil, false
	}
	mod, ok := ent.(*object.Module)
	if !ok {
		return nil, false
	}
	return mod, true
}

// LoadRelativeModule implements inference.ModuleLoader's relative-import
// hook: `from LEVEL*module import ...` resolves against the importing
// module's own package, not the source roots directly, mirroring
// resolver.ResolveRelative's "rope's Project.get_relative_module" doc
// (spec §4.F relative imports).
func (w *Workspace) LoadRelativeModule(fromResource, fromDotted string, level int, module string) (*object.Module, bool) {
	currentPackage := fromDotted
	if filepath.Base(fromResource) != resolver.InitFile {
		if i := strings.LastIndex(fromDotted, "."); i >= 0 {
			currentPackage = fromDotted[:i]
		} else {
			currentPackage = ""
		}
	}
	result, err := w.Resolver.ResolveRelative(currentPackage, level, module)
	if err != nil {
		return nil, false
	}
	if !result.IsPackage {
		mod, merr := w.ResourceToModule(result.Path)
		if merr != nil {
			return nil, false
		}
		return mod, true
	}
	ent, eerr := w.Module(result.Name, "")
	if eerr != nil {
		return nil, false
	}
	pkg, ok := ent.(*object.Package)
	if !ok || pkg.InitModule == nil {
		return nil, false
	}
	return pkg.InitModule, true
}

// ResourceToModule loads (or returns the cached) *object.Module for an
// absolute or relative resource path, validating the cache entry against
// the file's current mtime (spec §5 "A file-modification indicator...is
// consulted at validation points"). Concurrent callers asking for the same
// resource share one load via singleflight (cache-stampede guard).
func (w *Workspace) ResourceToModule(resource string) (*object.Module, error) {
	abs, err := filepath.Abs(resource)
	if err != nil {
		return nil, &ResourceNotFoundError{Resource: resource, Cause: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &ResourceNotFoundError{Resource: abs, Cause: err}
	}

	w.mu.Lock()
	cached, ok := w.modules[abs]
	w.mu.Unlock()
	if ok && cached.modTime.Equal(info.ModTime()) {
		return cached.module, nil
	}

	v, err, _ := w.group.Do(abs, func() (interface{}, error) {
		w.mu.Lock()
		cached, ok := w.modules[abs]
		w.mu.Unlock()
		if ok && cached.modTime.Equal(info.ModTime()) {
			return cached.module, nil
		}
		return w.loadResource(abs, info)
	})
	if err != nil {
		return nil, err
	}
	return v.(*object.Module), nil
}

func (w *Workspace) loadResource(abs string, info os.FileInfo) (*object.Module, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &ResourceNotFoundError{Resource: abs, Cause: err}
	}
	src := decodeSource(data)

	astMod, err := parser.Parse(abs, src, w.policy)
	if err != nil {
		if se, ok := err.(*parser.SyntaxError); ok {
			return nil, &ModuleSyntaxError{Resource: abs, Line: se.Line, Column: se.Column, Message: se.Message}
		}
		return nil, err
	}
	sc := scope.Build(astMod)

	w.mu.Lock()
	prev, hadPrev := w.modules[abs]
	w.mu.Unlock()
	version := 1
	if hadPrev {
		version = prev.module.Version + 1
	}

	dotted, _ := w.Resolver.PathToModule(abs)
	mod := &object.Module{Resource: abs, Dotted: dotted, AST: astMod, Scope: sc, Version: version}
	mod.StarImportResolver = w.resolveStarImport
	w.Inferer.Register(mod)

	w.mu.Lock()
	w.modules[abs] = &cachedModule{module: mod, source: src, modTime: info.ModTime()}
	w.scopeResource[sc] = abs
	w.mu.Unlock()

	return mod, nil
}

func (w *Workspace) resolveStarImport(ref scope.StarImportRef) (*object.Module, bool) {
	return w.LoadModule(ref.Module)
}

// Module resolves a dotted module name to a Module or Package entity
// (spec §6 "module(name[, current_folder])"). When currentFolder is
// non-empty it is tried before the configured source roots, the way
// rope's Project.get_module honors a folder argument.
func (w *Workspace) Module(name string, currentFolder string) (object.Entity, error) {
	res := w.Resolver
	if currentFolder != "" {
		res = resolver.New(append([]string{currentFolder}, w.Resolver.Roots...))
	}
	result, err := res.Resolve(name)
	if err != nil {
		return nil, &ModuleNotFoundError{Name: name, Cause: err}
	}
	if !result.IsPackage {
		return w.ResourceToModule(result.Path)
	}

	var initMod *object.Module
	initPath := filepath.Join(result.Path, resolver.InitFile)
	if _, statErr := os.Stat(initPath); statErr == nil {
		m, lerr := w.ResourceToModule(initPath)
		if lerr != nil {
			return nil, lerr
		}
		initMod = m
	}
	children, cerr := w.packageChildren(result.Path)
	if cerr != nil {
		return nil, cerr
	}
	return &object.Package{Path: result.Path, InitModule: initMod, Children: children}, nil
}

// packageChildren lists the importable submodule/subpackage names of a
// package directory. object.Package.GetAttributes only reads the map's
// keys (it synthesizes a fresh ImportedModuleKind Name per child rather
// than storing one), so the values are left nil; nothing dereferences
// them.
func (w *Workspace) packageChildren(dirPath string) (map[string]object.Entity, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, &WorkspaceError{Message: "reading package directory " + dirPath, Cause: err}
	}
	children := map[string]object.Entity{}
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if e.IsDir() {
			if alwaysIgnoredDirs[name] || w.Config.IsIgnoredFolder(name) {
				continue
			}
			children[name] = nil
			continue
		}
		if !strings.HasSuffix(name, resolver.SourceExt) {
			continue
		}
		base := strings.TrimSuffix(name, resolver.SourceExt)
		if base+resolver.SourceExt == resolver.InitFile {
			continue
		}
		children[base] = nil
	}
	return children, nil
}

// Enumerate lists every source resource under the workspace's configured
// source roots, honoring the same exclusions packageChildren applies
// (spec §6 "File format expectations").
func (w *Workspace) Enumerate() ([]string, error) {
	var out []string
	for _, root := range w.Config.ResolvedSourceRoots(w.ConfigDir) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if path == root {
					return nil
				}
				if strings.HasPrefix(name, ".") || alwaysIgnoredDirs[name] || w.Config.IsIgnoredFolder(name) {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return nil
			}
			if !strings.HasSuffix(name, resolver.SourceExt) {
				return nil
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, &WorkspaceError{Message: "enumerating source root " + root, Cause: err}
		}
	}
	return out, nil
}

// OnResourceChanged registers cb to run whenever NotifyChanged is called
// for resource (spec §5 "the core iterates registered interested
// resources and fires resource-changed callbacks; callbacks run
// synchronously on the observer's caller thread").
func (w *Workspace) OnResourceChanged(resource string, cb func(resource string)) {
	abs, err := filepath.Abs(resource)
	if err != nil {
		abs = resource
	}
	w.mu.Lock()
	w.watchers[abs] = append(w.watchers[abs], cb)
	w.mu.Unlock()
}

// NotifyChanged tells the workspace an external observer (editor, file
// watcher) changed resource on disk: the cached module is dropped — so
// the next ResourceToModule call reparses it and bumps Version, which
// invalidates every dependent's concluded data — and any registered
// resource-changed callbacks fire synchronously.
func (w *Workspace) NotifyChanged(resource string) {
	abs, err := filepath.Abs(resource)
	if err != nil {
		abs = resource
	}
	w.mu.Lock()
	delete(w.modules, abs)
	cbs := append([]func(string){}, w.watchers[abs]...)
	w.mu.Unlock()
	for _, cb := range cbs {
		cb(abs)
	}
}

// Source returns the decoded text backing resource's cached module, for
// callers (refactor's planners) that need the literal source text rather
// than its AST — e.g. slicing out an extracted range. resource must
// already be loaded via ResourceToModule.
func (w *Workspace) Source(resource string) (string, bool) {
	return w.sourceFor(resource)
}

func (w *Workspace) sourceFor(resource string) (string, bool) {
	abs, err := filepath.Abs(resource)
	if err != nil {
		abs = resource
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	cached, ok := w.modules[abs]
	if !ok {
		return "", false
	}
	return cached.source, true
}

func (w *Workspace) resourceOfScope(sc *scope.Scope) string {
	if sc == nil {
		return ""
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scopeResource[sc.Module]
}

// ResolveDefined implements textual.Resolver: it walks a dotted attribute
// path ("pkg.mod.Outer.Inner") off the module at modulePath to recover
// the Class/Function entity a persisted textual tuple named.
func (w *Workspace) ResolveDefined(modulePath, dotted string) (object.Entity, bool) {
	mod, err := w.ResourceToModule(modulePath)
	if err != nil {
		return nil, false
	}
	rel := dotted
	if mod.Dotted != "" && strings.HasPrefix(dotted, mod.Dotted+".") {
		rel = strings.TrimPrefix(dotted, mod.Dotted+".")
	}
	if rel == "" {
		return mod, true
	}
	var cur object.Entity = mod
	for _, part := range strings.Split(rel, ".") {
		attrs := cur.GetAttributes()
		n, ok := attrs[part]
		if !ok {
			return nil, false
		}
		cur = w.Inferer.EntityForName(n, mod)
	}
	if cur == object.Unknown || cur == nil {
		return nil, false
	}
	return cur, true
}

// DottedNameOf implements the callback textual.EntityToTuple needs to
// turn a Class/Function/Module entity into a (modulePath, dottedName)
// pair (the inverse of ResolveDefined).
func (w *Workspace) DottedNameOf(e object.Entity) (modulePath, dotted string, ok bool) {
	switch v := e.(type) {
	case *object.Module:
		return v.Resource, v.Dotted, true
	case *object.Class:
		return v.Module.Resource, v.Module.Dotted + "." + enclosingDottedName(v.Scope.Parent, v.Def.Name.Name), true
	case *object.Function:
		return v.Module.Resource, v.Module.Dotted + "." + enclosingDottedName(v.Scope.Parent, v.Def.Name.Name), true
	}
	return "", "", false
}

// enclosingDottedName prefixes leaf with the chain of enclosing class
// names found by walking up from sc while it stays inside nested class
// bodies (stopping at the first function or module scope). Nested
// functions are not addressed by dotted name at all — a documented
// simplification, since spec.md's textual form exists to correlate
// static and dynamic call targets, and only classes/functions reachable
// as module or class attributes are ever looked up that way.
func enclosingDottedName(sc *scope.Scope, leaf string) string {
	var parts []string
	for s := sc; s != nil && s.Kind == scope.ClassScope; s = s.Parent {
		if cd, ok := s.Node.(*ast.ClassDef); ok {
			parts = append([]string{cd.Name.Name}, parts...)
		}
	}
	parts = append(parts, leaf)
	return strings.Join(parts, ".")
}

// decodeSource currently treats every resource as UTF-8. A `coding[=:]
// ([-\w.]+)` declaration in the first two lines (spec §6) would select a
// different decoder; none of this corpus's example repos pull in a
// non-UTF-8 text-encoding library, so detecting (without acting on) the
// declaration is deferred — see DESIGN.md.
func decodeSource(data []byte) string {
	return string(data)
}
