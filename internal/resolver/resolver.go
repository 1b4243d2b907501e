// Package resolver turns a dotted module name into a source resource and
// back, and rewrites relative imports against a current package's dotted
// path (spec §4.F).
package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the file extension this analyzer treats as a module leaf.
const SourceExt = ".py"

// InitFile is the package initializer file name, analogous to
// `__init__.py`: its presence turns a directory into a Package module.
const InitFile = "__init__" + SourceExt

// ModuleNotFoundError is returned when a dotted name does not correspond
// to any file or folder under the declared source roots.
type ModuleNotFoundError struct {
	Name string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module not found: %q", e.Name)
}

// Result describes what a dotted module name resolved to.
type Result struct {
	Name      string // the dotted name that was resolved
	Path      string // absolute filesystem path to the resolved resource
	IsPackage bool   // true when Path is a directory (possibly with InitFile)
}

// Resolver resolves dotted module names against an ordered list of source
// roots, the way `sys.path` entries are tried in order.
type Resolver struct {
	// Roots are absolute filesystem directories, tried in order.
	Roots []string

	// stat is overridable for tests; defaults to os.Stat.
	stat func(string) (os.FileInfo, error)
}

// New creates a Resolver over roots, an ordered list of absolute source
// directories.
func New(roots []string) *Resolver {
	return &Resolver{Roots: roots, stat: os.Stat}
}

// Resolve walks r.Roots in order looking for dotted, first as a package
// directory (optionally containing InitFile), then as a `.py` leaf file.
func (r *Resolver) Resolve(dotted string) (*Result, error) {
	if dotted == "" {
		return nil, &ModuleNotFoundError{Name: dotted}
	}
	rel := strings.ReplaceAll(dotted, ".", string(filepath.Separator))
	for _, root := range r.Roots {
		dirPath := filepath.Join(root, rel)
		if info, err := r.statFunc()(dirPath); err == nil && info.IsDir() {
			return &Result{Name: dotted, Path: dirPath, IsPackage: true}, nil
		}
		filePath := dirPath + SourceExt
		if info, err := r.statFunc()(filePath); err == nil && !info.IsDir() {
			return &Result{Name: dotted, Path: filePath, IsPackage: false}, nil
		}
	}
	return nil, &ModuleNotFoundError{Name: dotted}
}

func (r *Resolver) statFunc() func(string) (os.FileInfo, error) {
	if r.stat != nil {
		return r.stat
	}
	return os.Stat
}

// ResolveRelative rewrites a `from LEVEL*MODULE import ...` reference
// against the dotted package path of the module doing the importing, then
// resolves the result. level is the number of leading dots; currentPackage
// is the *package* (not module) dotted path the importing module lives in
// — i.e. its own dotted name with the last component stripped when the
// importing module is a leaf, or its own dotted name unchanged when it is
// itself a package (`__init__.py`).
func (r *Resolver) ResolveRelative(currentPackage string, level int, module string) (*Result, error) {
	parts := []string{}
	if currentPackage != "" {
		parts = strings.Split(currentPackage, ".")
	}
	strip := level - 1
	if strip < 0 {
		strip = 0
	}
	if strip > len(parts) {
		return nil, &ModuleNotFoundError{Name: strings.Repeat(".", level) + module}
	}
	parts = parts[:len(parts)-strip]
	if module != "" {
		parts = append(parts, strings.Split(module, ".")...)
	}
	dotted := strings.Join(parts, ".")
	if dotted == "" {
		// `from . import name` with nothing left to resolve to a file:
		// the package directory itself is the target.
		return r.resolvePackagePath(currentPackage, strip)
	}
	return r.Resolve(dotted)
}

func (r *Resolver) resolvePackagePath(currentPackage string, strip int) (*Result, error) {
	parts := strings.Split(currentPackage, ".")
	if strip > len(parts) {
		strip = len(parts)
	}
	parts = parts[:len(parts)-strip]
	dotted := strings.Join(parts, ".")
	if dotted == "" {
		return nil, &ModuleNotFoundError{Name: "."}
	}
	return r.Resolve(dotted)
}

// PathToModule computes the dotted module name for an absolute path found
// under one of r.Roots, the inverse of Resolve. It returns false when path
// is not under any root.
func (r *Resolver) PathToModule(path string) (string, bool) {
	path = strings.TrimSuffix(path, SourceExt)
	for _, root := range r.Roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		rel = strings.TrimSuffix(rel, string(filepath.Separator)+strings.TrimSuffix(InitFile, SourceExt))
		if rel == "." {
			return "", true
		}
		dotted := strings.ReplaceAll(rel, string(filepath.Separator), ".")
		return dotted, true
	}
	return "", false
}

// ImportInfo describes one resolved import for reorganize-imports style
// refactorings: the dotted module it points to, the local names it binds
// (for a plain `import module` the alias, or else the module's first
// dotted segment), and whether it is a star import.
type ImportInfo struct {
	Module   string
	Level    int
	Names    []string // local binding names; nil for a star import
	IsStar   bool
	Resolved *Result // nil if the module could not be resolved
}
