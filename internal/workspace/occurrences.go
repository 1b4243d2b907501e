package workspace

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/occurrence"
	"github.com/corerope/corerope/internal/scope"
)

// maxConcurrentLoads bounds the errgroup fan-out FindOccurrences uses to
// load candidate resources; ResourceToModule's singleflight group still
// collapses any two callers racing on the very same resource.
const maxConcurrentLoads = 8

// FindOccurrences resolves the Name at (resource, offset) and collects its
// occurrences across resources into one slice, returned once the scan ends
// (spec §6 "find_occurrences(resource,
// offset, {unsure, in_hierarchy, resources?})"). When resources is empty
// the whole workspace is scanned (w.Enumerate()). Resources are loaded
// concurrently via errgroup (spec §5/§3 domain stack: "cross-module
// occurrence scans...fanned out and joined via errgroup"), then handed to
// the single-threaded occurrence.Finder in resource-enumeration order so
// ordering and cancellation still meet spec §5's guarantees. task may be
// nil, meaning the scan is never cancelled and fires no job events.
func (w *Workspace) FindOccurrences(resource string, offset int, opts occurrence.Options, resources []string, task *Task) ([]occurrence.Occurrence, error) {
	name, err := w.PyNameAt(resource, offset)
	if err != nil {
		return nil, err
	}
	if name == nil {
		return nil, &NameNotFoundError{Resource: resource, Offset: offset}
	}

	// Resolve through aliased imports first (spec §8 scenario 3): a search
	// started on `h` in `from pkg.mod import g as h` must land on the same
	// canonical Name a search started on `g` in pkg.mod would, so Rename and
	// FindOccurrences agree on one occurrence set regardless of which
	// spelling the caller's offset happened to land on.
	canonical := w.resolveImportedName(name)

	var owner object.Entity
	if canonical.Owner != nil && canonical.Owner.Kind == scope.ClassScope {
		if cls := w.Inferer.ClassFor(canonical.Owner); cls != nil {
			owner = cls
		}
	}
	target := occurrence.Target{Name: canonical, Entity: owner}

	paths := resources
	if len(paths) == 0 {
		paths, err = w.Enumerate()
		if err != nil {
			return nil, err
		}
	}

	rms := make([]occurrence.ResourceModule, len(paths))
	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(maxConcurrentLoads)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			task.startedJob(p)
			defer task.finishedJob(p)
			mod, lerr := w.ResourceToModule(p)
			if lerr != nil {
				// A resource that fails to load (deleted mid-scan, a
				// strict-policy syntax error) is skipped rather than
				// failing the whole cross-module scan.
				return nil
			}
			src, _ := w.sourceFor(p)
			rms[i] = occurrence.ResourceModule{Resource: p, Source: src, Module: mod}
			return nil
		})
	}
	_ = g.Wait()

	loaded := rms[:0]
	for _, rm := range rms {
		if rm.Module != nil {
			loaded = append(loaded, rm)
		}
	}

	names := w.aliasSpellings(canonical, loaded)

	return w.Finder.Find(names, target, loaded, opts, task.cancelFunc()), nil
}

// aliasSpellings is every local identifier that might denote canonical:
// canonical's own identifier, plus the identifier of any ImportedNameKind
// binding in any loaded module that resolves (through resolveImportedName)
// to canonical — e.g. `h` in `from pkg.mod import g as h` when canonical is
// pkg.mod's `g` (spec §8 scenario 3). Without this, FindOccurrences would
// only ever scan for canonical's own spelling and miss every aliased import
// site entirely.
func (w *Workspace) aliasSpellings(canonical *scope.Name, loaded []occurrence.ResourceModule) []string {
	seen := map[string]bool{canonical.Identifier: true}
	names := []string{canonical.Identifier}
	for _, rm := range loaded {
		if rm.Module == nil || rm.Module.Scope == nil {
			continue
		}
		scope.Walk(rm.Module.Scope, func(sc *scope.Scope) {
			for _, n := range sc.Names {
				if n.Kind != scope.ImportedNameKind {
					continue
				}
				if w.resolveImportedName(n) != canonical {
					continue
				}
				if !seen[n.Identifier] {
					seen[n.Identifier] = true
					names = append(names, n.Identifier)
				}
			}
		})
	}
	return names
}
