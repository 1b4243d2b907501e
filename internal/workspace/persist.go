package workspace

import (
	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/textual"
	"github.com/corerope/corerope/internal/workspace/cache"
)

// PersistModule computes the textual form (internal/textual) of every
// top-level binding in resource and writes it to w.Cache, content-keyed
// by object.ContentKey of the module's current source (spec §6
// "Persisted state layout"). A no-op when no Cache is configured.
func (w *Workspace) PersistModule(resource string) error {
	if w.Cache == nil {
		return nil
	}
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		return err
	}
	src, _ := w.sourceFor(mod.Resource)
	key := object.ContentKey([]byte(src))

	records := make([]cache.Record, 0, len(mod.Scope.Names))
	for name, n := range mod.Scope.Names {
		ent := w.Inferer.EntityForName(n, mod)
		tup := textual.EntityToTuple(ent, w.DottedNameOf)
		records = append(records, cache.Record{
			DottedName: name,
			ContentKey: key,
			TupleLine:  textual.Encode(tup),
		})
	}
	return w.Cache.Put(mod.Resource, records)
}

// LoadPersisted returns the persisted entities for resource whose
// ContentKey still matches the module's current source, keyed by their
// top-level binding name. Stale records (the source changed since they
// were written) are silently skipped rather than trusted, matching the
// cache's content-addressable design (spec §2.G/§9).
func (w *Workspace) LoadPersisted(resource string) (map[string]object.Entity, error) {
	if w.Cache == nil {
		return nil, nil
	}
	mod, err := w.ResourceToModule(resource)
	if err != nil {
		return nil, err
	}
	src, _ := w.sourceFor(mod.Resource)
	key := object.ContentKey([]byte(src))

	records, err := w.Cache.Get(mod.Resource)
	if err != nil {
		return nil, err
	}
	out := map[string]object.Entity{}
	for _, r := range records {
		if r.ContentKey != key {
			continue
		}
		out[r.DottedName] = textual.FromTuple(textual.Decode(r.TupleLine), w)
	}
	return out, nil
}
