package workspace

import (
	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/textual"
	"github.com/corerope/corerope/internal/tracer"
)

// IngestHint folds one runtime hint into the parameter/return evidence
// stores (spec §6 "records whose textual resolves to nothing are
// discarded"). A hint whose callee doesn't resolve to a known Function —
// unknown module, stale dotted name, or a target outside the workspace —
// is dropped in its entirety rather than partially applied.
func (w *Workspace) IngestHint(h tracer.Hint) {
	callee, ok := textual.FromTuple(textual.Decode(h.Callee), w).(*object.Function)
	if !ok {
		return
	}
	for i, argLine := range h.Args {
		arg := textual.FromTuple(textual.Decode(argLine), w)
		w.evidence.addParam(callee.Scope, i, arg)
	}
	if h.Return != "" {
		ret := textual.FromTuple(textual.Decode(h.Return), w)
		w.evidence.addReturn(callee.Scope, ret)
	}
}
