package workspace

import (
	"sync"

	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/scope"
)

// evidenceStore accumulates parameter and return-value evidence keyed by a
// function's own *scope.Scope (stable across re-parses of the function's
// own module, though not across a re-parse that reshapes its body). It
// backs both inference.Inferer.ParameterEvidence (fed by ScanCallSites)
// and ReturnEvidence (fed by IngestHint).
type evidenceStore struct {
	mu      sync.Mutex
	params  map[*scope.Scope]map[int][]object.Entity
	returns map[*scope.Scope][]object.Entity
}

func newEvidenceStore() *evidenceStore {
	return &evidenceStore{
		params:  map[*scope.Scope]map[int][]object.Entity{},
		returns: map[*scope.Scope][]object.Entity{},
	}
}

func (s *evidenceStore) addParam(fn *scope.Scope, index int, e object.Entity) {
	if fn == nil || e == nil || e == object.Unknown {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	byIndex, ok := s.params[fn]
	if !ok {
		byIndex = map[int][]object.Entity{}
		s.params[fn] = byIndex
	}
	byIndex[index] = append(byIndex[index], e)
}

func (s *evidenceStore) paramsFor(fn *scope.Scope, index int) []object.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]object.Entity(nil), s.params[fn][index]...)
}

func (s *evidenceStore) addReturn(fn *scope.Scope, e object.Entity) {
	if fn == nil || e == nil || e == object.Unknown {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.returns[fn] = append(s.returns[fn], e)
}

func (s *evidenceStore) returnsFor(fn *scope.Scope) []object.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]object.Entity(nil), s.returns[fn]...)
}
