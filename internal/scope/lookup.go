package scope

// Lookup resolves name starting at scope and walking outward, the way a
// reference inside nested functions resolves against enclosing scopes
// (spec §4.E). Class scopes participate only when scope itself is that
// class scope; a name reference from inside a method never sees names
// bound directly in its enclosing class body, matching Python's own
// closure rules.
func Lookup(scope *Scope, name string) (*Name, bool) {
	cur := scope
	first := true
	for cur != nil {
		if first || cur.Kind != ClassScope {
			if n, ok := cur.Names[name]; ok {
				return n, true
			}
		}
		cur = cur.Parent
		first = false
	}
	return nil, false
}

// Walk calls fn for scope and every descendant, depth-first in source
// order.
func Walk(scope *Scope, fn func(*Scope)) {
	fn(scope)
	for _, c := range scope.Children {
		Walk(c, fn)
	}
}
