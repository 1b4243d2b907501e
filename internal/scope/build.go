package scope

import "github.com/corerope/corerope/internal/ast"

// Build walks mod the way rope's `_GlobalVisitor`/`_ClassVisitor`/
// `_FunctionVisitor` walk a compilation unit, producing the module's scope
// tree and its name tables (spec §4.E).
func Build(mod *ast.Module) *Scope {
	root := newScope(ModuleScope, mod, nil)
	b := &builder{}
	b.walkStatements(root, mod.Body, "", nil)
	return root
}

// builder carries no state of its own; it exists so the walk methods read
// naturally as a group and so future passes (e.g. comprehension scoping)
// have a natural home.
type builder struct{}

// walkStatements binds names from stmts into scope. selfParam, when
// non-empty, is the identifier of the enclosing method's first parameter;
// classScope is the class that method belongs to. Both are threaded
// through compound statements (if/for/while/try/with) because those do not
// introduce a new scope, and reset to ("", nil) when recursing into a
// nested function or class body.
func (b *builder) walkStatements(scope *Scope, stmts []ast.Statement, selfParam string, classScope *Scope) {
	for _, stmt := range stmts {
		b.walkStatement(scope, stmt, selfParam, classScope)
	}
}

func (b *builder) walkStatement(scope *Scope, stmt ast.Statement, selfParam string, classScope *Scope) {
	switch s := stmt.(type) {
	case *ast.AssignStatement:
		for _, target := range s.Targets {
			b.bindTarget(scope, target, &Assignment{Value: s.Value}, selfParam, classScope)
		}

	case *ast.AugAssignStatement:
		synthetic := &ast.BinOp{Left: s.Target, Op: s.Op, Right: s.Value, StartPos: s.StartPos, EndPos: s.EndPos}
		b.bindTarget(scope, s.Target, &Assignment{Value: synthetic}, selfParam, classScope)

	case *ast.AnnAssignStatement:
		if s.Value != nil {
			b.bindTarget(scope, s.Target, &Assignment{Value: s.Value}, selfParam, classScope)
		}

	case *ast.ForStatement:
		b.bindTarget(scope, s.Target, &Assignment{Value: s.Iter, IsIteration: true}, selfParam, classScope)
		b.walkStatements(scope, s.Body, selfParam, classScope)
		b.walkStatements(scope, s.Orelse, selfParam, classScope)

	case *ast.WhileStatement:
		b.walkStatements(scope, s.Body, selfParam, classScope)
		b.walkStatements(scope, s.Orelse, selfParam, classScope)

	case *ast.IfStatement:
		b.walkStatements(scope, s.Body, selfParam, classScope)
		b.walkStatements(scope, s.Orelse, selfParam, classScope)

	case *ast.TryStatement:
		b.walkStatements(scope, s.Body, selfParam, classScope)
		for _, h := range s.Handlers {
			if h.Name != nil {
				b.bindSimple(scope, h.Name.Name, &Assignment{Value: h.Type, IsExceptBinding: true})
			}
			b.walkStatements(scope, h.Body, selfParam, classScope)
		}
		b.walkStatements(scope, s.Orelse, selfParam, classScope)
		b.walkStatements(scope, s.Finalbody, selfParam, classScope)

	case *ast.WithStatement:
		for _, item := range s.Items {
			if item.OptionalVars != nil {
				b.bindTarget(scope, item.OptionalVars, &Assignment{Value: item.ContextExpr, IsContextEnter: true}, selfParam, classScope)
			}
		}
		b.walkStatements(scope, s.Body, selfParam, classScope)

	case *ast.ImportStatement:
		for _, alias := range s.Names {
			if alias.AsName != "" {
				b.bindSimpleKind(scope, alias.AsName, &Name{Kind: ImportedModuleKind, ModulePath: alias.Name})
				continue
			}
			root := alias.Name
			for i := 0; i < len(root); i++ {
				if root[i] == '.' {
					root = root[:i]
					break
				}
			}
			b.bindSimpleKind(scope, root, &Name{Kind: ImportedModuleKind, ModulePath: root})
		}

	case *ast.FromImportStatement:
		if s.IsStar {
			scope.Module.StarImports = append(scope.Module.StarImports, StarImportRef{Level: s.Level, Module: s.Module})
			return
		}
		for _, alias := range s.Names {
			target := alias.AsName
			if target == "" {
				target = alias.Name
			}
			b.bindSimpleKind(scope, target, &Name{
				Kind:             ImportedNameKind,
				ImportedModule:   s.Module,
				ImportedOriginal: alias.Name,
				ImportLevel:      s.Level,
			})
		}

	case *ast.GlobalStatement:
		if scope.Globals != nil {
			for _, id := range s.Names {
				scope.Globals[id.Name] = true
			}
		}

	case *ast.NonlocalStatement:
		if scope.Nonlocals != nil {
			for _, id := range s.Names {
				scope.Nonlocals[id.Name] = true
			}
		}

	case *ast.FunctionDef:
		b.bindSimpleKind(scope, s.Name.Name, &Name{Kind: DefinedNameKind, Defined: s})
		fnScope := newScope(FunctionScope, s, scope)
		b.bindParams(fnScope, s.Args)

		childSelf, childClassScope := "", (*Scope)(nil)
		if scope.Kind == ClassScope && len(s.Args.Params) > 0 {
			childSelf = s.Args.Params[0].Name.Name
			childClassScope = scope
		}
		b.walkStatements(fnScope, s.Body, childSelf, childClassScope)

	case *ast.ClassDef:
		b.bindSimpleKind(scope, s.Name.Name, &Name{Kind: DefinedNameKind, Defined: s})
		clsScope := newScope(ClassScope, s, scope)
		b.walkStatements(clsScope, s.Body, "", nil)
	}
}

func (b *builder) bindParams(fnScope *Scope, args *ast.Arguments) {
	for i, p := range args.Params {
		fnScope.Names[p.Name.Name] = &Name{
			Kind:          ParameterNameKind,
			Identifier:    p.Name.Name,
			Owner:         fnScope,
			ParamIndex:    i,
			ParamFunction: fnScope,
		}
	}
	if args.Vararg != nil {
		fnScope.Names[args.Vararg.Name] = &Name{
			Kind: ParameterNameKind, Identifier: args.Vararg.Name, Owner: fnScope,
			ParamFunction: fnScope, IsVararg: true,
		}
	}
	if args.Kwarg != nil {
		fnScope.Names[args.Kwarg.Name] = &Name{
			Kind: ParameterNameKind, Identifier: args.Kwarg.Name, Owner: fnScope,
			ParamFunction: fnScope, IsKwarg: true,
		}
	}
}

// bindTarget binds name(s) appearing in an assignment-like target
// expression. path accumulates the destructuring position so nested
// tuple/list targets record which element of a multi-value RHS they pick.
func (b *builder) bindTarget(scope *Scope, target ast.Expression, base *Assignment, selfParam string, classScope *Scope) {
	b.bindTargetPath(scope, target, base, nil, selfParam, classScope)
}

func (b *builder) bindTargetPath(scope *Scope, target ast.Expression, base *Assignment, path []int, selfParam string, classScope *Scope) {
	switch t := target.(type) {
	case *ast.Identifier:
		b.bindSimple(scope, t.Name, withPath(base, path))

	case *ast.Starred:
		b.bindTargetPath(scope, t.Value, base, append(append([]int{}, path...), -1), selfParam, classScope)

	case *ast.TupleExpr:
		for i, elt := range t.Elts {
			b.bindTargetPath(scope, elt, base, append(append([]int{}, path...), i), selfParam, classScope)
		}

	case *ast.ListExpr:
		for i, elt := range t.Elts {
			b.bindTargetPath(scope, elt, base, append(append([]int{}, path...), i), selfParam, classScope)
		}

	case *ast.AttributeExpr:
		if classScope == nil || selfParam == "" {
			return
		}
		recv, ok := t.Value.(*ast.Identifier)
		if !ok || recv.Name != selfParam {
			return
		}
		classScope.Names[t.Attr.Name] = &Name{
			Kind:        AssignedNameKind,
			Identifier:  t.Attr.Name,
			Owner:       classScope,
			Assignments: []*Assignment{withPath(base, path)},
		}

	case *ast.SubscriptExpr:
		// `obj[k] = v` rebinds no name in the scope table.
	}
}

func withPath(base *Assignment, path []int) *Assignment {
	a := *base
	if len(path) > 0 {
		a.Path = append([]int{}, path...)
	}
	return &a
}

// bindSimple records an AssignedName binding, rerouting through
// global/nonlocal declarations and accumulating onto an existing
// AssignedName rather than overwriting it (spec §4.H "assignment
// accumulation").
func (b *builder) bindSimple(scope *Scope, name string, a *Assignment) {
	target := b.resolveBindScope(scope, name)
	existing, ok := target.Names[name]
	if ok && existing.Kind == AssignedNameKind {
		existing.Assignments = append(existing.Assignments, a)
		return
	}
	target.Names[name] = &Name{
		Kind:        AssignedNameKind,
		Identifier:  name,
		Owner:       target,
		Assignments: []*Assignment{a},
	}
}

// bindSimpleKind installs a non-accumulating binding (imports, def/class),
// rerouted the same way bindSimple reroutes assignments.
func (b *builder) bindSimpleKind(scope *Scope, name string, n *Name) {
	target := b.resolveBindScope(scope, name)
	n.Identifier = name
	n.Owner = target
	target.Names[name] = n
}

// resolveBindScope implements `global`/`nonlocal` rerouting: a name
// declared global in a function scope binds in the module scope instead;
// a name declared nonlocal binds in the nearest enclosing function scope
// (skipping class scopes).
func (b *builder) resolveBindScope(scope *Scope, name string) *Scope {
	if scope.Globals != nil && scope.Globals[name] {
		return scope.Module
	}
	if scope.Nonlocals != nil && scope.Nonlocals[name] {
		for p := scope.Parent; p != nil; p = p.Parent {
			if p.Kind == FunctionScope || p.Kind == ModuleScope {
				return p
			}
		}
	}
	return scope
}
