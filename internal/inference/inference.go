// Package inference implements spec §4.H: given an expression node in a
// scope, produce an entity (possibly unknown), following the literal,
// name-reference, attribute, call, subscript, iteration and destructuring
// rules the spec lists, bounded by a visited-set and a depth counter so
// recursive definitions terminate.
package inference

import (
	"strconv"
	"strings"

	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/object"
	"github.com/corerope/corerope/internal/scope"
)

// maxDepth bounds call-chain recursion for parameter-from-caller
// propagation (spec §4.H "Depth is additionally bounded by a constant").
const maxDepth = 4

// ModuleLoader resolves a dotted module name to its loaded entity; the
// workspace implements this using internal/resolver plus its own parse
// cache, keeping this package free of filesystem concerns.
type ModuleLoader interface {
	LoadModule(dotted string) (*object.Module, bool)

	// LoadRelativeModule resolves a `from LEVEL*module import ...`
	// reference against the package of the module at fromResource (whose
	// dotted name is fromDotted), the way Python resolves a relative
	// import against the importing module's own package rather than the
	// source roots directly (spec §4.F). module is empty for a bare
	// `from . import name`.
	LoadRelativeModule(fromResource, fromDotted string, level int, module string) (*object.Module, bool)
}

// visitKey is the re-entrancy guard for call inference: repeating the same
// function with the same argument shape returns Unknown instead of
// recursing forever (spec §4.H "Termination").
type visitKey struct {
	fn  *object.Function
	sig string
}

// Inferer holds the caches and loader an inference run needs. One Inferer
// can serve many top-level queries; InferAt resets the per-query
// visited-set and depth counter each time.
type Inferer struct {
	Loader ModuleLoader

	// ParameterEvidence supplies call-site argument evidence for a bare
	// parameter reference (spec §4.H "inferred from every observed
	// call-site across the workspace"); the workspace populates this
	// after a cross-module call-site scan. Nil means no evidence is
	// available and parameter references infer as Unknown.
	ParameterEvidence func(fn *scope.Scope, paramIndex int) []object.Entity

	// ReturnEvidence supplies runtime-observed return values for a
	// function, gathered from the optional tracer's hint stream (spec §6
	// "runtime hints...contribute parameter and return-type evidence").
	// Nil means no runtime evidence is available and return inference
	// stays purely static.
	ReturnEvidence func(fnScope *scope.Scope) []object.Entity

	modules map[*scope.Scope]*object.Module
	byName  map[string]object.Entity
	classes map[*ast.ClassDef]*object.Class
	funcs   map[*ast.FunctionDef]*object.Function

	visited map[visitKey]bool
	depth   int
}

// New creates an Inferer backed by loader.
func New(loader ModuleLoader) *Inferer {
	return &Inferer{
		Loader:  loader,
		modules: map[*scope.Scope]*object.Module{},
		byName:  map[string]object.Entity{},
		classes: map[*ast.ClassDef]*object.Class{},
		funcs:   map[*ast.FunctionDef]*object.Function{},
	}
}

// Register tells the Inferer about an already-loaded module, wiring its
// star-import resolution back through this Inferer's loader.
func (inf *Inferer) Register(mod *object.Module) {
	inf.modules[mod.Scope] = mod
	inf.byName[mod.Dotted] = mod
	mod.StarImportResolver = func(ref scope.StarImportRef) (*object.Module, bool) {
		ent := inf.loadModuleEntity(ref.Module)
		m, ok := ent.(*object.Module)
		return m, ok
	}
}

// InferAt infers the entity for expr as it occurs in sc, part of mod. It
// is the public entry point: each call gets a fresh termination guard.
func (inf *Inferer) InferAt(expr ast.Expression, sc *scope.Scope, mod *object.Module) object.Entity {
	inf.visited = map[visitKey]bool{}
	inf.depth = 0
	return inf.infer(expr, sc, mod, nil)
}

func (inf *Inferer) moduleOf(sc *scope.Scope) *object.Module {
	if sc == nil {
		return nil
	}
	return inf.modules[sc.Module]
}

func (inf *Inferer) loadModuleEntity(dotted string) object.Entity {
	if e, ok := inf.byName[dotted]; ok {
		return e
	}
	if inf.Loader == nil {
		return object.Unknown
	}
	mod, ok := inf.Loader.LoadModule(dotted)
	if !ok || mod == nil {
		inf.byName[dotted] = object.Unknown
		return object.Unknown
	}
	mod.Dotted = dotted
	inf.Register(mod)
	return mod
}

// loadRelativeModuleEntity resolves a `from LEVEL*fragment import ...`
// reference (spec §4.F) against the package of the importing module
// owner. owner is nil for a module the Inferer was never Register-ed
// with (shouldn't happen for real source, but degrades to Unknown).
func (inf *Inferer) loadRelativeModuleEntity(owner *object.Module, level int, fragment string) object.Entity {
	if inf.Loader == nil || owner == nil {
		return object.Unknown
	}
	key := owner.Resource + "#" + strconv.Itoa(level) + "#" + fragment
	if e, ok := inf.byName[key]; ok {
		return e
	}
	mod, ok := inf.Loader.LoadRelativeModule(owner.Resource, owner.Dotted, level, fragment)
	if !ok || mod == nil {
		inf.byName[key] = object.Unknown
		return object.Unknown
	}
	inf.Register(mod)
	inf.byName[key] = mod
	return mod
}

// ClassFor returns the Class entity for a class-body scope (sc.Kind must
// be scope.ClassScope), constructing and memoizing it if needed. Used by
// occurrence's InHierarchyFilter to compare a resolved method's owning
// class against a search target's.
func (inf *Inferer) ClassFor(sc *scope.Scope) *object.Class {
	if sc == nil || sc.Kind != scope.ClassScope {
		return nil
	}
	def, ok := sc.Node.(*ast.ClassDef)
	if !ok {
		return nil
	}
	return inf.classFor(def, sc)
}

// EntityForName resolves a single Name binding to the Entity it names,
// without the ephemeral comprehension/lambda locals overlay infer's
// expression dispatch needs. Exported for workspace, which must resolve
// arbitrary Names (module attributes, persisted-cache entries) outside
// the context of any particular expression.
func (inf *Inferer) EntityForName(n *scope.Name, mod *object.Module) object.Entity {
	if n == nil {
		return object.Unknown
	}
	return inf.inferName(n, mod, nil)
}

func (inf *Inferer) classFor(def *ast.ClassDef, sc *scope.Scope) *object.Class {
	if c, ok := inf.classes[def]; ok {
		return c
	}
	mod := inf.moduleOf(sc)
	clsScope := sc.Module.FindInnerScopeForOffset(def.Pos() + 1)
	c := &object.Class{Def: def, Scope: clsScope, Module: mod}
	c.ResolveBase = func(e ast.Expression) object.Entity { return inf.infer(e, sc, mod, nil) }
	inf.classes[def] = c
	return c
}

func (inf *Inferer) functionFor(def *ast.FunctionDef, sc *scope.Scope) *object.Function {
	if f, ok := inf.funcs[def]; ok {
		return f
	}
	mod := inf.moduleOf(sc)
	fnScope := sc.Module.FindInnerScopeForOffset(def.Pos() + 1)
	f := &object.Function{Def: def, Scope: fnScope, Module: mod, Role: classifyRole(def, sc)}
	f.InferReturn = func(args []object.Entity) object.Entity {
		static := inf.inferReturnUnion(def, fnScope, mod)
		if inf.ReturnEvidence == nil {
			return static
		}
		observed := inf.ReturnEvidence(fnScope)
		if len(observed) == 0 {
			return static
		}
		return object.MakeUnion(append([]object.Entity{static}, observed...))
	}
	inf.funcs[def] = f
	return f
}

func classifyRole(def *ast.FunctionDef, sc *scope.Scope) object.FunctionRole {
	if sc.Kind != scope.ClassScope {
		return object.RolePlainFunction
	}
	for _, d := range def.Decorators {
		switch decoratorName(d) {
		case "staticmethod":
			return object.RoleStaticMethod
		case "classmethod":
			return object.RoleClassMethod
		}
	}
	return object.RoleMethod
}

func decoratorName(e ast.Expression) string {
	switch d := e.(type) {
	case *ast.Identifier:
		return d.Name
	case *ast.CallExpr:
		return decoratorName(d.Func)
	case *ast.AttributeExpr:
		return d.Attr.Name
	}
	return ""
}

// inferReturnUnion walks def's immediate body (not descending into nested
// function/class defs, the way a `return`/`yield` always belongs to its
// innermost enclosing function) collecting every return/yield expression
// and merging them (spec §4.H "Return inference").
func (inf *Inferer) inferReturnUnion(def *ast.FunctionDef, fnScope *scope.Scope, mod *object.Module) object.Entity {
	var returns, yields []ast.Expression
	collectReturnsAndYields(def.Body, &returns, &yields)

	if len(yields) > 0 {
		parts := make([]object.Entity, 0, len(yields))
		for _, y := range yields {
			parts = append(parts, inf.infer(y, fnScope, mod, nil))
		}
		return &object.Builtin{BKind: object.BuiltinGenerator, Element: object.MakeUnion(parts)}
	}
	if len(returns) == 0 {
		return object.None
	}
	parts := make([]object.Entity, 0, len(returns))
	for _, r := range returns {
		parts = append(parts, inf.infer(r, fnScope, mod, nil))
	}
	return object.MakeUnion(parts)
}

func collectReturnsAndYields(body []ast.Statement, returns, yields *[]ast.Expression) {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.ReturnStatement:
			if s.Value != nil {
				*returns = append(*returns, s.Value)
			}
		case *ast.ExprStatement:
			collectYieldsInExpr(s.X, yields)
		case *ast.AssignStatement:
			collectYieldsInExpr(s.Value, yields)
		case *ast.IfStatement:
			collectReturnsAndYields(s.Body, returns, yields)
			collectReturnsAndYields(s.Orelse, returns, yields)
		case *ast.ForStatement:
			collectReturnsAndYields(s.Body, returns, yields)
			collectReturnsAndYields(s.Orelse, returns, yields)
		case *ast.WhileStatement:
			collectReturnsAndYields(s.Body, returns, yields)
			collectReturnsAndYields(s.Orelse, returns, yields)
		case *ast.TryStatement:
			collectReturnsAndYields(s.Body, returns, yields)
			for _, h := range s.Handlers {
				collectReturnsAndYields(h.Body, returns, yields)
			}
			collectReturnsAndYields(s.Orelse, returns, yields)
			collectReturnsAndYields(s.Finalbody, returns, yields)
		case *ast.WithStatement:
			collectReturnsAndYields(s.Body, returns, yields)
		}
		// FunctionDef/ClassDef intentionally not recursed into: their own
		// returns/yields belong to them, not the enclosing function.
	}
}

func collectYieldsInExpr(e ast.Expression, yields *[]ast.Expression) {
	if y, ok := e.(*ast.YieldExpr); ok && y.Value != nil {
		*yields = append(*yields, y.Value)
	}
}

// infer is the recursive workhorse. locals overlays transient bindings
// that have no home in a scope's name table: comprehension and lambda
// parameters, which this analyzer (like its ancestor) does not model as
// their own scopes.
func (inf *Inferer) infer(expr ast.Expression, sc *scope.Scope, mod *object.Module, locals map[string]object.Entity) object.Entity {
	if expr == nil {
		return object.Unknown
	}
	switch e := expr.(type) {
	case *ast.NumberLit:
		if e.IsFloat {
			return &object.Builtin{BKind: object.BuiltinFloat}
		}
		return &object.Builtin{BKind: object.BuiltinInt}
	case *ast.StringLit:
		return &object.Builtin{BKind: object.BuiltinString}
	case *ast.BoolLit:
		return &object.Builtin{BKind: object.BuiltinBool}
	case *ast.NoneLit:
		return object.None

	case *ast.Identifier:
		if locals != nil {
			if v, ok := locals[e.Name]; ok {
				return v
			}
		}
		n, ok := scope.Lookup(sc, e.Name)
		if !ok {
			return object.Unknown
		}
		return inf.inferName(n, mod, locals)

	case *ast.AttributeExpr:
		base := inf.infer(e.Value, sc, mod, locals)
		if m, ok := inf.builtinAttribute(base, e.Attr.Name); ok {
			return m
		}
		attrs := base.GetAttributes()
		n, ok := attrs[e.Attr.Name]
		if !ok {
			return object.Unknown
		}
		ownerMod := inf.moduleOf(n.Owner)
		if ownerMod == nil {
			ownerMod = base.GetModule()
		}
		return inf.inferName(n, ownerMod, nil)

	case *ast.CallExpr:
		return inf.inferCall(e, sc, mod, locals)

	case *ast.SubscriptExpr:
		base := inf.infer(e.Value, sc, mod, locals)
		if _, isSlice := e.Index.(*ast.SliceExpr); isSlice {
			return base
		}
		return inf.inferSubscript(base, e.Index)

	case *ast.TupleExpr:
		elems := make([]object.Entity, 0, len(e.Elts))
		for _, el := range e.Elts {
			elems = append(elems, inf.infer(el, sc, mod, locals))
		}
		return &object.Builtin{BKind: object.BuiltinTuple, Elements: elems, Element: object.MakeUnion(elems)}

	case *ast.ListExpr:
		return &object.Builtin{BKind: object.BuiltinList, Element: inf.unionOfExprs(e.Elts, sc, mod, locals)}

	case *ast.SetExpr:
		return &object.Builtin{BKind: object.BuiltinSet, Element: inf.unionOfExprs(e.Elts, sc, mod, locals)}

	case *ast.DictExpr:
		keys := make([]object.Entity, 0, len(e.Keys))
		values := make([]object.Entity, 0, len(e.Values))
		for i, k := range e.Keys {
			if k != nil {
				keys = append(keys, inf.infer(k, sc, mod, locals))
			}
			values = append(values, inf.infer(e.Values[i], sc, mod, locals))
		}
		return &object.Builtin{BKind: object.BuiltinDict, Key: object.MakeUnion(keys), Element: object.MakeUnion(values)}

	case *ast.ListComp:
		inner := inf.bindComprehension(e.Generators, sc, mod, locals)
		return &object.Builtin{BKind: object.BuiltinList, Element: inf.infer(e.Elt, sc, mod, inner)}

	case *ast.SetComp:
		inner := inf.bindComprehension(e.Generators, sc, mod, locals)
		return &object.Builtin{BKind: object.BuiltinSet, Element: inf.infer(e.Elt, sc, mod, inner)}

	case *ast.DictComp:
		inner := inf.bindComprehension(e.Generators, sc, mod, locals)
		return &object.Builtin{
			BKind:   object.BuiltinDict,
			Key:     inf.infer(e.Key, sc, mod, inner),
			Element: inf.infer(e.Value, sc, mod, inner),
		}

	case *ast.GeneratorExp:
		inner := inf.bindComprehension(e.Generators, sc, mod, locals)
		return &object.Builtin{BKind: object.BuiltinGenerator, Element: inf.infer(e.Elt, sc, mod, inner)}

	case *ast.LambdaExpr:
		// Lambdas aren't modeled as their own scope; the
		// sentinel Function entity is returned so lambdas are at least
		// recognizable as callables to attribute/call-site checks.
		return object.FunctionEntity

	case *ast.IfExp:
		return object.MakeUnion([]object.Entity{
			inf.infer(e.Body, sc, mod, locals),
			inf.infer(e.Orelse, sc, mod, locals),
		})

	case *ast.BoolOp:
		return object.MakeUnion(inf.entitiesOf(e.Values, sc, mod, locals))

	case *ast.Compare:
		return &object.Builtin{BKind: object.BuiltinBool}

	case *ast.UnaryOp:
		if e.Op == "not" {
			return &object.Builtin{BKind: object.BuiltinBool}
		}
		return inf.infer(e.Operand, sc, mod, locals)

	case *ast.BinOp:
		return object.MakeUnion([]object.Entity{
			inf.infer(e.Left, sc, mod, locals),
			inf.infer(e.Right, sc, mod, locals),
		})

	case *ast.NamedExpr:
		return inf.infer(e.Value, sc, mod, locals)

	case *ast.Starred:
		return inf.infer(e.Value, sc, mod, locals)

	case *ast.YieldExpr:
		if e.Value != nil {
			return inf.infer(e.Value, sc, mod, locals)
		}
		return object.None
	}
	return object.Unknown
}

func (inf *Inferer) unionOfExprs(exprs []ast.Expression, sc *scope.Scope, mod *object.Module, locals map[string]object.Entity) object.Entity {
	return object.MakeUnion(inf.entitiesOf(exprs, sc, mod, locals))
}

func (inf *Inferer) entitiesOf(exprs []ast.Expression, sc *scope.Scope, mod *object.Module, locals map[string]object.Entity) []object.Entity {
	out := make([]object.Entity, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, inf.infer(e, sc, mod, locals))
	}
	return out
}

// bindComprehension infers each generator clause's iterable in the
// *enclosing* scope sc (clauses other than the first may reference earlier
// targets, which this overlay already carries) and returns an overlay
// mapping each simple-identifier target to its element entity.
func (inf *Inferer) bindComprehension(gens []*ast.Comprehension, sc *scope.Scope, mod *object.Module, outer map[string]object.Entity) map[string]object.Entity {
	locals := map[string]object.Entity{}
	for k, v := range outer {
		locals[k] = v
	}
	for _, g := range gens {
		iterEntity := inf.infer(g.Iter, sc, mod, locals)
		elem := inf.inferIterationElement(iterEntity)
		inf.bindComprehensionTarget(g.Target, elem, locals)
	}
	return locals
}

func (inf *Inferer) bindComprehensionTarget(target ast.Expression, elem object.Entity, locals map[string]object.Entity) {
	switch t := target.(type) {
	case *ast.Identifier:
		locals[t.Name] = elem
	case *ast.TupleExpr:
		for i, el := range t.Elts {
			locals2 := locals
			_ = i
			inf.bindComprehensionTarget(el, inf.selectPath(elem, []int{i}), locals2)
		}
	case *ast.ListExpr:
		for i, el := range t.Elts {
			inf.bindComprehensionTarget(el, inf.selectPath(elem, []int{i}), locals)
		}
	}
}

func (inf *Inferer) inferCall(e *ast.CallExpr, sc *scope.Scope, mod *object.Module, locals map[string]object.Entity) object.Entity {
	fn := inf.infer(e.Func, sc, mod, locals)
	args := inf.entitiesOf(e.Args, sc, mod, locals)

	switch f := fn.(type) {
	case *object.Class:
		return &object.Instance{Class: f}
	case *object.Function:
		return inf.invokeFunction(f, args)
	case *object.BuiltinMethod:
		return f.Call(args)
	case *object.Instance:
		attrs := f.GetAttributes()
		n, ok := attrs["__call__"]
		if !ok {
			return object.Unknown
		}
		callEnt := inf.inferName(n, f.GetModule(), nil)
		if cf, ok := callEnt.(*object.Function); ok {
			return inf.invokeFunction(cf, args)
		}
	case *object.Union:
		results := make([]object.Entity, 0, len(f.Members))
		for _, mem := range f.Members {
			switch m := mem.(type) {
			case *object.BuiltinMethod:
				results = append(results, m.Call(args))
			case *object.Function:
				results = append(results, inf.invokeFunction(m, args))
			}
		}
		return object.MakeUnion(results)
	}
	return object.Unknown
}

// builtinAttribute resolves a built-in method against base directly,
// bypassing GetAttributes (built-ins carry no scope.Name-backed attribute
// table — spec §4.G). A Union receiver resolves per-member, dropping
// members the method table doesn't cover; ok is false only when no member
// contributed a match, the same "degrade, never error" rule inferSubscript
// and inferIterationElement already follow for built-ins.
func (inf *Inferer) builtinAttribute(base object.Entity, name string) (object.Entity, bool) {
	switch b := base.(type) {
	case *object.Builtin:
		m, ok := b.BuiltinMethodFor(name)
		if !ok {
			return nil, false
		}
		return m, true
	case *object.Union:
		var results []object.Entity
		for _, mem := range b.Members {
			if ent, ok := inf.builtinAttribute(mem, name); ok {
				results = append(results, ent)
			}
		}
		if len(results) == 0 {
			return nil, false
		}
		return object.MakeUnion(results), true
	}
	return nil, false
}

func (inf *Inferer) invokeFunction(f *object.Function, args []object.Entity) object.Entity {
	if inf.depth >= maxDepth {
		return object.Unknown
	}
	sig := sigKey(args)
	key := visitKey{fn: f, sig: sig}
	if inf.visited == nil {
		inf.visited = map[visitKey]bool{}
	}
	if inf.visited[key] {
		return object.Unknown
	}
	inf.visited[key] = true
	inf.depth++
	result := f.GetReturnedObject(args, sig)
	inf.depth--
	return result
}

func sigKey(args []object.Entity) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			parts[i] = "-"
			continue
		}
		parts[i] = a.Kind().String()
	}
	return strings.Join(parts, ",")
}

func (inf *Inferer) inferSubscript(base object.Entity, indexExpr ast.Expression) object.Entity {
	switch b := base.(type) {
	case *object.Builtin:
		switch b.BKind {
		case object.BuiltinDict:
			return b.Element
		case object.BuiltinTuple:
			if lit, ok := indexExpr.(*ast.NumberLit); ok {
				if i, err := strconv.Atoi(lit.Literal); err == nil && i >= 0 && i < len(b.Elements) {
					return b.Elements[i]
				}
			}
			return b.Element
		case object.BuiltinList, object.BuiltinSet:
			return b.Element
		case object.BuiltinString:
			return b
		}
		return object.Unknown
	case *object.Instance:
		return inf.callMethodReturn(b, "__getitem__")
	case *object.Union:
		results := make([]object.Entity, 0, len(b.Members))
		for _, m := range b.Members {
			results = append(results, inf.inferSubscript(m, indexExpr))
		}
		return object.MakeUnion(results)
	}
	return object.Unknown
}

// inferIterationElement applies the iteration protocol (`__iter__` then
// `__next__`, or a built-in container's Element) to produce the type of
// one loop variable (spec §4.H "Subscript, iteration, slicing...").
func (inf *Inferer) inferIterationElement(entity object.Entity) object.Entity {
	switch e := entity.(type) {
	case *object.Builtin:
		switch e.BKind {
		case object.BuiltinString:
			return &object.Builtin{BKind: object.BuiltinString}
		case object.BuiltinDict:
			return e.Key
		default:
			return e.Element
		}
	case *object.Instance:
		return inf.callMethodReturn(e, "__iter__")
	case *object.Union:
		results := make([]object.Entity, 0, len(e.Members))
		for _, m := range e.Members {
			results = append(results, inf.inferIterationElement(m))
		}
		return object.MakeUnion(results)
	}
	return object.Unknown
}

func (inf *Inferer) callMethodReturn(entity object.Entity, method string) object.Entity {
	attrs := entity.GetAttributes()
	n, ok := attrs[method]
	if !ok {
		return object.Unknown
	}
	ent := inf.inferName(n, entity.GetModule(), nil)
	if f, ok := ent.(*object.Function); ok {
		return inf.invokeFunction(f, nil)
	}
	return object.Unknown
}

// selectPath walks a destructuring path into a container entity (spec
// §4.H "Tuple destructuring"). A -1 entry is the `*rest` remainder: the
// container's own element type, re-wrapped as a list.
func (inf *Inferer) selectPath(v object.Entity, path []int) object.Entity {
	for _, idx := range path {
		switch b := v.(type) {
		case *object.Builtin:
			if idx == -1 {
				v = &object.Builtin{BKind: object.BuiltinList, Element: b.Element}
				continue
			}
			if b.BKind == object.BuiltinTuple && idx < len(b.Elements) {
				v = b.Elements[idx]
				continue
			}
			v = b.Element
		case *object.Union:
			members := make([]object.Entity, 0, len(b.Members))
			for _, m := range b.Members {
				members = append(members, inf.selectPath(m, []int{idx}))
			}
			v = object.MakeUnion(members)
		default:
			return object.Unknown
		}
	}
	return v
}

// inferName resolves a scope.Name binding to the entity it currently
// denotes.
func (inf *Inferer) inferName(n *scope.Name, mod *object.Module, locals map[string]object.Entity) object.Entity {
	switch n.Kind {
	case scope.AssignedNameKind:
		return inf.inferAssigned(n, mod)

	case scope.DefinedNameKind:
		switch def := n.Defined.(type) {
		case *ast.ClassDef:
			return inf.classFor(def, n.Owner)
		case *ast.FunctionDef:
			return inf.functionFor(def, n.Owner)
		}
		return object.Unknown

	case scope.ImportedModuleKind:
		return inf.loadModuleEntity(n.ModulePath)

	case scope.ImportedNameKind:
		var dep object.Entity
		if n.ImportLevel > 0 {
			dep = inf.loadRelativeModuleEntity(mod, n.ImportLevel, n.ImportedModule)
		} else {
			dep = inf.loadModuleEntity(n.ImportedModule)
		}
		if dep == nil || dep == object.Unknown {
			return object.Unknown
		}
		attrs := dep.GetAttributes()
		depName, ok := attrs[n.ImportedOriginal]
		if !ok {
			return object.Unknown
		}
		return inf.inferName(depName, dep.GetModule(), nil)

	case scope.ParameterNameKind:
		if n.IsVararg {
			return &object.Builtin{BKind: object.BuiltinTuple, Element: object.Unknown}
		}
		if n.IsKwarg {
			return &object.Builtin{BKind: object.BuiltinDict, Key: &object.Builtin{BKind: object.BuiltinString}, Element: object.Unknown}
		}
		if inf.ParameterEvidence != nil {
			return object.MakeUnion(inf.ParameterEvidence(n.ParamFunction, n.ParamIndex))
		}
		return object.Unknown
	}
	return object.Unknown
}

func (inf *Inferer) inferAssigned(n *scope.Name, mod *object.Module) object.Entity {
	results := make([]object.Entity, 0, len(n.Assignments))
	ownerSc := n.Owner
	ownerMod := inf.moduleOf(ownerSc)
	if ownerMod == nil {
		ownerMod = mod
	}
	for _, a := range n.Assignments {
		var v object.Entity
		switch {
		case a.IsIteration:
			v = inf.inferIterationElement(inf.infer(a.Value, ownerSc, ownerMod, nil))
		case a.IsContextEnter:
			entered := inf.infer(a.Value, ownerSc, ownerMod, nil)
			v = inf.callMethodReturn(entered, "__enter__")
			if v == object.Unknown {
				v = entered
			}
		case a.IsExceptBinding:
			typeEnt := inf.infer(a.Value, ownerSc, ownerMod, nil)
			if cls, ok := typeEnt.(*object.Class); ok {
				v = &object.Instance{Class: cls}
			} else {
				v = object.Unknown
			}
		default:
			v = inf.infer(a.Value, ownerSc, ownerMod, nil)
		}
		if len(a.Path) > 0 && !a.IsIteration {
			v = inf.selectPath(v, a.Path)
		}
		results = append(results, v)
	}
	return object.MakeUnion(results)
}
