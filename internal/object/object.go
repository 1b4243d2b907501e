// Package object is the entity model and concluded-data cache described in
// spec §3 and §4.G: Module, Package, Class, Function, Instance and
// Built-in-Container entities, each exposing get_type/get_attributes/
// get_module, with expensive derived data ("concluded data") memoized and
// invalidated against the owning module's AST version.
package object

import (
	"github.com/corerope/corerope/internal/ast"
	"github.com/corerope/corerope/internal/scope"
)

// Kind tags the entity variants of spec §3's "Entities" list.
type Kind int

const (
	KindModule Kind = iota
	KindPackage
	KindClass
	KindFunction
	KindInstance
	KindBuiltin
	KindUnknown
	KindNone
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindPackage:
		return "package"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindInstance:
		return "instance"
	case KindBuiltin:
		return "builtin"
	case KindUnknown:
		return "unknown"
	case KindNone:
		return "none"
	case KindUnion:
		return "union"
	}
	return "?"
}

// Entity is the interface every model object implements (spec §4.G).
type Entity interface {
	Kind() Kind
	GetType() Entity
	GetAttributes() map[string]*scope.Name
	GetModule() *Module
}

// concludedBox is a memoization cell for data expensive to compute (base
// list, attribute merge, parameter/return type) that must be invalidated
// whenever the owning module's AST is rebuilt (spec §4.G). inProgress
// breaks cycles: a re-entrant read while a value is being computed sees
// inProgress and gets the zero value rather than recursing forever.
type concludedBox struct {
	value      interface{}
	version    int
	inProgress bool
	valid      bool
}

func (b *concludedBox) get(version int) (interface{}, bool) {
	if b == nil || !b.valid || b.version != version || b.inProgress {
		return nil, false
	}
	return b.value, true
}

// typeSentinel is the fixed entity classes/functions/instances report from
// GetType when no more specific type entity applies (spec §4.G: "classes
// are typed by a sentinel Type, functions by a sentinel Function").
type typeSentinel struct{ name string }

func (s *typeSentinel) Kind() Kind                            { return KindBuiltin }
func (s *typeSentinel) GetType() Entity                       { return s }
func (s *typeSentinel) GetAttributes() map[string]*scope.Name { return nil }
func (s *typeSentinel) GetModule() *Module                    { return nil }

var (
	TypeEntity     Entity = &typeSentinel{name: "Type"}
	FunctionEntity Entity = &typeSentinel{name: "Function"}
)

// Unknown is returned whenever inference cannot determine an entity; it
// must never propagate as an error, only as this sentinel value.
type unknownEntity struct{}

func (unknownEntity) Kind() Kind                            { return KindUnknown }
func (unknownEntity) GetType() Entity                       { return Unknown }
func (unknownEntity) GetAttributes() map[string]*scope.Name { return nil }
func (unknownEntity) GetModule() *Module                    { return nil }

var Unknown Entity = unknownEntity{}

type noneEntity struct{}

func (noneEntity) Kind() Kind                            { return KindNone }
func (noneEntity) GetType() Entity                       { return None }
func (noneEntity) GetAttributes() map[string]*scope.Name { return nil }
func (noneEntity) GetModule() *Module                    { return nil }

var None Entity = noneEntity{}

// Module is a loaded source file: its text's derived AST, global scope,
// star-imports and a version counter bumped on every reparse so dependent
// concluded data knows to recompute (spec §3 "Module").
type Module struct {
	Resource string // absolute path of the backing resource
	Dotted   string // dotted module name this was resolved under
	AST      *ast.Module
	Scope    *scope.Scope
	Version  int

	// StarImportResolver looks up the Module contributed by one
	// `from X import *` entry; set by whoever owns module loading
	// (inference/workspace) to avoid this package depending on resolver.
	StarImportResolver func(scope.StarImportRef) (*Module, bool)

	starAttrsBox concludedBox
}

func (m *Module) Kind() Kind         { return KindModule }
func (m *Module) GetType() Entity    { return TypeEntity }
func (m *Module) GetModule() *Module { return m }

// GetAttributes merges the module's own globals with whatever its
// star-imports contribute, later entries losing to earlier ones the same
// way Class attribute merging works.
func (m *Module) GetAttributes() map[string]*scope.Name {
	if v, ok := m.starAttrsBox.get(m.Version); ok {
		return v.(map[string]*scope.Name)
	}
	if m.starAttrsBox.inProgress {
		return map[string]*scope.Name{}
	}
	m.starAttrsBox.inProgress = true
	merged := map[string]*scope.Name{}
	if m.StarImportResolver != nil {
		for i := len(m.Scope.StarImports) - 1; i >= 0; i-- {
			if dep, ok := m.StarImportResolver(m.Scope.StarImports[i]); ok {
				for k, v := range dep.GetAttributes() {
					merged[k] = v
				}
			}
		}
	}
	for k, v := range m.Scope.Names {
		merged[k] = v
	}
	m.starAttrsBox = concludedBox{value: merged, version: m.Version, valid: true}
	return merged
}

// Package is a directory module: its InitModule is the associated
// `__init__`-style module if one exists (nil otherwise), and Children
// exposes submodules/subpackages as attributes by name (spec §3
// "Package").
type Package struct {
	Path       string
	InitModule *Module // nil if no initializer file
	Children   map[string]Entity
}

func (p *Package) Kind() Kind { return KindPackage }
func (p *Package) GetType() Entity {
	return TypeEntity
}
func (p *Package) GetModule() *Module {
	if p.InitModule != nil {
		return p.InitModule
	}
	return nil
}

// GetAttributes merges the initializer module's globals (if any) with the
// package's submodule children; children take precedence on conflict since
// a submodule shadows a same-named assignment in `__init__`.
func (p *Package) GetAttributes() map[string]*scope.Name {
	merged := map[string]*scope.Name{}
	if p.InitModule != nil {
		for k, v := range p.InitModule.GetAttributes() {
			merged[k] = v
		}
	}
	for name := range p.Children {
		merged[name] = &scope.Name{Kind: scope.ImportedModuleKind, Identifier: name, ModulePath: name}
	}
	return merged
}

// Class is an AST-backed class entity (spec §3 "Class").
type Class struct {
	Def    *ast.ClassDef
	Scope  *scope.Scope // the class body's own scope; its Names are the structural attribute map, instance attributes (`self.x = ...`) included (spec §4.E)
	Module *Module

	// ResolveBase infers one base-class expression to an Entity. Injected
	// by the inference package at construction time so this package never
	// imports inference (spec §4.G keeps base resolution lazy).
	ResolveBase func(ast.Expression) Entity

	superBox concludedBox
	attrBox  concludedBox
}

func (c *Class) Kind() Kind         { return KindClass }
func (c *Class) GetType() Entity    { return TypeEntity }
func (c *Class) GetModule() *Module { return c.Module }

// GetSuperclasses resolves Def.Bases lazily, keeping only the entries that
// resolve to another Class (anything else — an unresolved name, a dynamic
// base expression — is dropped rather than failing the whole merge).
func (c *Class) GetSuperclasses() []*Class {
	if v, ok := c.superBox.get(c.Module.Version); ok {
		return v.([]*Class)
	}
	if c.ResolveBase == nil {
		return nil
	}
	supers := make([]*Class, 0, len(c.Def.Bases))
	for _, b := range c.Def.Bases {
		if ent := c.ResolveBase(b); ent != nil {
			if base, ok := ent.(*Class); ok && base != c {
				supers = append(supers, base)
			}
		}
	}
	c.superBox = concludedBox{value: supers, version: c.Module.Version, valid: true}
	return supers
}

// GetAttributes merges superclass attributes, reverse order so the
// first-declared base wins (spec §3 invariant), then overlays the class's
// own locals, which always win over anything inherited.
func (c *Class) GetAttributes() map[string]*scope.Name {
	if v, ok := c.attrBox.get(c.Module.Version); ok {
		return v.(map[string]*scope.Name)
	}
	if c.attrBox.inProgress {
		return map[string]*scope.Name{}
	}
	c.attrBox.inProgress = true
	merged := map[string]*scope.Name{}
	supers := c.GetSuperclasses()
	for i := len(supers) - 1; i >= 0; i-- {
		for k, v := range supers[i].GetAttributes() {
			merged[k] = v
		}
	}
	for k, v := range c.Scope.Names {
		merged[k] = v
	}
	c.attrBox = concludedBox{value: merged, version: c.Module.Version, valid: true}
	return merged
}

// FunctionRole classifies a Function relative to its parent (spec §3
// "Function ... Classified as function | method | staticmethod |
// classmethod by inspecting its decorators against the parent").
type FunctionRole int

const (
	RolePlainFunction FunctionRole = iota
	RoleMethod
	RoleStaticMethod
	RoleClassMethod
)

// Function is an AST-backed function/method entity (spec §3 "Function").
type Function struct {
	Def    *ast.FunctionDef
	Scope  *scope.Scope
	Module *Module
	Role   FunctionRole

	// InferReturn computes the union of the function's return/yield
	// expressions given inferred argument entities; injected by the
	// inference package the same way Class.ResolveBase is.
	InferReturn func(args []Entity) Entity

	returnBox map[string]concludedBox // keyed by an argument-signature hash (spec §4.H termination)
}

func (f *Function) Kind() Kind         { return KindFunction }
func (f *Function) GetType() Entity    { return FunctionEntity }
func (f *Function) GetModule() *Module { return f.Module }

func (f *Function) GetAttributes() map[string]*scope.Name { return nil }

// GetParameter returns the Name bound to the index'th parameter, or nil if
// out of range.
func (f *Function) GetParameter(index int) *scope.Name {
	params := f.Def.Args.Params
	if index < 0 || index >= len(params) {
		return nil
	}
	n, _ := f.Scope.Local(params[index].Name.Name)
	return n
}

// GetReturnedObject computes (and memoizes) the function's return type for
// a given call's inferred argument entities, keyed by a signature hash so
// repeated calls with the same shape reuse the cached result (spec §4.H
// "visited set of (entity, argument-tuple) pairs").
func (f *Function) GetReturnedObject(args []Entity, sigKey string) Entity {
	if f.returnBox == nil {
		f.returnBox = map[string]concludedBox{}
	}
	box := f.returnBox[sigKey]
	if v, ok := box.get(f.Module.Version); ok {
		return v.(Entity)
	}
	if box.inProgress {
		return Unknown
	}
	box.inProgress = true
	f.returnBox[sigKey] = box
	var result Entity = Unknown
	if f.InferReturn != nil {
		result = f.InferReturn(args)
	}
	f.returnBox[sigKey] = concludedBox{value: result, version: f.Module.Version, valid: true}
	return result
}

// Instance is an object whose type is a Class; it has no attributes of its
// own beyond its type's and those written via `self.x = ...` (which this
// model already folds into the Class's own attribute map, so Instance just
// delegates — spec §3 "Instance").
type Instance struct {
	Class *Class
}

func (i *Instance) Kind() Kind                            { return KindInstance }
func (i *Instance) GetType() Entity                       { return i.Class }
func (i *Instance) GetModule() *Module                    { return i.Class.GetModule() }
func (i *Instance) GetAttributes() map[string]*scope.Name { return i.Class.GetAttributes() }

// BuiltinKind enumerates the built-in container shapes spec §3 lists.
type BuiltinKind int

const (
	BuiltinList BuiltinKind = iota
	BuiltinDict
	BuiltinTuple
	BuiltinSet
	BuiltinIterator
	BuiltinGenerator
	BuiltinFile
	BuiltinString
	BuiltinInt
	BuiltinFloat
	BuiltinBool
)

func (k BuiltinKind) String() string {
	switch k {
	case BuiltinList:
		return "list"
	case BuiltinDict:
		return "dict"
	case BuiltinTuple:
		return "tuple"
	case BuiltinSet:
		return "set"
	case BuiltinIterator:
		return "iterator"
	case BuiltinGenerator:
		return "generator"
	case BuiltinFile:
		return "file"
	case BuiltinString:
		return "str"
	case BuiltinInt:
		return "int"
	case BuiltinFloat:
		return "float"
	case BuiltinBool:
		return "bool"
	}
	return "?"
}

// Builtin is a built-in container or scalar, optionally parameterised by
// the entity of the element(s) it holds (spec §3 "Built-in Container").
// Tuple uses Elements for its per-position types; every other container
// kind uses Element (and, for Dict, Key additionally).
type Builtin struct {
	BKind    BuiltinKind
	Element  Entity // unknown for scalars and empty containers
	Key      Entity // Dict only
	Elements []Entity
}

func (b *Builtin) Kind() Kind                            { return KindBuiltin }
func (b *Builtin) GetType() Entity                       { return TypeEntity }
func (b *Builtin) GetModule() *Module                    { return nil }

// GetAttributes is always empty: a built-in has no scope.Name-backed
// structural attribute table (spec §4.G — those exist only for Module/
// Class/Instance). Its protocol methods are modeled separately by
// BuiltinMethodFor and consulted directly by the inference package, the
// same way inferSubscript and inferIterationElement already special-case
// *Builtin rather than routing through GetAttributes.
func (b *Builtin) GetAttributes() map[string]*scope.Name { return nil }

// BuiltinMethod is a bound method on a built-in container/scalar (spec §8
// scenario 2: `a.upper()` on a str-typed `a` resolves to str). It carries
// no AST — Invoke computes the return type directly from the receiver and
// the call's arguments, the way rope's base.builtins module models
// C-implemented types' methods as plain callables rather than AST-backed
// PyFunctions.
type BuiltinMethod struct {
	Receiver *Builtin
	Name     string
	Invoke   func(recv *Builtin, args []Entity) Entity
}

func (m *BuiltinMethod) Kind() Kind                            { return KindFunction }
func (m *BuiltinMethod) GetType() Entity                       { return FunctionEntity }
func (m *BuiltinMethod) GetAttributes() map[string]*scope.Name { return nil }
func (m *BuiltinMethod) GetModule() *Module                    { return nil }

// Call computes the method's return type for one call site.
func (m *BuiltinMethod) Call(args []Entity) Entity {
	if m.Invoke == nil {
		return Unknown
	}
	return m.Invoke(m.Receiver, args)
}

// builtinMethodTable models the str/list/dict/set protocol methods spec §8
// scenario 2 and the built-in container protocols exercise. It is
// deliberately not exhaustive — anything absent here still degrades to
// Unknown on attribute access rather than erroring (spec §4.H).
var builtinMethodTable = map[BuiltinKind]map[string]func(recv *Builtin, args []Entity) Entity{
	BuiltinString: {
		"upper": builtinSameReceiver, "lower": builtinSameReceiver,
		"strip": builtinSameReceiver, "lstrip": builtinSameReceiver, "rstrip": builtinSameReceiver,
		"title": builtinSameReceiver, "capitalize": builtinSameReceiver, "swapcase": builtinSameReceiver,
		"replace": builtinSameReceiver, "format": builtinSameReceiver, "encode": builtinSameReceiver,
		"join":       func(recv *Builtin, args []Entity) Entity { return recv },
		"split":      func(recv *Builtin, args []Entity) Entity { return &Builtin{BKind: BuiltinList, Element: recv} },
		"rsplit":     func(recv *Builtin, args []Entity) Entity { return &Builtin{BKind: BuiltinList, Element: recv} },
		"splitlines": func(recv *Builtin, args []Entity) Entity { return &Builtin{BKind: BuiltinList, Element: recv} },
		"startswith": builtinBoolResult, "endswith": builtinBoolResult,
		"find": builtinIntResult, "rfind": builtinIntResult, "index": builtinIntResult, "count": builtinIntResult,
	},
	BuiltinList: {
		"append": builtinNoneResult, "extend": builtinNoneResult, "insert": builtinNoneResult,
		"remove": builtinNoneResult, "sort": builtinNoneResult, "reverse": builtinNoneResult, "clear": builtinNoneResult,
		"pop":   func(recv *Builtin, args []Entity) Entity { return recv.Element },
		"index": builtinIntResult, "count": builtinIntResult,
		"copy": func(recv *Builtin, args []Entity) Entity { return recv },
	},
	BuiltinDict: {
		"get": func(recv *Builtin, args []Entity) Entity {
			if len(args) > 1 {
				return MakeUnion([]Entity{recv.Element, args[1]})
			}
			return MakeUnion([]Entity{recv.Element, None})
		},
		"pop":    func(recv *Builtin, args []Entity) Entity { return recv.Element },
		"keys":   func(recv *Builtin, args []Entity) Entity { return &Builtin{BKind: BuiltinIterator, Element: recv.Key} },
		"values": func(recv *Builtin, args []Entity) Entity { return &Builtin{BKind: BuiltinIterator, Element: recv.Element} },
		"items": func(recv *Builtin, args []Entity) Entity {
			return &Builtin{BKind: BuiltinIterator, Element: &Builtin{BKind: BuiltinTuple, Elements: []Entity{recv.Key, recv.Element}}}
		},
		"update": builtinNoneResult, "clear": builtinNoneResult,
		"copy": func(recv *Builtin, args []Entity) Entity { return recv },
	},
	BuiltinSet: {
		"add": builtinNoneResult, "remove": builtinNoneResult, "discard": builtinNoneResult,
		"update": builtinNoneResult, "clear": builtinNoneResult,
		"pop":  func(recv *Builtin, args []Entity) Entity { return recv.Element },
		"copy": func(recv *Builtin, args []Entity) Entity { return recv },
	},
}

func builtinSameReceiver(recv *Builtin, args []Entity) Entity { return recv }
func builtinNoneResult(recv *Builtin, args []Entity) Entity   { return None }
func builtinIntResult(recv *Builtin, args []Entity) Entity    { return &Builtin{BKind: BuiltinInt} }
func builtinBoolResult(recv *Builtin, args []Entity) Entity   { return &Builtin{BKind: BuiltinBool} }

// BuiltinMethodFor returns the bound method b exposes under name, if
// builtinMethodTable models one for b's kind.
func (b *Builtin) BuiltinMethodFor(name string) (*BuiltinMethod, bool) {
	table, ok := builtinMethodTable[b.BKind]
	if !ok {
		return nil, false
	}
	fn, ok := table[name]
	if !ok {
		return nil, false
	}
	return &BuiltinMethod{Receiver: b, Name: name, Invoke: fn}, true
}

// Union represents "the merge of all RHS sites" (spec §4.H "assignment
// accumulation" and "return inference"): a value that may, at runtime, be
// any of Members. Tools that want a single representative for display
// should take Members[0]; nothing else in this package collapses a Union
// on its own, so no evidence is silently dropped.
type Union struct {
	Members []Entity
}

func (u *Union) Kind() Kind { return KindUnion }
func (u *Union) GetType() Entity {
	if len(u.Members) == 0 {
		return Unknown
	}
	return u.Members[0].GetType()
}
func (u *Union) GetModule() *Module {
	for _, m := range u.Members {
		if mod := m.GetModule(); mod != nil {
			return mod
		}
	}
	return nil
}
func (u *Union) GetAttributes() map[string]*scope.Name {
	merged := map[string]*scope.Name{}
	for i := len(u.Members) - 1; i >= 0; i-- {
		for k, v := range u.Members[i].GetAttributes() {
			merged[k] = v
		}
	}
	return merged
}

// MakeUnion collapses a slice of inferred entities into a single Entity:
// Unknown members are dropped (an unknown contributes no information),
// duplicates (by pointer identity) are merged, and a single surviving
// member is returned unwrapped rather than as a one-element Union.
func MakeUnion(entities []Entity) Entity {
	seen := make(map[Entity]bool, len(entities))
	members := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if e == nil || e == Unknown || seen[e] {
			continue
		}
		seen[e] = true
		members = append(members, e)
	}
	switch len(members) {
	case 0:
		return Unknown
	case 1:
		return members[0]
	default:
		return &Union{Members: members}
	}
}
