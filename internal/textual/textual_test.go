package textual

import (
	"testing"

	"github.com/corerope/corerope/internal/object"
)

type fakeResolver struct {
	entities map[string]object.Entity
}

func (r fakeResolver) ResolveDefined(modPath, dotted string) (object.Entity, bool) {
	e, ok := r.entities[modPath+"#"+dotted]
	return e, ok
}

func dottedNameFor(modPath, dotted string, ent object.Entity) func(object.Entity) (string, string, bool) {
	return func(e object.Entity) (string, string, bool) {
		if e == ent {
			return modPath, dotted, true
		}
		return "", "", false
	}
}

func TestUnknownAndNoneRoundTrip(t *testing.T) {
	r := fakeResolver{}
	for _, e := range []object.Entity{object.Unknown, object.None} {
		tup := EntityToTuple(e, dottedNameFor("", "", nil))
		encoded := Encode(tup)
		decoded := Decode(encoded)
		got := FromTuple(decoded, r)
		if got != e {
			t.Fatalf("round-trip of %v got %v", e, got)
		}
	}
}

func TestBuiltinListRoundTrip(t *testing.T) {
	b := &object.Builtin{BKind: object.BuiltinList, Element: &object.Builtin{BKind: object.BuiltinInt}}
	tup := EntityToTuple(b, dottedNameFor("", "", nil))
	encoded := Encode(tup)
	decoded := Decode(encoded)
	got := FromTuple(decoded, fakeResolver{})

	gb, ok := got.(*object.Builtin)
	if !ok || gb.BKind != object.BuiltinList {
		t.Fatalf("got %#v, want list builtin", got)
	}
	el, ok := gb.Element.(*object.Builtin)
	if !ok || el.BKind != object.BuiltinInt {
		t.Fatalf("element = %#v, want int", gb.Element)
	}
}

func TestBuiltinDictRoundTrip(t *testing.T) {
	b := &object.Builtin{
		BKind:   object.BuiltinDict,
		Key:     &object.Builtin{BKind: object.BuiltinString},
		Element: &object.Builtin{BKind: object.BuiltinInt},
	}
	tup := EntityToTuple(b, dottedNameFor("", "", nil))
	got := FromTuple(Decode(Encode(tup)), fakeResolver{})
	gb, ok := got.(*object.Builtin)
	if !ok || gb.BKind != object.BuiltinDict {
		t.Fatalf("got %#v", got)
	}
	if k, ok := gb.Key.(*object.Builtin); !ok || k.BKind != object.BuiltinString {
		t.Fatalf("key = %#v, want str", gb.Key)
	}
	if v, ok := gb.Element.(*object.Builtin); !ok || v.BKind != object.BuiltinInt {
		t.Fatalf("value = %#v, want int", gb.Element)
	}
}

func TestDefinedClassRoundTrip(t *testing.T) {
	cls := &object.Class{}
	resolver := fakeResolver{entities: map[string]object.Entity{"/abs/mod.py#mod.C": cls}}
	tup := EntityToTuple(cls, dottedNameFor("/abs/mod.py", "mod.C", cls))
	if tup.Tag != TagDefined {
		t.Fatalf("tag = %q, want defined", tup.Tag)
	}
	got := FromTuple(Decode(Encode(tup)), resolver)
	if got != object.Entity(cls) {
		t.Fatalf("got %#v, want the resolved class", got)
	}
}

func TestInstanceRoundTrip(t *testing.T) {
	cls := &object.Class{}
	resolver := fakeResolver{entities: map[string]object.Entity{"/abs/mod.py#mod.C": cls}}
	inst := &object.Instance{Class: cls}
	tup := EntityToTuple(inst, dottedNameFor("/abs/mod.py", "mod.C", cls))
	got := FromTuple(Decode(Encode(tup)), resolver)
	gi, ok := got.(*object.Instance)
	if !ok || gi.Class != cls {
		t.Fatalf("got %#v, want instance of cls", got)
	}
}

func TestUnresolvableDefinedDegradesToUnknown(t *testing.T) {
	tup := &Tuple{Tag: TagDefined, Parts: []interface{}{"/missing.py", "mod.Missing"}}
	got := FromTuple(tup, fakeResolver{})
	if got != object.Unknown {
		t.Fatalf("got %#v, want Unknown for unresolvable reference", got)
	}
}

func TestUnknownTagDegradesGracefully(t *testing.T) {
	decoded := Decode("some_future_tag \"x\" \"y\"")
	got := FromTuple(decoded, fakeResolver{})
	if got != object.Unknown {
		t.Fatalf("got %#v, want Unknown for unrecognized tag", got)
	}
}

func TestUnionRoundTrip(t *testing.T) {
	u := &object.Union{Members: []object.Entity{
		&object.Builtin{BKind: object.BuiltinInt},
		&object.Builtin{BKind: object.BuiltinString},
	}}
	tup := EntityToTuple(u, dottedNameFor("", "", nil))
	got := FromTuple(Decode(Encode(tup)), fakeResolver{})
	gu, ok := got.(*object.Union)
	if !ok || len(gu.Members) != 2 {
		t.Fatalf("got %#v, want a 2-member union", got)
	}
}
