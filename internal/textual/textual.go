// Package textual implements spec §4.J: a stable, string-only round-trip
// form for entities, used to persist inference-derived knowledge across
// runs and to correlate a running tracer's dynamic hints with static
// entities. The form is a small tagged tuple, modeled directly on the
// entity kinds in internal/object.
package textual

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corerope/corerope/internal/object"
)

// Tuple is the textual representation: Tag names the variant, Parts holds
// its payload (nested Tuples for containers, plain strings otherwise).
type Tuple struct {
	Tag   string
	Parts []interface{} // string or *Tuple
}

const (
	TagDefined  = "defined"
	TagInstance = "instance"
	TagBuiltin  = "builtin"
	TagUnion    = "union"
	TagUnknown  = "unknown"
	TagNone     = "none"
)

// Resolver looks up the defined entity (Class or Function) that a
// (modulePath, dottedName) pair names; it is how FromTuple reconstitutes
// an entity without this package depending on inference or a workspace.
type Resolver interface {
	ResolveDefined(modulePath, dottedName string) (object.Entity, bool)
}

// EntityToTuple converts e to its textual form (spec §4.J). dottedNameOf
// supplies the dotted name for Class/Function entities, which this
// package cannot compute on its own (it would need the owning module's
// full scope tree and naming convention); callers typically pass a
// closure backed by the same naming scheme the workspace publishes
// through module/resource lookups.
func EntityToTuple(e object.Entity, dottedNameOf func(object.Entity) (modulePath, dotted string, ok bool)) *Tuple {
	if e == nil {
		return &Tuple{Tag: TagUnknown}
	}
	switch e.Kind() {
	case object.KindUnknown:
		return &Tuple{Tag: TagUnknown}
	case object.KindNone:
		return &Tuple{Tag: TagNone}
	case object.KindClass, object.KindFunction, object.KindModule:
		if modPath, dotted, ok := dottedNameOf(e); ok {
			return &Tuple{Tag: TagDefined, Parts: []interface{}{modPath, dotted}}
		}
		return &Tuple{Tag: TagUnknown}
	case object.KindInstance:
		inst := e.(*object.Instance)
		return &Tuple{Tag: TagInstance, Parts: []interface{}{EntityToTuple(inst.Class, dottedNameOf)}}
	case object.KindBuiltin:
		b := e.(*object.Builtin)
		parts := []interface{}{b.BKind.String()}
		if b.Key != nil {
			parts = append(parts, EntityToTuple(b.Key, dottedNameOf))
		}
		if len(b.Elements) > 0 {
			for _, el := range b.Elements {
				parts = append(parts, EntityToTuple(el, dottedNameOf))
			}
		} else if b.Element != nil {
			parts = append(parts, EntityToTuple(b.Element, dottedNameOf))
		}
		return &Tuple{Tag: TagBuiltin, Parts: parts}
	case object.KindUnion:
		u := e.(*object.Union)
		parts := make([]interface{}, 0, len(u.Members))
		for _, m := range u.Members {
			parts = append(parts, EntityToTuple(m, dottedNameOf))
		}
		return &Tuple{Tag: TagUnion, Parts: parts}
	}
	return &Tuple{Tag: TagUnknown}
}

// FromTuple reconstitutes an entity from its textual form, resolving
// "defined" references through r. An unresolvable defined reference or an
// unrecognized tag degrades to Unknown rather than erroring, matching the
// spec's "never raises to caller" posture for inference.
func FromTuple(t *Tuple, r Resolver) object.Entity {
	if t == nil {
		return object.Unknown
	}
	switch t.Tag {
	case TagNone:
		return object.None
	case TagDefined:
		if len(t.Parts) != 2 {
			return object.Unknown
		}
		modPath, _ := t.Parts[0].(string)
		dotted, _ := t.Parts[1].(string)
		if r == nil {
			return object.Unknown
		}
		if ent, ok := r.ResolveDefined(modPath, dotted); ok {
			return ent
		}
		return object.Unknown
	case TagInstance:
		if len(t.Parts) != 1 {
			return object.Unknown
		}
		inner, ok := t.Parts[0].(*Tuple)
		if !ok {
			return object.Unknown
		}
		classEnt := FromTuple(inner, r)
		cls, ok := classEnt.(*object.Class)
		if !ok {
			return object.Unknown
		}
		return &object.Instance{Class: cls}
	case TagBuiltin:
		return builtinFromParts(t.Parts, r)
	case TagUnion:
		members := make([]object.Entity, 0, len(t.Parts))
		for _, p := range t.Parts {
			sub, ok := p.(*Tuple)
			if !ok {
				continue
			}
			members = append(members, FromTuple(sub, r))
		}
		return object.MakeUnion(members)
	}
	return object.Unknown
}

func builtinFromParts(parts []interface{}, r Resolver) object.Entity {
	if len(parts) == 0 {
		return object.Unknown
	}
	kindName, _ := parts[0].(string)
	kind, ok := builtinKindByName(kindName)
	if !ok {
		return object.Unknown
	}
	b := &object.Builtin{BKind: kind}
	rest := parts[1:]
	if kind == object.BuiltinDict {
		if len(rest) > 0 {
			if kt, ok := rest[0].(*Tuple); ok {
				b.Key = FromTuple(kt, r)
			}
			rest = rest[1:]
		}
	}
	if kind == object.BuiltinTuple {
		for _, p := range rest {
			if pt, ok := p.(*Tuple); ok {
				b.Elements = append(b.Elements, FromTuple(pt, r))
			}
		}
		return b
	}
	if len(rest) > 0 {
		if et, ok := rest[0].(*Tuple); ok {
			b.Element = FromTuple(et, r)
		}
	}
	return b
}

func builtinKindByName(name string) (object.BuiltinKind, bool) {
	all := []object.BuiltinKind{
		object.BuiltinList, object.BuiltinDict, object.BuiltinTuple, object.BuiltinSet,
		object.BuiltinIterator, object.BuiltinGenerator, object.BuiltinFile,
		object.BuiltinString, object.BuiltinInt, object.BuiltinFloat, object.BuiltinBool,
	}
	for _, k := range all {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// Encode serializes t to a single line of text, forward-compatible with
// unknown future tags (spec §6 "Persisted state layout"): an unreadable
// nested tuple simply decodes back to unknown rather than failing the
// whole line.
func Encode(t *Tuple) string {
	var b strings.Builder
	encodeInto(&b, t)
	return b.String()
}

func encodeInto(b *strings.Builder, t *Tuple) {
	if t == nil {
		b.WriteString(TagUnknown)
		return
	}
	b.WriteString(t.Tag)
	for _, p := range t.Parts {
		b.WriteByte(' ')
		switch v := p.(type) {
		case *Tuple:
			b.WriteByte('(')
			encodeInto(b, v)
			b.WriteByte(')')
		case string:
			b.WriteString(strconv.Quote(v))
		default:
			b.WriteString(fmt.Sprintf("%v", v))
		}
	}
}

// Decode parses a line produced by Encode. It never returns an error: any
// tag is kept as read, recognized or not (FromTuple turns an unrecognized
// one into Unknown), an empty nested group is dropped, and a line with no
// tag at all decodes to a bare unknown Tuple, so a persisted-cache reader
// can skip a corrupt line without losing the rest of the file.
func Decode(s string) *Tuple {
	p := &tupleParser{src: s}
	t := p.parseTuple()
	if t == nil {
		return &Tuple{Tag: TagUnknown}
	}
	return t
}

type tupleParser struct {
	src string
	pos int
}

func (p *tupleParser) parseTuple() *Tuple {
	p.skipSpace()
	tag := p.parseWord()
	if tag == "" {
		return nil
	}
	t := &Tuple{Tag: tag}
	for {
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] == ')' {
			break
		}
		if p.src[p.pos] == '(' {
			p.pos++
			inner := p.parseTuple()
			p.skipSpace()
			if p.pos < len(p.src) && p.src[p.pos] == ')' {
				p.pos++
			}
			if inner != nil {
				t.Parts = append(t.Parts, inner)
			}
			continue
		}
		if p.src[p.pos] == '"' {
			s, ok := p.parseQuoted()
			if !ok {
				break
			}
			t.Parts = append(t.Parts, s)
			continue
		}
		word := p.parseWord()
		if word == "" {
			break
		}
		t.Parts = append(t.Parts, word)
	}
	return t
}

func (p *tupleParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *tupleParser) parseWord() string {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ' ' && p.src[p.pos] != '(' && p.src[p.pos] != ')' {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *tupleParser) parseQuoted() (string, bool) {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) {
		if p.src[p.pos] == '\\' {
			p.pos += 2
			continue
		}
		if p.src[p.pos] == '"' {
			p.pos++
			s, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return "", false
			}
			return s, true
		}
		p.pos++
	}
	return "", false
}
