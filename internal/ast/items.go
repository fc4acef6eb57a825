package ast

import (
	"iter"

	"lattice/internal/syntax"
)

type SourceFile struct{ node syntax.Node }

func CastSourceFile(n syntax.Node) (SourceFile, bool) {
	return SourceFile{n}, isKind(n, syntax.SourceFile)
}

func (f SourceFile) Syntax() syntax.Node { return f.node }

// Items yields the top-level functions and structs.
func (f SourceFile) Items() iter.Seq[Item] { return children(f.node, CastItem) }

// Functions yields the top-level functions only.
func (f SourceFile) Functions() iter.Seq[FnDef] { return children(f.node, CastFnDef) }

// Item is FnDef or StructDef.
type Item interface {
	Node
	Name() (Name, bool)
}

func CastItem(n syntax.Node) (Item, bool) {
	switch {
	case isKind(n, syntax.FnDef):
		return FnDef{n}, true
	case isKind(n, syntax.StructDef):
		return StructDef{n}, true
	}
	return nil, false
}

type FnDef struct{ node syntax.Node }

func CastFnDef(n syntax.Node) (FnDef, bool) { return FnDef{n}, isKind(n, syntax.FnDef) }

func (f FnDef) Syntax() syntax.Node { return f.node }
func (f FnDef) Name() (Name, bool) { return firstChild(f.node, CastName) }
func (f FnDef) Params() (ParamList, bool) { return firstChild(f.node, CastParamList) }
func (f FnDef) RetType() (RetType, bool) { return firstChild(f.node, CastRetType) }
func (f FnDef) Body() (Block, bool) { return firstChild(f.node, CastBlock) }
func (f FnDef) FnKeyword() (syntax.Node, bool) { return token(f.node, syntax.FnKw) }

type StructDef struct{ node syntax.Node }

func CastStructDef(n syntax.Node) (StructDef, bool) {
	return StructDef{n}, isKind(n, syntax.StructDef)
}

func (s StructDef) Syntax() syntax.Node { return s.node }
func (s StructDef) Name() (Name, bool) { return firstChild(s.node, CastName) }
func (s StructDef) FieldList() (FieldList, bool) { return firstChild(s.node, CastFieldList) }

// Fields yields the fields; a unit struct has none.
func (s StructDef) Fields() iter.Seq[Field] {
	return func(yield func(Field) bool) {
		fl, ok := s.FieldList()
		if !ok {
			return
		}
		for f := range fl.Fields() {
			if !yield(f) {
				return
			}
		}
	}
}

type Name struct{ node syntax.Node }

func CastName(n syntax.Node) (Name, bool) { return Name{n}, isKind(n, syntax.Name) }

func (n Name) Syntax() syntax.Node { return n.node }
func (n Name) Text() string { return n.node.Text() }

type NameRef struct{ node syntax.Node }

func CastNameRef(n syntax.Node) (NameRef, bool) { return NameRef{n}, isKind(n, syntax.NameRef) }

func (n NameRef) Syntax() syntax.Node { return n.node }
func (n NameRef) Text() string { return n.node.Text() }

type ParamList struct{ node syntax.Node }

func CastParamList(n syntax.Node) (ParamList, bool) {
	return ParamList{n}, isKind(n, syntax.ParamList)
}

func (p ParamList) Syntax() syntax.Node { return p.node }
func (p ParamList) Params() iter.Seq[Param] { return children(p.node, CastParam) }

type Param struct{ node syntax.Node }

func CastParam(n syntax.Node) (Param, bool) { return Param{n}, isKind(n, syntax.Param) }

func (p Param) Syntax() syntax.Node { return p.node }
func (p Param) Name() (Name, bool) { return firstChild(p.node, CastName) }
func (p Param) Type() (NameRef, bool) { return firstChild(p.node, CastNameRef) }

type RetType struct{ node syntax.Node }

func CastRetType(n syntax.Node) (RetType, bool) { return RetType{n}, isKind(n, syntax.RetType) }

func (r RetType) Syntax() syntax.Node { return r.node }
func (r RetType) Type() (NameRef, bool) { return firstChild(r.node, CastNameRef) }

type FieldList struct{ node syntax.Node }

func CastFieldList(n syntax.Node) (FieldList, bool) {
	return FieldList{n}, isKind(n, syntax.FieldList)
}

func (f FieldList) Syntax() syntax.Node { return f.node }
func (f FieldList) Fields() iter.Seq[Field] { return children(f.node, CastField) }

type Field struct{ node syntax.Node }

func CastField(n syntax.Node) (Field, bool) { return Field{n}, isKind(n, syntax.Field) }

func (f Field) Syntax() syntax.Node { return f.node }
func (f Field) Name() (Name, bool) { return firstChild(f.node, CastName) }
func (f Field) Type() (NameRef, bool) { return firstChild(f.node, CastNameRef) }
