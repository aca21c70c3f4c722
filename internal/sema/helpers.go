package sema

// withLvalue returns a copy of t with its Lvalue/Mutable flags set to
// the given values, for the variants that carry them (Struct, Enum and
// EnumItem take only the Lvalue flag; a Typedef passes both flags on to
// its underlying type). Types without an lvalue concept (Void, Function,
// ErrorType, Undefined) are returned unchanged.
func withLvalue(t Type, lvalue, mutable bool) Type {
	switch x := t.(type) {
	case Bool:
		return Bool{Lvalue: lvalue, Mutable: mutable}
	case Int:
		return Int{Kind: x.Kind, Lvalue: lvalue, Mutable: mutable}
	case Array:
		return Array{Elem: x.Elem, Lvalue: lvalue, Mutable: mutable}
	case Pointer:
		return Pointer{Elem: x.Elem, Lvalue: lvalue, Mutable: mutable}
	case *Struct:
		return &Struct{ID: x.ID, Name: x.Name, Fields: x.Fields, Order: x.Order, Lvalue: lvalue}
	case *Enum:
		return &Enum{ID: x.ID, Name: x.Name, Items: x.Items, Lvalue: lvalue}
	case EnumItem:
		return EnumItem{Enum: x.Enum, Name: x.Name, Lvalue: lvalue}
	case *Typedef:
		return &Typedef{ID: x.ID, Name: x.Name, Underlying: withLvalue(x.Underlying, lvalue, mutable)}
	default:
		return t
	}
}

// asLvalue marks t as an lvalue, preserving whatever mutability it
// already carries — used when a scope lookup resolves a name reference.
func asLvalue(t Type) Type {
	return withLvalue(t, true, isMutable(t))
}

// valueOf strips the lvalue-ness from t, used wherever a type is
// recorded as the result of evaluating an expression rather than
// referring to storage (e.g. the result of a binary operator).
func valueOf(t Type) Type {
	return withLvalue(t, false, isMutable(t))
}

// withMutability binds t at declaration time, marking it an lvalue (a
// named variable slot is always addressable). For scalar types the
// declaration's own var/const keyword decides whether the slot may be
// written. Array and pointer types instead carry their own inherent
// mutability from the type spec's const[]/const* wrapper (or, absent an
// explicit spec, from the initializer) — the var/const keyword there
// governs nothing this checker tracks separately from that, matching
// how 'i32 const*' rather than the declaration keyword is what makes
// "*p = ..." rejected.
func withMutability(t Type, mutable bool) Type {
	switch Underlying(t).(type) {
	case Bool, Int:
		return withLvalue(t, true, mutable)
	default:
		return withLvalue(t, true, isMutable(t))
	}
}

func isLvalue(t Type) bool {
	switch x := t.(type) {
	case Bool:
		return x.Lvalue
	case Int:
		return x.Lvalue
	case Array:
		return x.Lvalue
	case Pointer:
		return x.Lvalue
	case *Struct:
		return x.Lvalue
	case *Enum:
		return x.Lvalue
	case EnumItem:
		return x.Lvalue
	case *Typedef:
		return isLvalue(x.Underlying)
	default:
		return false
	}
}

func isMutable(t Type) bool {
	switch x := t.(type) {
	case Bool:
		return x.Mutable
	case Int:
		return x.Mutable
	case Array:
		return x.Mutable
	case Pointer:
		return x.Mutable
	case *Struct:
		return true
	case *Enum:
		return true
	case EnumItem:
		return true
	case *Typedef:
		return isMutable(x.Underlying)
	default:
		return false
	}
}

// widerKind picks the wider-rank integer kind of the two, matching
// "the remaining operator rules ... should follow standard C-family
// promotion rules for integer arithmetic". A tie (same rank, opposite
// signedness, e.g. i32/u32) keeps the left operand's kind — an explicit
// design choice, since the source leaves this case unspecified.
func widerKind(a, b IntKind) IntKind {
	if rank[b] > rank[a] {
		return b
	}
	return a
}

// typesEqual reports structural-or-identity equality after unwrapping
// typedefs on both sides: identical integer kind, identical element
// type (array/pointer), identical signature (function), or identical
// declaration ID (struct/enum).
func typesEqual(a, b Type) bool {
	au, bu := Underlying(a), Underlying(b)
	switch x := au.(type) {
	case ErrorType:
		return true
	case Undefined:
		_, ok := bu.(Undefined)
		return ok
	case Void:
		_, ok := bu.(Void)
		return ok
	case Bool:
		_, ok := bu.(Bool)
		return ok
	case Int:
		y, ok := bu.(Int)
		return ok && x.Kind == y.Kind
	case Array:
		y, ok := bu.(Array)
		return ok && typesEqual(x.Elem, y.Elem)
	case Pointer:
		y, ok := bu.(Pointer)
		return ok && typesEqual(x.Elem, y.Elem)
	case Function:
		y, ok := bu.(Function)
		if !ok || len(x.Params) != len(y.Params) || x.Optional != y.Optional {
			return false
		}
		for i := range x.Params {
			if !typesEqual(x.Params[i], y.Params[i]) {
				return false
			}
		}
		return typesEqual(x.Return, y.Return)
	case *Struct:
		y, ok := bu.(*Struct)
		return ok && x.ID == y.ID
	case *Enum:
		y, ok := bu.(*Enum)
		return ok && x.ID == y.ID
	case EnumItem:
		y, ok := bu.(EnumItem)
		return ok && x.Enum == y.Enum && x.Name == y.Name
	default:
		return false
	}
}

// assignable reports whether a value of type src may be stored into a
// destination of type dst: integers convert freely between widths (the
// "literal type" I64 included), bool requires bool, arrays/pointers
// require identical element types (a mutable pointer may flow into a
// const-pointer destination but not the reverse), structs/enums require
// identical declaration identity, and enum items are assignable to
// their own enum type.
func assignable(dst, src Type) bool {
	if IsError(dst) || IsError(src) {
		return true
	}
	du, su := Underlying(dst), Underlying(src)

	switch d := du.(type) {
	case Int:
		_, ok := su.(Int)
		return ok
	case Bool:
		_, ok := su.(Bool)
		return ok
	case Void:
		_, ok := su.(Void)
		return ok
	case Array:
		s, ok := su.(Array)
		return ok && typesEqual(d.Elem, s.Elem)
	case Pointer:
		s, ok := su.(Pointer)
		if !ok || !typesEqual(d.Elem, s.Elem) {
			return false
		}
		return !d.Mutable || s.Mutable
	case Function:
		s, ok := su.(Function)
		return ok && typesEqual(d, s)
	case *Struct:
		s, ok := su.(*Struct)
		return ok && s.ID == d.ID
	case *Enum:
		switch s := su.(type) {
		case *Enum:
			return s.ID == d.ID
		case EnumItem:
			return s.Enum.ID == d.ID
		default:
			return false
		}
	case EnumItem:
		return typesEqual(du, su)
	default:
		return typesEqual(du, su)
	}
}

// comparable reports whether two types may appear on either side of an
// equality or ordering comparison: both integer, both bool, both
// pointer with identical element types, or both referring to the same
// enum (an enum value or an item of it).
func comparable(a, b Type) bool {
	au, bu := Underlying(a), Underlying(b)
	if _, ok := au.(Int); ok {
		_, ok2 := bu.(Int)
		return ok2
	}
	if _, ok := au.(Bool); ok {
		_, ok2 := bu.(Bool)
		return ok2
	}
	if pa, ok := au.(Pointer); ok {
		pb, ok2 := bu.(Pointer)
		return ok2 && typesEqual(pa.Elem, pb.Elem)
	}
	enumIDOf := func(t Type) (uint64, bool) {
		switch x := t.(type) {
		case *Enum:
			return x.ID, true
		case EnumItem:
			return x.Enum.ID, true
		default:
			return 0, false
		}
	}
	if ida, ok := enumIDOf(au); ok {
		idb, ok2 := enumIDOf(bu)
		return ok2 && ida == idb
	}
	return typesEqual(au, bu)
}
