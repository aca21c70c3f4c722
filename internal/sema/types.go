// Package sema performs semantic analysis for the ash language: scope
// resolution and type checking over the tree internal/parser produces,
// writing results into each node's annotation slot.
package sema

import "fmt"

// Type is the tagged union of resolved types, mirroring the checker's
// TypeEnum (ERROR_TYPE, UNDEFINED_TYPE, VOID, BOOL, I8..U64, ARRAY,
// POINTER, FUNCTION, STRUCT, ENUM, ENUM_ITEM, TYPEDEF). Unlike the
// per-width structs ast/typespec use for their variants, the eight
// integer widths share one Int struct tagged by Kind — the widths are
// mechanically parallel (width, signedness, Lvalue/Mutable) and a shared
// struct avoids eight near-duplicate types.
type Type interface {
	fmt.Stringer
	typeNode()
}

// ErrorType marks a type that failed to resolve or check.
type ErrorType struct{}

// Undefined is the pre-scan placeholder reserved for a block-scoped
// name before its declaration's definition has been processed. A lookup
// that resolves to Undefined is an "identifier is undefined" error, the
// mechanism that forbids forward reference to ordinary declarations.
type Undefined struct{}

// Void is the result type of statements and of functions declared
// without a return type.
type Void struct{}

// Bool is the boolean type.
type Bool struct {
	Lvalue  bool
	Mutable bool
}

// IntKind distinguishes the eight integer widths.
type IntKind int

const (
	I8 IntKind = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
)

func (k IntKind) String() string {
	switch k {
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I64:
		return "i64"
	default:
		return "i64"
	}
}

// rank orders integer kinds by width, widest last within a signedness
// class; used for "the wider operand's rank" promotion.
var rank = map[IntKind]int{
	I8: 0, U8: 0,
	I16: 1, U16: 1,
	I32: 2, U32: 2,
	I64: 3, U64: 3,
}

func (k IntKind) signed() bool {
	switch k {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// Int is an integer type of one of the eight widths.
type Int struct {
	Kind    IntKind
	Lvalue  bool
	Mutable bool
}

// Array is a '[]'-suffixed array type.
type Array struct {
	Elem    Type
	Lvalue  bool
	Mutable bool
}

// Pointer is a '*'-suffixed pointer type.
type Pointer struct {
	Elem    Type
	Lvalue  bool
	Mutable bool
}

// Function is a callable signature. Optional counts how many trailing
// parameters may be omitted at a call site (those with default values).
type Function struct {
	Params   []Type
	Optional int
	Return   Type
}

// Struct is a user-defined struct type. ID is assigned once per
// declaration by Checker's monotonic counter, so two structs with the
// same name in different scopes are distinct types by identity, not
// structural shape.
type Struct struct {
	ID     uint64
	Name   string
	Fields map[string]Type
	Order  []string
	Lvalue bool
}

// Enum is a user-defined enum type.
type Enum struct {
	ID     uint64
	Name   string
	Items  []string
	Lvalue bool
}

// EnumItem is the type of a single resolved 'Enum.Item' access: nominally
// tied to its parent Enum by ID, assignable to the Enum type itself.
type EnumItem struct {
	Enum   *Enum
	Name   string
	Lvalue bool
}

// Typedef is a named alias introduced by 'type NAME = Spec;'. Each
// declaration gets its own ID, but typesEqual and assignable compare
// typedefs through their Underlying types and never consult the ID, so
// two typedefs with identical underlying types are interchangeable.
type Typedef struct {
	ID         uint64
	Name       string
	Underlying Type
}

func (ErrorType) typeNode()  {}
func (Undefined) typeNode()  {}
func (Void) typeNode()       {}
func (Bool) typeNode()       {}
func (Int) typeNode()        {}
func (Array) typeNode()      {}
func (Pointer) typeNode()    {}
func (Function) typeNode()   {}
func (*Struct) typeNode()    {}
func (*Enum) typeNode()      {}
func (EnumItem) typeNode()   {}
func (*Typedef) typeNode()   {}

func (ErrorType) String() string { return "<error>" }
func (Undefined) String() string { return "<undefined>" }
func (Void) String() string      { return "void" }
func (b Bool) String() string    { return "bool" }
func (i Int) String() string     { return i.Kind.String() }

func (a Array) String() string {
	if a.Mutable {
		return "[]" + a.Elem.String()
	}
	return "const[]" + a.Elem.String()
}

func (p Pointer) String() string {
	if p.Mutable {
		return "*" + p.Elem.String()
	}
	return "const*" + p.Elem.String()
}

func (f Function) String() string {
	s := "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") => " + f.Return.String()
}

func (s *Struct) String() string    { return s.Name }
func (e *Enum) String() string      { return e.Name }
func (e EnumItem) String() string   { return e.Enum.Name + "." + e.Name }
func (t *Typedef) String() string   { return t.Name }

// IsError reports whether t is the ErrorType sentinel.
func IsError(t Type) bool {
	_, ok := t.(ErrorType)
	return ok
}

// IsUndefined reports whether t is the pre-scan placeholder.
func IsUndefined(t Type) bool {
	_, ok := t.(Undefined)
	return ok
}

// Underlying unwraps typedefs down to the first non-Typedef type,
// matching clone_type's deref-through-alias behavior.
func Underlying(t Type) Type {
	for {
		td, ok := t.(*Typedef)
		if !ok {
			return t
		}
		t = td.Underlying
	}
}

// IsInt reports whether t (after unwrapping typedefs) is an integer type.
func IsInt(t Type) (Int, bool) {
	i, ok := Underlying(t).(Int)
	return i, ok
}

// IsBool reports whether t (after unwrapping typedefs) is bool.
func IsBool(t Type) bool {
	_, ok := Underlying(t).(Bool)
	return ok
}
