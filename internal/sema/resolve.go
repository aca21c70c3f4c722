package sema

import (
	"github.com/ashlang/ashc/internal/typespec"
)

var atomicKind = map[string]IntKind{
	"i8": I8, "i16": I16, "i32": I32, "i64": I64,
	"u8": U8, "u16": U16, "u32": U32, "u64": U64,
}

// resolveSpec turns a parsed typespec.Spec into a sema.Type, resolving
// user-defined atomic names (struct/enum/typedef) against scope. Mutable
// defaults to true at the outermost level for an atomic/struct/enum
// value (matching a plain variable slot); array/pointer wrappers carry
// their own Mutable flag from the type-spec's const-modifier bookkeeping.
func (c *Checker) resolveSpec(scope *Scope, s typespec.Spec) Type {
	switch sp := s.(type) {
	case typespec.Error:
		return ErrorType{}

	case typespec.Inferred:
		return Undefined{}

	case typespec.Atomic:
		if kind, ok := atomicKind[sp.Name]; ok {
			return Int{Kind: kind, Mutable: true}
		}
		switch sp.Name {
		case "void":
			return Void{}
		case "bool":
			return Bool{Mutable: true}
		}
		sym, ok := scope.lookup(sp.Name)
		if !ok {
			c.sink.TypeError(sp.Pos(), "undefined type %q", sp.Name)
			return ErrorType{}
		}
		if IsUndefined(sym.Type) {
			c.sink.TypeError(sp.Pos(), "identifier %q is undefined", sp.Name)
			return ErrorType{}
		}
		return sym.Type

	case typespec.Grouped:
		return c.resolveSpec(scope, sp.Inner)

	case typespec.Array:
		elem := c.resolveSpec(scope, sp.Elem)
		return Array{Elem: elem, Mutable: sp.Mutable}

	case typespec.Pointer:
		elem := c.resolveSpec(scope, sp.Elem)
		return Pointer{Elem: elem, Mutable: sp.Mutable}

	case typespec.Function:
		params := make([]Type, len(sp.Params))
		for i, p := range sp.Params {
			params[i] = c.resolveSpec(scope, p)
		}
		ret := c.resolveSpec(scope, sp.Return)
		return Function{Params: params, Optional: sp.Optional, Return: ret}

	default:
		return ErrorType{}
	}
}
