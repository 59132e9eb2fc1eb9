package golang

import (
	"strconv"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/variantgen"
	"github.com/syssam/variantgen/compiler/gen"
	"github.com/syssam/variantgen/schema/field"
)

// =============================================================================
// Value expressions
//
// The helpers below render expressions over two values of the same key or
// payload type. Operands are never pointers: absent operands are handled by
// the callers.
// =============================================================================

// custom reports whether the comparer names a user-supplied Comparer value.
func custom(comparer string) bool {
	return comparer != "" && comparer != variantgen.ComparerDefault && comparer != variantgen.ComparerIgnoreCase
}

// ignoreCase reports whether values of the type are compared ignoring case.
func ignoreCase(info *field.TypeInfo, comparer string) bool {
	return comparer == variantgen.ComparerIgnoreCase && info.Type == field.TypeString
}

// methods reports whether the type defines Equal, Compare and Hash methods.
func (t *typeCtx) methods(info *field.TypeInfo) bool {
	if t.d.IsTypeParam(info) {
		return false
	}
	switch info.Type {
	case field.TypeDecimal, field.TypeTime, field.TypeVariant:
		return true
	default:
		return false
	}
}

// deref dereferences the named pointer. The result is parenthesized when it
// may be the receiver of a method call.
func (t *typeCtx) deref(info *field.TypeInfo, name string) jen.Code {
	if t.methods(info) {
		return jen.Parens(jen.Op("*").Id(name))
	}
	return jen.Op("*").Id(name)
}

// equal returns an expression reporting whether a equals b.
func (t *typeCtx) equal(info *field.TypeInfo, comparer string, a, b jen.Code) *jen.Statement {
	switch {
	case ignoreCase(info, comparer):
		return jen.Qual(runtimePkg, "IgnoreCase").Dot("Equal").Call(a, b)
	case custom(comparer) && t.d.Shape() == gen.KeyBased:
		return ident(comparer).Dot("Equal").Call(a, b)
	case t.methods(info):
		return jen.Add(a).Dot("Equal").Call(b)
	default:
		return jen.Add(a).Op("==").Add(b)
	}
}

// hash returns an expression hashing a consistently with equal.
func (t *typeCtx) hash(info *field.TypeInfo, comparer string, a jen.Code) *jen.Statement {
	switch {
	case ignoreCase(info, comparer):
		return jen.Qual(runtimePkg, "IgnoreCase").Dot("Hash").Call(a)
	case custom(comparer) && t.d.Shape() == gen.KeyBased:
		return ident(comparer).Dot("Hash").Call(a)
	case t.d.IsTypeParam(info):
		return jen.Qual(runtimePkg, "Hash").Call(a)
	case info.Type == field.TypeDecimal:
		// Decimals equal in value render the same canonical string.
		return jen.Qual(runtimePkg, "HashString").Call(jen.Add(a).Dot("String").Call())
	case info.Type == field.TypeTime:
		return jen.Qual(runtimePkg, "HashTime").Call(a)
	case info.Type == field.TypeVariant:
		return jen.Add(a).Dot("Hash").Call()
	default:
		return jen.Qual(runtimePkg, "Hash").Call(a)
	}
}

// compare returns an expression comparing a and b, returning -1, 0 or +1.
// Custom comparers define equality only; their keys are ordered naturally.
func (t *typeCtx) compare(info *field.TypeInfo, comparer string, a, b jen.Code) *jen.Statement {
	switch {
	case ignoreCase(info, comparer):
		return jen.Qual(runtimePkg, "CompareFold").Call(a, b)
	case info.Type == field.TypeDecimal:
		return jen.Add(a).Dot("Cmp").Call(b)
	case t.methods(info):
		return jen.Add(a).Dot("Compare").Call(b)
	default:
		return jen.Qual("cmp", "Compare").Call(a, b)
	}
}

// arithmetic returns the expression computing a op b as a key value.
func (t *typeCtx) arithmetic(r gen.OperatorRule, a, b jen.Code) *jen.Statement {
	info := base(r.Key)
	switch {
	case t.methods(info):
		return jen.Add(a).Dot(r.Op.String()).Call(b)
	case r.NeedsCast:
		via := builtin(r.Via)
		return jen.Id(builtin(info.Type)).Call(
			jen.Id(via).Call(a).Op(r.Op.Symbol()).Id(via).Call(b),
		)
	default:
		return jen.Add(a).Op(r.Op.Symbol()).Add(b)
	}
}

// format returns an expression rendering a as text. The text is accepted by
// the parse statements of the same type.
func (t *typeCtx) format(info *field.TypeInfo, a jen.Code) *jen.Statement {
	switch info.Type {
	case field.TypeString:
		return jen.Add(a)
	case field.TypeBool:
		return jen.Qual("strconv", "FormatBool").Call(a)
	case field.TypeChar:
		return jen.String().Call(a)
	case field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64:
		return jen.Qual("strconv", "FormatInt").Call(jen.Int64().Call(a), jen.Lit(10))
	case field.TypeUint8, field.TypeUint16, field.TypeUint32, field.TypeUint64:
		return jen.Qual("strconv", "FormatUint").Call(jen.Uint64().Call(a), jen.Lit(10))
	case field.TypeFloat32, field.TypeFloat64:
		return jen.Qual("strconv", "FormatFloat").Call(jen.Float64().Call(a), jen.LitRune('g'), jen.Lit(-1), jen.Lit(bitSize(info.Type)))
	case field.TypeTime:
		return jen.Add(a).Dot("Format").Call(jen.Qual("time", "RFC3339Nano"))
	case field.TypeDecimal:
		return jen.Add(a).Dot("String").Call()
	case field.TypeVariant:
		if t.d.IsTypeParam(info) {
			break
		}
		return jen.Add(a).Dot("String").Call()
	}
	return jen.Qual("fmt", "Sprint").Call(a)
}

// parseKey returns the statements declaring the variable key of the given
// type from the string variable text. fail renders the statement returned
// when text is malformed, given the error expression.
func (t *typeCtx) parseKey(info *field.TypeInfo, fail func(err jen.Code) jen.Code) []jen.Code {
	text := jen.Id("text")
	check := jen.If(jen.Err().Op("!=").Nil()).Block(fail(jen.Err()))
	parsed := func(call jen.Code) []jen.Code {
		return []jen.Code{jen.List(jen.Id("key"), jen.Err()).Op(":=").Add(call), check}
	}
	number := func(call jen.Code) []jen.Code {
		return []jen.Code{
			jen.List(jen.Id("n"), jen.Err()).Op(":=").Add(call),
			check,
			jen.Id("key").Op(":=").Id(builtin(info.Type)).Call(jen.Id("n")),
		}
	}
	switch info.Type {
	case field.TypeString:
		return []jen.Code{jen.Id("key").Op(":=").Add(text)}
	case field.TypeBool:
		return parsed(jen.Qual("strconv", "ParseBool").Call(text))
	case field.TypeChar:
		return []jen.Code{
			jen.Id("runes").Op(":=").Index().Rune().Call(text),
			jen.If(jen.Len(jen.Id("runes")).Op("!=").Lit(1)).Block(fail(jen.Nil())),
			jen.Id("key").Op(":=").Id("runes").Index(jen.Lit(0)),
		}
	case field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64:
		return number(jen.Qual("strconv", "ParseInt").Call(text, jen.Lit(10), jen.Lit(bitSize(info.Type))))
	case field.TypeUint8, field.TypeUint16, field.TypeUint32, field.TypeUint64:
		return number(jen.Qual("strconv", "ParseUint").Call(text, jen.Lit(10), jen.Lit(bitSize(info.Type))))
	case field.TypeFloat32, field.TypeFloat64:
		return number(jen.Qual("strconv", "ParseFloat").Call(text, jen.Lit(bitSize(info.Type))))
	case field.TypeDecimal:
		return parsed(jen.Qual(field.DecimalPkg, "NewFromString").Call(text))
	case field.TypeTime:
		return parsed(jen.Qual("time", "Parse").Call(jen.Qual("time", "RFC3339Nano"), text))
	case field.TypeVariant:
		// Nested variants are parsed by their own generated function.
		var fn *jen.Statement
		if info.PkgPath != "" {
			fn = jen.Qual(info.PkgPath, "Parse"+info.Ident)
		} else {
			fn = jen.Id("Parse" + info.Ident)
		}
		return parsed(fn.Call(text))
	default:
		panic("golang: cannot parse key of type " + info.Type.String())
	}
}

// literal returns the Go literal of an item value, validated when the
// descriptor was built.
func literal(info *field.TypeInfo, value string) jen.Code {
	switch t := info.Type; t {
	case field.TypeString:
		return jen.Lit(value)
	case field.TypeBool:
		b, _ := strconv.ParseBool(value)
		return jen.Lit(b)
	case field.TypeChar:
		r, _ := utf8.DecodeRuneInString(value)
		return jen.LitRune(r)
	case field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64:
		n, _ := strconv.ParseInt(value, 10, bitSize(t))
		return jen.Id(builtin(t)).Call(jen.Lit(int(n)))
	case field.TypeUint8, field.TypeUint16, field.TypeUint32, field.TypeUint64:
		n, _ := strconv.ParseUint(value, 10, bitSize(t))
		// Written as an untyped constant: jennifer renders uint64 in hex.
		return jen.Id(builtin(t)).Call(jen.Op(strconv.FormatUint(n, 10)))
	case field.TypeFloat32, field.TypeFloat64:
		f, _ := strconv.ParseFloat(value, bitSize(t))
		return jen.Id(builtin(t)).Call(jen.Lit(f))
	case field.TypeDecimal:
		return jen.Qual(field.DecimalPkg, "RequireFromString").Call(jen.Lit(value))
	case field.TypeTime:
		return jen.Qual(runtimePkg, "MustParseTime").Call(jen.Lit(value))
	default:
		panic("golang: no literal of type " + t.String())
	}
}

func bitSize(t field.Type) int {
	switch t {
	case field.TypeInt8, field.TypeUint8:
		return 8
	case field.TypeInt16, field.TypeUint16:
		return 16
	case field.TypeInt32, field.TypeUint32, field.TypeFloat32:
		return 32
	default:
		return 64
	}
}
