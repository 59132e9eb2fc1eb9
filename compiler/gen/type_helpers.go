package gen

import (
	"go/token"
	"slices"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// Naming
// =============================================================================

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP", "HTTPS",
		"ID", "IP", "JSON", "QPS", "RAM", "RPC", "SLA", "SMTP", "SQL", "SSH", "TCP", "TLS",
		"TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID", "VM", "XML", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// title upper-cases the first letter of each word and keeps the rest.
// Casers are not safe for concurrent use, so one is created per call.
func title(s string) string {
	return cases.Title(language.English, cases.NoLower).String(s)
}

// pascal converts the given name to PascalCase, keeping well-known acronyms
// upper-cased. Existing PascalCase names are returned unchanged.
func pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
		} else {
			words[i] = title(w)
		}
	}
	return strings.Join(words, "")
}

// camel converts the given name to camelCase.
func camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return ""
	}
	first := words[0]
	if _, ok := acronyms[strings.ToUpper(first)]; ok {
		first = strings.ToLower(first)
	} else {
		first = lowerFirst(first)
	}
	return first + pascal(strings.Join(words[1:], "_"))
}

// snake converts the given name to snake_case.
func snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not the start or the end of a word, the current
		// letter is upper-cased and the previous one is lower-cased
		// ("UserInfo"), or the next letter is lower-cased and the previous
		// one is a letter that did not start a word ("HTTPCode").
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// receiver returns the receiver name of the given type.
//
//	[]T       => t
//	[1]T      => t
//	User      => u
//	UserQuery => uq
func receiver(s string) string {
	s = strings.Trim(s, "[]*&0123456789")
	parts := strings.Split(snake(s), "_")
	minLen := len(parts[0])
	for _, w := range parts[1:] {
		if len(w) < minLen {
			minLen = len(w)
		}
	}
	for i := 1; i < minLen; i++ {
		r := parts[0][:i]
		for _, w := range parts[1:] {
			r += w[:i]
		}
		if !token.Lookup(r).IsKeyword() && !predeclared[r] {
			s = r
			break
		}
	}
	name := strings.ToLower(s)
	if token.Lookup(name).IsKeyword() || predeclared[name] {
		name = "_" + name
	}
	return name
}

// plural returns the plural form of the given name. Names that have no
// distinct plural form get a "Slice" suffix.
func plural(name string) string {
	p := rules.Pluralize(name)
	if p == name {
		p += "Slice"
	}
	return p
}

// lowerFirst lower-cases the first character of s.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// paramName returns the parameter name used for the given case or option
// name: the first character lower-cased, and reserved identifiers escaped
// with a trailing underscore.
func paramName(name string) string {
	p := lowerFirst(name)
	if reserved(p) {
		return p + "_"
	}
	return p
}

// reserved reports whether name is a Go keyword, a predeclared identifier,
// or an identifier the generated code declares itself.
func reserved(name string) bool {
	if token.Lookup(name).IsKeyword() || predeclared[name] {
		return true
	}
	_, ok := internalIdent[name]
	return ok
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

// =============================================================================
// Global variables
// =============================================================================

var (
	// predeclared identifiers of the universe block.
	predeclared = map[string]bool{
		"any": true, "bool": true, "byte": true, "comparable": true, "complex64": true,
		"complex128": true, "error": true, "float32": true, "float64": true, "int": true,
		"int8": true, "int16": true, "int32": true, "int64": true, "rune": true,
		"string": true, "uint": true, "uint8": true, "uint16": true, "uint32": true,
		"uint64": true, "uintptr": true, "true": true, "false": true, "iota": true,
		"nil": true, "append": true, "cap": true, "clear": true, "close": true,
		"complex": true, "copy": true, "delete": true, "imag": true, "len": true,
		"make": true, "max": true, "min": true, "new": true, "panic": true,
		"print": true, "println": true, "real": true, "recover": true,
	}

	// identifiers used inside generated method bodies. Case and state
	// parameters must not shadow them.
	internalIdent = names(
		"index",
		"key",
		"other",
		"text",
		"value",
		"payload",
		"result",
		"parsed",
		"zero",
		"err",
		"ok",
		"item",
		"lhs",
		"rhs",
		"n",
		"runes",
		"validator",
		"variantgen",
		"decimal",
		"time",
		"strconv",
		"fmt",
		"cmp",
		"errors",
	)
)

// ReceiverName returns the receiver name of a method of the given type. The
// name does not collide with the parameters of the method.
func ReceiverName(typeName string, sig MemberSignature) string {
	name := receiver(typeName)
	for slices.ContainsFunc(sig.Params, func(p Param) bool { return p.Name == name }) || reserved(name) {
		name = "_" + name
	}
	return name
}
