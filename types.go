package carbono

import "strings"

// cTypeMap is the closed vocabulary of primitive SL type names (Portuguese
// and their short aliases) to their C rendering (spec.md §6.2). Both
// spellings of a primitive map to the same C type.
var cTypeMap = map[string]string{
	"inteiro8":  "signed char",
	"i8":        "signed char",
	"inteiro16": "short",
	"i16":       "short",
	"inteiro32": "int",
	"i32":       "int",
	"inteiro64": "long long",
	"i64":       "long long",
	"inteiro_arq": "long",
	"inteiro":   "int",
	"byte":      "unsigned char",
	"natural16": "unsigned short",
	"n16":       "unsigned short",
	"natural32": "unsigned int",
	"n32":       "unsigned int",
	"natural64": "unsigned long long",
	"n64":       "unsigned long long",
	"natural_arq": "unsigned long",
	"tamanho":   "size_t",
	"real32":    "float",
	"r32":       "float",
	"real64":    "double",
	"r64":       "double",
	"real":      "double",
	"real_ext":  "long double",
	"r_ext":     "long double",
	"booleano":  "int",
	"bool":      "int",
	"texto":     "carbono_string",
	"caractere": "char",
	"ponteiro":  "void*",
	"vazio":     "void",
}

// getArrayDepth counts the leading '[' runs of an array type string
// (spec.md §3.2: "Depth is the count of leading `[`").
func getArrayDepth(t string) int {
	depth := 0
	for depth < len(t) && t[depth] == '[' {
		depth++
	}
	return depth
}

// getBaseType strips every leading '[' and its matching trailing ']' from
// an array type, returning the innermost element type (spec.md §4.2:
// "get_base_type(array-type) -> base-type").
func getBaseType(t string) string {
	depth := getArrayDepth(t)
	if depth == 0 {
		return t
	}
	return strings.TrimSuffix(t[depth:], strings.Repeat("]", depth))
}

// isArrayType reports whether t is an array type per the array grammar in
// spec.md §3.2.
func isArrayType(t string) bool {
	return strings.HasPrefix(t, "[")
}

// cType resolves an SL type string to its C rendering (spec.md §6.2). An
// array-typed variable is itself stored as the bundled runtime's
// header-prefixed `carbono_array` value (SPEC_FULL.md's ambient dynamic
// array, needed for the `.len` property spec.md §8 requires) — the
// pointer-per-depth chain spec.md §6.2 describes is the *element* storage
// type one array level down, computed by elemCType, not the declared type
// of the array binding itself.
func cType(t string, reg *TypeRegistry) string {
	if isArrayType(t) {
		return "carbono_array"
	}
	base := getBaseType(t)
	if reg.IsStructType(base) {
		// Every struct-typed variable is itself a reference (spec.md
		// §4.3 rule 1).
		return base + "*"
	}
	if mapped, ok := cTypeMap[base]; ok {
		return mapped
	}
	// Unknown names fall back to void (spec.md §6.2).
	return "void"
}

// sanitizeCIdent replaces every byte that isn't a valid continuation of a C
// identifier with '_', used both for @embutir's symbol derivation (spec.md
// §4.5) and for any SL identifier that happens to collide with a C
// keyword-unsafe character (SL identifiers are otherwise assumed to already
// be valid).
func sanitizeCIdent(s string) string {
	if s == "" {
		return "_"
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		isAlpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
		isDigit := c >= '0' && c <= '9'
		switch {
		case i == 0 && isAlpha:
			b.WriteByte(c)
		case i == 0 && isDigit:
			b.WriteByte('_')
			b.WriteByte(c)
		case i == 0:
			b.WriteByte('_')
		case isAlpha || isDigit:
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
