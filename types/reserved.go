package types

import "sort"

// scalarNames maps every accepted scalar spelling to its type. Platform
// sized names (intp, uintp) are resolved separately by LookupScalar.
var scalarNames = map[string]Type{
	"bool":       Bool,
	"bool_":      Bool,
	"int8":       I8,
	"int16":      I16,
	"int32":      I32,
	"int64":      I64,
	"uint8":      U8,
	"uint16":     U16,
	"uint32":     U32,
	"uint64":     U64,
	"float32":    F32,
	"float64":    F64,
	"complex64":  C64,
	"complex128": C128,

	// C and numpy aliases
	"byte":      I8,
	"ubyte":     U8,
	"short":     I16,
	"ushort":    U16,
	"intc":      I32,
	"uintc":     U32,
	"longlong":  I64,
	"ulonglong": U64,
	"int_":      I64,
	"single":    F32,
	"double":    F64,
	"float_":    F64,
	"csingle":   C64,
	"cdouble":   C128,
	"complex_":  C128,
}

var platformNames = map[string]bool{
	"intp":     true,
	"npy_intp": true,
	"uintp":    true,
}

// IndexType is the signed index integer for the given pointer width.
func IndexType(width uint32) Type {
	return Int{Width: width}
}

// LookupScalar resolves a scalar name. indexWidth sizes intp and uintp.
func LookupScalar(name string, indexWidth uint32) (Type, bool) {
	if t, ok := scalarNames[name]; ok {
		return t, true
	}
	if platformNames[name] {
		if name == "uintp" {
			return Uint{Width: indexWidth}, true
		}
		return IndexType(indexWidth), true
	}
	return nil, false
}

// ReservedTypeNames returns every scalar spelling, sorted.
func ReservedTypeNames() []string {
	names := make([]string, 0, len(scalarNames)+len(platformNames))
	for n := range scalarNames {
		names = append(names, n)
	}
	for n := range platformNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsReservedTypeName reports whether name spells a scalar type.
func IsReservedTypeName(name string) bool {
	_, ok := scalarNames[name]
	return ok || platformNames[name]
}
