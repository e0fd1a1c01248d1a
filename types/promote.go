package types

// promotion is the immutable pairwise promotion table, indexed by position in
// Scalars. It is filled once at package initialization and only read after.
var promotion = buildPromotionTable()

func scalarIndex(t Type) int {
	switch s := t.(type) {
	case Boolean:
		return 0
	case Uint:
		switch s.Width {
		case 8:
			return 1
		case 16:
			return 3
		case 32:
			return 5
		case 64:
			return 7
		}
	case Int:
		switch s.Width {
		case 8:
			return 2
		case 16:
			return 4
		case 32:
			return 6
		case 64:
			return 8
		}
	case Float:
		switch s.Width {
		case 32:
			return 9
		case 64:
			return 10
		}
	case Complex:
		switch s.Width {
		case 64:
			return 11
		case 128:
			return 12
		}
	}
	return -1
}

// floatBits is the smallest float width that holds every value of t exactly
// enough to count as a safe cast: small integers fit float32, the rest need
// float64.
func floatBits(t Type) uint32 {
	switch s := t.(type) {
	case Boolean:
		return 32
	case Int:
		if s.Width <= 16 {
			return 32
		}
		return 64
	case Uint:
		if s.Width <= 16 {
			return 32
		}
		return 64
	case Float:
		return s.Width
	case Complex:
		return s.Width / 2
	}
	return 0
}

// CanCast reports whether every value of from can be represented in to
// without loss of kind or magnitude.
func CanCast(from, to Type) bool {
	if scalarIndex(from) < 0 || scalarIndex(to) < 0 {
		return false
	}
	if Equal(from, to) || from.Kind() == BoolKind {
		return true
	}
	switch from.Kind() {
	case IntKind:
		switch to.Kind() {
		case IntKind:
			return to.(Int).Width >= from.(Int).Width
		case FloatKind, ComplexKind:
			return floatBits(to) >= floatBits(from)
		}
	case UintKind:
		switch to.Kind() {
		case UintKind:
			return to.(Uint).Width >= from.(Uint).Width
		case IntKind:
			return to.(Int).Width > from.(Uint).Width
		case FloatKind, ComplexKind:
			return floatBits(to) >= floatBits(from)
		}
	case FloatKind:
		switch to.Kind() {
		case FloatKind, ComplexKind:
			return floatBits(to) >= floatBits(from)
		}
	case ComplexKind:
		return to.Kind() == ComplexKind && to.(Complex).Width >= from.(Complex).Width
	}
	return false
}

func buildPromotionTable() [][]Type {
	n := len(Scalars)
	table := make([][]Type, n)
	for i, a := range Scalars {
		table[i] = make([]Type, n)
		for j, b := range Scalars {
			table[i][j] = smallestCommon(a, b)
		}
	}
	return table
}

// smallestCommon picks the first candidate both operands cast to safely.
// complex128 accepts every scalar, so the search always succeeds.
func smallestCommon(a, b Type) Type {
	for _, c := range Scalars {
		if CanCast(a, c) && CanCast(b, c) {
			return c
		}
	}
	panic("smallestCommon: no common type for " + a.String() + " and " + b.String())
}

// Promote returns the common type of two scalars. ok is false only when
// either argument is not a scalar.
func Promote(a, b Type) (t Type, ok bool) {
	i, j := scalarIndex(a), scalarIndex(b)
	if i < 0 || j < 0 {
		return nil, false
	}
	return promotion[i][j], true
}

// PromoteAll folds Promote over a non-empty list of scalars.
func PromoteAll(ts ...Type) (Type, bool) {
	if len(ts) == 0 {
		return nil, false
	}
	acc := ts[0]
	if scalarIndex(acc) < 0 {
		return nil, false
	}
	for _, t := range ts[1:] {
		var ok bool
		if acc, ok = Promote(acc, t); !ok {
			return nil, false
		}
	}
	return acc, true
}
