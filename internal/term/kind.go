package term

// Kind is the tagged variant of a term node, polarity already stripped.
// Only the kinds the projector core needs to reason about are modeled;
// everything the core treats as an opaque generic composite (Ite, Eq,
// Distinct, Or, Xor) still gets its own tag so classification can name
// it, but the core never looks inside it beyond its children.
type Kind int

const (
	// UninterpretedConstant is an atomic uninterpreted term: a variable
	// in the ordinary SMT sense. Only these may appear in vars_to_elim.
	UninterpretedConstant Kind = iota

	// ArithmeticConstant is a literal rational value.
	ArithmeticConstant

	// ArithmeticPolynomial is a sum of rational-weighted monomials over
	// uninterpreted (arithmetic-typed) variables.
	ArithmeticPolynomial

	// ArithmeticEqAtom is p = 0 for a polynomial or constant argument p.
	ArithmeticEqAtom

	// ArithmeticGeAtom is p >= 0 for a polynomial or constant argument p.
	ArithmeticGeAtom

	// ArithmeticBinEqAtom is t1 = t2 for two arithmetic arguments.
	ArithmeticBinEqAtom

	// Ite is an if-then-else composite.
	Ite
	// Eq is a generic (non-arithmetic) equality.
	Eq
	// Distinct is an n-ary disequality. Per spec §9 this stays generic
	// even when every argument is arithmetic.
	Distinct
	// Or is an n-ary disjunction.
	Or
	// Xor is an n-ary exclusive-or.
	Xor

	// BitVector is a bit-vector-typed composite. The projector passes
	// these through untouched beyond polarity bookkeeping.
	BitVector

	// BoolConstant is one of the two reserved Boolean occurrences.
	BoolConstant
)

func (k Kind) String() string {
	switch k {
	case UninterpretedConstant:
		return "UninterpretedConstant"
	case ArithmeticConstant:
		return "ArithmeticConstant"
	case ArithmeticPolynomial:
		return "ArithmeticPolynomial"
	case ArithmeticEqAtom:
		return "ArithmeticEqAtom"
	case ArithmeticGeAtom:
		return "ArithmeticGeAtom"
	case ArithmeticBinEqAtom:
		return "ArithmeticBinEqAtom"
	case Ite:
		return "Ite"
	case Eq:
		return "Eq"
	case Distinct:
		return "Distinct"
	case Or:
		return "Or"
	case Xor:
		return "Xor"
	case BitVector:
		return "BitVector"
	case BoolConstant:
		return "BoolConstant"
	default:
		return "UnknownKind"
	}
}

// IsArithmeticAtomKind reports whether a kind is one of the three
// arithmetic atom kinds that route to ArithLiterals (spec §3).
func (k Kind) IsArithmeticAtomKind() bool {
	switch k {
	case ArithmeticEqAtom, ArithmeticGeAtom, ArithmeticBinEqAtom:
		return true
	default:
		return false
	}
}

// Type tags the sort of a term. Only the sorts the projector needs to
// distinguish for value-closure constant construction are modeled.
type Type int

const (
	BoolType Type = iota
	IntType
	RealType
	BVType
)

func (t Type) String() string {
	switch t {
	case BoolType:
		return "Bool"
	case IntType:
		return "Int"
	case RealType:
		return "Real"
	case BVType:
		return "BitVector"
	default:
		return "UnknownType"
	}
}
