// Package term implements the term graph the projector consumes: an
// immutable, hash-consed arena of nodes named by polarity-tagged
// Occurrences (spec §3, §6). TermStore is declared as an interface so
// the projector and its phases depend on the contract, not this
// package's particular arena layout; Store is the in-memory reference
// implementation used by the reference Model and by tests.
package term

import (
	"fmt"
	"math/big"
)

// TermStore is the external contract the projector consumes (spec §6).
type TermStore interface {
	Kind(t Occurrence) Kind
	IsBoolean(t Occurrence) bool
	IsArithmetic(t Occurrence) bool
	IsArithmeticLiteral(t Occurrence) bool

	ArithAtomArg(t Occurrence) (Occurrence, bool)
	ArithBineqArgs(t Occurrence) (a, b Occurrence, ok bool)
	PolyMonomials(t Occurrence) ([]Monomial, bool)
	Children(t Occurrence) ([]Occurrence, bool)
	Name(t Occurrence) (string, bool)
	TypeOf(t Occurrence) Type
	RationalOf(t Occurrence) (*big.Rat, bool)

	NewUninterpretedConstant(name string, typ Type) Occurrence
	NewArithConstant(r *big.Rat) Occurrence
	NewPolynomial(p *Polynomial) Occurrence
	NewArithEq(arg Occurrence) Occurrence
	NewArithGe(arg Occurrence) Occurrence
	NewArithBinEq(a, b Occurrence) Occurrence
	NewComposite(kind Kind, typ Type, children []Occurrence) Occurrence
	NewBoolConstant(v bool) Occurrence
	NewBVConstant(width int, value uint64) Occurrence
	BitVectorOf(t Occurrence) (width int, value uint64, ok bool)

	Complement(t Occurrence) Occurrence
	String(t Occurrence) string
}

type node struct {
	kind Kind
	typ  Type

	name string     // UninterpretedConstant
	rat  *big.Rat   // ArithmeticConstant
	poly *Polynomial // ArithmeticPolynomial
	args []Occurrence // atom args / generic composite children

	bvWidth int
	bvValue uint64
}

// Store is a hash-consed, in-memory TermStore. Node 0 is reserved for
// the Boolean constant true; occurrences are never mutated once
// interned, matching the "immutable term graph" design note (spec §9).
type Store struct {
	nodes []node
	index map[string]int32
}

// NewStore creates an empty arena with the reserved true/false node installed.
func NewStore() *Store {
	s := &Store{index: make(map[string]int32)}
	s.nodes = append(s.nodes, node{kind: BoolConstant, typ: BoolType, name: "true"})
	return s
}

func (s *Store) at(t Occurrence) *node {
	return &s.nodes[t.Positive().index()]
}

func (s *Store) intern(key string, build func() node) Occurrence {
	if idx, ok := s.index[key]; ok {
		return occurrenceOf(idx, false)
	}
	n := build()
	idx := int32(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.index[key] = idx
	return occurrenceOf(idx, false)
}

func (s *Store) Kind(t Occurrence) Kind { return s.at(t).kind }

func (s *Store) IsBoolean(t Occurrence) bool {
	n := s.at(t)
	switch n.kind {
	case BoolConstant, Ite, Eq, Distinct, Or, Xor,
		ArithmeticEqAtom, ArithmeticGeAtom, ArithmeticBinEqAtom:
		return true
	case UninterpretedConstant:
		return n.typ == BoolType
	default:
		return false
	}
}

func (s *Store) IsArithmetic(t Occurrence) bool {
	n := s.at(t)
	switch n.kind {
	case ArithmeticConstant, ArithmeticPolynomial:
		return true
	case UninterpretedConstant:
		return n.typ == IntType || n.typ == RealType
	default:
		return false
	}
}

func (s *Store) IsArithmeticLiteral(t Occurrence) bool {
	return s.Kind(t).IsArithmeticAtomKind()
}

func (s *Store) ArithAtomArg(t Occurrence) (Occurrence, bool) {
	n := s.at(t)
	if n.kind != ArithmeticEqAtom && n.kind != ArithmeticGeAtom {
		return 0, false
	}
	return n.args[0], true
}

func (s *Store) ArithBineqArgs(t Occurrence) (Occurrence, Occurrence, bool) {
	n := s.at(t)
	if n.kind != ArithmeticBinEqAtom {
		return 0, 0, false
	}
	return n.args[0], n.args[1], true
}

func (s *Store) PolyMonomials(t Occurrence) ([]Monomial, bool) {
	n := s.at(t)
	if n.kind != ArithmeticPolynomial {
		return nil, false
	}
	return n.poly.Monomials, true
}

func (s *Store) Children(t Occurrence) ([]Occurrence, bool) {
	n := s.at(t)
	switch n.kind {
	case Ite, Eq, Distinct, Or, Xor:
		return n.args, true
	default:
		return nil, false
	}
}

func (s *Store) Name(t Occurrence) (string, bool) {
	n := s.at(t)
	if n.kind != UninterpretedConstant {
		return "", false
	}
	return n.name, true
}

func (s *Store) TypeOf(t Occurrence) Type { return s.at(t).typ }

func (s *Store) RationalOf(t Occurrence) (*big.Rat, bool) {
	n := s.at(t)
	if n.kind != ArithmeticConstant {
		return nil, false
	}
	return n.rat, true
}

func (s *Store) NewUninterpretedConstant(name string, typ Type) Occurrence {
	key := fmt.Sprintf("uc:%s:%d", name, typ)
	return s.intern(key, func() node { return node{kind: UninterpretedConstant, name: name, typ: typ} })
}

func (s *Store) NewArithConstant(r *big.Rat) Occurrence {
	key := fmt.Sprintf("ac:%s", r.RatString())
	return s.intern(key, func() node {
		return node{kind: ArithmeticConstant, typ: RealType, rat: new(big.Rat).Set(r)}
	})
}

// NewPolynomial canonicalizes p and, when it degenerates to a bare
// constant or a single unit-coefficient variable, returns that simpler
// occurrence directly rather than wrapping it in a polynomial node —
// classification (spec §4.1) distinguishes "is a polynomial" from "is
// a bare variable" and a degenerate wrapper would blur that.
func (s *Store) NewPolynomial(p *Polynomial) Occurrence {
	canon := NewPolynomial(p.Monomials)
	switch len(canon.Monomials) {
	case 0:
		return s.NewArithConstant(new(big.Rat))
	case 1:
		m := canon.Monomials[0]
		if m.Var == NoVar {
			return s.NewArithConstant(m.Coeff)
		}
		if m.Coeff.Cmp(big.NewRat(1, 1)) == 0 {
			return m.Var
		}
	}
	return s.intern(canon.key(), func() node {
		return node{kind: ArithmeticPolynomial, typ: RealType, poly: canon}
	})
}

func (s *Store) NewArithEq(arg Occurrence) Occurrence {
	key := fmt.Sprintf("eqz:%s", arg.key())
	return s.intern(key, func() node {
		return node{kind: ArithmeticEqAtom, typ: BoolType, args: []Occurrence{arg}}
	})
}

func (s *Store) NewArithGe(arg Occurrence) Occurrence {
	key := fmt.Sprintf("gez:%s", arg.key())
	return s.intern(key, func() node {
		return node{kind: ArithmeticGeAtom, typ: BoolType, args: []Occurrence{arg}}
	})
}

func (s *Store) NewArithBinEq(a, b Occurrence) Occurrence {
	key := fmt.Sprintf("bineq:%s:%s", a.key(), b.key())
	return s.intern(key, func() node {
		return node{kind: ArithmeticBinEqAtom, typ: BoolType, args: []Occurrence{a, b}}
	})
}

// NewComposite constructs a generic composite, first applying the
// same local Boolean simplifications a real term graph performs at
// construction time (a constant child short-circuits Or/Ite, two
// structurally identical arguments collapse Eq/Distinct) so that
// substitution and projection can rely on trivial consequences
// becoming the reserved true/false occurrences rather than opaque
// composite nodes.
func (s *Store) NewComposite(kind Kind, typ Type, children []Occurrence) Occurrence {
	switch kind {
	case Or:
		if simplified, ok := s.simplifyOr(children); ok {
			return simplified
		}
	case Eq:
		if len(children) == 2 && children[0] == children[1] {
			return True
		}
	case Distinct:
		if simplified, ok := s.simplifyDistinct(children); ok {
			return simplified
		}
	case Ite:
		if len(children) == 3 {
			if children[0] == True {
				return children[1]
			}
			if children[0] == False {
				return children[2]
			}
		}
	}

	key := fmt.Sprintf("c:%d:%d", kind, len(children))
	for _, c := range children {
		key += ":" + c.key()
	}
	cs := append([]Occurrence(nil), children...)
	return s.intern(key, func() node { return node{kind: kind, typ: typ, args: cs} })
}

func (s *Store) simplifyOr(children []Occurrence) (Occurrence, bool) {
	kept := make([]Occurrence, 0, len(children))
	for _, c := range children {
		if c == True {
			return True, true
		}
		if c == False {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == len(children) {
		return 0, false
	}
	if len(kept) == 0 {
		return False, true
	}
	if len(kept) == 1 {
		return kept[0], true
	}
	return s.NewComposite(Or, BoolType, kept), true
}

func (s *Store) simplifyDistinct(children []Occurrence) (Occurrence, bool) {
	if len(children) <= 1 {
		return True, true
	}
	for i := range children {
		for j := i + 1; j < len(children); j++ {
			if children[i] == children[j] {
				return False, true
			}
		}
	}
	return 0, false
}

func (s *Store) NewBoolConstant(v bool) Occurrence {
	if v {
		return True
	}
	return False
}

func (s *Store) NewBVConstant(width int, value uint64) Occurrence {
	key := fmt.Sprintf("bv:%d:%d", width, value)
	return s.intern(key, func() node {
		return node{kind: BitVector, typ: BVType, bvWidth: width, bvValue: value}
	})
}

func (s *Store) BitVectorOf(t Occurrence) (int, uint64, bool) {
	n := s.at(t)
	if n.kind != BitVector {
		return 0, 0, false
	}
	return n.bvWidth, n.bvValue, true
}

func (s *Store) Complement(t Occurrence) Occurrence { return t.Negate() }

// String renders a term for debugging and golden-output tests.
func (s *Store) String(t Occurrence) string {
	if t.Negated() {
		return "not(" + s.String(t.Positive()) + ")"
	}
	n := s.at(t)
	switch n.kind {
	case BoolConstant:
		if t == True {
			return "true"
		}
		return "false"
	case UninterpretedConstant:
		return n.name
	case ArithmeticConstant:
		return n.rat.RatString()
	case ArithmeticPolynomial:
		return s.polyString(n.poly)
	case ArithmeticEqAtom:
		return s.String(n.args[0]) + " = 0"
	case ArithmeticGeAtom:
		return s.String(n.args[0]) + " >= 0"
	case ArithmeticBinEqAtom:
		return s.String(n.args[0]) + " = " + s.String(n.args[1])
	case BitVector:
		return fmt.Sprintf("bv%d(%d)", n.bvWidth, n.bvValue)
	default:
		out := n.kind.String() + "("
		for i, c := range n.args {
			if i > 0 {
				out += ", "
			}
			out += s.String(c)
		}
		return out + ")"
	}
}

func (s *Store) polyString(p *Polynomial) string {
	if len(p.Monomials) == 0 {
		return "0"
	}
	out := ""
	for i, m := range p.Monomials {
		if i > 0 {
			out += " + "
		}
		if m.Var == NoVar {
			out += m.Coeff.RatString()
			continue
		}
		if m.Coeff.Cmp(big.NewRat(1, 1)) == 0 {
			out += s.String(m.Var)
		} else {
			out += m.Coeff.RatString() + "*" + s.String(m.Var)
		}
	}
	return out
}
