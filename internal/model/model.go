package model

import (
	"math/big"

	"github.com/pkg/errors"

	"mbp/internal/term"
)

// Model is the external contract the projector consumes (spec §6).
type Model interface {
	Evaluate(t term.Occurrence) (Value, error)
	RationalValue(x term.Occurrence) (*big.Rat, error)
	Holds(t term.Occurrence) bool
}

// RefModel is an in-memory reference Model over a term.Store. Leaf
// values (uninterpreted constants) are supplied by the caller via
// Assign*; every other occurrence is evaluated structurally.
type RefModel struct {
	store  term.TermStore
	values map[term.Occurrence]Value
}

// NewRefModel creates an empty model over store. Assign the
// uninterpreted constants the cube mentions before using it.
func NewRefModel(store term.TermStore) *RefModel {
	return &RefModel{store: store, values: make(map[term.Occurrence]Value)}
}

// AssignBool fixes the value of a Boolean uninterpreted constant.
func (m *RefModel) AssignBool(x term.Occurrence, v bool) { m.values[x.Positive()] = Bool(v) }

// AssignRational fixes the value of an arithmetic uninterpreted constant.
func (m *RefModel) AssignRational(x term.Occurrence, v *big.Rat) {
	m.values[x.Positive()] = Rational(v)
}

// AssignBitVector fixes the value of a bit-vector uninterpreted constant.
func (m *RefModel) AssignBitVector(x term.Occurrence, width int, v uint64) {
	m.values[x.Positive()] = BitVector(width, v)
}

// Evaluate implements Model.
func (m *RefModel) Evaluate(t term.Occurrence) (Value, error) {
	if t.Negated() {
		v, err := m.Evaluate(t.Positive())
		if err != nil {
			return Value{}, err
		}
		if v.Kind != BoolValue {
			return Value{}, errors.Errorf("cannot negate non-boolean occurrence")
		}
		return Bool(!v.Bool), nil
	}

	if t == term.True {
		return Bool(true), nil
	}

	switch m.store.Kind(t) {
	case term.UninterpretedConstant:
		v, ok := m.values[t]
		if !ok {
			name, _ := m.store.Name(t)
			return Value{}, errors.Errorf("no assignment for uninterpreted constant %q", name)
		}
		return v, nil

	case term.ArithmeticConstant:
		r, _ := m.store.RationalOf(t)
		return Rational(r), nil

	case term.ArithmeticPolynomial:
		return m.evalPoly(t)

	case term.ArithmeticEqAtom:
		r, err := m.evalArithArg(t)
		if err != nil {
			return Value{}, err
		}
		return Bool(r.Sign() == 0), nil

	case term.ArithmeticGeAtom:
		r, err := m.evalArithArg(t)
		if err != nil {
			return Value{}, err
		}
		return Bool(r.Sign() >= 0), nil

	case term.ArithmeticBinEqAtom:
		a, b, _ := m.store.ArithBineqArgs(t)
		ra, err := m.rationalOfTerm(a)
		if err != nil {
			return Value{}, err
		}
		rb, err := m.rationalOfTerm(b)
		if err != nil {
			return Value{}, err
		}
		return Bool(ra.Cmp(rb) == 0), nil

	case term.Eq:
		return m.evalEq(t)

	case term.Distinct:
		return m.evalDistinct(t)

	case term.Or:
		return m.evalOr(t)

	case term.Xor:
		return m.evalXor(t)

	case term.Ite:
		return m.evalIte(t)

	case term.BitVector:
		w, v, _ := m.store.BitVectorOf(t)
		return BitVector(w, v), nil

	default:
		return Value{}, errors.Errorf("model cannot evaluate term kind %s", m.store.Kind(t))
	}
}

func (m *RefModel) evalArithArg(t term.Occurrence) (*big.Rat, error) {
	arg, _ := m.store.ArithAtomArg(t)
	return m.rationalOfTerm(arg)
}

// rationalOfTerm evaluates an arbitrary arithmetic term to a rational,
// the shared leaf operation both atoms and RationalValue use.
func (m *RefModel) rationalOfTerm(t term.Occurrence) (*big.Rat, error) {
	v, err := m.Evaluate(t)
	if err != nil {
		return nil, err
	}
	if v.Kind != RationalValue {
		return nil, errors.Errorf("expected a rational value, got value kind %d", v.Kind)
	}
	return v.Rat, nil
}

func (m *RefModel) evalPoly(t term.Occurrence) (Value, error) {
	mons, _ := m.store.PolyMonomials(t)
	sum := new(big.Rat)
	for _, mono := range mons {
		if mono.Var == term.NoVar {
			sum.Add(sum, mono.Coeff)
			continue
		}
		r, err := m.rationalOfTerm(mono.Var)
		if err != nil {
			return Value{}, err
		}
		weighted := new(big.Rat).Mul(mono.Coeff, r)
		sum.Add(sum, weighted)
	}
	return Rational(sum), nil
}

func (m *RefModel) evalEq(t term.Occurrence) (Value, error) {
	children, _ := m.store.Children(t)
	a, err := m.Evaluate(children[0])
	if err != nil {
		return Value{}, err
	}
	b, err := m.Evaluate(children[1])
	if err != nil {
		return Value{}, err
	}
	return Bool(a.Equal(b)), nil
}

func (m *RefModel) evalDistinct(t term.Occurrence) (Value, error) {
	children, _ := m.store.Children(t)
	vals := make([]Value, len(children))
	for i, c := range children {
		v, err := m.Evaluate(c)
		if err != nil {
			return Value{}, err
		}
		vals[i] = v
	}
	for i := range vals {
		for j := i + 1; j < len(vals); j++ {
			if vals[i].Equal(vals[j]) {
				return Bool(false), nil
			}
		}
	}
	return Bool(true), nil
}

func (m *RefModel) evalOr(t term.Occurrence) (Value, error) {
	children, _ := m.store.Children(t)
	for _, c := range children {
		v, err := m.Evaluate(c)
		if err != nil {
			return Value{}, err
		}
		if v.Kind == BoolValue && v.Bool {
			return Bool(true), nil
		}
	}
	return Bool(false), nil
}

func (m *RefModel) evalXor(t term.Occurrence) (Value, error) {
	children, _ := m.store.Children(t)
	odd := false
	for _, c := range children {
		v, err := m.Evaluate(c)
		if err != nil {
			return Value{}, err
		}
		if v.Kind == BoolValue && v.Bool {
			odd = !odd
		}
	}
	return Bool(odd), nil
}

func (m *RefModel) evalIte(t term.Occurrence) (Value, error) {
	children, _ := m.store.Children(t)
	cond, err := m.Evaluate(children[0])
	if err != nil {
		return Value{}, err
	}
	if cond.Kind != BoolValue {
		return Value{}, errors.Errorf("ite condition did not evaluate to a boolean")
	}
	if cond.Bool {
		return m.Evaluate(children[1])
	}
	return m.Evaluate(children[2])
}

// RationalValue implements Model: evaluates x and requires a rational result.
func (m *RefModel) RationalValue(x term.Occurrence) (*big.Rat, error) {
	return m.rationalOfTerm(x)
}

// Holds implements Model's debug-assertion helper: true iff t
// evaluates to the Boolean true. Evaluation errors are treated as
// "does not hold" since Holds is only ever used in debug assertions,
// never on the error-propagating path.
func (m *RefModel) Holds(t term.Occurrence) bool {
	v, err := m.Evaluate(t)
	return err == nil && v.Kind == BoolValue && v.Bool
}
