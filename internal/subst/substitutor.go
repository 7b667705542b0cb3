// Package subst implements the TermSubstitutor contract (spec §6): a
// total finite map from variables to replacement terms, applied to
// arbitrary terms, with cycle and evaluation-error detection. Both the
// generic-elimination phase (after cycle breaking) and the
// value-closure phase reuse this single engine.
package subst

import (
	"math/big"

	"github.com/pkg/errors"

	"mbp/internal/term"
)

type visitState int

const (
	white visitState = iota
	gray
	black
)

// Substitutor is the reference TermSubstitutor implementation.
type Substitutor struct {
	store term.TermStore
	repl  map[term.Occurrence]term.Occurrence

	state    map[term.Occurrence]visitState
	resolved map[term.Occurrence]term.Occurrence
	memo     map[term.Occurrence]term.Occurrence
}

// New builds a substitutor over store mapping vars[i] to
// replacements[i]. Every entry in vars must be a positive-polarity
// uninterpreted constant (checked in debug by the caller per spec
// §3's global invariants).
func New(store term.TermStore, vars, replacements []term.Occurrence) (*Substitutor, error) {
	if len(vars) != len(replacements) {
		return nil, errors.Errorf("subst: %d vars but %d replacements", len(vars), len(replacements))
	}
	repl := make(map[term.Occurrence]term.Occurrence, len(vars))
	for i, v := range vars {
		repl[v] = replacements[i]
	}
	return &Substitutor{
		store:    store,
		repl:     repl,
		state:    make(map[term.Occurrence]visitState),
		resolved: make(map[term.Occurrence]term.Occurrence),
		memo:     make(map[term.Occurrence]term.Occurrence),
	}, nil
}

// Close releases the substitutor's auxiliary state. Go's garbage
// collector makes this a formality, but the method is kept so callers
// following the §6 contract (new/apply/dispose) have a symmetric
// lifecycle to call even across a non-Go reimplementation boundary.
func (s *Substitutor) Close() {
	s.state = nil
	s.resolved = nil
	s.memo = nil
}

// resolve fully chases x's replacement chain, detecting a cycle in the
// map itself (x -> ... -> x) rather than recursing forever.
func (s *Substitutor) resolve(x term.Occurrence) (term.Occurrence, error) {
	switch s.state[x] {
	case black:
		return s.resolved[x], nil
	case gray:
		name, _ := s.store.Name(x)
		return 0, errors.Errorf("substitution cycle detected at variable %q", name)
	}
	s.state[x] = gray
	r := s.repl[x]
	substituted, err := s.Apply(r)
	if err != nil {
		return 0, err
	}
	s.state[x] = black
	s.resolved[x] = substituted
	return substituted, nil
}

// Apply rewrites t by replacing every mapped variable occurrence,
// chasing replacement chains (x -> y -> z) and reporting a cycle as an
// error rather than recursing forever.
func (s *Substitutor) Apply(t term.Occurrence) (term.Occurrence, error) {
	if out, ok := s.memo[t]; ok {
		return out, nil
	}
	out, err := s.apply(t)
	if err != nil {
		return 0, err
	}
	s.memo[t] = out
	return out, nil
}

func (s *Substitutor) apply(t term.Occurrence) (term.Occurrence, error) {
	base := t.Positive()

	if s.store.Kind(base) == term.UninterpretedConstant {
		if _, mapped := s.repl[base]; mapped {
			r, err := s.resolve(base)
			if err != nil {
				return 0, err
			}
			if t.Negated() {
				return s.store.Complement(r), nil
			}
			return r, nil
		}
		return t, nil
	}

	if t.Negated() {
		pos, err := s.Apply(base)
		if err != nil {
			return 0, err
		}
		return s.store.Complement(pos), nil
	}

	switch s.store.Kind(t) {
	case term.BoolConstant, term.ArithmeticConstant, term.BitVector:
		return t, nil

	case term.ArithmeticPolynomial:
		return s.applyPoly(t)

	case term.ArithmeticEqAtom:
		arg, _ := s.store.ArithAtomArg(t)
		newArg, err := s.Apply(arg)
		if err != nil {
			return 0, err
		}
		if newArg == arg {
			return t, nil
		}
		return s.store.NewArithEq(newArg), nil

	case term.ArithmeticGeAtom:
		arg, _ := s.store.ArithAtomArg(t)
		newArg, err := s.Apply(arg)
		if err != nil {
			return 0, err
		}
		if newArg == arg {
			return t, nil
		}
		return s.store.NewArithGe(newArg), nil

	case term.ArithmeticBinEqAtom:
		a, b, _ := s.store.ArithBineqArgs(t)
		na, err := s.Apply(a)
		if err != nil {
			return 0, err
		}
		nb, err := s.Apply(b)
		if err != nil {
			return 0, err
		}
		if na == a && nb == b {
			return t, nil
		}
		return s.store.NewArithBinEq(na, nb), nil

	case term.Ite, term.Eq, term.Distinct, term.Or, term.Xor:
		children, _ := s.store.Children(t)
		newChildren := make([]term.Occurrence, len(children))
		changed := false
		for i, c := range children {
			nc, err := s.Apply(c)
			if err != nil {
				return 0, err
			}
			newChildren[i] = nc
			changed = changed || nc != c
		}
		if !changed {
			return t, nil
		}
		return s.store.NewComposite(s.store.Kind(t), s.store.TypeOf(t), newChildren), nil

	default:
		return t, nil
	}
}

// applyPoly substitutes every variable in a polynomial, re-linearizing
// when a replacement is itself arithmetic (a constant, a variable, or
// another polynomial), matching Loos-Weispfenning style plugging of a
// virtual term into a linear expression.
func (s *Substitutor) applyPoly(t term.Occurrence) (term.Occurrence, error) {
	mons, _ := s.store.PolyMonomials(t)
	changed := false
	terms := make([]term.Monomial, 0, len(mons))
	for _, m := range mons {
		if m.Var == term.NoVar {
			terms = append(terms, m)
			continue
		}
		replaced, err := s.Apply(m.Var)
		if err != nil {
			return 0, err
		}
		if replaced == m.Var {
			terms = append(terms, m)
			continue
		}
		changed = true
		sub, err := s.expandArith(replaced, m.Coeff)
		if err != nil {
			return 0, err
		}
		terms = append(terms, sub...)
	}
	if !changed {
		return t, nil
	}
	return s.store.NewPolynomial(term.NewPolynomial(terms)), nil
}

// expandArith distributes coeff over an arithmetic replacement term,
// returning the monomials to fold into the enclosing polynomial.
func (s *Substitutor) expandArith(r term.Occurrence, coeff *big.Rat) ([]term.Monomial, error) {
	if rat, ok := s.store.RationalOf(r); ok {
		return []term.Monomial{{Coeff: new(big.Rat).Mul(coeff, rat), Var: term.NoVar}}, nil
	}
	if mons, ok := s.store.PolyMonomials(r); ok {
		out := make([]term.Monomial, len(mons))
		for i, m := range mons {
			out[i] = term.Monomial{Coeff: new(big.Rat).Mul(coeff, m.Coeff), Var: m.Var}
		}
		return out, nil
	}
	if s.store.Kind(r) == term.UninterpretedConstant && s.store.IsArithmetic(r) {
		return []term.Monomial{{Coeff: new(big.Rat).Set(coeff), Var: r}}, nil
	}
	return nil, errors.Errorf("substitution produced a non-arithmetic replacement inside a polynomial")
}
