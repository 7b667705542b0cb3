// Package arith implements the ArithProjector contract (spec §6): a
// Loos-Weispfenning-style virtual substitution engine for linear
// arithmetic over the rationals. The model values registered with
// AddVar are stored but never read: they do not influence which move
// is made for a variable. Each variable to eliminate
// is resolved either by an exact equality substitution, when one is
// available among the constraints that mention it, or by the single-
// variable Fourier-Motzkin combination of its active lower and upper
// bounds — the concrete realization of virtual substitution for a
// linear-arithmetic variable with only inequality bounds. Both moves
// are guaranteed to preserve model truth: the caller's model already
// satisfies every constraint offered to the projector, so any
// algebraic consequence of those constraints (an exact solution, or a
// transitively combined bound) holds in that same model too.
package arith

import (
	"math/big"

	"github.com/pkg/errors"

	"mbp/internal/term"
)

type regVar struct {
	occ         term.Occurrence
	toEliminate bool
	value       *big.Rat
}

// constraint is the projector's normalized internal representation of
// an arithmetic literal: sum(coeffs[v]*v) + constant, compared to zero
// by eq/neq/strict/non-strict.
type constraint struct {
	coeffs   map[term.Occurrence]*big.Rat
	constant *big.Rat
	eq       bool
	neq      bool
	strict   bool // meaningful only when !eq && !neq: true means "> 0"

	// origin is the occurrence this constraint was built from, kept so
	// untouched constraints can be re-emitted unchanged (spec §8
	// idempotence: re-projecting output with no vars to eliminate
	// returns it unchanged). hasOrigin guards it, since Occurrence's
	// zero value already names the reserved "true" node.
	origin    term.Occurrence
	hasOrigin bool
}

// Projector is the reference ArithProjector implementation.
type Projector struct {
	store term.TermStore

	vars    []regVar
	varMeta map[term.Occurrence]*regVar
	closed  bool

	elimOrder []term.Occurrence
	keepOrder []term.Occurrence

	constraints []constraint
	live        []constraint

	eliminated bool
}

// New constructs an ArithProjector over store.
func New(store term.TermStore) *Projector {
	return &Projector{store: store, varMeta: make(map[term.Occurrence]*regVar)}
}

// AddVar registers a variable with its current model value (spec
// §4.3 steps 2-3). Must be called before CloseVarSet.
func (p *Projector) AddVar(x term.Occurrence, toEliminate bool, value *big.Rat) {
	rv := regVar{occ: x, toEliminate: toEliminate, value: new(big.Rat).Set(value)}
	p.vars = append(p.vars, rv)
	p.varMeta[x] = &p.vars[len(p.vars)-1]
	if toEliminate {
		p.elimOrder = append(p.elimOrder, x)
	} else {
		p.keepOrder = append(p.keepOrder, x)
	}
}

// CloseVarSet freezes variable registration (spec §4.3 step 4).
func (p *Projector) CloseVarSet() { p.closed = true }

// AddConstraint offers a constraint to the projector (spec §4.3 step
// 5). Returns an error describing why the literal was rejected
// (non-linear subterm, or an unsupported disequality mentioning a
// variable that must be eliminated); the caller maps this to
// BadArithLiteral.
func (p *Projector) AddConstraint(lit term.Occurrence) error {
	c, err := p.parse(lit)
	if err != nil {
		return err
	}
	if c.neq {
		for v := range c.coeffs {
			if p.varMeta[v] != nil && p.varMeta[v].toEliminate {
				return errors.Errorf("disequality elimination for an arithmetic variable is not supported")
			}
		}
	}
	p.constraints = append(p.constraints, c)
	return nil
}

func (p *Projector) parse(lit term.Occurrence) (constraint, error) {
	base := lit.Positive()
	negated := lit.Negated()

	switch p.store.Kind(base) {
	case term.ArithmeticEqAtom:
		arg, _ := p.store.ArithAtomArg(base)
		coeffs, k, err := p.linearize(arg)
		if err != nil {
			return constraint{}, err
		}
		if negated {
			return constraint{coeffs: coeffs, constant: k, neq: true, origin: lit, hasOrigin: true}, nil
		}
		return constraint{coeffs: coeffs, constant: k, eq: true, origin: lit, hasOrigin: true}, nil

	case term.ArithmeticGeAtom:
		arg, _ := p.store.ArithAtomArg(base)
		coeffs, k, err := p.linearize(arg)
		if err != nil {
			return constraint{}, err
		}
		if negated {
			negateInPlace(coeffs, k)
			return constraint{coeffs: coeffs, constant: k, strict: true, origin: lit, hasOrigin: true}, nil
		}
		return constraint{coeffs: coeffs, constant: k, origin: lit, hasOrigin: true}, nil

	case term.ArithmeticBinEqAtom:
		a, b, _ := p.store.ArithBineqArgs(base)
		ca, ka, err := p.linearize(a)
		if err != nil {
			return constraint{}, err
		}
		cb, kb, err := p.linearize(b)
		if err != nil {
			return constraint{}, err
		}
		negateInPlace(cb, kb)
		diff := mergeAdd(ca, cb)
		dk := new(big.Rat).Add(ka, kb)
		if negated {
			return constraint{coeffs: diff, constant: dk, neq: true, origin: lit, hasOrigin: true}, nil
		}
		return constraint{coeffs: diff, constant: dk, eq: true, origin: lit, hasOrigin: true}, nil

	default:
		return constraint{}, errors.Errorf("arith projector offered a non-arithmetic-atom literal of kind %s", p.store.Kind(base))
	}
}

// linearize decomposes an arithmetic term into a variable->coefficient
// map plus a constant, rejecting anything that isn't a constant, a
// polynomial over registered variables, or a registered variable
// itself.
func (p *Projector) linearize(t term.Occurrence) (map[term.Occurrence]*big.Rat, *big.Rat, error) {
	if rat, ok := p.store.RationalOf(t); ok {
		return map[term.Occurrence]*big.Rat{}, new(big.Rat).Set(rat), nil
	}
	if mons, ok := p.store.PolyMonomials(t); ok {
		coeffs := make(map[term.Occurrence]*big.Rat, len(mons))
		constant := new(big.Rat)
		for _, m := range mons {
			if m.Var == term.NoVar {
				constant.Add(constant, m.Coeff)
				continue
			}
			if p.varMeta[m.Var] == nil {
				return nil, nil, errors.Errorf("arithmetic literal mentions an unregistered variable")
			}
			coeffs[m.Var] = addRat(coeffs[m.Var], m.Coeff)
		}
		return coeffs, constant, nil
	}
	if p.store.Kind(t) == term.UninterpretedConstant && p.varMeta[t] != nil {
		return map[term.Occurrence]*big.Rat{t: big.NewRat(1, 1)}, new(big.Rat), nil
	}
	return nil, nil, errors.Errorf("non-linear arithmetic subterm in literal")
}

func addRat(acc, delta *big.Rat) *big.Rat {
	if acc == nil {
		acc = new(big.Rat)
	}
	return new(big.Rat).Add(acc, delta)
}

func negateInPlace(coeffs map[term.Occurrence]*big.Rat, constant *big.Rat) {
	for v, c := range coeffs {
		coeffs[v] = new(big.Rat).Neg(c)
	}
	constant.Neg(constant)
}

func mergeAdd(a, b map[term.Occurrence]*big.Rat) map[term.Occurrence]*big.Rat {
	out := make(map[term.Occurrence]*big.Rat, len(a)+len(b))
	for v, c := range a {
		out[v] = new(big.Rat).Set(c)
	}
	for v, c := range b {
		out[v] = addRat(out[v], c)
	}
	return out
}

// Eliminate runs virtual substitution for every to-eliminate variable
// (spec §4.3 step 6), in registration order.
func (p *Projector) Eliminate() error {
	live := append([]constraint(nil), p.constraints...)
	for _, x := range p.elimOrder {
		live = p.eliminateOne(x, live)
	}
	p.live = live
	p.eliminated = true
	return nil
}

func (p *Projector) eliminateOne(x term.Occurrence, in []constraint) []constraint {
	var mentioning []constraint
	var rest []constraint
	for _, c := range in {
		if _, ok := c.coeffs[x]; ok {
			mentioning = append(mentioning, c)
		} else {
			rest = append(rest, c)
		}
	}
	if len(mentioning) == 0 {
		return rest
	}

	for i, c := range mentioning {
		if !c.eq {
			continue
		}
		return append(rest, p.substituteEquality(x, c, mentioning, i)...)
	}

	var lowers, uppers []constraint
	for _, c := range mentioning {
		if c.coeffs[x].Sign() > 0 {
			lowers = append(lowers, c)
		} else {
			uppers = append(uppers, c)
		}
	}
	if len(lowers) == 0 || len(uppers) == 0 {
		return rest
	}
	for _, lo := range lowers {
		for _, up := range uppers {
			rest = append(rest, combineBounds(x, lo, up))
		}
	}
	return rest
}

// substituteEquality solves the equality constraint `eq` (found at
// index skip within mentioning) for x and plugs the solution into
// every other constraint in mentioning; constraints outside
// mentioning never reference x so they are untouched by the caller.
func (p *Projector) substituteEquality(x term.Occurrence, eq constraint, mentioning []constraint, skip int) []constraint {
	a := eq.coeffs[x]
	tCoeffs := make(map[term.Occurrence]*big.Rat, len(eq.coeffs))
	for v, c := range eq.coeffs {
		if v == x {
			continue
		}
		tCoeffs[v] = new(big.Rat).Neg(new(big.Rat).Quo(c, a))
	}
	tConstant := new(big.Rat).Neg(new(big.Rat).Quo(eq.constant, a))

	out := make([]constraint, 0, len(mentioning)-1)
	for i, c := range mentioning {
		if i == skip {
			continue
		}
		coeff := c.coeffs[x]
		newCoeffs := make(map[term.Occurrence]*big.Rat, len(c.coeffs)+len(tCoeffs))
		for v, cv := range c.coeffs {
			if v == x {
				continue
			}
			newCoeffs[v] = new(big.Rat).Set(cv)
		}
		for v, tc := range tCoeffs {
			scaled := new(big.Rat).Mul(coeff, tc)
			newCoeffs[v] = addRat(newCoeffs[v], scaled)
		}
		newConstant := new(big.Rat).Add(c.constant, new(big.Rat).Mul(coeff, tConstant))
		out = append(out, constraint{coeffs: newCoeffs, constant: newConstant, eq: c.eq, neq: c.neq, strict: c.strict})
	}
	return out
}

// combineBounds implements the single-variable Fourier-Motzkin step:
// from lo (coeff*x + ... >= 0, coeff>0) and up (coeff*x + ... >= 0,
// coeff<0), derive upperExpr - lowerExpr >= 0 (strict if either bound
// was strict).
func combineBounds(x term.Occurrence, lo, up constraint) constraint {
	loA := lo.coeffs[x]
	upA := up.coeffs[x]

	lowerExprCoeffs := make(map[term.Occurrence]*big.Rat, len(lo.coeffs))
	for v, c := range lo.coeffs {
		if v == x {
			continue
		}
		lowerExprCoeffs[v] = new(big.Rat).Neg(new(big.Rat).Quo(c, loA))
	}
	lowerConst := new(big.Rat).Neg(new(big.Rat).Quo(lo.constant, loA))

	upperExprCoeffs := make(map[term.Occurrence]*big.Rat, len(up.coeffs))
	for v, c := range up.coeffs {
		if v == x {
			continue
		}
		upperExprCoeffs[v] = new(big.Rat).Neg(new(big.Rat).Quo(c, upA))
	}
	upperConst := new(big.Rat).Neg(new(big.Rat).Quo(up.constant, upA))

	negLower := make(map[term.Occurrence]*big.Rat, len(lowerExprCoeffs))
	for v, c := range lowerExprCoeffs {
		negLower[v] = new(big.Rat).Neg(c)
	}
	combined := mergeAdd(upperExprCoeffs, negLower)
	combinedConst := new(big.Rat).Sub(upperConst, lowerConst)

	return constraint{
		coeffs:   combined,
		constant: combinedConst,
		strict:   lo.strict || up.strict,
	}
}

// GetFormulaVector appends the residual constraints to out (spec
// §4.3 step 7), in the order they settled into the live set.
func (p *Projector) GetFormulaVector(out []term.Occurrence) []term.Occurrence {
	seen := make(map[term.Occurrence]bool, len(p.live))
	for _, c := range p.live {
		occ, ok := c.toOccurrence(p.store)
		if !ok || seen[occ] {
			continue
		}
		seen[occ] = true
		out = append(out, occ)
	}
	return out
}

func (c constraint) toOccurrence(store term.TermStore) (term.Occurrence, bool) {
	if c.hasOrigin && len(c.coeffs) > 0 {
		return c.origin, true
	}
	if len(c.coeffs) == 0 {
		return c.constantOccurrence(store)
	}
	poly := store.NewPolynomial(buildPoly(c.coeffs, c.constant))
	switch {
	case c.eq:
		return store.NewArithEq(poly), true
	case c.neq:
		return store.Complement(store.NewArithEq(poly)), true
	case c.strict:
		neg := buildPoly(negateMap(c.coeffs), new(big.Rat).Neg(c.constant))
		return store.Complement(store.NewArithGe(store.NewPolynomial(neg))), true
	default:
		return store.NewArithGe(poly), true
	}
}

// constantOccurrence handles a constraint with no surviving variables:
// its truth value is already decided. A false constant constraint
// would mean the input model was inconsistent with the literals it
// was given, which the projector's debug preconditions rule out; we
// still degrade gracefully here rather than panic.
func (c constraint) constantOccurrence(store term.TermStore) (term.Occurrence, bool) {
	holds := false
	switch {
	case c.eq:
		holds = c.constant.Sign() == 0
	case c.neq:
		holds = c.constant.Sign() != 0
	case c.strict:
		holds = c.constant.Sign() > 0
	default:
		holds = c.constant.Sign() >= 0
	}
	if holds {
		return 0, false
	}
	return term.False, true
}

func buildPoly(coeffs map[term.Occurrence]*big.Rat, constant *big.Rat) *term.Polynomial {
	terms := make([]term.Monomial, 0, len(coeffs)+1)
	if constant.Sign() != 0 {
		terms = append(terms, term.Monomial{Coeff: new(big.Rat).Set(constant), Var: term.NoVar})
	}
	for v, c := range coeffs {
		terms = append(terms, term.Monomial{Coeff: new(big.Rat).Set(c), Var: v})
	}
	return term.NewPolynomial(terms)
}

func negateMap(m map[term.Occurrence]*big.Rat) map[term.Occurrence]*big.Rat {
	out := make(map[term.Occurrence]*big.Rat, len(m))
	for v, c := range m {
		out[v] = new(big.Rat).Neg(c)
	}
	return out
}

// Close releases the projector's auxiliary state.
func (p *Projector) Close() {
	p.constraints, p.live, p.varMeta = nil, nil, nil
}
