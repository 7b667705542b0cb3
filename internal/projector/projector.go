// Package projector implements the Projector orchestrator (spec §4.1,
// §6): the stateful component that drives the three elimination
// phases over a cube and a set of variables to eliminate, producing a
// residual cube that still holds in the caller's Model.
package projector

import (
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"

	"mbp/internal/arith"
	"mbp/internal/elim"
	"mbp/internal/mbperr"
	"mbp/internal/model"
	"mbp/internal/subst"
	"mbp/internal/term"
)

// MaxVars bounds the size of vars_to_elim a Projector will accept.
// Overridable at process start by mbpconfig.
var MaxVars = 4096

// DebugAssertions gates the precondition check spec §3/§4.1 describe
// as debug-only: every added literal must hold in the Model. (New
// checks that every variable to eliminate is a positive-polarity
// uninterpreted constant regardless of this setting.) Overridable by
// mbpconfig; off by default since it costs an extra Model.Evaluate per
// literal.
var DebugAssertions = false

// ErrTooManyVars is returned by New when |vars| exceeds MaxVars.
var ErrTooManyVars = errors.New("projector: too many variables to eliminate")

// Projector is the reference implementation of the orchestrator.
type Projector struct {
	model model.Model
	store term.TermStore
	vars  term.VarSet

	evars []term.Occurrence

	genLiterals   []term.Occurrence
	arithLiterals []term.Occurrence

	arithVarsToKeepSeen map[term.Occurrence]bool
	arithVars           []term.Occurrence

	flag mbperr.Flag
	mu   deadlock.Mutex
}

// New constructs a Projector bound to model and store, eliminating
// vars. Fails with ErrTooManyVars if |vars| exceeds MaxVars, or if any
// element isn't a positive-polarity uninterpreted constant.
func New(m model.Model, store term.TermStore, vars []term.Occurrence) (*Projector, error) {
	if len(vars) > MaxVars {
		return nil, ErrTooManyVars
	}
	for _, v := range vars {
		if v.Negated() || store.Kind(v) != term.UninterpretedConstant {
			return nil, errors.Errorf("projector: %v is not a positive-polarity uninterpreted constant", v)
		}
	}
	evars := append([]term.Occurrence(nil), vars...)
	return &Projector{
		model:               m,
		store:               store,
		vars:                term.NewVarSet(vars),
		evars:               evars,
		arithVarsToKeepSeen: make(map[term.Occurrence]bool),
	}, nil
}

// AddLiteral classifies and stores literal t (spec §4.1's literal
// classification algorithm), returning the projector's flag so callers
// can fail fast; the same flag is consulted again at Run.
func (p *Projector) AddLiteral(t term.Occurrence) mbperr.Flag {
	if !p.flag.OK() {
		return p.flag
	}
	if DebugAssertions && !p.model.Holds(t) {
		p.flag = p.flag.Set(mbperr.ErrorInEval, mbperr.CodeErrorInEval, errors.Errorf("literal does not hold in the model"))
		return p.flag
	}

	base := t.Positive()
	kind := p.store.Kind(base)
	if kind.IsArithmeticAtomKind() {
		for _, arg := range p.arithArgsOf(base, kind) {
			p.classifyArithArg(arg)
			if !p.flag.OK() {
				break
			}
		}
		p.arithLiterals = append(p.arithLiterals, t)
	} else {
		p.genLiterals = append(p.genLiterals, t)
	}
	return p.flag
}

func (p *Projector) arithArgsOf(base term.Occurrence, kind term.Kind) []term.Occurrence {
	if kind == term.ArithmeticBinEqAtom {
		a, b, _ := p.store.ArithBineqArgs(base)
		return []term.Occurrence{a, b}
	}
	arg, _ := p.store.ArithAtomArg(base)
	return []term.Occurrence{arg}
}

// classifyArithArg walks one arithmetic argument per spec §4.1 step 2:
// constants are skipped, polynomials are walked monomial by monomial
// (skipping the constant monomial), anything else is treated as a bare
// variable.
func (p *Projector) classifyArithArg(arg term.Occurrence) {
	if _, ok := p.store.RationalOf(arg); ok {
		return
	}
	if mons, ok := p.store.PolyMonomials(arg); ok {
		for _, m := range mons {
			if m.Var == term.NoVar {
				continue
			}
			p.classifyVar(m.Var)
			if !p.flag.OK() {
				return
			}
		}
		return
	}
	p.classifyVar(arg)
}

// classifyVar implements spec §4.1 step 3.
func (p *Projector) classifyVar(x term.Occurrence) {
	if p.store.Kind(x) != term.UninterpretedConstant {
		p.flag = p.flag.NonLinearf(p.store.Kind(x))
		return
	}
	if p.vars.Contains(x) {
		return
	}
	if !p.arithVarsToKeepSeen[x] {
		p.arithVarsToKeepSeen[x] = true
		p.arithVars = append(p.arithVars, x)
	}
}

// Run executes the three phases in order and appends the residual
// cube to out (spec §4.1's run). out is left unmodified on error.
func (p *Projector) Run(out []term.Occurrence) ([]term.Occurrence, mbperr.Flag) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.flag.OK() {
		p.runGenericPhase()
	}
	if p.flag.OK() {
		p.runArithPhase()
	}
	if p.flag.OK() {
		p.runValueClosurePhase()
	}
	if !p.flag.OK() {
		return out, p.flag
	}
	out = append(out, p.genLiterals...)
	out = append(out, p.arithLiterals...)
	return out, p.flag
}

// runGenericPhase implements spec §4.2.
func (p *Projector) runGenericPhase() {
	e := elim.New(p.store, p.vars)
	defer e.Close()

	for _, t := range p.genLiterals {
		e.TryCheapMap(t)
	}
	e.RemoveCycles()

	eliminated := e.Eliminated()
	if len(eliminated) == 0 {
		return
	}

	newGen := make([]term.Occurrence, 0, len(p.genLiterals))
	for _, t := range p.genLiterals {
		rewritten, err := e.Apply(t)
		if err != nil {
			// The taxonomy has no phase-specific code for a generic-phase
			// substitution failure; ErrorInSubst is the closest existing
			// kind and RemoveCycles already guarantees the map it built
			// is acyclic, so this path is defensive rather than expected.
			p.flag = p.flag.ErrorInSubstf(err)
			return
		}
		if rewritten == term.True {
			continue
		}
		newGen = append(newGen, rewritten)
	}
	p.genLiterals = newGen

	eliminatedSet := make(map[term.Occurrence]bool, len(eliminated))
	for _, v := range eliminated {
		eliminatedSet[v] = true
	}
	newEvars := make([]term.Occurrence, 0, len(p.evars))
	for _, v := range p.evars {
		if !eliminatedSet[v] {
			newEvars = append(newEvars, v)
		}
	}
	p.evars = newEvars
}

// runArithPhase implements spec §4.3.
func (p *Projector) runArithPhase() {
	var arithEvars []term.Occurrence
	for _, v := range p.evars {
		if p.store.IsArithmetic(v) {
			arithEvars = append(arithEvars, v)
		}
	}
	if len(arithEvars) == 0 {
		return
	}

	ap := arith.New(p.store)
	defer ap.Close()

	for _, v := range arithEvars {
		val, err := p.model.RationalValue(v)
		if err != nil {
			p.flag = p.flag.ErrorInEvalf(err)
			return
		}
		ap.AddVar(v, true, val)
	}
	for _, v := range p.arithVars {
		val, err := p.model.RationalValue(v)
		if err != nil {
			p.flag = p.flag.ErrorInEvalf(err)
			return
		}
		ap.AddVar(v, false, val)
	}
	ap.CloseVarSet()

	for _, lit := range p.arithLiterals {
		if err := ap.AddConstraint(lit); err != nil {
			p.flag = p.flag.BadArithLiteralf(err)
			return
		}
	}
	if err := ap.Eliminate(); err != nil {
		p.flag = p.flag.BadArithLiteralf(err)
		return
	}
	p.arithLiterals = ap.GetFormulaVector(nil)

	eliminatedSet := make(map[term.Occurrence]bool, len(arithEvars))
	for _, v := range arithEvars {
		eliminatedSet[v] = true
	}
	newEvars := make([]term.Occurrence, 0, len(p.evars))
	for _, v := range p.evars {
		if !eliminatedSet[v] {
			newEvars = append(newEvars, v)
		}
	}
	p.evars = newEvars
}

// runValueClosurePhase implements spec §4.4.
func (p *Projector) runValueClosurePhase() {
	if len(p.evars) == 0 {
		return
	}

	vars := append([]term.Occurrence(nil), p.evars...)
	repls := make([]term.Occurrence, len(vars))
	for i, v := range vars {
		val, err := p.model.Evaluate(v)
		if err != nil {
			p.flag = p.flag.ErrorInEvalf(err)
			return
		}
		occ, err := p.valueToTerm(val)
		if err != nil {
			p.flag = p.flag.ErrorInConvertf(err)
			return
		}
		repls[i] = occ
	}

	sub, err := subst.New(p.store, vars, repls)
	if err != nil {
		p.flag = p.flag.ErrorInSubstf(err)
		return
	}
	defer sub.Close()

	newGen, ok := p.applyAll(sub, p.genLiterals)
	if !ok {
		return
	}
	newArith, ok := p.applyAll(sub, p.arithLiterals)
	if !ok {
		return
	}
	p.genLiterals, p.arithLiterals = newGen, newArith
	p.evars = nil
}

func (p *Projector) applyAll(sub *subst.Substitutor, literals []term.Occurrence) ([]term.Occurrence, bool) {
	out := make([]term.Occurrence, 0, len(literals))
	for _, t := range literals {
		rewritten, err := sub.Apply(t)
		if err != nil {
			p.flag = p.flag.ErrorInSubstf(err)
			return nil, false
		}
		if rewritten == term.True {
			continue
		}
		out = append(out, rewritten)
	}
	return out, true
}

func (p *Projector) valueToTerm(v model.Value) (term.Occurrence, error) {
	switch v.Kind {
	case model.BoolValue:
		return p.store.NewBoolConstant(v.Bool), nil
	case model.RationalValue:
		return p.store.NewArithConstant(v.Rat), nil
	case model.BitVectorValue:
		return p.store.NewBVConstant(v.BVWidth, v.BVValue), nil
	default:
		return 0, errors.Errorf("model value of kind %d has no term representation", v.Kind)
	}
}

// ProjectLiterals is the one-shot convenience entry point (spec §6).
// The error return carries construction-time failures (ErrTooManyVars
// and malformed vars_to_elim) that fall outside ProjectorFlag's sum
// type; the flag return carries the phase taxonomy of spec §7.
func ProjectLiterals(m model.Model, store term.TermStore, literals, vars, out []term.Occurrence) ([]term.Occurrence, mbperr.Flag, error) {
	p, err := New(m, store, vars)
	if err != nil {
		return out, mbperr.Flag{}, err
	}
	for _, lit := range literals {
		if flag := p.AddLiteral(lit); !flag.OK() {
			break
		}
	}
	result, flag := p.Run(out)
	return result, flag, nil
}
