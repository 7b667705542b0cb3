// Package elim implements the EliminationSubstitution contract (spec
// §6) driving the generic elimination phase (spec §4.2): proposing
// cheap x = u substitutions from the generic literals, breaking
// substitution cycles by a classic SCC computation over the proposal
// dependency graph, and applying the surviving acyclic map.
package elim

import (
	"mbp/internal/subst"
	"mbp/internal/term"
)

// Elimination is the reference EliminationSubstitution implementation.
type Elimination struct {
	store term.TermStore
	vars  term.VarSet

	proposed      map[term.Occurrence]term.Occurrence
	proposedOrder []term.Occurrence

	final map[term.Occurrence]term.Occurrence
	sub   *subst.Substitutor
}

// New builds an empty EliminationSubstitution over vars_to_elim.
func New(store term.TermStore, vars term.VarSet) *Elimination {
	return &Elimination{
		store:    store,
		vars:     vars,
		proposed: make(map[term.Occurrence]term.Occurrence),
	}
}

// TryCheapMap inspects literal t for the syntactic shape of an
// equality x = u (or a bare/negated Boolean variable, which is a
// disguised x = true/false equality) and proposes x -> u when x is in
// vars_to_elim and u does not mention x. The first admissible proposal
// for a given x wins; later literals proposing the same x are ignored,
// so insertion order of GenLiterals is the tie-break (spec §4.2).
func (e *Elimination) TryCheapMap(t term.Occurrence) {
	if e.tryBareVar(t) {
		return
	}
	if t.Negated() {
		return
	}
	if e.store.Kind(t) != term.Eq {
		return
	}
	children, ok := e.store.Children(t)
	if !ok || len(children) != 2 {
		return
	}
	if e.tryAssign(children[0], children[1]) {
		return
	}
	e.tryAssign(children[1], children[0])
}

func (e *Elimination) tryBareVar(t term.Occurrence) bool {
	base := t.Positive()
	if e.store.Kind(base) != term.UninterpretedConstant || e.store.TypeOf(base) != term.BoolType {
		return false
	}
	if !e.vars.Contains(base) {
		return false
	}
	if _, exists := e.proposed[base]; exists {
		return false
	}
	e.propose(base, e.store.NewBoolConstant(!t.Negated()))
	return true
}

func (e *Elimination) tryAssign(x, u term.Occurrence) bool {
	if x.Negated() || e.store.Kind(x) != term.UninterpretedConstant {
		return false
	}
	if !e.vars.Contains(x) {
		return false
	}
	if _, exists := e.proposed[x]; exists {
		return false
	}
	if e.mentions(u, x) {
		return false
	}
	e.propose(x, u)
	return true
}

func (e *Elimination) propose(x, u term.Occurrence) {
	e.proposed[x] = u
	e.proposedOrder = append(e.proposedOrder, x)
}

// mentions reports whether x occurs anywhere inside t.
func (e *Elimination) mentions(t, x term.Occurrence) bool {
	seen := make(map[term.Occurrence]bool)
	var walk func(term.Occurrence) bool
	walk = func(cur term.Occurrence) bool {
		base := cur.Positive()
		if base == x {
			return true
		}
		if seen[base] {
			return false
		}
		seen[base] = true
		for _, child := range e.subterms(base) {
			if walk(child) {
				return true
			}
		}
		return false
	}
	return walk(t)
}

func (e *Elimination) subterms(t term.Occurrence) []term.Occurrence {
	if children, ok := e.store.Children(t); ok {
		return children
	}
	if mons, ok := e.store.PolyMonomials(t); ok {
		out := make([]term.Occurrence, 0, len(mons))
		for _, m := range mons {
			if m.Var != term.NoVar {
				out = append(out, m.Var)
			}
		}
		return out
	}
	if arg, ok := e.store.ArithAtomArg(t); ok {
		return []term.Occurrence{arg}
	}
	if a, b, ok := e.store.ArithBineqArgs(t); ok {
		return []term.Occurrence{a, b}
	}
	return nil
}

// RemoveCycles restricts the proposal map to its largest acyclic
// sub-map: while a cycle exists in the x -> vars(proposed[x]) ∩
// dom(proposed) dependency graph, it removes the cycle member with the
// latest proposedOrder index, deterministically preferring to keep
// the earlier-inserted mapping.
func (e *Elimination) RemoveCycles() {
	index := make(map[term.Occurrence]int, len(e.proposedOrder))
	for i, x := range e.proposedOrder {
		index[x] = i
	}

	for {
		cycle, found := e.findCycle()
		if !found {
			break
		}
		victim, victimIdx := cycle[0], index[cycle[0]]
		for _, v := range cycle[1:] {
			if index[v] > victimIdx {
				victim, victimIdx = v, index[v]
			}
		}
		delete(e.proposed, victim)
	}

	e.final = make(map[term.Occurrence]term.Occurrence, len(e.proposed))
	for _, x := range e.proposedOrder {
		if u, ok := e.proposed[x]; ok {
			e.final[x] = u
		}
	}
}

// findCycle performs a DFS over the live proposal graph and returns
// the first cycle it finds (as the slice of variables on it), in
// proposedOrder to keep the search itself deterministic.
func (e *Elimination) findCycle() ([]term.Occurrence, bool) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[term.Occurrence]int, len(e.proposed))
	var stack []term.Occurrence

	var visit func(term.Occurrence) ([]term.Occurrence, bool)
	visit = func(x term.Occurrence) ([]term.Occurrence, bool) {
		color[x] = gray
		stack = append(stack, x)
		for _, dep := range e.deps(x) {
			switch color[dep] {
			case white:
				if cyc, found := visit(dep); found {
					return cyc, true
				}
			case gray:
				// Found a cycle: the portion of the stack from dep's
				// first occurrence to the top.
				for i, s := range stack {
					if s == dep {
						return append([]term.Occurrence(nil), stack[i:]...), true
					}
				}
			}
		}
		stack = stack[:len(stack)-1]
		color[x] = black
		return nil, false
	}

	for _, x := range e.proposedOrder {
		if _, ok := e.proposed[x]; !ok {
			continue
		}
		if color[x] == white {
			if cyc, found := visit(x); found {
				return cyc, true
			}
		}
	}
	return nil, false
}

// deps returns the live proposal dependencies of x: variables
// mentioned in proposed[x] that themselves have a surviving proposal.
func (e *Elimination) deps(x term.Occurrence) []term.Occurrence {
	u, ok := e.proposed[x]
	if !ok {
		return nil
	}
	seen := make(map[term.Occurrence]bool)
	var out []term.Occurrence
	var walk func(term.Occurrence)
	walk = func(cur term.Occurrence) {
		base := cur.Positive()
		if seen[base] {
			return
		}
		seen[base] = true
		if _, isProposed := e.proposed[base]; isProposed && base != x {
			out = append(out, base)
		}
		for _, child := range e.subterms(base) {
			walk(child)
		}
	}
	walk(u)
	return out
}

// GetMap returns x's final replacement, if any, after RemoveCycles.
func (e *Elimination) GetMap(x term.Occurrence) (term.Occurrence, bool) {
	u, ok := e.final[x]
	return u, ok
}

// Apply rewrites t under the final (acyclic) substitution map. Lazily
// builds the backing TermSubstitutor on first use.
func (e *Elimination) Apply(t term.Occurrence) (term.Occurrence, error) {
	if e.sub == nil {
		vars := make([]term.Occurrence, 0, len(e.final))
		repls := make([]term.Occurrence, 0, len(e.final))
		for _, x := range e.proposedOrder {
			if u, ok := e.final[x]; ok {
				vars = append(vars, x)
				repls = append(repls, u)
			}
		}
		s, err := subst.New(e.store, vars, repls)
		if err != nil {
			return 0, err
		}
		e.sub = s
	}
	return e.sub.Apply(t)
}

// Close releases the elimination's auxiliary state.
func (e *Elimination) Close() {
	if e.sub != nil {
		e.sub.Close()
	}
	e.proposed, e.final = nil, nil
}

// Eliminated returns the variables with a surviving mapping, in
// proposedOrder.
func (e *Elimination) Eliminated() []term.Occurrence {
	out := make([]term.Occurrence, 0, len(e.final))
	for _, x := range e.proposedOrder {
		if _, ok := e.final[x]; ok {
			out = append(out, x)
		}
	}
	return out
}
