package cubelang

import (
	"fmt"
	"math/big"

	"mbp/internal/model"
	"mbp/internal/term"
)

// Built is the elaborated result of a .cube document: a fresh
// TermStore/Model fixture plus the literals and vars_to_elim it
// declares, ready to hand to projector.ProjectLiterals.
type Built struct {
	Store     *term.Store
	Model     *model.RefModel
	Literals  []term.Occurrence
	Eliminate []term.Occurrence
}

// Build elaborates a parsed File: declaring variables (and their model
// values), resolving the eliminate clause, and converting every
// literal statement into a term occurrence.
func Build(file *File) (*Built, error) {
	store := term.NewStore()
	m := model.NewRefModel(store)
	vars := make(map[string]term.Occurrence, len(file.Decls))

	for _, d := range file.Decls {
		if _, exists := vars[d.Name]; exists {
			return nil, fmt.Errorf("cubelang: variable %q declared twice", d.Name)
		}
		occ, err := declareVar(store, m, d)
		if err != nil {
			return nil, err
		}
		vars[d.Name] = occ
	}

	var eliminate []term.Occurrence
	if file.Eliminate != nil {
		for _, name := range file.Eliminate.Names {
			occ, ok := vars[name]
			if !ok {
				return nil, fmt.Errorf("cubelang: eliminate refers to undeclared variable %q", name)
			}
			eliminate = append(eliminate, occ)
		}
	}

	literals := make([]term.Occurrence, 0, len(file.Literals))
	for _, stmt := range file.Literals {
		occ, err := buildDisjunction(store, vars, stmt.Disj)
		if err != nil {
			return nil, err
		}
		literals = append(literals, occ)
	}

	return &Built{Store: store, Model: m, Literals: literals, Eliminate: eliminate}, nil
}

func declareVar(store *term.Store, m *model.RefModel, d *VarDecl) (term.Occurrence, error) {
	typ, err := typeOf(d.Type)
	if err != nil {
		return 0, err
	}
	occ := store.NewUninterpretedConstant(d.Name, typ)

	switch typ {
	case term.BoolType:
		if d.Value.Bool == nil {
			return 0, fmt.Errorf("cubelang: variable %q declared Bool but given a numeric value", d.Name)
		}
		m.AssignBool(occ, *d.Value.Bool == "true")
	default:
		if d.Value.Number == nil {
			return 0, fmt.Errorf("cubelang: variable %q declared %s but given a boolean value", d.Name, d.Type)
		}
		r, err := parseRat(*d.Value.Number)
		if err != nil {
			return 0, err
		}
		m.AssignRational(occ, r)
	}
	return occ, nil
}

func typeOf(name string) (term.Type, error) {
	switch name {
	case "Real":
		return term.RealType, nil
	case "Int":
		return term.IntType, nil
	case "Bool":
		return term.BoolType, nil
	default:
		return 0, fmt.Errorf("cubelang: unknown type %q", name)
	}
}

func parseRat(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("cubelang: invalid rational literal %q", s)
	}
	return r, nil
}

func buildDisjunction(store *term.Store, vars map[string]term.Occurrence, d *Disjunction) (term.Occurrence, error) {
	occs := make([]term.Occurrence, 0, len(d.Atoms))
	for _, a := range d.Atoms {
		occ, err := buildAtom(store, vars, a)
		if err != nil {
			return 0, err
		}
		occs = append(occs, occ)
	}
	if len(occs) == 1 {
		return occs[0], nil
	}
	return store.NewComposite(term.Or, term.BoolType, occs), nil
}

func buildAtom(store *term.Store, vars map[string]term.Occurrence, a *Atom) (term.Occurrence, error) {
	var base term.Occurrence
	var err error
	switch {
	case a.Distinct != nil:
		base, err = buildDistinct(store, vars, a.Distinct)
	case a.Compare != nil:
		base, err = buildCompare(store, vars, a.Compare)
	case a.Var != nil:
		occ, ok := vars[*a.Var]
		if !ok {
			return 0, fmt.Errorf("cubelang: undeclared variable %q", *a.Var)
		}
		base = occ
	default:
		return 0, fmt.Errorf("cubelang: empty atom")
	}
	if err != nil {
		return 0, err
	}
	if a.Neg {
		return store.Complement(base), nil
	}
	return base, nil
}

func buildDistinct(store *term.Store, vars map[string]term.Occurrence, d *DistinctExpr) (term.Occurrence, error) {
	occs := make([]term.Occurrence, 0, len(d.Names))
	for _, name := range d.Names {
		occ, ok := vars[name]
		if !ok {
			return 0, fmt.Errorf("cubelang: undeclared variable %q", name)
		}
		occs = append(occs, occ)
	}
	return store.NewComposite(term.Distinct, term.BoolType, occs), nil
}

// buildCompare turns `left op right` into an arithmetic atom: binary
// equality preserves both sides as-is (spec.md §3's ArithmeticBinEqAtom),
// while ">=" normalizes to the single-argument p >= 0 form by
// subtracting the right-hand side.
func buildCompare(store *term.Store, vars map[string]term.Occurrence, c *CompareExpr) (term.Occurrence, error) {
	left, err := buildArith(store, vars, &c.Left)
	if err != nil {
		return 0, err
	}
	right, err := buildArith(store, vars, &c.Right)
	if err != nil {
		return 0, err
	}
	switch c.Op {
	case "=":
		return store.NewArithBinEq(left, right), nil
	case ">=":
		return store.NewArithGe(subtractArith(store, left, right)), nil
	default:
		return 0, fmt.Errorf("cubelang: unknown comparison operator %q", c.Op)
	}
}

func buildArith(store *term.Store, vars map[string]term.Occurrence, a *Arith) (term.Occurrence, error) {
	mons, err := termMonomials(vars, a.First, false)
	if err != nil {
		return 0, err
	}
	all := append([]term.Monomial(nil), mons...)
	for _, add := range a.Rest {
		m, err := termMonomials(vars, add.Term, add.Op == "-")
		if err != nil {
			return 0, err
		}
		all = append(all, m...)
	}
	return store.NewPolynomial(term.NewPolynomial(all)), nil
}

func termMonomials(vars map[string]term.Occurrence, t *Term, negate bool) ([]term.Monomial, error) {
	sign := big.NewRat(1, 1)
	if negate {
		sign = big.NewRat(-1, 1)
	}
	switch {
	case t.CoeffVar != nil:
		coeff, err := parseRat(t.CoeffVar.Number)
		if err != nil {
			return nil, err
		}
		occ, ok := vars[t.CoeffVar.Var]
		if !ok {
			return nil, fmt.Errorf("cubelang: undeclared variable %q", t.CoeffVar.Var)
		}
		return []term.Monomial{{Coeff: new(big.Rat).Mul(coeff, sign), Var: occ}}, nil
	case t.Const != nil:
		c, err := parseRat(*t.Const)
		if err != nil {
			return nil, err
		}
		return []term.Monomial{{Coeff: new(big.Rat).Mul(c, sign), Var: term.NoVar}}, nil
	case t.Var != nil:
		occ, ok := vars[*t.Var]
		if !ok {
			return nil, fmt.Errorf("cubelang: undeclared variable %q", *t.Var)
		}
		return []term.Monomial{{Coeff: sign, Var: occ}}, nil
	default:
		return nil, fmt.Errorf("cubelang: empty term")
	}
}

// subtractArith builds left - right as a single polynomial, the
// normalization every p >= 0 / p = 0 atom needs (spec.md §3).
func subtractArith(store *term.Store, left, right term.Occurrence) term.Occurrence {
	lm := monomialsOf(store, left)
	rm := monomialsOf(store, right)
	merged := make([]term.Monomial, 0, len(lm)+len(rm))
	merged = append(merged, lm...)
	for _, m := range rm {
		merged = append(merged, term.Monomial{Coeff: new(big.Rat).Neg(m.Coeff), Var: m.Var})
	}
	return store.NewPolynomial(term.NewPolynomial(merged))
}

func monomialsOf(store *term.Store, occ term.Occurrence) []term.Monomial {
	if r, ok := store.RationalOf(occ); ok {
		if r.Sign() == 0 {
			return nil
		}
		return []term.Monomial{{Coeff: new(big.Rat).Set(r), Var: term.NoVar}}
	}
	if mons, ok := store.PolyMonomials(occ); ok {
		return append([]term.Monomial(nil), mons...)
	}
	return []term.Monomial{{Coeff: big.NewRat(1, 1), Var: occ}}
}
