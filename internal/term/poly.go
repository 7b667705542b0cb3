package term

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// NoVar marks the constant monomial in a Polynomial's monomial list.
// It never collides with a real occurrence because occurrenceOf only
// ever produces non-negative values.
const NoVar Occurrence = -1

// Monomial is a single rational-weighted term in a polynomial: Coeff
// times Var, or just Coeff when Var is NoVar.
type Monomial struct {
	Coeff *big.Rat
	Var   Occurrence
}

// Polynomial is a canonical sum of monomials: at most one monomial per
// variable, zero-coefficient monomials dropped, the constant monomial
// (if non-zero) always first, the rest ordered by ascending Var index.
// Canonical form is what makes hash-consing and "skip the leading
// constant monomial" in spec §4.1 well defined.
type Polynomial struct {
	Monomials []Monomial
}

// NewPolynomial builds the canonical form of an arbitrary (unsorted,
// possibly duplicate-variable) monomial list.
func NewPolynomial(terms []Monomial) *Polynomial {
	byVar := make(map[Occurrence]*big.Rat, len(terms))
	order := make([]Occurrence, 0, len(terms))
	for _, m := range terms {
		if m.Coeff.Sign() == 0 {
			continue
		}
		acc, seen := byVar[m.Var]
		if !seen {
			acc = new(big.Rat)
			byVar[m.Var] = acc
			order = append(order, m.Var)
		}
		acc.Add(acc, m.Coeff)
	}

	sort.Slice(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a == NoVar {
			return true
		}
		if b == NoVar {
			return false
		}
		return a < b
	})

	out := make([]Monomial, 0, len(order))
	for _, v := range order {
		c := byVar[v]
		if c.Sign() == 0 {
			continue
		}
		out = append(out, Monomial{Coeff: new(big.Rat).Set(c), Var: v})
	}
	return &Polynomial{Monomials: out}
}

// key returns a canonical string usable as a hash-consing map key.
func (p *Polynomial) key() string {
	var b strings.Builder
	b.WriteString("poly:")
	for i, m := range p.Monomials {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(m.Coeff.RatString())
		b.WriteByte('*')
		if m.Var == NoVar {
			b.WriteString("1")
		} else {
			b.WriteString(m.Var.key())
		}
	}
	return b.String()
}

// Variables returns the non-constant variables mentioned, in the
// polynomial's stable insertion (ascending index) order.
func (p *Polynomial) Variables() []Occurrence {
	vars := make([]Occurrence, 0, len(p.Monomials))
	for _, m := range p.Monomials {
		if m.Var != NoVar {
			vars = append(vars, m.Var)
		}
	}
	return vars
}

// ConstantTerm returns the leading constant monomial's coefficient, or
// zero if the polynomial has none.
func (p *Polynomial) ConstantTerm() *big.Rat {
	if len(p.Monomials) > 0 && p.Monomials[0].Var == NoVar {
		return p.Monomials[0].Coeff
	}
	return new(big.Rat)
}

func (o Occurrence) key() string {
	return strconv.FormatInt(int64(o), 10)
}
