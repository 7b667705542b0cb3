// Package mbtest provides small in-memory fixture builders - a
// TermStore and Model over a handful of uninterpreted constants,
// arithmetic variables, and polynomials - for tests; currently only
// this package's own tests use them. Written in the spirit of the teacher's
// internal/semantic test helpers that build a Program once and reuse
// it across assertions instead of repeating construction boilerplate
// in every test.
package mbtest

import (
	"math/big"

	"mbp/internal/model"
	"mbp/internal/term"
)

// Fixture bundles a fresh TermStore and RefModel.
type Fixture struct {
	Store *term.Store
	Model *model.RefModel
}

// New builds an empty fixture.
func New() *Fixture {
	s := term.NewStore()
	return &Fixture{Store: s, Model: model.NewRefModel(s)}
}

// Real declares a Real-typed uninterpreted constant and assigns it
// value in the fixture's model.
func (f *Fixture) Real(name string, value *big.Rat) term.Occurrence {
	occ := f.Store.NewUninterpretedConstant(name, term.RealType)
	f.Model.AssignRational(occ, value)
	return occ
}

// Int declares an Int-typed uninterpreted constant and assigns it
// value in the fixture's model.
func (f *Fixture) Int(name string, value *big.Rat) term.Occurrence {
	occ := f.Store.NewUninterpretedConstant(name, term.IntType)
	f.Model.AssignRational(occ, value)
	return occ
}

// Bool declares a Bool-typed uninterpreted constant and assigns it
// value in the fixture's model.
func (f *Fixture) Bool(name string, value bool) term.Occurrence {
	occ := f.Store.NewUninterpretedConstant(name, term.BoolType)
	f.Model.AssignBool(occ, value)
	return occ
}

// Poly builds the canonical polynomial occurrence for terms, skipping
// the NewPolynomial/store.NewPolynomial two-step tests would otherwise
// repeat.
func (f *Fixture) Poly(terms ...term.Monomial) term.Occurrence {
	return f.Store.NewPolynomial(term.NewPolynomial(terms))
}

// Rat is a shorthand for big.NewRat, letting test tables write Rat(1,2)
// instead of big.NewRat(1, 2) everywhere.
func Rat(n, d int64) *big.Rat { return big.NewRat(n, d) }
