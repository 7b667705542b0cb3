// Package mbperr defines the error taxonomy the projector reports
// across its three phases.
//
// Error code ranges:
// P0001-P0099: literal classification / arithmetic-shape errors
// P0100-P0199: arithmetic projection errors
// P0200-P0299: value-closure errors
package mbperr

const (
	// P0001: an arithmetic literal mentions a non-linear subterm
	CodeNonLinear = "P0001"

	// P0100: the ArithProjector rejected a constraint offered to it
	CodeBadArithLiteral = "P0100"

	// P0200: the Model could not evaluate a surviving EVar
	CodeErrorInEval = "P0200"

	// P0201: a Model value has no term representation in the TermStore
	CodeErrorInConvert = "P0201"

	// P0202: term substitution failed while applying the value closure
	CodeErrorInSubst = "P0202"
)
