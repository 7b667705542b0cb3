package mbperr

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// Kind is the sum-type tag of a ProjectorFlag. The zero value is NoError.
type Kind int

const (
	NoError Kind = iota
	ErrorInEval
	ErrorInConvert
	NonLinear
	BadArithLiteral
	ErrorInSubst
)

func (k Kind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case ErrorInEval:
		return "ErrorInEval"
	case ErrorInConvert:
		return "ErrorInConvert"
	case NonLinear:
		return "NonLinear"
	case BadArithLiteral:
		return "BadArithLiteral"
	case ErrorInSubst:
		return "ErrorInSubst"
	default:
		return "Unknown"
	}
}

// Flag is the projector's sticky status. Once Kind is non-NoError it
// must never be overwritten — see Flag.Set.
type Flag struct {
	Kind Kind
	Code string
	// Detail carries the payload associated with the kind: the term
	// kind name for NonLinear, the underlying collaborator error for
	// the others. Nil for NoError.
	Detail error
	// RunID correlates a single project_literals/run invocation across
	// log lines; generated lazily on first error.
	RunID ksuid.KSUID
}

// OK reports whether the flag is still NoError.
func (f Flag) OK() bool { return f.Kind == NoError }

func (f Flag) Error() string {
	if f.OK() {
		return "NoError"
	}
	if f.Detail != nil {
		return fmt.Sprintf("%s[%s] (run %s): %s", f.Kind, f.Code, f.RunID, f.Detail)
	}
	return fmt.Sprintf("%s[%s] (run %s)", f.Kind, f.Code, f.RunID)
}

// Set freezes the flag to the given kind/code/detail if it is still
// NoError. First-error-wins: later calls are no-ops. Returns the flag
// that is in effect after the call, so callers can write
// `flag = flag.Set(...)` and check flag.OK() in one line.
func (f Flag) Set(kind Kind, code string, detail error) Flag {
	if !f.OK() {
		return f
	}
	id := f.RunID
	if id.IsNil() {
		id = ksuid.New()
	}
	return Flag{Kind: kind, Code: code, Detail: detail, RunID: id}
}

// NonLinearf builds a NonLinear flag naming the offending term kind.
func (f Flag) NonLinearf(termKind fmt.Stringer) Flag {
	return f.Set(NonLinear, CodeNonLinear, errors.Errorf("non-linear subterm of kind %s", termKind))
}

// BadArithLiteralf builds a BadArithLiteral flag wrapping the
// ArithProjector's rejection.
func (f Flag) BadArithLiteralf(cause error) Flag {
	return f.Set(BadArithLiteral, CodeBadArithLiteral, errors.Wrap(cause, "arith projector rejected constraint"))
}

// ErrorInEvalf builds an ErrorInEval flag wrapping a Model.Evaluate failure.
func (f Flag) ErrorInEvalf(cause error) Flag {
	return f.Set(ErrorInEval, CodeErrorInEval, errors.Wrap(cause, "model evaluation failed"))
}

// ErrorInConvertf builds an ErrorInConvert flag for a value with no term form.
func (f Flag) ErrorInConvertf(cause error) Flag {
	return f.Set(ErrorInConvert, CodeErrorInConvert, errors.Wrap(cause, "value has no term representation"))
}

// ErrorInSubstf builds an ErrorInSubst flag wrapping a TermSubstitutor failure.
func (f Flag) ErrorInSubstf(cause error) Flag {
	return f.Set(ErrorInSubst, CodeErrorInSubst, errors.Wrap(cause, "term substitution failed"))
}
