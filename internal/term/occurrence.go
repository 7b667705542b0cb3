package term

// Occurrence is a signed machine-word term occurrence. The low bit is
// the polarity flag (0 = positive, 1 = negated); the remaining high
// bits index a node in a TermStore's arena. Two occurrences t+ and t-
// always name the same underlying node; Negate is a single bit flip.
//
// Non-Boolean terms are only ever constructed with positive polarity —
// callers never see e.g. a negated polynomial.
type Occurrence int64

const polarityBit = Occurrence(1)

// Negated reports whether the occurrence carries the negation bit.
func (o Occurrence) Negated() bool { return o&polarityBit != 0 }

// Negate flips the polarity bit, leaving the underlying node unchanged.
func (o Occurrence) Negate() Occurrence { return o ^ polarityBit }

// Positive strips the polarity bit, returning the positive-polarity
// occurrence of the same node.
func (o Occurrence) Positive() Occurrence { return o &^ polarityBit }

// index returns the arena slot this occurrence names.
func (o Occurrence) index() int32 { return int32(o >> 1) }

func occurrenceOf(idx int32, negated bool) Occurrence {
	o := Occurrence(idx) << 1
	if negated {
		o |= polarityBit
	}
	return o
}

// Reserved occurrences for the Boolean constants. Index 0 is reserved
// for "true"; "false" is its negation, matching the convention that
// complement is a bit flip rather than a distinct node.
const (
	True  Occurrence = 0
	False Occurrence = True | polarityBit
)
