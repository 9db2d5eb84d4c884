package gale

import multierror "github.com/hashicorp/go-multierror"

// MaxCatchallReport bounds how many per-side ShapeIncompatibility entries a
// single compatibility check accumulates before giving up on an exhaustive
// report; past this the caller already has enough to act on.
const MaxCatchallReport = 5

// SignatureTag discriminates the seven shapes a WordSignature can take.
type SignatureTag int

const (
	// SigSideEffectary touches neither side of the stack and always
	// returns normally (logging, I/O side effects, no-ops).
	SigSideEffectary SignatureTag = iota
	// SigNullary requires nothing and leaves Gives on the stack.
	SigNullary
	// SigNullaryTerminal requires nothing and never returns control to its
	// caller (process exit, infinite dispatch loop).
	SigNullaryTerminal
	// SigPurelyConsuming requires Expects and leaves nothing behind.
	SigPurelyConsuming
	// SigConsumingTerminal requires Expects and never returns.
	SigConsumingTerminal
	// SigPurelyAdditive requires Expects and leaves Expects followed by
	// Gives: a pure net-growth operation.
	SigPurelyAdditive
	// SigMutative requires Before and leaves After in its place: same or
	// different shapes, same position.
	SigMutative
)

func (t SignatureTag) String() string {
	switch t {
	case SigSideEffectary:
		return "SideEffectary"
	case SigNullary:
		return "Nullary"
	case SigNullaryTerminal:
		return "NullaryTerminal"
	case SigPurelyConsuming:
		return "PurelyConsuming"
	case SigConsumingTerminal:
		return "ConsumingTerminal"
	case SigPurelyAdditive:
		return "PurelyAdditive"
	case SigMutative:
		return "Mutative"
	default:
		return "WordSignature(?)"
	}
}

// WordSignature describes a word's stack effect. Which of expects/gives are
// meaningful, and whether the word is expected to return control at all, is
// determined entirely by tag; constructors enforce the pairing so an
// invalid combination (e.g. a SideEffectary signature carrying gives) is not
// reachable through normal construction.
type WordSignature struct {
	tag     SignatureTag
	expects []*Shape
	gives   []*Shape
}

func NewSideEffectary() *WordSignature { return &WordSignature{tag: SigSideEffectary} }

func NewNullary(gives []*Shape) *WordSignature {
	return &WordSignature{tag: SigNullary, gives: gives}
}

func NewNullaryTerminal() *WordSignature { return &WordSignature{tag: SigNullaryTerminal} }

func NewPurelyConsuming(expects []*Shape) *WordSignature {
	return &WordSignature{tag: SigPurelyConsuming, expects: expects}
}

func NewConsumingTerminal(expects []*Shape) *WordSignature {
	return &WordSignature{tag: SigConsumingTerminal, expects: expects}
}

func NewPurelyAdditive(expects, gives []*Shape) *WordSignature {
	return &WordSignature{tag: SigPurelyAdditive, expects: expects, gives: gives}
}

func NewMutative(before, after []*Shape) *WordSignature {
	return &WordSignature{tag: SigMutative, expects: before, gives: after}
}

func (sig *WordSignature) Tag() SignatureTag { return sig.tag }
func (sig *WordSignature) Expects() []*Shape { return sig.expects }
func (sig *WordSignature) Gives() []*Shape   { return sig.gives }

// Terminal reports whether dispatching this word never returns control to
// the evaluator's normal dispatch loop.
func (sig *WordSignature) Terminal() bool {
	return sig.tag == SigNullaryTerminal || sig.tag == SigConsumingTerminal
}

// detectIncompatibilities compares two same-side shape lists positionally.
// It resolves catch-alls as it goes: the first shape bound to a given
// catch-all id on the "other" list fixes what every later occurrence of
// that id must agree with, reported via
// CatchAllMultipleResolutionCandidatesError on conflict. Non-catchall
// mismatches accumulate (capped at MaxCatchallReport) rather than
// early-returning, so a caller gets a useful batch of diagnostics.
func detectIncompatibilities(side Side, self, other []*Shape, resolved map[uint8]*Shape, maxReport int) ([]ShapeIncompatibility, error) {
	if len(self) != len(other) {
		return nil, DisparateShapeCountError{Side: side, Want: len(self), Got: len(other)}
	}

	var incompats []ShapeIncompatibility
	var errs *multierror.Error

	for i := range self {
		want, got := self[i], other[i]

		if want.Tag() == ShapeCatchAll {
			id := want.CatchAllID()
			if bound, ok := resolved[id]; ok {
				if eq, _ := shapesIdentical(bound, got); !eq {
					errs = multierror.Append(errs, CatchAllMultipleResolutionCandidatesError{CatchAllID: id})
				}
				continue
			}
			resolved[id] = got
			continue
		}

		verdict, err := want.CompatibleWith(got)
		if err != nil {
			if len(incompats) < maxReport {
				incompats = append(incompats, ShapeIncompatibility{Index: i, Reason: err.Error()})
			}
			continue
		}
		if verdict == ShapeIndeterminate {
			// Indeterminate means "compatible pending a runtime bounds
			// check or catch-all fixup"; the evaluator re-checks at
			// dispatch time via Shape.InBounds, so it is not itself an
			// incompatibility here.
			continue
		}
	}

	if errs != nil {
		return incompats, errs.ErrorOrNil()
	}
	return incompats, nil
}

// shapesIdentical is pointer identity with nil-safety: resolved catch-all
// bindings are compared by which concrete Shape they point at, not by deep
// structural equality.
func shapesIdentical(a, b *Shape) (bool, error) {
	return a == b, nil
}

// CompatibleWith answers "can other satisfy self as a dispatch candidate?",
// reporting up to the package default MaxCatchallReport incompatibilities
// per side. See CompatibleWithLimit to override that cap.
func (self *WordSignature) CompatibleWith(other *WordSignature) (bool, error) {
	return self.CompatibleWithLimit(other, MaxCatchallReport)
}

// CompatibleWithLimit is CompatibleWith with an explicit per-side
// incompatibility-report cap, comparing both sides (Expects against
// Expects, Gives against Gives) and cross-checking that any catch-all id
// resolves to a single shape across both sides of the comparison.
func (self *WordSignature) CompatibleWithLimit(other *WordSignature, maxReport int) (bool, error) {
	if self.tag != other.tag {
		return false, IncomparableError{Reason: "signature tags differ: " + self.tag.String() + " vs " + other.tag.String()}
	}

	resolved := make(map[uint8]*Shape)
	var errs *multierror.Error

	leftIncompats, err := detectIncompatibilities(SideLeft, self.expects, other.expects, resolved, maxReport)
	if err != nil {
		errs = multierror.Append(errs, err)
	}
	rightIncompats, err := detectIncompatibilities(SideRight, self.gives, other.gives, resolved, maxReport)
	if err != nil {
		errs = multierror.Append(errs, err)
	}

	if len(leftIncompats) > 0 || len(rightIncompats) > 0 {
		errs = multierror.Append(errs, UnderlyingShapesIncompatibleError{Left: leftIncompats, Right: rightIncompats})
	}

	if err := errs.ErrorOrNil(); err != nil {
		return false, err
	}
	return true, nil
}
