package gale

import (
	"io"
	"io/ioutil"

	"github.com/gale-lang/gale/internal/flushio"
	"github.com/gale-lang/gale/internal/panicerr"
	"github.com/gale-lang/gale/internal/runeio"
	"github.com/sirupsen/logrus"
)

// Runtime bundles the stack, dictionary and supporting pools a single
// interpreter session needs, and is the entry point every primitive and
// the evaluator dispatch through.
type Runtime struct {
	stack     *Stack
	dict      *Dictionary
	symbols   *SymbolPool
	sigs      *WordSignaturePool
	wellKnown *WellKnown
	priv      *PrivateSpace

	out    flushio.WriteFlusher
	logger *logrus.Logger

	memLimit          int
	maxCatchallReport int

	beforeWord WordHandle

	// stash/hasStash back a Simple word reference's comma stash/hoist: the
	// object a leading-comma token stashed before its lookup, waiting for a
	// trailing-comma token (the same one or a later one) to hoist it back.
	stash    Object
	hasStash bool
}

// RuntimeOption configures a Runtime at construction, mirroring the
// functional-options shape used throughout the nucleus's ambient stack.
type RuntimeOption interface{ apply(rt *Runtime) }

type runtimeOptionFunc func(rt *Runtime)

func (f runtimeOptionFunc) apply(rt *Runtime) { f(rt) }

// WithChunkSize overrides the Stack's chunk size from DefaultChunkSize.
func WithChunkSize(size int) RuntimeOption {
	return runtimeOptionFunc(func(rt *Runtime) { rt.stack = NewStack(size) })
}

// WithOutput directs ordinary Runtime output (the effect of primitives
// like a hypothetical print word, and log lines) at w instead of
// io.Discard.
func WithOutput(w io.Writer) RuntimeOption {
	return runtimeOptionFunc(func(rt *Runtime) {
		rt.out = flushio.NewWriteFlusher(w)
		rt.logger.SetOutput(rt.out)
	})
}

// WithLogLevel sets the logger's minimum reported level.
func WithLogLevel(level logrus.Level) RuntimeOption {
	return runtimeOptionFunc(func(rt *Runtime) { rt.logger.SetLevel(level) })
}

// WithLogger replaces the Runtime's default logrus.Logger outright, for an
// embedding host that wants its own formatter or hooks instead of Gale's
// easy.Formatter default.
func WithLogger(logger *logrus.Logger) RuntimeOption {
	return runtimeOptionFunc(func(rt *Runtime) { rt.logger = logger })
}

// WithMemLimit bounds the number of distinct symbols a Runtime will intern,
// guarding against a runaway or fuzzed program exhausting memory one new
// word name at a time. Zero (the default) means unlimited, matching the
// teacher's own memLimit == 0 "unbounded" convention.
func WithMemLimit(limit int) RuntimeOption {
	return runtimeOptionFunc(func(rt *Runtime) { rt.memLimit = limit })
}

// WithMaxCatchallReport overrides how many per-side ShapeIncompatibility
// entries a signature compatibility check accumulates before giving up on
// an exhaustive report, from the package default MaxCatchallReport.
func WithMaxCatchallReport(n int) RuntimeOption {
	return runtimeOptionFunc(func(rt *Runtime) { rt.maxCatchallReport = n })
}

// NewRuntime constructs a Runtime with an empty stack, dictionary and
// pools, the Well-Known primitive shapes registered, and every built-in
// primitive defined. Options apply after these defaults, so callers can
// not, for example, accidentally lose WithOutput to default discard.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		stack:     NewStack(DefaultChunkSize),
		dict:      NewDictionary(),
		symbols:   NewSymbolPool(),
		sigs:      NewWordSignaturePool(),
		wellKnown: NewWellKnown(),
		priv:      NewPrivateSpace(),
		out:       flushio.NewWriteFlusher(ioutil.Discard),
		logger:    newLogger(ioutil.Discard),
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(rt)
		}
	}
	RegisterPrimitives(rt)
	return rt
}

func (rt *Runtime) Stack() *Stack                 { return rt.stack }
func (rt *Runtime) Dictionary() *Dictionary        { return rt.dict }
func (rt *Runtime) Symbols() *SymbolPool           { return rt.symbols }
func (rt *Runtime) Signatures() *WordSignaturePool { return rt.sigs }
func (rt *Runtime) WellKnown() *WellKnown          { return rt.wellKnown }
func (rt *Runtime) PrivateSpace() *PrivateSpace    { return rt.priv }
func (rt *Runtime) Logger() *logrus.Logger         { return rt.logger }

// MaxCatchallReport reports the per-side incompatibility-report cap this
// Runtime was configured with, falling back to the package default
// MaxCatchallReport when WithMaxCatchallReport was never applied.
func (rt *Runtime) MaxCatchallReport() int {
	if rt.maxCatchallReport > 0 {
		return rt.maxCatchallReport
	}
	return MaxCatchallReport
}

// warnOnIncompatibleRedefinition logs (at debug level) when name already has
// an overload whose signature CompatibleWithLimit rejects against sig
// (different tag, shape count, shapes, or catch-all resolution), the kind
// of mismatch a fat-fingered redefinition produces. It never blocks the
// define: shadowing is always allowed, this is diagnostic only, with the
// per-side shape report capped by MaxCatchallReport.
func (rt *Runtime) warnOnIncompatibleRedefinition(name string, sig *WordSignature) {
	n, ok := rt.symbols.Lookup(name)
	if !ok {
		return
	}
	wl, ok := rt.dict.Lookup(n)
	if !ok {
		return
	}
	for _, existing := range wl.Entries() {
		w := existing.Value()
		if w == nil || w.signature == nil {
			continue
		}
		if _, err := sig.CompatibleWithLimit(w.signature.Signature, rt.MaxCatchallReport()); err != nil {
			rt.logger.WithField("word", name).Debugf("redefinition signature mismatch: %v", err)
		}
	}
}

// internSymbol interns s through the SymbolPool, refusing to grow past a
// configured WithMemLimit once that many distinct symbols already exist.
func (rt *Runtime) internSymbol(s string) (SymbolHandle, error) {
	if rt.memLimit > 0 {
		if _, ok := rt.symbols.Lookup(s); !ok && rt.symbols.Len() >= rt.memLimit {
			return nil, MemLimitError{Limit: rt.memLimit}
		}
	}
	return rt.symbols.GetOrPut(s), nil
}

// Flush flushes the Runtime's output sink.
func (rt *Runtime) Flush() error { return rt.out.Flush() }

// writeString writes s to the Runtime's output sink rune-by-rune through
// runeio's ANSI-safe encoder, so control characters embedded in string
// objects reach a terminal the same way across platforms instead of
// however io.WriteString's raw bytes happen to land.
func (rt *Runtime) writeString(s string) {
	for _, r := range s {
		runeio.WriteANSIRune(rt.out, r)
	}
}

// dispatchObject runs obj if it is a Word, or pushes a reffed copy of it
// otherwise. It is the step Compound word bodies and the @CONDJMP
// primitives reduce to; the evaluator's token loop pushes literals and
// runs named words through dispatchName instead.
func (rt *Runtime) dispatchObject(obj Object) error {
	if obj.Kind() != KindWord {
		cp := obj
		if err := cp.Ref(); err != nil {
			return err
		}
		_, err := rt.stack.Push(cp)
		return err
	}
	w := obj.Word().Value()
	if w == nil {
		return EmptyWordImplError{}
	}
	return w.Run(rt)
}

// dispatchName looks the interned name up in the dictionary, resolves the
// overload against the live stack's top shapes, and runs the winner.
func (rt *Runtime) dispatchName(name SymbolHandle) error {
	wl, ok := rt.dict.Lookup(name)
	if !ok {
		return UnimplementedError{What: "no word named " + *name.Value()}
	}
	live := rt.liveTopShapes(rt.maxExpects(wl))
	handle, err := wl.Resolve(live)
	if err != nil {
		return err
	}
	w := handle.Value()
	if w == nil {
		return EmptyWordImplError{}
	}
	return w.Run(rt)
}

// maxExpects reports the longest Expects list across wl's candidates, so
// liveTopShapes knows how deep to look without over- or under-shooting any
// one candidate's arity.
func (rt *Runtime) maxExpects(wl *WordList) int {
	max := 0
	for _, candidate := range wl.Entries() {
		w := candidate.Value()
		if w == nil || w.signature == nil {
			continue
		}
		if n := len(w.signature.Signature.Expects()); n > max {
			max = n
		}
	}
	return max
}

// liveTopShapes builds the unbounded-Kind shape descriptors for the top n
// stack objects (oldest of the n first), for comparison against a
// candidate's Expects list. Running past the bottom of the stack simply
// stops early; Resolve only uses as many entries as a candidate needs.
func (rt *Runtime) liveTopShapes(n int) []*Shape {
	shapes := make([]*Shape, 0, n)
	for i := n - 1; i >= 0; i-- {
		obj, err := rt.stack.peekAt(i)
		if err != nil {
			continue
		}
		shapes = append(shapes, rt.wellKnown.Shape(obj.Kind()))
	}
	return shapes
}

// Recover runs f isolated the way the ambient stack isolates every
// top-level entry point: panics and goroutine exits become ordinary
// errors instead of crashing the process.
func Recover(name string, f func() error) error {
	return panicerr.Recover(name, f)
}
