package gale

// Tags is a 256-bit set of arbitrary word tags (categories a word can be
// filed under for introspection/help; the nucleus itself never assigns
// meaning to any particular bit).
type Tags [4]uint64

func (t *Tags) Set(bit uint8)      { t[bit/64] |= 1 << (bit % 64) }
func (t *Tags) Clear(bit uint8)    { t[bit/64] &^= 1 << (bit % 64) }
func (t *Tags) Has(bit uint8) bool { return t[bit/64]&(1<<(bit%64)) != 0 }

// WordFlags carries boolean word metadata outside of Tags.
type WordFlags struct {
	Hidden bool
}

// WordImplTag discriminates a Word's three implementation strategies.
type WordImplTag int

const (
	// WordPrimitive wraps a Go function implementing a built-in.
	WordPrimitive WordImplTag = iota
	// WordCompound is a list of Objects run in sequence (a definition
	// built from other words and literals).
	WordCompound
	// WordHeapLit wraps a single heap Object so it can be pushed by
	// dispatching the word that carries it: the "HeapLit" trick that lets
	// a literal value be looked up and run like any other word.
	WordHeapLit
)

// PrimitiveFunc is the signature every built-in word implements: given the
// running Runtime, perform the word's effect, touching the stack/private
// space/dictionary as needed.
type PrimitiveFunc func(rt *Runtime) error

// Word is a single dictionary entry: a name-independent bundle of an
// optional signature, implementation, flags and tags. Multiple Dictionary
// entries (different names, or the same name at different arities) may
// share a *Refcell[Word] when they are meant to be the exact same
// definition.
type Word struct {
	flags     WordFlags
	tags      Tags
	signature *DeclaredOrInferred

	implTag  WordImplTag
	prim     PrimitiveFunc
	compound []Object
	heapLit  Object
}

// SignatureOrigin distinguishes a signature the definer wrote out from one
// the nucleus inferred by walking a Compound word's body.
type SignatureOrigin int

const (
	SignatureDeclared SignatureOrigin = iota
	SignatureInferred
)

// DeclaredOrInferred pairs a WordSignature with how it was obtained.
// Inferred signatures are advisory: dispatch still re-verifies them against
// the live stack the way a Declared one would.
type DeclaredOrInferred struct {
	Origin    SignatureOrigin
	Signature *WordSignature
}

// NewPrimitiveWord constructs a Word wrapping a built-in Go function.
func NewPrimitiveWord(sig *DeclaredOrInferred, fn PrimitiveFunc) *Word {
	return &Word{signature: sig, implTag: WordPrimitive, prim: fn}
}

// NewCompoundWord constructs a Word whose body is a sequence of Objects
// (words and literals) run in order. body is taken by reference; the
// caller transfers ownership of every Object's ref count to the new Word.
func NewCompoundWord(sig *DeclaredOrInferred, body []Object) *Word {
	return &Word{signature: sig, implTag: WordCompound, compound: body}
}

// NewHeapLitWord constructs a Word that, when dispatched, pushes a copy of
// lit onto the stack. lit's ref is owned by the Word from construction.
func NewHeapLitWord(lit Object) *Word {
	return &Word{implTag: WordHeapLit, heapLit: lit}
}

func (w *Word) Flags() WordFlags                { return w.flags }
func (w *Word) SetHidden(hidden bool)           { w.flags.Hidden = hidden }
func (w *Word) Tags() *Tags                     { return &w.tags }
func (w *Word) Signature() *DeclaredOrInferred  { return w.signature }
func (w *Word) ImplTag() WordImplTag            { return w.implTag }
func (w *Word) Compound() []Object              { return w.compound }

// Run dispatches w against rt according to its implementation tag.
func (w *Word) Run(rt *Runtime) error {
	switch w.implTag {
	case WordPrimitive:
		if w.prim == nil {
			return EmptyWordImplError{}
		}
		return w.prim(rt)
	case WordCompound:
		for _, obj := range w.compound {
			if err := rt.dispatchObject(obj); err != nil {
				return err
			}
		}
		return nil
	case WordHeapLit:
		cp := w.heapLit
		if err := cp.Ref(); err != nil {
			return err
		}
		_, err := rt.stack.Push(cp)
		return err
	default:
		return UnimplementedError{What: "unknown word implementation tag"}
	}
}

// Deinit tears down a Word's owned contents. Compound bodies may legally
// contain more than one Object referencing the same underlying handle
// (e.g. a literal pushed twice); deinit walks the whole slice once rather
// than trying to deduplicate, since each Object in the slice owns its own
// independent ref regardless of how many share a handle.
func (w *Word) Deinit() {
	switch w.implTag {
	case WordCompound:
		for _, obj := range w.compound {
			obj.Deinit()
		}
	case WordHeapLit:
		w.heapLit.Deinit()
	}
}
