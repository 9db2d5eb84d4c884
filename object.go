package gale

import "fmt"

// Kind tags the eight variants an Object can hold.
type Kind int

const (
	KindBoolean Kind = iota
	KindSignedInt
	KindUnsignedInt
	KindFloat
	KindString
	KindSymbol
	KindOpaque
	KindWord
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindSignedInt:
		return "SInt"
	case KindUnsignedInt:
		return "UInt"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindSymbol:
		return "Symbol"
	case KindOpaque:
		return "Opaque"
	case KindWord:
		return "Word"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StringHandle, SymbolHandle, OpaqueHandle and WordHandle name the
// Refcell-backed heap payloads an Object may carry. Symbols and strings
// share a representation (owned bytes) but are never interchangeable: a
// Symbol's handle identity is what the SymbolPool interns on, while a
// String's handle is a private, unshared allocation.
type StringHandle = *Refcell[string]
type SymbolHandle = *Refcell[string]
type OpaqueHandle = *Refcell[[]byte]
type WordHandle = *Refcell[Word]

// Object is a tagged stack value. Primitive variants (Boolean, SInt, UInt,
// Float) are value-copied with no ownership; the remaining variants are
// handles into a Refcell and conceptually ref/deinit along with the
// Object's own lifetime on the stack.
type Object struct {
	kind Kind

	boolean bool
	sint    int64
	uint    uint64
	float   float64

	str    StringHandle
	sym    SymbolHandle
	opaque OpaqueHandle
	word   WordHandle
}

func NewBoolean(b bool) Object        { return Object{kind: KindBoolean, boolean: b} }
func NewSignedInt(v int64) Object     { return Object{kind: KindSignedInt, sint: v} }
func NewUnsignedInt(v uint64) Object  { return Object{kind: KindUnsignedInt, uint: v} }
func NewFloat(v float64) Object       { return Object{kind: KindFloat, float: v} }
func NewStringObject(h StringHandle) Object { return Object{kind: KindString, str: h} }
func NewSymbolObject(h SymbolHandle) Object { return Object{kind: KindSymbol, sym: h} }
func NewOpaqueObject(h OpaqueHandle) Object  { return Object{kind: KindOpaque, opaque: h} }
func NewWordObject(h WordHandle) Object      { return Object{kind: KindWord, word: h} }

func (o Object) Kind() Kind { return o.kind }

func (o Object) Boolean() bool       { return o.boolean }
func (o Object) SignedInt() int64    { return o.sint }
func (o Object) UnsignedInt() uint64 { return o.uint }
func (o Object) Float() float64      { return o.float }
func (o Object) String_() StringHandle { return o.str }
func (o Object) Symbol() SymbolHandle  { return o.sym }
func (o Object) Opaque() OpaqueHandle  { return o.opaque }
func (o Object) Word() WordHandle      { return o.word }

func (o Object) isHeap() bool {
	switch o.kind {
	case KindString, KindSymbol, KindOpaque, KindWord:
		return true
	default:
		return false
	}
}

// Ref is a no-op for primitive variants, and an Incref of the backing
// Refcell for heap variants.
func (o Object) Ref() error {
	switch o.kind {
	case KindString:
		return o.str.Incref()
	case KindSymbol:
		return o.sym.Incref()
	case KindOpaque:
		return o.opaque.Incref()
	case KindWord:
		return o.word.Incref()
	default:
		return nil
	}
}

// Deinit tears down a heap variant via DecrefAndPrune with the teardown
// appropriate to its kind; it is a no-op for primitives. Opaque teardown is
// whatever destructor the handle was constructed with (implementation
// defined, per spec).
func (o Object) Deinit() {
	switch o.kind {
	case KindString:
		o.str.DecrefAndPrune()
	case KindSymbol:
		o.sym.DecrefAndPrune()
	case KindOpaque:
		o.opaque.DecrefAndPrune()
	case KindWord:
		o.word.DecrefAndPrune()
	}
}

// AssertIsKind fails with TypeError when o's kind does not match k.
func (o Object) AssertIsKind(k Kind) error {
	if o.kind != k {
		return TypeError{Want: k, Got: o.kind}
	}
	return nil
}

// AssertSameKindAs fails with TypeError when o and other carry different
// kinds.
func (o Object) AssertSameKindAs(other Object) error {
	if o.kind != other.kind {
		return TypeError{Want: o.kind, Got: other.kind}
	}
	return nil
}

// Eq compares o and other: value equality for primitives, pointer identity
// for heap handles. Comparing across kinds is a TypeError. Float equality
// is bitwise-via-== (NaN never equals itself, which is acceptable per
// spec).
func (o Object) Eq(other Object) (bool, error) {
	if err := o.AssertSameKindAs(other); err != nil {
		return false, err
	}
	switch o.kind {
	case KindBoolean:
		return o.boolean == other.boolean, nil
	case KindSignedInt:
		return o.sint == other.sint, nil
	case KindUnsignedInt:
		return o.uint == other.uint, nil
	case KindFloat:
		return o.float == other.float, nil
	case KindString:
		return o.str == other.str, nil
	case KindSymbol:
		return o.sym == other.sym, nil
	case KindOpaque:
		return o.opaque == other.opaque, nil
	case KindWord:
		return o.word == other.word, nil
	default:
		return false, TypeError{Want: o.kind, Got: other.kind}
	}
}
