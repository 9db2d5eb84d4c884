package gale

// WellKnown bundles the fixed set of unbounded primitive Shapes (one per
// Kind) and their trivial single-value Nullary signatures, so the rest of
// the nucleus never has to construct "the shape of a Boolean" more than
// once.
type WellKnown struct {
	Shapes     [8]*Shape
	NullarySingle [8]*WordSignature
}

// NewWellKnown constructs the fixed table. It is pure and allocates no
// handles into any pool: these shapes are anonymous until a Runtime names
// them. NewRuntime builds a fresh table for each Runtime.
func NewWellKnown() *WellKnown {
	wk := &WellKnown{}
	for k := KindBoolean; k <= KindWord; k++ {
		shape := NewUnboundedShape(k)
		wk.Shapes[k] = shape
		wk.NullarySingle[k] = NewNullary([]*Shape{shape})
	}
	return wk
}

func (wk *WellKnown) Shape(k Kind) *Shape { return wk.Shapes[k] }

func (wk *WellKnown) Nullary(k Kind) *WordSignature { return wk.NullarySingle[k] }
