package gale

// ShapeTag discriminates Shape's three kinds of contents.
type ShapeTag int

const (
	ShapeEmpty ShapeTag = iota
	ShapePrimitive
	ShapeCatchAll
)

func (t ShapeTag) String() string {
	switch t {
	case ShapeEmpty:
		return "Empty"
	case ShapePrimitive:
		return "Primitive"
	case ShapeCatchAll:
		return "CatchAll"
	default:
		return "Shape(?)"
	}
}

// ShapeVerdict is the non-error half of a shape compatibility check: a
// compatible pair may still need CatchAll resolution or a runtime bounds
// check, which Indeterminate signals to the signature layer.
type ShapeVerdict int

const (
	ShapeCompatible ShapeVerdict = iota
	ShapeIndeterminate
)

// Shape is the nucleus's type descriptor.
type Shape struct {
	name        SymbolHandle
	memberWords []WordHandle

	tag        ShapeTag
	bounded    bool
	primKind   Kind
	catchAllID uint8
	inBounds   func(Object) bool

	evolvedFrom       *Shape
	evolutionID       uint64
	evolutionsSpawned uint64
}

// NewEmptyShape returns the Empty shape: the "no value" / side-effect-only
// descriptor.
func NewEmptyShape() *Shape { return &Shape{tag: ShapeEmpty} }

// NewUnboundedShape returns an unbounded Primitive shape of the given kind.
func NewUnboundedShape(kind Kind) *Shape {
	return &Shape{tag: ShapePrimitive, primKind: kind}
}

// NewBoundedShape returns a bounded refinement of kind, with the runtime
// in-bounds check the shape should advertise as its `in-bounds?` word.
func NewBoundedShape(kind Kind, inBounds func(Object) bool) *Shape {
	return &Shape{tag: ShapePrimitive, bounded: true, primKind: kind, inBounds: inBounds}
}

// NewCatchAll returns a generic catch-all shape identified by id (0-255).
func NewCatchAll(id uint8) *Shape {
	return &Shape{tag: ShapeCatchAll, catchAllID: id}
}

func (s *Shape) Tag() ShapeTag        { return s.tag }
func (s *Shape) Bounded() bool        { return s.bounded }
func (s *Shape) PrimKind() Kind       { return s.primKind }
func (s *Shape) CatchAllID() uint8    { return s.catchAllID }
func (s *Shape) EvolvedFrom() *Shape  { return s.evolvedFrom }
func (s *Shape) EvolutionID() uint64  { return s.evolutionID }
func (s *Shape) MemberWords() []WordHandle { return s.memberWords }

// InBounds reports whether obj satisfies a bounded shape's runtime check.
// Unbounded shapes and shapes with no registered check always report true.
func (s *Shape) InBounds(obj Object) bool {
	if !s.bounded || s.inBounds == nil {
		return true
	}
	return s.inBounds(obj)
}

// WithName returns a shallow copy of s carrying the given name handle. The
// caller retains ownership of name's ref.
func (s *Shape) WithName(name SymbolHandle) *Shape {
	cp := *s
	cp.name = name
	return &cp
}

// WithMemberWords returns a shallow copy of s carrying the given member
// word contracts.
func (s *Shape) WithMemberWords(words []WordHandle) *Shape {
	cp := *s
	cp.memberWords = words
	return &cp
}

// Name returns the shape's name handle, interning and reffing a fresh
// "<anonymous shape>" symbol through pool if the shape was never named.
// The returned handle is always increfed, so callers must decref it when
// they are done with it.
func (s *Shape) Name(pool *SymbolPool) (SymbolHandle, error) {
	if s.name != nil {
		if err := s.name.Incref(); err != nil {
			return nil, err
		}
		return s.name, nil
	}
	h := pool.GetOrPut("<anonymous shape>")
	if err := h.Incref(); err != nil {
		return nil, err
	}
	return h, nil
}

// Evolve produces a new Shape sharing s's contents and member words, with
// a pointer back to s as its evolution parent and a freshly (monotonic per
// parent) assigned evolution id. Two evolutions sharing the same parent
// and id are the same newtype.
func (s *Shape) Evolve() *Shape {
	cp := *s
	cp.evolvedFrom = s
	cp.evolutionID = s.evolutionsSpawned
	cp.evolutionsSpawned = 0
	s.evolutionsSpawned++
	return &cp
}

func evolutionRoot(s *Shape) (*Shape, bool) {
	if s.evolvedFrom == nil {
		return nil, false
	}
	return s.evolvedFrom, true
}

// compareEvolution checks that self and other share the same evolution
// lineage (both unevolved, or evolved from the same parent with the same
// id). It does not by itself decide compatibility; it only guards against
// comparing disparate nominal newtypes.
func compareEvolution(self, other *Shape) error {
	selfRoot, selfEvolved := evolutionRoot(self)
	otherRoot, otherEvolved := evolutionRoot(other)
	if selfEvolved != otherEvolved || selfRoot != otherRoot {
		return DisparateEvolutionBasesError{}
	}
	if selfEvolved && self.evolutionID != other.evolutionID {
		return DisparateEvolutionsError{Left: self.evolutionID, Right: other.evolutionID}
	}
	return nil
}

// CompatibleWith answers "can other satisfy self?" per spec.md §4.4.
func (self *Shape) CompatibleWith(other *Shape) (ShapeVerdict, error) {
	if self.tag != other.tag {
		return 0, IncomparableError{Reason: "shape tags differ: " + self.tag.String() + " vs " + other.tag.String()}
	}
	if err := compareEvolution(self, other); err != nil {
		return 0, err
	}

	switch self.tag {
	case ShapeEmpty:
		return ShapeCompatible, nil

	case ShapeCatchAll:
		if self.catchAllID == other.catchAllID {
			return ShapeCompatible, nil
		}
		return ShapeIndeterminate, nil

	case ShapePrimitive:
		if !self.bounded {
			if self.primKind == other.primKind {
				return ShapeCompatible, nil
			}
			return 0, DisparateUnderlyingPrimitivesError{Left: self.primKind, Right: other.primKind}
		}
		if self.primKind == other.primKind {
			return ShapeIndeterminate, nil
		}
		return 0, DisparateUnderlyingPrimitivesError{Left: self.primKind, Right: other.primKind}

	default:
		return 0, IncomparableError{Reason: "unknown shape tag"}
	}
}
