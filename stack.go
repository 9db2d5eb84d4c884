package gale

// DefaultChunkSize is the default fixed capacity of a Stack chunk.
const DefaultChunkSize = 2048

// Chunk is one fixed-capacity link in the Stack's doubly-linked storage.
// Slots below NextIdx are live; the rest are unused capacity. Only one
// Chunk at a time is "current"; everything else reachable via Prev is a
// predecessor a caller should not be touching directly (see
// NonTerminalStackError).
type Chunk struct {
	prev, next *Chunk
	nextIdx    int
	contents   []Object
}

func newChunk(size int) *Chunk {
	return &Chunk{contents: make([]Object, size)}
}

// Stack is a doubly-linked list of fixed-capacity Chunks supporting
// push/pop/peek of the top one, two, or three Objects and a small set of
// shuffles. Growth is bounded: a single public operation never allocates
// more than one new Chunk.
type Stack struct {
	chunkSize int
	current   *Chunk
}

// NewStack constructs an empty Stack with the given chunk size, or
// DefaultChunkSize if size <= 0.
func NewStack(size int) *Stack {
	if size <= 0 {
		size = DefaultChunkSize
	}
	s := &Stack{chunkSize: size}
	s.current = newChunk(size)
	return s
}

// Current returns the Stack's current (terminal) chunk.
func (s *Stack) Current() *Chunk { return s.current }

// requireCurrent guards a chunk-scoped accessor: only the Stack's current
// chunk may be inspected through the public API.
func (s *Stack) requireCurrent(c *Chunk) error {
	if c != s.current {
		return NonTerminalStackError{}
	}
	return nil
}

// ChunkLen reports how many live slots c holds. Fails with
// NonTerminalStackError if c is not the current chunk; use Len for the
// common case of asking about the whole stack.
func (s *Stack) ChunkLen(c *Chunk) (int, error) {
	if err := s.requireCurrent(c); err != nil {
		return 0, err
	}
	return c.nextIdx, nil
}

// Len reports the number of live objects in the current chunk only (not
// the whole cross-chunk spine); it is a quick depth check that never
// underflows.
func (s *Stack) Len() int { return s.current.nextIdx }

func (s *Stack) allocSuccessor() {
	next := newChunk(s.chunkSize)
	next.prev = s.current
	s.current.next = next
	s.current = next
}

// push places obj on the current chunk (allocating at most one successor)
// without reffing it; callers ref first when the push adds an owner. grew
// reports whether a new chunk had to be allocated, for callers enforcing
// the "never more than one new chunk per call" budget.
func (s *Stack) push(obj Object) (grew bool) {
	if s.current.nextIdx == len(s.current.contents) {
		s.allocSuccessor()
		grew = true
	}
	c := s.current
	c.contents[c.nextIdx] = obj
	c.nextIdx++
	return grew
}

// Push refs obj and pushes it onto the stack, returning the now-current
// chunk.
func (s *Stack) Push(obj Object) (*Chunk, error) {
	if err := obj.Ref(); err != nil {
		return nil, err
	}
	s.push(obj)
	return s.current, nil
}

// crossBack destroys the current chunk (which must be empty) and makes its
// predecessor current, if any. Returns whether a crossing happened.
func (s *Stack) crossBack() bool {
	if s.current.nextIdx != 0 {
		return false
	}
	prev := s.current.prev
	if prev == nil {
		return false
	}
	prev.next = nil
	s.current = prev
	return true
}

// pop removes and returns the top object, transparently crossing chunk
// boundaries (and destroying the emptied chunk) when the current chunk is
// empty but a predecessor exists. Underflow only when truly empty.
func (s *Stack) pop() (Object, error) {
	for s.current.nextIdx == 0 {
		if !s.crossBack() {
			return Object{}, UnderflowError{Op: "pop"}
		}
	}
	c := s.current
	c.nextIdx--
	obj := c.contents[c.nextIdx]
	c.contents[c.nextIdx] = Object{}
	return obj, nil
}

// Pop pops the top object without deiniting it: ownership transfers to the
// caller.
func (s *Stack) Pop() (Object, error) { return s.pop() }

// depth reports how many live objects are reachable from the current
// chunk across the spine, stopping the walk once at least n are counted
// (to avoid a full walk when the caller only needs to know "at least n").
// Whole chunks are counted, so the result may exceed n.
func (s *Stack) depth(n int) int {
	count := 0
	for c := s.current; c != nil && count < n; c = c.prev {
		count += c.nextIdx
	}
	return count
}

// PopPair pops the top two objects, in push order (first popped is last,
// so PopPair returns (second-from-top, top)). Atomic: if two objects are
// not available, neither is removed.
func (s *Stack) PopPair() (a, b Object, err error) {
	if s.depth(2) < 2 {
		return Object{}, Object{}, UnderflowError{Op: "pop_pair"}
	}
	b, _ = s.pop()
	a, _ = s.pop()
	return a, b, nil
}

// PopTrio pops the top three objects, in push order. Atomic.
func (s *Stack) PopTrio() (a, b, c Object, err error) {
	if s.depth(3) < 3 {
		return Object{}, Object{}, Object{}, UnderflowError{Op: "pop_trio"}
	}
	c, _ = s.pop()
	b, _ = s.pop()
	a, _ = s.pop()
	return a, b, c, nil
}

// peekAt returns a pointer to the object n back from the top (0 = top)
// without removing it. The pointer is invalidated by the next mutating
// operation.
func (s *Stack) peekAt(n int) (*Object, error) {
	c := s.current
	idx := c.nextIdx - 1 - n
	for idx < 0 {
		if c.prev == nil {
			return nil, UnderflowError{Op: "peek"}
		}
		n -= c.nextIdx
		c = c.prev
		idx = c.nextIdx - 1 - n
	}
	return &c.contents[idx], nil
}

// Peek returns a pointer to the top object.
func (s *Stack) Peek() (*Object, error) { return s.peekAt(0) }

// PeekPair returns pointers to the top two objects, (second-from-top, top).
func (s *Stack) PeekPair() (a, b *Object, err error) {
	if a, err = s.peekAt(1); err != nil {
		return nil, nil, UnderflowError{Op: "peek_pair"}
	}
	b, _ = s.peekAt(0)
	return a, b, nil
}

// PeekTrio returns pointers to the top three objects.
func (s *Stack) PeekTrio() (a, b, c *Object, err error) {
	if a, err = s.peekAt(2); err != nil {
		return nil, nil, nil, UnderflowError{Op: "peek_trio"}
	}
	b, _ = s.peekAt(1)
	c, _ = s.peekAt(0)
	return a, b, c, nil
}

// Dup re-refs and pushes a copy of the current top.
func (s *Stack) Dup() error {
	top, err := s.Peek()
	if err != nil {
		return UnderflowError{Op: "dup"}
	}
	obj := *top
	if err := obj.Ref(); err != nil {
		return err
	}
	s.push(obj)
	return nil
}

// TwoDupShuf implements 2dupshuf: with top […, a, b] produces
// […, a, b, a, b]. Underflows if fewer than two objects are present. Fails
// with RefuseToGrowMultipleStacksError, changing nothing, when the two
// copies would need two new chunks (a full current chunk of size 1).
func (s *Stack) TwoDupShuf() error {
	a, b, err := s.PeekPair()
	if err != nil {
		return UnderflowError{Op: "2dupshuf"}
	}
	if s.chunkSize < 2 && s.current.nextIdx == len(s.current.contents) {
		return RefuseToGrowMultipleStacksError{}
	}
	oa, ob := *a, *b
	if err := oa.Ref(); err != nil {
		return err
	}
	if err := ob.Ref(); err != nil {
		return err
	}
	s.push(oa)
	s.push(ob)
	return nil
}

// Swap exchanges the top two objects, spanning a chunk boundary when
// necessary.
func (s *Stack) Swap() error {
	a, b, err := s.PopPair()
	if err != nil {
		return UnderflowError{Op: "swap"}
	}
	s.push(b)
	s.push(a)
	return nil
}

// Drop pops the top object and deinits it.
func (s *Stack) Drop() error {
	obj, err := s.pop()
	if err != nil {
		return UnderflowError{Op: "drop"}
	}
	obj.Deinit()
	return nil
}
