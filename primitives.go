package gale

// RegisterPrimitives defines the nucleus's minimum-viable built-in catalog
// into rt's dictionary. Every primitive name is spelled the traditional
// `@SHOUTING-CASE` way. Nothing rejects a user-chosen name starting with
// `@`; defining one appends another overload under that name.
func RegisterPrimitives(rt *Runtime) {
	wk := rt.wellKnown
	boolShape := wk.Shape(KindBoolean)
	wordShape := wk.Shape(KindWord)
	uintShape := wk.Shape(KindUnsignedInt)
	symShape := wk.Shape(KindSymbol)

	def := func(name string, sig *WordSignature, fn PrimitiveFunc) {
		n := rt.symbols.GetOrPut(name)
		if err := n.Incref(); err != nil {
			panic(err)
		}
		decl := &DeclaredOrInferred{Origin: SignatureDeclared, Signature: rt.sigs.Intern(sig)}
		w := NewPrimitiveWord(decl, fn)
		rt.warnOnIncompatibleRedefinition(name, sig)
		rt.dict.Define(n, NewRefcellReferenced(*w))
	}

	def("@EQ", NewPurelyAdditive([]*Shape{NewCatchAll(0), NewCatchAll(0)}, []*Shape{boolShape}),
		func(rt *Runtime) error {
			a, b, err := rt.stack.PopPair()
			if err != nil {
				return err
			}
			eq, err := a.Eq(b)
			a.Deinit()
			b.Deinit()
			if err != nil {
				return err
			}
			_, err = rt.stack.Push(NewBoolean(eq))
			return err
		})

	def("@DROP", NewPurelyConsuming([]*Shape{NewCatchAll(0)}),
		func(rt *Runtime) error { return rt.stack.Drop() })

	def("@DUP", NewPurelyAdditive([]*Shape{NewCatchAll(0)}, []*Shape{NewCatchAll(0)}),
		func(rt *Runtime) error { return rt.stack.Dup() })

	def("@2DUPSHUF", NewPurelyAdditive([]*Shape{NewCatchAll(0), NewCatchAll(1)}, []*Shape{NewCatchAll(0), NewCatchAll(1)}),
		func(rt *Runtime) error { return rt.stack.TwoDupShuf() })

	def("@SWAP", NewMutative([]*Shape{NewCatchAll(0), NewCatchAll(1)}, []*Shape{NewCatchAll(1), NewCatchAll(0)}),
		func(rt *Runtime) error { return rt.stack.Swap() })

	def("@LIT", NewMutative([]*Shape{NewCatchAll(0)}, []*Shape{wordShape}), primLit)

	def("@CONDJMP", NewPurelyConsuming([]*Shape{boolShape, wordShape}), primCondJmp)

	def("@CONDJMP2", NewPurelyConsuming([]*Shape{boolShape, wordShape, wordShape}), primCondJmp2)

	for n := 1; n <= 5; n++ {
		bodies := make([]*Shape, n)
		for i := range bodies {
			bodies[i] = wordShape
		}
		name := defineWordVaName(n)
		full := append([]*Shape{symShape}, bodies...)
		def(name, NewPurelyConsuming(full), defineWordVaPrimitive(n))
	}

	def("@PRIV_SPACE_SET_BYTE", NewPurelyConsuming([]*Shape{uintShape, uintShape}), primPrivSpaceSetByte)

	def("@BEFORE_WORD", NewPurelyConsuming([]*Shape{wordShape}), primBeforeWord)
}

func defineWordVaName(n int) string {
	switch n {
	case 1:
		return "@DEFINE-WORD-VA1"
	case 2:
		return "@DEFINE-WORD-VA2"
	case 3:
		return "@DEFINE-WORD-VA3"
	case 4:
		return "@DEFINE-WORD-VA4"
	default:
		return "@DEFINE-WORD-VA5"
	}
}

// primLit moves the top object to the heap, wrapping it in a freshly
// constructed HeapLit word and pushing that word in its place. Running the
// resulting word any number of times re-pushes a fresh ref-ed copy of the
// original object each time.
func primLit(rt *Runtime) error {
	obj, err := rt.stack.Pop()
	if err != nil {
		return err
	}
	w := NewHeapLitWord(obj)
	handle := NewRefcellReferenced(*w)
	if err := handle.Incref(); err != nil {
		return err
	}
	_, err = rt.stack.Push(NewWordObject(handle))
	return err
}

func primCondJmp(rt *Runtime) error {
	target, err := rt.stack.Pop()
	if err != nil {
		return err
	}
	cond, err := rt.stack.Pop()
	if err != nil {
		target.Deinit()
		return err
	}
	defer cond.Deinit()
	if !cond.Boolean() {
		target.Deinit()
		return nil
	}
	return rt.dispatchObject(target)
}

func primCondJmp2(rt *Runtime) error {
	elseTarget, err := rt.stack.Pop()
	if err != nil {
		return err
	}
	thenTarget, err := rt.stack.Pop()
	if err != nil {
		elseTarget.Deinit()
		return err
	}
	cond, err := rt.stack.Pop()
	if err != nil {
		thenTarget.Deinit()
		elseTarget.Deinit()
		return err
	}
	defer cond.Deinit()
	if cond.Boolean() {
		elseTarget.Deinit()
		return rt.dispatchObject(thenTarget)
	}
	thenTarget.Deinit()
	return rt.dispatchObject(elseTarget)
}

// defineWordVaPrimitive pops n inner word handles and a Symbol name (name
// deepest, inner words in call order above it, per the dictionary's
// registered Expects list) and defines name as a Compound word whose body
// is exactly those n inner handles, run in order when the new word is
// dispatched.
func defineWordVaPrimitive(n int) PrimitiveFunc {
	return func(rt *Runtime) error {
		words := make([]Object, n)
		for i := n - 1; i >= 0; i-- {
			obj, err := rt.stack.Pop()
			if err != nil {
				for j := i + 1; j < n; j++ {
					words[j].Deinit()
				}
				return err
			}
			if err := obj.AssertIsKind(KindWord); err != nil {
				obj.Deinit()
				for j := i + 1; j < n; j++ {
					words[j].Deinit()
				}
				return err
			}
			words[i] = obj
		}

		nameObj, err := rt.stack.Pop()
		if err != nil {
			for _, w := range words {
				w.Deinit()
			}
			return err
		}
		if err := nameObj.AssertIsKind(KindSymbol); err != nil {
			nameObj.Deinit()
			for _, w := range words {
				w.Deinit()
			}
			return err
		}

		sig := &DeclaredOrInferred{Origin: SignatureInferred, Signature: rt.sigs.Intern(NewSideEffectary())}
		w := NewCompoundWord(sig, words)
		if nv := nameObj.Symbol().Value(); nv != nil {
			rt.warnOnIncompatibleRedefinition(*nv, sig.Signature)
		}
		rt.dict.Define(nameObj.Symbol(), NewRefcellReferenced(*w))
		return nil
	}
}

// primPrivSpaceSetByte writes a value at an address, per the table's
// "write value at address" phrasing: the value is pushed first (deeper),
// the address on top, so "1/u 0/u @PRIV_SPACE_SET_BYTE" writes value=1 at
// offset=0 — the interpreter-mode byte. Both are read as UInt; a plain "1"
// parses as SInt, whose UnsignedInt() is 0.
func primPrivSpaceSetByte(rt *Runtime) error {
	value, offset, err := rt.stack.PopPair()
	if err != nil {
		return err
	}
	defer value.Deinit()
	defer offset.Deinit()
	return rt.priv.SetByte(int(offset.UnsignedInt()), byte(value.UnsignedInt()))
}

func primBeforeWord(rt *Runtime) error {
	obj, err := rt.stack.Pop()
	if err != nil {
		return err
	}
	if err := obj.AssertIsKind(KindWord); err != nil {
		obj.Deinit()
		return err
	}
	if rt.beforeWord != nil {
		rt.beforeWord.DecrefAndPrune()
	}
	rt.beforeWord = obj.Word()
	return nil
}
