package gale

import (
	"fmt"
	"io"

	"github.com/gale-lang/gale/internal/runeio"
)

// Dump renders a human-readable snapshot of rt to w, in this order: the
// symbol table's population, the dictionary's defined word names with
// their overload counts, and the live stack (bottom-up, one object per
// line). It is
// meant for interactive debugging, the same register as the teacher's
// memory dumper, adapted from its per-section "# Header" / indented-line
// shape to gale's object model instead of raw VM memory cells.
func (rt *Runtime) Dump(w io.Writer) error {
	fmt.Fprintf(w, "# Gale Dump\n")

	fmt.Fprintf(w, "  symbols: %d interned\n", rt.symbols.Len())

	names := rt.dict.Names()
	fmt.Fprintf(w, "  dict: %d words\n", len(names))
	for _, name := range names {
		wl, ok := rt.dict.Lookup(name)
		if !ok {
			continue
		}
		nameStr := "<dead>"
		if v := name.Value(); v != nil {
			nameStr = *v
		}
		fmt.Fprintf(w, "    : %s (%d overload(s))\n", nameStr, len(wl.Entries()))
	}

	fmt.Fprintf(w, "  stack:\n")
	return rt.dumpStack(w)
}

// dumpStack walks the stack's chunk spine from the oldest chunk to the
// current one so entries print bottom-up, the order a reader builds a
// mental picture of "what's under what" in.
func (rt *Runtime) dumpStack(w io.Writer) error {
	var chunks []*Chunk
	for c := rt.stack.Current(); c != nil; c = c.prev {
		chunks = append(chunks, c)
	}
	for i := len(chunks) - 1; i >= 0; i-- {
		c := chunks[i]
		for idx := 0; idx < c.nextIdx; idx++ {
			if err := rt.dumpObject(w, c.contents[idx]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rt *Runtime) dumpObject(w io.Writer, obj Object) error {
	fmt.Fprintf(w, "    %s: ", obj.Kind())
	switch obj.Kind() {
	case KindBoolean:
		fmt.Fprintf(w, "%v\n", obj.Boolean())
	case KindSignedInt:
		fmt.Fprintf(w, "%d\n", obj.SignedInt())
	case KindUnsignedInt:
		fmt.Fprintf(w, "%d\n", obj.UnsignedInt())
	case KindFloat:
		fmt.Fprintf(w, "%g\n", obj.Float())
	case KindString:
		if v := obj.String_().Value(); v != nil {
			for _, r := range *v {
				if _, err := runeio.WriteANSIRune(w, r); err != nil {
					return err
				}
			}
		}
		fmt.Fprintln(w)
	case KindSymbol:
		if v := obj.Symbol().Value(); v != nil {
			fmt.Fprintf(w, "%s\n", *v)
		} else {
			fmt.Fprintln(w, "<dead>")
		}
	case KindOpaque:
		if v := obj.Opaque().Value(); v != nil {
			fmt.Fprintf(w, "%d byte(s)\n", len(*v))
		} else {
			fmt.Fprintln(w, "<dead>")
		}
	case KindWord:
		fmt.Fprintf(w, "refs=%d\n", obj.Word().StrongCount())
	default:
		fmt.Fprintln(w, "<unknown>")
	}
	return nil
}
