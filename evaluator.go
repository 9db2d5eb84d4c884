package gale

import (
	"fmt"
	"io"
	"strings"

	"github.com/gale-lang/gale/internal/fileinput"
)

// tokenize splits source on whitespace, except inside double-quoted runs
// (which are kept intact, quotes and all, so ParseWord can recognize the
// quoted-string literal form).
func tokenize(source string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range source {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// EvalReader drains r through a location-tracking Input, then evaluates the
// accumulated source the same way Eval does. A read error is reported
// against the file name and the line being scanned; an evaluation error
// carries the file name and the last line read, not the line of the token
// that failed.
func (rt *Runtime) EvalReader(name string, r io.Reader) error {
	in := &fileinput.Input{Queue: []io.Reader{namedReader{r, name}}}

	var src strings.Builder
	for {
		ch, _, err := in.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%v: %w", in.Scan.Location, err)
		}
		src.WriteRune(ch)
	}

	if err := rt.Eval(src.String()); err != nil {
		return fmt.Errorf("%v: %w", in.Last.Location, err)
	}
	return nil
}

type namedReader struct {
	io.Reader
	name string
}

func (nr namedReader) Name() string { return nr.name }

// Eval tokenizes source and dispatches each token in turn, stopping at the
// first error.
func (rt *Runtime) Eval(source string) error {
	for _, tok := range tokenize(source) {
		if err := rt.dispatchToken(tok); err != nil {
			return err
		}
	}
	return nil
}

func (rt *Runtime) dispatchToken(tok string) error {
	parsed, err := ParseWord(tok)
	if err != nil {
		return err
	}

	if rt.beforeWord != nil {
		if w := rt.beforeWord.Value(); w != nil {
			if err := w.Run(rt); err != nil {
				return err
			}
		}
	}

	switch parsed.Kind {
	case ParsedBoolean:
		_, err := rt.stack.Push(NewBoolean(parsed.Boolean))
		return err
	case ParsedSignedInt:
		_, err := rt.stack.Push(NewSignedInt(parsed.SInt))
		return err
	case ParsedUnsignedInt:
		_, err := rt.stack.Push(NewUnsignedInt(parsed.UInt))
		return err
	case ParsedFloat:
		_, err := rt.stack.Push(NewFloat(parsed.Float))
		return err
	case ParsedString:
		h := NewRefcellReferenced(parsed.Str)
		_, err := rt.stack.Push(NewStringObject(h))
		return err
	case ParsedSymbol:
		return rt.pushSymbolLiteral(parsed.WordName)
	case ParsedRef:
		return rt.pushWordLiteral(parsed.WordName)
	case ParsedWordRef:
		return rt.dispatchWordRef(parsed)
	default:
		return UnimplementedError{What: "unknown parsed token kind"}
	}
}

// pushSymbolLiteral interns name and pushes it as a Symbol, the effect of a
// literal ":name" token. It never touches interpreter mode or the stash.
func (rt *Runtime) pushSymbolLiteral(name string) error {
	sym, err := rt.internSymbol(name)
	if err != nil {
		return err
	}
	if err := sym.Incref(); err != nil {
		return err
	}
	_, err = rt.stack.Push(NewSymbolObject(sym))
	return err
}

// pushWordLiteral interns name, looks it up in the dictionary, and pushes a
// Refcell handle to its newest overload, the effect of a literal "&name"
// token.
func (rt *Runtime) pushWordLiteral(name string) error {
	sym, err := rt.internSymbol(name)
	if err != nil {
		return err
	}
	wl, ok := rt.dict.Lookup(sym)
	if !ok {
		return UnimplementedError{What: "no word named " + name}
	}
	handle := wl.Entries()[len(wl.Entries())-1]
	if err := handle.Incref(); err != nil {
		return err
	}
	_, err = rt.stack.Push(NewWordObject(handle))
	return err
}

// dispatchWordRef runs a Simple word reference, wrapping the ordinary
// lookup/run in a stash (pop the top-of-stack before the lookup) and/or a
// hoist (push the stashed object back above the word's result) per p's
// comma style. This is independent of interpreter mode, which the
// PrivateSpace's mode byte governs on its own for every plain word
// reference regardless of comma style.
func (rt *Runtime) dispatchWordRef(p ParsedToken) error {
	if p.Style == WordRefStash || p.Style == WordRefStashHoist {
		obj, err := rt.stack.Pop()
		if err != nil {
			return err
		}
		rt.stash = obj
		rt.hasStash = true
	}

	name, err := rt.internSymbol(p.WordName)
	if err != nil {
		return err
	}
	// The mode applies to this one token; clearing it before the word runs
	// lets that word (e.g. @PRIV_SPACE_SET_BYTE) arm it for the next one.
	mode := rt.priv.Mode()
	rt.priv.SetMode(ModeExec)

	switch mode {
	case ModeSymbol:
		if err := name.Incref(); err != nil {
			return err
		}
		if _, err := rt.stack.Push(NewSymbolObject(name)); err != nil {
			return err
		}

	case ModeRef:
		wl, ok := rt.dict.Lookup(name)
		if !ok {
			return UnimplementedError{What: "no word named " + p.WordName}
		}
		handle := wl.Entries()[len(wl.Entries())-1]
		if err := handle.Incref(); err != nil {
			return err
		}
		if _, err := rt.stack.Push(NewWordObject(handle)); err != nil {
			return err
		}

	default:
		if err := rt.dispatchName(name); err != nil {
			return err
		}
	}

	if p.Style == WordRefHoist || p.Style == WordRefStashHoist {
		if !rt.hasStash {
			return UnimplementedError{What: "hoist with nothing stashed"}
		}
		rt.hasStash = false
		stashed := rt.stash
		rt.stash = Object{}
		if _, err := rt.stack.Push(stashed); err != nil {
			return err
		}
	}
	return nil
}
