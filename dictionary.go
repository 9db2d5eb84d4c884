package gale

import (
	"golang.org/x/exp/slices"
)

// WordList holds every Word registered under one name, in registration
// order. Dispatch picks the first entry (oldest to newest) whose
// signature's consuming/before shapes are satisfied by the live stack,
// falling back to the newest entry when none is satisfied. Earlier
// overloads are never erased: a satisfied older entry wins over a newer one.
type WordList struct {
	entries []WordHandle
}

func (wl *WordList) Append(w WordHandle) { wl.entries = append(wl.entries, w) }

func (wl *WordList) Entries() []WordHandle { return wl.entries }

// Dictionary maps interned word-name symbols to their WordLists.
type Dictionary struct {
	bySymbol map[SymbolHandle]*WordList
}

func NewDictionary() *Dictionary {
	return &Dictionary{bySymbol: make(map[SymbolHandle]*WordList)}
}

// Define appends w to the WordList registered under name, creating the
// list if this is the name's first definition. Ownership of name's and w's
// refs transfers to the Dictionary.
func (d *Dictionary) Define(name SymbolHandle, w WordHandle) {
	wl, ok := d.bySymbol[name]
	if !ok {
		wl = &WordList{}
		d.bySymbol[name] = wl
	}
	wl.Append(w)
}

// Lookup returns the WordList registered under name, if any.
func (d *Dictionary) Lookup(name SymbolHandle) (*WordList, bool) {
	wl, ok := d.bySymbol[name]
	return wl, ok
}

// Resolve picks the dispatch candidate from wl given the live stack's
// top-of-stack shape descriptors (most-recently-pushed last, matching the
// order a signature's Expects list is written in). Candidates are scanned
// oldest-first; the first one whose Expects shapes are all Compatible (not
// merely Indeterminate — dispatch must be sure, not hopeful) wins. If none
// is sure, the newest registrant is returned as a best-effort fallback so a
// shadowing redefinition still takes priority over doing nothing. Each
// candidate is checked against the top len(Expects) entries of live; a
// candidate needing more entries than live holds is skipped.
func (wl *WordList) Resolve(live []*Shape) (WordHandle, error) {
	if len(wl.entries) == 0 {
		return nil, EmptyWordError{}
	}

	for _, candidate := range wl.entries {
		w := candidate.Value()
		if w == nil || w.signature == nil {
			continue
		}
		expects := w.signature.Signature.Expects()
		if len(expects) > len(live) {
			continue
		}
		top := live[len(live)-len(expects):]
		allSure := true
		for i, want := range expects {
			if want.Tag() == ShapeCatchAll {
				// A catch-all is satisfied by any concrete live shape; it
				// is the signature layer's job (at definition time) to
				// cross-check that repeated occurrences of the same id
				// resolve consistently, not dispatch's.
				continue
			}
			verdict, err := want.CompatibleWith(top[i])
			if err != nil || verdict != ShapeCompatible {
				allSure = false
				break
			}
		}
		if allSure {
			return candidate, nil
		}
	}

	return wl.entries[len(wl.entries)-1], nil
}

// Names returns every interned name currently defined, for introspection
// and help text.
func (d *Dictionary) Names() []SymbolHandle {
	names := make([]SymbolHandle, 0, len(d.bySymbol))
	for name := range d.bySymbol {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b SymbolHandle) bool {
		av, bv := a.Value(), b.Value()
		if av == nil || bv == nil {
			return av == nil && bv != nil
		}
		return *av < *bv
	})
	return names
}
