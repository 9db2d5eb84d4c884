package gale

import "github.com/josharian/intern"

// SymbolPool interns word/shape names so that equal names always share one
// backing Refcell, letting the rest of the nucleus compare symbols by
// pointer identity instead of string content.
type SymbolPool struct {
	bySymbol map[string]SymbolHandle
}

func NewSymbolPool() *SymbolPool {
	return &SymbolPool{bySymbol: make(map[string]SymbolHandle)}
}

// Lookup reports the interned handle for s, if any, without creating one.
// The returned handle is not refed on the caller's behalf.
func (p *SymbolPool) Lookup(s string) (SymbolHandle, bool) {
	h, ok := p.bySymbol[s]
	return h, ok
}

// GetOrPut returns the interned handle for s, creating and storing one
// (with strong count zero, matching a freshly constructed Refcell) if this
// is the first time s has been seen. The returned handle is not refed; per
// convention every caller that wants to hold onto it calls Incref
// themselves, matching how Object.Ref works for every other heap kind.
func (p *SymbolPool) GetOrPut(s string) SymbolHandle {
	if h, ok := p.bySymbol[s]; ok {
		return h
	}
	canon := intern.String(s)
	h := NewRefcell(canon)
	p.bySymbol[canon] = h
	return h
}

// Forget drops the pool's own bookkeeping entry for s. It does not decref
// the handle: callers that still hold references keep them, and the pool
// simply stops being able to hand out new ones under this name. Used when
// a symbol's last pool-held reference dies and the name should be
// re-internable from scratch afterward.
func (p *SymbolPool) Forget(s string) {
	delete(p.bySymbol, s)
}

// Len reports how many distinct symbols are currently interned.
func (p *SymbolPool) Len() int { return len(p.bySymbol) }
