package gale

import (
	"fmt"
	"strings"
)

// WordSignaturePool deduplicates WordSignature values so that two words
// declared with the same tag and the same *Shape pointers in the same
// positions share one *WordSignature (shapes are compared by identity, not
// by contents),
// letting callers compare signatures by pointer identity as a fast path
// before falling back to CompatibleWith.
type WordSignaturePool struct {
	bySig map[string]*WordSignature
}

func NewWordSignaturePool() *WordSignaturePool {
	return &WordSignaturePool{bySig: make(map[string]*WordSignature)}
}

func shapeListKey(shapes []*Shape) string {
	var b strings.Builder
	for _, s := range shapes {
		fmt.Fprintf(&b, "%p,", s)
	}
	return b.String()
}

func signatureKey(sig *WordSignature) string {
	return fmt.Sprintf("%d|%s|%s", sig.tag, shapeListKey(sig.expects), shapeListKey(sig.gives))
}

// Intern returns the pool's canonical instance for a signature with sig's
// tag and shape pointers, storing sig itself if this is the first time
// that combination has been seen.
func (p *WordSignaturePool) Intern(sig *WordSignature) *WordSignature {
	key := signatureKey(sig)
	if existing, ok := p.bySig[key]; ok {
		return existing
	}
	p.bySig[key] = sig
	return sig
}

// Len reports how many distinct signatures are currently interned.
func (p *WordSignaturePool) Len() int { return len(p.bySig) }
