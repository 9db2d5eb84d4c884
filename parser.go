package gale

import (
	"strconv"
	"strings"
)

// ParsedKind discriminates what a single whitespace-delimited token turned
// out to mean.
type ParsedKind int

const (
	ParsedBoolean ParsedKind = iota
	ParsedSignedInt
	ParsedUnsignedInt
	ParsedFloat
	ParsedString
	// ParsedSymbol: a token of the form ":rest" — push Symbol(rest)
	// without ever consulting the dictionary.
	ParsedSymbol
	// ParsedRef: a token of the form "&rest" — push a Refcell handle to
	// the word named rest without running it.
	ParsedRef
	ParsedWordRef
)

// WordRefStyle names how a parsed Simple word reference should be
// dispatched around its ordinary lookup/run: plain, or wrapped in
// leading/trailing commas requesting that the top-of-stack be stashed
// before the lookup and/or hoisted back above the word's result.
type WordRefStyle int

const (
	WordRefPlain WordRefStyle = iota
	// WordRefStash: ",name" — stash the top-of-stack before looking the
	// word up and running it.
	WordRefStash
	// WordRefHoist: "name," — after running the word, hoist the
	// previously-stashed object back on top of its result.
	WordRefHoist
	// WordRefStashHoist: ",name," — stash, run, then hoist the same
	// stashed object back, all within this one token.
	WordRefStashHoist
)

// ParsedToken is the result of recognizing one token.
type ParsedToken struct {
	Kind ParsedKind

	Boolean bool
	SInt    int64
	UInt    uint64
	Float   float64
	Str     string

	WordName string
	Style    WordRefStyle
}

// ParseWord recognizes a single token per the nucleus's fixed priority
// order: empty check, quoted string, leading-colon Symbol literal,
// leading-ampersand Ref literal, boolean literal, numeric literal (with an
// optional forcing /u or /i suffix), falling back to a word reference with
// optional comma-wrapped stash/hoist markers.
func ParseWord(token string) (ParsedToken, error) {
	if len(token) == 0 {
		return ParsedToken{}, EmptyWordError{}
	}

	if len(token) >= 2 && token[0] == '"' && token[len(token)-1] == '"' {
		return ParsedToken{Kind: ParsedString, Str: token[1 : len(token)-1]}, nil
	}

	if token[0] == ':' {
		if len(token) < 2 {
			return ParsedToken{}, InvalidWordNameError{Token: token}
		}
		return ParsedToken{Kind: ParsedSymbol, WordName: token[1:]}, nil
	}

	if token[0] == '&' {
		if len(token) < 2 {
			return ParsedToken{}, InvalidWordNameError{Token: token}
		}
		return ParsedToken{Kind: ParsedRef, WordName: token[1:]}, nil
	}

	switch token {
	case "true":
		return ParsedToken{Kind: ParsedBoolean, Boolean: true}, nil
	case "false":
		return ParsedToken{Kind: ParsedBoolean, Boolean: false}, nil
	}

	if tok, forced, ok := strings.Cut(token, "/"); ok {
		switch forced {
		case "u":
			if v, err := strconv.ParseUint(tok, 10, 64); err == nil {
				return ParsedToken{Kind: ParsedUnsignedInt, UInt: v}, nil
			}
		case "i":
			if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
				return ParsedToken{Kind: ParsedSignedInt, SInt: v}, nil
			}
		default:
			return ParsedToken{}, UnknownSlashedSuffixError{Token: token}
		}
	}

	if looksNumeric(token) {
		if strings.ContainsAny(token, ".eE") {
			if v, err := strconv.ParseFloat(token, 64); err == nil {
				return ParsedToken{Kind: ParsedFloat, Float: v}, nil
			}
		} else if v, err := strconv.ParseInt(token, 10, 64); err == nil {
			return ParsedToken{Kind: ParsedSignedInt, SInt: v}, nil
		}
	}

	return parseWordRef(token)
}

func looksNumeric(token string) bool {
	i := 0
	if token[0] == '-' || token[0] == '+' {
		i = 1
	}
	if i >= len(token) {
		return false
	}
	return token[i] >= '0' && token[i] <= '9'
}

func parseWordRef(token string) (ParsedToken, error) {
	leading := strings.HasPrefix(token, ",")
	trailing := strings.HasSuffix(token, ",")

	name := token
	style := WordRefPlain
	switch {
	case leading && trailing:
		if len(token) < 3 {
			return ParsedToken{}, InvalidWordNameError{Token: token}
		}
		name = token[1 : len(token)-1]
		style = WordRefStashHoist
	case leading:
		name = token[1:]
		style = WordRefStash
	case trailing:
		name = token[:len(token)-1]
		style = WordRefHoist
	}

	if len(name) == 0 || strings.Contains(name, ",") {
		return ParsedToken{}, InvalidWordNameError{Token: token}
	}

	return ParsedToken{Kind: ParsedWordRef, WordName: name, Style: style}, nil
}
