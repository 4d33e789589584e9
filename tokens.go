/**
 * Copyright (c) 2019, The Relay Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package relay

import (
	"github.com/botobag/relay/iterator"
)

// Tokens specifies a list of global id tokens and provides an iterator over them. ResolveMany
// accepts any Tokens so callers can stream tokens from whatever source holds them (a parsed
// query's arguments, a batch request body) without building an intermediate slice.
type Tokens interface {
	Iterator() TokenIterator
}

// TokensWithSize is a Tokens with size hint.
type TokensWithSize interface {
	Tokens
	Size() int
}

// TokenIterator is an iterator over tokens in Tokens.
type TokenIterator interface {
	// Next returns the next token in the iteration. It conforms to the iterator pattern described
	// in the iterator package.
	Next() (GlobalID, error)
}

// tokensArray is a return value for TokensFromArray which implements TokensWithSize.
type tokensArray struct {
	tokens []GlobalID
}

type tokensArrayIterator struct {
	tokens []GlobalID
	i      int
}

// Iterator implements Tokens.
func (a tokensArray) Iterator() TokenIterator {
	return &tokensArrayIterator{tokens: a.tokens}
}

// Size implements TokensWithSize.
func (a tokensArray) Size() int {
	return len(a.tokens)
}

// Next implements TokenIterator.
func (iter *tokensArrayIterator) Next() (GlobalID, error) {
	i := iter.i
	if i != len(iter.tokens) {
		iter.i++
		return iter.tokens[i], nil
	}
	return "", iterator.Done
}

// TokensFromArray creates a Tokens from an array of GlobalID's.
func TokensFromArray(tokens ...GlobalID) TokensWithSize {
	return tokensArray{tokens}
}

// TokensFromStrings creates a Tokens from raw strings, as tokens usually arrive from the transport
// layer untyped.
func TokensFromStrings(tokens ...string) TokensWithSize {
	ids := make([]GlobalID, len(tokens))
	for i, token := range tokens {
		ids[i] = GlobalID(token)
	}
	return tokensArray{ids}
}
