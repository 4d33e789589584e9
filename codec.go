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
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"
)

// GlobalID is an opaque string token that uniquely identifies an object across all node types in a
// schema. It decodes deterministically to exactly one (type name, local id) pair via the Codec
// that produced it.
type GlobalID string

// A Codec converts between a (type name, local id) pair and a GlobalID.
//
// Implementations must satisfy the round-trip law: for every pair accepted by Encode, Decode of
// the returned token yields the pair back. Encode of the same pair is deterministic unless the
// implementation is explicitly randomized (see SecretCodec). Tokens must stay within an ID-safe
// character set so they can travel in URLs, headers and JSON strings unescaped.
type Codec interface {
	// Encode produces a token for the pair. It never fails for a non-empty typeName free of the
	// pair separator and a non-empty localID.
	Encode(typeName string, localID string) (GlobalID, error)

	// Decode reverses Encode. It fails with an ErrKindMalformedID error when the token cannot be
	// parsed into a valid pair.
	Decode(id GlobalID) (typeName string, localID string, err error)
}

// idSeparator joins the type name and the local id before the text transform. Type names must not
// contain it; local ids may, because Decode splits at the first occurrence.
const idSeparator = ":"

// checkPair validates arguments common to all codecs shipped with this package.
func checkPair(op Op, typeName string, localID string) error {
	if len(typeName) == 0 {
		return NewError("Must provide a type name to encode a global id.", op)
	}
	if strings.Contains(typeName, idSeparator) {
		return NewError(fmt.Sprintf(
			`Type name "%s" must not contain the separator character "%s".`, typeName, idSeparator), op)
	}
	if len(localID) == 0 {
		return NewError(fmt.Sprintf(
			`Must provide a local id to encode a global id for type "%s".`, typeName), op)
	}
	return nil
}

// splitPair reverses the join performed by the codecs shipped with this package. The input is the
// decoded text, not the token.
func splitPair(op Op, decoded string) (typeName string, localID string, err error) {
	if !utf8.ValidString(decoded) {
		return "", "", NewError("Global id does not decode to valid text.", op, ErrKindMalformedID)
	}

	i := strings.Index(decoded, idSeparator)
	// The separator must be present with a non-empty type name before it and a non-empty local id
	// after it.
	if i <= 0 || i == len(decoded)-len(idSeparator) {
		return "", "", NewError("Global id does not contain a type name and a local id.", op, ErrKindMalformedID)
	}

	return decoded[:i], decoded[i+len(idSeparator):], nil
}

// Base64Codec is the default Codec. It joins the pair with idSeparator and applies URL-safe,
// unpadded base64. The result is deterministic and reversible. This is an obfuscation only; the
// pair is trivially recoverable by anyone holding the token.
type Base64Codec struct{}

var _ Codec = Base64Codec{}

// Encode implements Codec.
func (Base64Codec) Encode(typeName string, localID string) (GlobalID, error) {
	const op = Op("relay.Base64Codec.Encode")
	if err := checkPair(op, typeName, localID); err != nil {
		return "", err
	}
	return GlobalID(base64.RawURLEncoding.EncodeToString(
		[]byte(typeName + idSeparator + localID))), nil
}

// Decode implements Codec.
func (Base64Codec) Decode(id GlobalID) (string, string, error) {
	const op = Op("relay.Base64Codec.Decode")
	decoded, err := base64.RawURLEncoding.DecodeString(string(id))
	if err != nil {
		return "", "", NewError("Global id is not a valid base64 string.", op, ErrKindMalformedID, err)
	}
	return splitPair(op, string(decoded))
}
