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
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// SecretCodec is a Codec that encrypts the (type name, local id) pair with ChaCha20-Poly1305
// before applying the base64 transform. Unlike Base64Codec, tokens reveal nothing about the pair
// and cannot be forged without the key.
//
// SecretCodec is explicitly randomized: every Encode draws a fresh nonce, so encoding the same
// pair twice yields two different tokens. Both decode to the same pair. Callers that rely on
// deterministic tokens (e.g., for client-side caching keyed by id) should use Base64Codec or
// derive cache keys from the decoded pair instead.
type SecretCodec struct {
	aead cipher.AEAD
}

var _ Codec = (*SecretCodec)(nil)

// NewSecretCodec creates a SecretCodec from a chacha20poly1305.KeySize-byte key. The key must be
// stable across processes that need to decode each other's tokens.
func NewSecretCodec(key []byte) (*SecretCodec, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, NewError("Invalid secret codec key.", Op("relay.NewSecretCodec"), err)
	}
	return &SecretCodec{aead: aead}, nil
}

// Encode implements Codec.
func (codec *SecretCodec) Encode(typeName string, localID string) (GlobalID, error) {
	const op = Op("relay.SecretCodec.Encode")
	if err := checkPair(op, typeName, localID); err != nil {
		return "", err
	}

	plaintext := []byte(typeName + idSeparator + localID)

	// The nonce is prepended to the ciphertext so Decode can recover it from the token alone.
	nonce := make([]byte, chacha20poly1305.NonceSize, chacha20poly1305.NonceSize+len(plaintext)+chacha20poly1305.Overhead)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", NewError("Unable to generate nonce for global id.", op, ErrKindInternal, err)
	}

	sealed := codec.aead.Seal(nonce, nonce, plaintext, nil)
	return GlobalID(base64.RawURLEncoding.EncodeToString(sealed)), nil
}

// Decode implements Codec.
func (codec *SecretCodec) Decode(id GlobalID) (string, string, error) {
	const op = Op("relay.SecretCodec.Decode")
	sealed, err := base64.RawURLEncoding.DecodeString(string(id))
	if err != nil {
		return "", "", NewError("Global id is not a valid base64 string.", op, ErrKindMalformedID, err)
	}

	if len(sealed) < chacha20poly1305.NonceSize+chacha20poly1305.Overhead {
		return "", "", NewError("Global id is too short to carry an encrypted pair.", op, ErrKindMalformedID)
	}

	nonce, ciphertext := sealed[:chacha20poly1305.NonceSize], sealed[chacha20poly1305.NonceSize:]
	plaintext, err := codec.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Authentication failure covers both corruption and forgery. Report it exactly like any
		// other unparsable token.
		return "", "", NewError("Global id fails authentication.", op, ErrKindMalformedID, err)
	}

	return splitPair(op, string(plaintext))
}
