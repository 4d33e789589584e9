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

package relay_test

import (
	"bytes"
	"encoding/base64"

	"github.com/botobag/relay"
	"github.com/botobag/relay/internal/testutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SecretCodec", func() {
	var (
		key   = bytes.Repeat([]byte{0x42}, 32)
		codec *relay.SecretCodec
	)

	BeforeEach(func() {
		var err error
		codec, err = relay.NewSecretCodec(key)
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("requires a key of the right size", func() {
		_, err := relay.NewSecretCodec([]byte("too short"))
		Expect(err).Should(testutil.MatchRelayError(
			testutil.MessageContainSubstring("Invalid secret codec key"),
		))
	})

	It("round-trips a (type name, local id) pair", func() {
		id, err := codec.Encode("Post", "42")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(decodePair(codec, id)).Should(Equal([2]string{"Post", "42"}))
	})

	It("is explicitly randomized but decodes consistently", func() {
		first, err := codec.Encode("Post", "1")
		Expect(err).ShouldNot(HaveOccurred())
		second, err := codec.Encode("Post", "1")
		Expect(err).ShouldNot(HaveOccurred())

		// Two tokens for the same pair differ but both decode to the pair.
		Expect(first).ShouldNot(Equal(second))
		Expect(decodePair(codec, first)).Should(Equal([2]string{"Post", "1"}))
		Expect(decodePair(codec, second)).Should(Equal([2]string{"Post", "1"}))
	})

	It("produces tokens in an ID-safe character set", func() {
		id, err := codec.Encode("Post", "1")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(string(id)).Should(MatchRegexp(`^[A-Za-z0-9_-]+$`))
	})

	It("fails to decode a tampered token with a malformed id error", func() {
		id, err := codec.Encode("Post", "42")
		Expect(err).ShouldNot(HaveOccurred())

		sealed, err := base64.RawURLEncoding.DecodeString(string(id))
		Expect(err).ShouldNot(HaveOccurred())

		// Flip one bit in the ciphertext.
		sealed[len(sealed)-1] ^= 0x01
		tampered := relay.GlobalID(base64.RawURLEncoding.EncodeToString(sealed))

		_, _, err = codec.Decode(tampered)
		Expect(err).Should(testutil.MatchRelayError(
			testutil.KindIs(relay.ErrKindMalformedID),
		))
	})

	It("fails to decode tokens sealed with a different key", func() {
		other, err := relay.NewSecretCodec(bytes.Repeat([]byte{0x24}, 32))
		Expect(err).ShouldNot(HaveOccurred())

		id, err := other.Encode("Post", "42")
		Expect(err).ShouldNot(HaveOccurred())

		_, _, err = codec.Decode(id)
		Expect(err).Should(testutil.MatchRelayError(
			testutil.KindIs(relay.ErrKindMalformedID),
		))
	})

	It("fails to decode garbage with a malformed id error", func() {
		for _, garbage := range []string{"", "a", "not*base64", "Zm9vOmJhcg"} {
			_, _, err := codec.Decode(relay.GlobalID(garbage))
			Expect(err).Should(testutil.MatchRelayError(
				testutil.KindIs(relay.ErrKindMalformedID),
			), "garbage: %q", garbage)
		}
	})
})
