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
	"errors"

	"github.com/botobag/relay"
	"github.com/botobag/relay/internal/testutil"

	jsoniter "github.com/json-iterator/go"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Error", func() {
	It("builds from message, op and kind", func() {
		err := relay.NewError("something failed", relay.Op("relay.Resolve"), relay.ErrKindNotFound)
		Expect(err).Should(testutil.MatchRelayError(
			testutil.MessageEqual("something failed"),
			testutil.OpIs(relay.Op("relay.Resolve")),
			testutil.KindIs(relay.ErrKindNotFound),
		))
	})

	It("propagates kind and extensions from a wrapped Error", func() {
		inner := relay.NewError("inner", relay.ErrKindMalformedID, relay.ErrorExtensions{
			"hint": "check the token",
		})
		outer := relay.WrapError(inner, "outer")
		Expect(outer).Should(testutil.MatchRelayError(
			testutil.MessageEqual("outer"),
			testutil.KindIs(relay.ErrKindMalformedID),
		))
		Expect(outer.(*relay.Error).Extensions).Should(HaveKeyWithValue("hint", "check the token"))
	})

	It("prints op, message and kind", func() {
		err := relay.NewError("token rejected", relay.Op("relay.Resolve"), relay.ErrKindMalformedID)
		Expect(err.Error()).Should(Equal("relay.Resolve: token rejected: malformed id error"))
	})

	It("prints cascading errors on separate lines without repeating the kind", func() {
		inner := relay.NewError("inner detail", relay.ErrKindNotFound)
		// The outer error inherits the inner kind, so the kind prints once at the outer level and
		// is suppressed when the inner error is cascaded.
		outer := relay.NewError("outer message", relay.Op("relay.Resolve"), inner)
		Expect(outer.Error()).Should(Equal(
			"relay.Resolve: outer message: object not found error:\n  inner detail"))
	})

	It("reports the kind through KindOf", func() {
		Expect(relay.KindOf(relay.NewError("x", relay.ErrKindCancelled))).Should(Equal(relay.ErrKindCancelled))
		Expect(relay.KindOf(errors.New("plain"))).Should(Equal(relay.ErrKindOther))
	})

	Describe("JSON serialization", func() {
		It("writes the GraphQL error shape with a code extension", func() {
			err := relay.NewError("boom", relay.ErrKindDuplicateType)
			Expect(jsoniter.MarshalToString(err)).Should(MatchJSON(
				`{"message": "boom", "extensions": {"code": "DUPLICATE_TYPE"}}`))
		})

		It("presents unresolvable tokens as NOT_FOUND without leaking the failure class", func() {
			for _, kind := range []relay.ErrKind{
				relay.ErrKindMalformedID,
				relay.ErrKindUnknownType,
				relay.ErrKindNotFound,
			} {
				err := relay.NewError("no such node", kind)
				Expect(jsoniter.MarshalToString(err)).Should(MatchJSON(
					`{"message": "no such node", "extensions": {"code": "NOT_FOUND"}}`))
			}
		})

		It("merges extensions data next to the code", func() {
			err := relay.NewError("boom", relay.ErrKindCancelled, relay.ErrorExtensions{
				"requestId": "r-1",
			})
			Expect(jsoniter.MarshalToString(err)).Should(MatchJSON(
				`{"message": "boom", "extensions": {"code": "CANCELLED", "requestId": "r-1"}}`))
		})
	})
})
