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

package util_test

import (
	"strings"

	"github.com/botobag/relay/internal/util"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func orList(items []string, limit int, quoted bool) string {
	var out strings.Builder
	util.OrList(&out, items, limit, quoted)
	return out.String()
}

var _ = Describe("OrList", func() {
	It("writes nothing for an empty list", func() {
		Expect(orList(nil, 0, false)).Should(BeEmpty())
	})

	It("writes a single item as is", func() {
		Expect(orList([]string{"A"}, 0, false)).Should(Equal("A"))
	})

	It("joins two items with or", func() {
		Expect(orList([]string{"A", "B"}, 0, false)).Should(Equal("A or B"))
	})

	It("comma-separates three or more items", func() {
		Expect(orList([]string{"A", "B", "C"}, 0, false)).Should(Equal("A, B, or C"))
	})

	It("quotes items on request", func() {
		Expect(orList([]string{"A", "B", "C"}, 0, true)).Should(Equal(`"A", "B", or "C"`))
	})

	It("honors the limit", func() {
		Expect(orList([]string{"A", "B", "C", "D"}, 2, false)).Should(Equal("A or B"))
	})
})
