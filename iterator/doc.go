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

// Package iterator documents the guidelines for the iterator pattern used throughout this module.
// The pattern draws significant inspiration from the Iterator Guidelines established for Google
// Cloud Client Libraries for Go [0].
//
// An "iterable" resource provides a method named Iterator which returns an iterator over its
// elements. The iterator has a single Next method returning the next element, or the sentinel
// error iterator.Done once the iteration is exhausted. For example, relay.Tokens iterates over
// global id tokens fed to ResolveMany:
//
//	iter := tokens.Iterator()
//	for {
//		token, err := iter.Next()
//		if err == iterator.Done {
//			break
//		} else if err != nil {
//			return err
//		}
//		process(token)
//	}
//
// Returning Done from a custom iterator is the only contract an iterable source must honor;
// everything else (size hints, backing storage) is optional.
//
// [0]: https://github.com/googleapis/google-cloud-go/wiki/Iterator-Guidelines
package iterator
