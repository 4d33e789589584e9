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

// Package relay implements global object identification as described by the Relay GraphQL Server
// Specification [0].
//
// The package has two cooperating pieces. A Codec converts between a (type name, local id) pair
// and a single opaque GlobalID token suitable for use as the value of an "id" field. A Registry
// maps type names to lookup functions supplied by the application so that a token can be resolved
// back to the object it identifies (the Relay "node" root field).
//
// A schema layer typically creates one Registry during startup, registers every node type, seals
// the registry, then serves resolution from as many goroutines as it likes:
//
//	registry, err := relay.NewRegistry(relay.RegistryConfig{})
//	...
//	err = registry.Register(relay.TypeConfig{
//		Name: "Post",
//		Lookup: func(ctx context.Context, localID string) (interface{}, error) {
//			return postStore.Get(ctx, localID)
//		},
//		LocalID: func(object interface{}) (string, error) {
//			return object.(*Post).ID, nil
//		},
//	})
//	...
//	registry.Seal()
//
//	// Serving:
//	id, err := registry.IDFor(post, "Post")
//	node, err := registry.Resolve(ctx, id)
//
// The default Base64Codec produces deterministic tokens by joining the pair with a separator and
// applying a URL-safe base64 transform. It is an obfuscation, not a confidentiality measure; use
// SecretCodec (or any custom Codec) when tokens must not reveal type names and local ids.
//
// [0]: https://relay.dev/docs/guides/graphql-server-specification/#object-identification
package relay
