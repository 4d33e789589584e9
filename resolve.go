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
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/botobag/relay/concurrent"
	"github.com/botobag/relay/internal/util"
	"github.com/botobag/relay/iterator"
)

// Resolve decodes a global id token and fetches the object it identifies through the lookup
// function registered for the decoded type.
//
// Failures are distinguishable by kind: ErrKindMalformedID when the token cannot be decoded,
// ErrKindUnknownType when the decoded type was never registered, ErrKindNotFound when the lookup
// reports no object, and ErrKindCancelled when ctx is done before or during the lookup. ctx is
// passed through to the lookup so a request deadline bounds its I/O.
func (registry *Registry) Resolve(ctx context.Context, id GlobalID) (interface{}, error) {
	const op = Op("relay.Resolve")

	typeName, localID, err := registry.codec.Decode(id)
	if err != nil {
		return nil, err
	}

	nodeType := registry.nodeTypeFor(typeName)
	if nodeType == nil {
		return nil, NewError(unknownTypeMessage(typeName, registry.typeNames()), op, ErrKindUnknownType)
	}

	// Don't bother the lookup when the surrounding request is already done.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, NewError(fmt.Sprintf(
			`Resolution of node type "%s" was cancelled.`, typeName), op, ErrKindCancelled, ctxErr)
	}

	object, err := nodeType.lookup(ctx, localID)
	if err != nil {
		if err == context.Canceled || err == context.DeadlineExceeded || ctx.Err() != nil {
			return nil, NewError(fmt.Sprintf(
				`Resolution of node type "%s" was cancelled.`, typeName), op, ErrKindCancelled, err)
		}
		if err, ok := err.(*Error); ok {
			return nil, err
		}
		return nil, NewError(fmt.Sprintf(
			`Lookup for node type "%s" failed.`, typeName), op, err)
	}

	if object == nil {
		return nil, NewError(fmt.Sprintf(
			`No object of type "%s" was found for the given id.`, typeName), op, ErrKindNotFound)
	}

	return object, nil
}

// unknownTypeMessage builds the diagnostic for a decoded type name that was never registered,
// including suggestions for likely misregistrations.
func unknownTypeMessage(typeName string, registered []string) string {
	var message strings.Builder
	message.WriteString(`Unknown node type "`)
	message.WriteString(typeName)
	message.WriteString(`".`)

	// Map iteration order leaks into the candidate list; sort for stable suggestions.
	sort.Strings(registered)
	suggestions := util.SuggestionList(typeName, registered)
	if len(suggestions) > 0 {
		message.WriteString(` Did you mean `)
		util.OrList(&message, suggestions, 5, true /*quoted*/)
		message.WriteString(`?`)
	}

	return message.String()
}

// ResolveResult holds the outcome for one token given to ResolveMany: either the resolved object
// in Value or the error that position produced in Err, never both.
type ResolveResult struct {
	Value interface{}
	Err   error
}

// ResolveMany applies Resolve to each token independently. The i-th result always corresponds to
// the i-th token, and a failing token never aborts its siblings; callers decide whether any
// failure or every failure matters for their field semantics.
//
// Without an Executor in RegistryConfig the tokens are resolved one after another on the calling
// goroutine. With one, each resolution is submitted as its own task and ResolveMany blocks until
// all of them complete. The non-nil error return is reserved for a failure of the token iteration
// itself.
func (registry *Registry) ResolveMany(ctx context.Context, tokens Tokens) ([]ResolveResult, error) {
	const op = Op("relay.ResolveMany")

	var ids []GlobalID
	// Pre-allocate when a size hint is available.
	if tokens, ok := tokens.(TokensWithSize); ok {
		ids = make([]GlobalID, 0, tokens.Size())
	}

	tokenIter := tokens.Iterator()
	for {
		id, err := tokenIter.Next()
		if err == iterator.Done {
			break
		} else if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	results := make([]ResolveResult, len(ids))

	executor := registry.executor
	if executor == nil {
		for i, id := range ids {
			results[i].Value, results[i].Err = registry.Resolve(ctx, id)
		}
		return results, nil
	}

	handles := make([]concurrent.TaskHandle, len(ids))
	for i, id := range ids {
		id := id
		handle, err := executor.Submit(concurrent.TaskFunc(func() (interface{}, error) {
			return registry.Resolve(ctx, id)
		}))
		if err != nil {
			// A rejected submission (e.g. the executor shut down) fails this slot only.
			results[i].Err = NewError("Unable to schedule node resolution.", op, ErrKindInternal, err)
			continue
		}
		handles[i] = handle
	}

	for i, handle := range handles {
		if handle == nil {
			continue
		}
		results[i].Value, results[i].Err = handle.AwaitResult(0)
	}

	return results, nil
}
