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
	"strings"
	"sync"
	"sync/atomic"

	"github.com/botobag/relay/concurrent"
)

// LookupFunc fetches the object identified by localID within its own type. Returning (nil, nil)
// reports that no such object exists; the registry turns it into an ErrKindNotFound error. The
// function may perform blocking I/O; it must honor cancellation signalled through ctx.
type LookupFunc func(ctx context.Context, localID string) (interface{}, error)

// LocalIDFunc extracts the type-local id from a domain object for encoding.
type LocalIDFunc func(object interface{}) (string, error)

// TypeNameFunc discovers the node type name for a domain object. It is supplied by the registry
// owner (see RegistryConfig.TypeName) instead of being inferred from runtime type inspection, so
// the set of identifiable types stays explicit.
type TypeNameFunc func(object interface{}) (string, error)

// TypeConfig describes one node type to register.
type TypeConfig struct {
	// Name of the node type; must be unique within a Registry and must not contain the id
	// separator character.
	Name string

	// Lookup fetches an object of this type by its local id. Required.
	Lookup LookupFunc

	// LocalID extracts the local id from an object of this type for encoding. Required for types
	// passed to IDFor or GlobalIDFor; a type only ever resolved by token may omit it.
	LocalID LocalIDFunc
}

// RegistryConfig contains options to configure a Registry.
type RegistryConfig struct {
	// Codec converts between (type name, local id) pairs and tokens. Defaults to Base64Codec.
	Codec Codec

	// TypeName discovers the type name for objects passed to GlobalIDFor. Optional; GlobalIDFor
	// fails with ErrKindUnresolvedType when unset.
	TypeName TypeNameFunc

	// Executor, when provided, fans ResolveMany resolutions out to its workers instead of
	// resolving tokens one after another on the calling goroutine.
	Executor concurrent.Executor
}

// nodeType is the registered form of a TypeConfig.
type nodeType struct {
	lookup  LookupFunc
	localID LocalIDFunc
}

// A Registry maps node type names to the functions that look their objects up, and produces the
// global ids that name those objects in the first place.
//
// A Registry has two lifecycle phases. While open, Register adds types and resolution is already
// permitted for the types registered so far. Seal transitions the registry into its final
// read-only phase: no further registration, resolution from any number of goroutines without
// locking. The transition is one-way.
type Registry struct {
	codec    Codec
	typeName TypeNameFunc
	executor concurrent.Executor

	// Guards types during the open phase. Sealed-phase readers skip it; the map is immutable from
	// then on.
	mutex  sync.Mutex
	sealed int32
	types  map[string]*nodeType
}

// NewRegistry creates an open Registry from given config.
func NewRegistry(config RegistryConfig) (*Registry, error) {
	codec := config.Codec
	if codec == nil {
		codec = Base64Codec{}
	}

	return &Registry{
		codec:    codec,
		typeName: config.TypeName,
		executor: config.Executor,
		types:    map[string]*nodeType{},
	}, nil
}

// Register associates a node type name with its lookup and accessor functions. It fails with an
// ErrKindDuplicateType error when the name is already registered (registration never overwrites)
// and with an ErrKindSealed error after Seal. Registration errors indicate a programming mistake
// during startup and should be treated as fatal; the registry is left unchanged.
func (registry *Registry) Register(config TypeConfig) error {
	const op = Op("relay.Register")

	if len(config.Name) == 0 {
		return NewError("Must provide a name for the node type.", op)
	}
	// Reject a separator character in the name before it breaks round-trips.
	if strings.Contains(config.Name, idSeparator) {
		return NewError(fmt.Sprintf(
			`Node type name "%s" must not contain the separator character "%s".`,
			config.Name, idSeparator), op)
	}
	if config.Lookup == nil {
		return NewError(fmt.Sprintf(`Must provide a lookup function for node type "%s".`, config.Name), op)
	}

	registry.mutex.Lock()
	defer registry.mutex.Unlock()

	if registry.Sealed() {
		return NewError(fmt.Sprintf(
			`Cannot register node type "%s": the registry has been sealed.`, config.Name), op, ErrKindSealed)
	}

	if _, exists := registry.types[config.Name]; exists {
		return NewError(fmt.Sprintf(
			`Node type "%s" has already been registered.`, config.Name), op, ErrKindDuplicateType)
	}

	registry.types[config.Name] = &nodeType{
		lookup:  config.Lookup,
		localID: config.LocalID,
	}
	return nil
}

// Seal transitions the registry from the open phase into the sealed phase. Subsequent Register
// calls fail deterministically; resolution proceeds without locking. Sealing an already sealed
// registry is a no-op.
func (registry *Registry) Seal() {
	registry.mutex.Lock()
	atomic.StoreInt32(&registry.sealed, 1)
	registry.mutex.Unlock()
}

// Sealed reports whether Seal has been called.
func (registry *Registry) Sealed() bool {
	return atomic.LoadInt32(&registry.sealed) != 0
}

// nodeTypeFor fetches a registered type by name. During the open phase the access takes the
// registration lock; once sealed the map is immutable and read directly.
func (registry *Registry) nodeTypeFor(name string) *nodeType {
	if !registry.Sealed() {
		registry.mutex.Lock()
		defer registry.mutex.Unlock()
	}
	return registry.types[name]
}

// typeNames returns the registered type names for diagnostics.
func (registry *Registry) typeNames() []string {
	if !registry.Sealed() {
		registry.mutex.Lock()
		defer registry.mutex.Unlock()
	}
	names := make([]string, 0, len(registry.types))
	for name := range registry.types {
		names = append(names, name)
	}
	return names
}

// IDFor encodes a global id for the given object as the given node type. The local id comes from
// the LocalID accessor registered for the type; an accessor failure is surfaced to the caller
// as-is. Naming an unregistered type fails with an ErrKindUnresolvedType error because the
// encode-side type lookup, not token decoding, is what failed.
func (registry *Registry) IDFor(object interface{}, typeName string) (GlobalID, error) {
	const op = Op("relay.IDFor")

	nodeType := registry.nodeTypeFor(typeName)
	if nodeType == nil {
		return "", NewError(fmt.Sprintf(
			`Cannot encode a global id for unregistered node type "%s".`, typeName), op, ErrKindUnresolvedType)
	}
	if nodeType.localID == nil {
		return "", NewError(fmt.Sprintf(
			`Node type "%s" was registered without a LocalID accessor.`, typeName), op, ErrKindUnresolvedType)
	}

	localID, err := nodeType.localID(object)
	if err != nil {
		return "", err
	}

	return registry.codec.Encode(typeName, localID)
}

// GlobalIDFor encodes a global id for the given object, discovering its node type through the
// TypeName function supplied in RegistryConfig. A missing TypeName function or a discovery
// failure yields an ErrKindUnresolvedType error.
func (registry *Registry) GlobalIDFor(object interface{}) (GlobalID, error) {
	const op = Op("relay.GlobalIDFor")

	typeNameFunc := registry.typeName
	if typeNameFunc == nil {
		return "", NewError(
			"Registry was created without a TypeName function; use IDFor with an explicit type name.",
			op, ErrKindUnresolvedType)
	}

	typeName, err := typeNameFunc(object)
	if err != nil {
		return "", NewError(fmt.Sprintf(
			"Unable to discover the node type for %T.", object), op, ErrKindUnresolvedType, err)
	}
	if len(typeName) == 0 {
		return "", NewError(fmt.Sprintf(
			"No node type name was reported for %T.", object), op, ErrKindUnresolvedType)
	}

	return registry.IDFor(object, typeName)
}
