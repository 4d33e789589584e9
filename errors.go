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
	"fmt"
	"log"
	"reflect"
	"runtime"
	"strings"
	"unsafe"

	"github.com/json-iterator/go"
)

// Op describes an operation, usually as the package and method, such as "relay.Resolve".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of Kind
const (
	ErrKindOther          ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindMalformedID                   // The token cannot be decoded into a (type name, local id) pair.
	ErrKindUnknownType                   // The decoded type name was never registered.
	ErrKindNotFound                      // The registered lookup did not find an object for the local id.
	ErrKindDuplicateType                 // A type name was registered more than once.
	ErrKindUnresolvedType                // Encoding-side type discovery failed.
	ErrKindSealed                        // Registration was attempted on a sealed registry.
	ErrKindCancelled                     // The surrounding operation was cancelled before resolution completed.
	ErrKindInternal                      // Internal error
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindMalformedID:
		return "malformed id error"
	case ErrKindUnknownType:
		return "unknown type error"
	case ErrKindNotFound:
		return "object not found error"
	case ErrKindDuplicateType:
		return "duplicate type error"
	case ErrKindUnresolvedType:
		return "unresolved type error"
	case ErrKindSealed:
		return "sealed registry error"
	case ErrKindCancelled:
		return "cancelled error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// Code returns the machine-readable code written to the "extensions" entry when the error is
// serialized into a response. Resolution failures caused by an unresolvable token (a malformed id,
// an unregistered type or a missing object) all present NOT_FOUND so the response does not reveal
// which type names exist in the schema.
func (k ErrKind) Code() string {
	switch k {
	case ErrKindMalformedID, ErrKindUnknownType, ErrKindNotFound:
		return "NOT_FOUND"
	case ErrKindDuplicateType:
		return "DUPLICATE_TYPE"
	case ErrKindUnresolvedType:
		return "UNRESOLVED_TYPE"
	case ErrKindSealed:
		return "REGISTRY_SEALED"
	case ErrKindCancelled:
		return "CANCELLED"
	}
	return "INTERNAL"
}

// ErrorExtensions provides an additional entry to a serialized error with key "extensions". It is
// useful for attaching vendor-specific error data (such as error code).
type ErrorExtensions map[string]interface{}

// ErrorWithExtensions indicates an error that contains extensions data. If "extensions" is not
// given in the arguments to NewError, NewError will retrieve the one from the underlying error (if
// provided) that implements this interface.
type ErrorWithExtensions interface {
	Extensions() ErrorExtensions
}

// An Error describes a failure occurred while encoding a global id or resolving one back to an
// object. It can be serialized to JSON for inclusion in a GraphQL response.
//
// An Error can be built by wrapping an error value. Information (if unspecified in the arguments
// to NewError) in the error value will be propagated to the newly created Error. During
// resolution, the Error value is returned along the call path to the top; each intermediate
// function will either pass through the error to its caller or wrap it with further information.
//
// It also includes Op and ErrKind which will show when printing the error value. This makes it
// helpful for programmers.
type Error struct {
	// Message describes the error for debugging purposes.
	Message string

	// Extensions contains data to be added to the error response
	Extensions ErrorExtensions

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed, usually the name of the method being invoked.
	Op Op

	// Kind is the class of error
	Kind ErrKind
}

// Error implements Go error interface.
var _ error = (*Error)(nil)

// NewError builds an error value from arguments. Inspired by the design of upspin.io/errors [0].
//
// [0]: https://commandcenter.blogspot.com/2017/12/error-handling-in-upspin.html.
func NewError(message string, args ...interface{}) error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorExtensions:
			e.Extensions = arg

		case error:
			e.Err = arg

		case Op:
			e.Op = arg

		case ErrKind:
			e.Kind = arg

		default:
			_, file, line, _ := runtime.Caller(1)
			log.Printf("NewError: bad call from %s:%d: %v", file, line, args)
			return fmt.Errorf("unknown type %T, value %v in error call", arg, arg)
		}
	}

	// Propagate extensions and kind from underlying error when one is not provided in argument.
	prev := e.Err
	if prev != nil {
		if e.Extensions == nil {
			switch errWithExtensions := prev.(type) {
			case ErrorWithExtensions:
				e.Extensions = errWithExtensions.Extensions()
			case *Error:
				e.Extensions = errWithExtensions.Extensions
			}
		}

		// Pull kind from underlying error.
		if e.Kind == ErrKindOther {
			if prev, ok := prev.(*Error); ok {
				e.Kind = prev.Kind
			}
		}
	}

	return e
}

// WrapError is a convenient wrapper to build an Error value from an underlying error with a
// message.
func WrapError(err error, message string) error {
	return NewError(message, err)
}

// WrapErrorf is similar to WrapError but with the format specifier.
func WrapErrorf(err error, format string, args ...interface{}) error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// KindOf returns the ErrKind carried by err, or ErrKindOther when err is not an *Error created by
// this package. Callers use it to decide retry versus surface-to-user behavior without string
// matching.
func KindOf(err error) ErrKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ErrKindOther
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

func (e *Error) printError(b *strings.Builder, nextErr *Error) {
	// If the previous error was also one of ours, suppress duplications so the message won't
	// contain the same kind or extensions twice.
	initialLen := b.Len()

	// pad appends str to the buffer if the buffer already has some data.
	pad := func(str string) {
		if b.Len() == initialLen {
			return
		}
		b.WriteString(str)
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	if e.Kind != ErrKindOther {
		// Don't print kind if the next error has the same kind as ours.
		if nextErr == nil || nextErr.Kind != e.Kind {
			pad(": ")
			b.WriteString(e.Kind.String())
		}
	}

	if len(e.Extensions) > 0 {
		// Don't print extensions if the next error already did.
		if nextErr == nil || !reflect.DeepEqual(nextErr.Extensions, e.Extensions) {
			pad(" (additional info: ")
			b.WriteString(fmt.Sprintf("%v)", e.Extensions))
		}
	}

	if e.Err != nil {
		if prev, ok := e.Err.(*Error); ok {
			// Indent on new line if we are cascading non-empty Error.
			pad(":\n  ")
			prev.printError(b, e)
		} else {
			pad(": ")
			b.WriteString(e.Err.Error())
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

// errorMarshaller implements jsoniter.ValEncoder to encode Error to JSON.
type errorMarshaller struct{}

var _ jsoniter.ValEncoder = errorMarshaller{}

// IsEmpty implements jsoniter.ValEncoder.
func (errorMarshaller) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

// Encode implements jsoniter.ValEncoder.
func (errorMarshaller) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(err.Message)

	stream.WriteMore()
	stream.WriteObjectField("extensions")
	stream.WriteObjectStart()
	stream.WriteObjectField("code")
	stream.WriteString(err.Kind.Code())
	for k, v := range err.Extensions {
		if k == "code" {
			continue
		}
		stream.WriteMore()
		stream.WriteObjectField(k)
		stream.WriteVal(v)
	}
	stream.WriteObjectEnd()

	stream.WriteObjectEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("relay.Error", errorMarshaller{})
}
