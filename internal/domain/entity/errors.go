package entity

import (
	"errors"
	"fmt"
)

// ErrorKind labels a bridge error for diagnostics.
type ErrorKind string

const (
	KindSerialization ErrorKind = "serialization"
	KindMalformed     ErrorKind = "malformed_message"
	KindUnrouted      ErrorKind = "unrouted_message"
	KindDisposed      ErrorKind = "disposed"
	KindHandler       ErrorKind = "handler"
	KindInjection     ErrorKind = "injection"
	KindDelivery      ErrorKind = "delivery"
	KindUnknown       ErrorKind = "unknown"
)

var (
	// ErrDuplicateHandler is returned when a routing key is registered twice.
	ErrDuplicateHandler = errors.New("handler already registered for routing key")
	// ErrRouterBound is returned when a router is bound to a second controller.
	ErrRouterBound = errors.New("router is already bound to a webview")
	// ErrRouterUnbound is returned by Deliver before any webview is bound.
	ErrRouterUnbound = errors.New("router is not bound to a webview")
	// ErrEmptyURL is returned when navigating to an empty URL.
	ErrEmptyURL = errors.New("url cannot be empty")
)

// SerializationError means a value could not be converted to wire text.
type SerializationError struct {
	Type string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize %s: %v", e.Type, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Kind implements KindedError.
func (e *SerializationError) Kind() ErrorKind { return KindSerialization }

// MalformedMessageError means inbound text failed to parse.
type MalformedMessageError struct {
	Payload string
	Err     error
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("malformed message: %v", e.Err)
}

func (e *MalformedMessageError) Unwrap() error { return e.Err }

// Kind implements KindedError.
func (e *MalformedMessageError) Kind() ErrorKind { return KindMalformed }

// UnroutedMessageError means no handler matched a well-formed message.
type UnroutedMessageError struct {
	Key    string
	Origin Origin
}

func (e *UnroutedMessageError) Error() string {
	if e.Key == "" {
		return "no handler for message without routing key"
	}
	return fmt.Sprintf("no handler for routing key %q", e.Key)
}

// Kind implements KindedError.
func (e *UnroutedMessageError) Kind() ErrorKind { return KindUnrouted }

// DisposedError means an operation was attempted after teardown.
type DisposedError struct {
	Op string
}

func (e *DisposedError) Error() string {
	return fmt.Sprintf("%s: webview disposed", e.Op)
}

// Kind implements KindedError.
func (e *DisposedError) Kind() ErrorKind { return KindDisposed }

// HandlerError wraps a failure raised by a registered handler.
type HandlerError struct {
	Key string
	Err error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %q: %v", e.Key, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// Kind implements KindedError.
func (e *HandlerError) Kind() ErrorKind { return KindHandler }

// InjectionError means the surface rejected the bridge script.
type InjectionError struct {
	URL string
	Err error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("install bridge on %s: %v", e.URL, e.Err)
}

func (e *InjectionError) Unwrap() error { return e.Err }

// Kind implements KindedError.
func (e *InjectionError) Kind() ErrorKind { return KindInjection }

// DeliveryError means the surface failed to run a host-to-page message.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver message: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Kind implements KindedError.
func (e *DeliveryError) Kind() ErrorKind { return KindDelivery }

// KindedError is implemented by every bridge error type.
type KindedError interface {
	error
	Kind() ErrorKind
}

// KindOf returns the kind of the first bridge error in err's chain.
func KindOf(err error) ErrorKind {
	var kinded KindedError
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return KindUnknown
}

// IsDisposed reports whether err is a DisposedError.
func IsDisposed(err error) bool {
	var d *DisposedError
	return errors.As(err, &d)
}
