package shader

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying every graph failure. Use errors.Is to test an
// error returned by this module against them.
var (
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrAlreadyConnected     = errors.New("input already connected")
	ErrCyclicGraph          = errors.New("cyclic graph")
	ErrMissingRequiredInput = errors.New("missing required input")
	ErrUnresolvedReference  = errors.New("unresolved reference")
	ErrParse                = errors.New("parse error")
	ErrEngineRejected       = errors.New("engine rejected")
	ErrTerminalSink         = errors.New("invalid terminal sink")
	ErrDirection            = errors.New("invalid socket direction")
	ErrSealed               = errors.New("graph sealed")
	ErrUnknownKind          = errors.New("unknown node kind")
)

// Error describes a failure located on a node, socket or attribute.
type Error struct {
	Err    error // one of the Err* sentinels
	Node   string
	Kind   Kind
	Socket string
	Attr   string
	Detail string
	Cause  error
}

// NewError builds an Error for node n. n may be nil for failures that are not
// tied to a node.
func NewError(sentinel error, n Node, socket string, cause error, format string, args ...any) *Error {
	e := &Error{Err: sentinel, Socket: socket, Cause: cause}
	if n != nil {
		e.Node = n.Name()
		e.Kind = n.Kind()
	}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}

// AttrError builds a parse Error for attribute attr of node n.
func AttrError(n Node, attr string, cause error) *Error {
	e := NewError(ErrParse, n, "", cause, "")
	e.Attr = attr
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())

	var loc []string
	if e.Node != "" || e.Kind != "" {
		loc = append(loc, fmt.Sprintf("node %q (%s)", e.Node, e.Kind))
	}
	if e.Socket != "" {
		loc = append(loc, fmt.Sprintf("socket %q", e.Socket))
	}
	if e.Attr != "" {
		loc = append(loc, fmt.Sprintf("attribute %q", e.Attr))
	}
	if len(loc) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(loc, ", "))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}
