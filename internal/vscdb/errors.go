// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vscdb

import (
	"errors"
	"fmt"
	"strings"
)

// Kind labels the pipeline stage an Error came from. The string value is
// the message prefix callers see.
type Kind string

const (
	KindNotExist  Kind = "file does not exist"
	KindOpen      Kind = "cannot open store"
	KindPrepare   Kind = "query preparation failed"
	KindQuery     Kind = "query execution failed"
	KindSerialize Kind = "serialization failed"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrNotExist  = &Error{Kind: KindNotExist}
	ErrOpen      = &Error{Kind: KindOpen}
	ErrPrepare   = &Error{Kind: KindPrepare}
	ErrQuery     = &Error{Kind: KindQuery}
	ErrSerialize = &Error{Kind: KindSerialize}
)

// ErrMissingTable is matched by a prepare error whose cause is that the
// database has no ItemTable. The error still reports KindPrepare.
var ErrMissingTable = errors.New("missing " + TableName + " table")

// Error is a terminal failure of one read invocation.
type Error struct {
	Kind Kind

	// Path is the state database path the invocation was given.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindNotExist:
		return fmt.Sprintf("%s: %q", e.Kind, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the Kind sentinels and, for prepare failures caused by an
// absent table, ErrMissingTable.
func (e *Error) Is(target error) bool {
	if target == ErrMissingTable {
		return e.Kind == KindPrepare && isMissingTable(e.Err)
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Path == "" && t.Err == nil
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
