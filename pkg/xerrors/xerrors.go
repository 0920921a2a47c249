// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package xerrors defines the closed set of error kinds shared by the
// inventory, installer and boot configuration packages.
package xerrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind string

const (
	// KindUnsupportedPlatform means no implementation exists for the current OS.
	KindUnsupportedPlatform Kind = "unsupported platform"
	// KindIo means an external command or filesystem operation failed.
	KindIo Kind = "io"
	// KindValidation means a precondition or safety gate failed.
	KindValidation Kind = "validation"
	// KindParse means structured inventory output could not be decoded.
	KindParse Kind = "parse"
	// KindNotImplemented means a capability is stubbed on this platform.
	KindNotImplemented Kind = "not implemented"
)

// Error is an error tagged with a Kind. Every error is terminal for the
// current call; no retry state is carried.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Io builds an I/O error.
func Io(format string, args ...any) *Error {
	return New(KindIo, format, args...)
}

// Validation builds a validation error.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// Parse builds a parse error.
func Parse(format string, args ...any) *Error {
	return New(KindParse, format, args...)
}

// NotImplemented builds a not-implemented error.
func NotImplemented(format string, args ...any) *Error {
	return New(KindNotImplemented, format, args...)
}

// UnsupportedPlatform builds an unsupported-platform error.
func UnsupportedPlatform() *Error {
	return &Error{Kind: KindUnsupportedPlatform, Message: "no implementation for this operating system"}
}

// IsKind reports whether err (or any error it wraps) carries the given kind.
func IsKind(err error, kind Kind) bool {
	var typed *Error

	if !errors.As(err, &typed) {
		return false
	}

	return typed.Kind == kind
}
