// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package apperr

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"syscall"
)

// Kind identifies the stage and class of a failure
type Kind int

const (
	KindUnknown Kind = iota
	KindConfigNotFound
	KindConfigParse
	KindConfigType
	KindDocumentOpen
	KindWrite
	KindUsage
)

// Sentinel kinds usable with errors.Is
var (
	ConfigNotFound    = &Error{Kind: KindConfigNotFound}
	ConfigParseError  = &Error{Kind: KindConfigParse}
	ConfigTypeError   = &Error{Kind: KindConfigType}
	DocumentOpenError = &Error{Kind: KindDocumentOpen}
	WriteError        = &Error{Kind: KindWrite}
	UsageError        = &Error{Kind: KindUsage}
)

func (k Kind) String() string {
	switch k {
	case KindConfigNotFound:
		return "ConfigNotFound"
	case KindConfigParse:
		return "ConfigParseError"
	case KindConfigType:
		return "ConfigTypeError"
	case KindDocumentOpen:
		return "DocumentOpenError"
	case KindWrite:
		return "WriteError"
	case KindUsage:
		return "UsageError"
	default:
		return "UnknownError"
	}
}

// Stage returns the human readable pipeline stage a kind belongs to
func (k Kind) Stage() string {
	switch k {
	case KindConfigNotFound, KindConfigParse, KindConfigType:
		return "metadata configuration"
	case KindDocumentOpen:
		return "input document"
	case KindWrite:
		return "output"
	case KindUsage:
		return "usage"
	default:
		return "processing"
	}
}

// Error wraps a failure with its kind, the path involved and an optional hint
type Error struct {
	Kind       Kind
	Path       string
	Message    string
	Original   error
	Suggestion string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Stage())
	if e.Path != "" {
		fmt.Fprintf(&b, " '%s'", e.Path)
	}
	b.WriteString(": ")
	switch {
	case e.Message != "" && e.Original != nil:
		fmt.Fprintf(&b, "%s: %v", e.Message, e.Original)
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Original != nil:
		b.WriteString(e.Original.Error())
	default:
		b.WriteString(e.Kind.String())
	}
	if e.Suggestion != "" {
		b.WriteString(". ")
		b.WriteString(e.Suggestion)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Original
}

// Is matches any *Error of the same kind, so the sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an error of the given kind
func New(kind Kind, path, message string, original error) *Error {
	return &Error{
		Kind:       kind,
		Path:       path,
		Message:    message,
		Original:   original,
		Suggestion: suggest(kind, original),
	}
}

// KindOf returns the kind of err, or KindUnknown when err carries none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// ExitCode maps an error onto the process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if KindOf(err) == KindUsage {
		return 2
	}
	return 1
}

func suggest(kind Kind, err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EACCES):
		if kind == KindWrite {
			return "Check that the output directory is writable"
		}
		return "Check the file permissions"
	case errors.Is(err, syscall.ENOSPC):
		return "The disk is full"
	case errors.Is(err, syscall.EROFS):
		return "The file system is read-only"
	case errors.Is(err, fs.ErrNotExist) && kind == KindWrite:
		return "The output directory does not exist"
	}
	return ""
}
