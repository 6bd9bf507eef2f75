/*
Copyright 2026 The imgfs Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package imgfserr defines the error taxonomy shared by the imgFS
// container library, its HTTP server and its command-line front end.
//
// Every mutating or reading operation that can fail returns a Kind
// rather than an ad-hoc error string, so that callers at every layer
// (CLI exit codes, HTTP status translation) can make decisions on the
// failure without parsing text.
package imgfserr

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation failed.
type Kind int

const (
	None Kind = iota
	InvalidArgument
	OutOfMemory
	IO
	Runtime
	NotEnoughArguments
	InvalidCommand
	InvalidImgID
	ImgfsFull
	ImageNotFound
	DuplicateID
	Resolutions
	MaxFiles
	ImgLib
	Debug
)

var messages = map[Kind]string{
	None:               "no error",
	InvalidArgument:    "invalid argument",
	OutOfMemory:        "out of memory",
	IO:                 "I/O error",
	Runtime:            "runtime error",
	NotEnoughArguments: "not enough arguments",
	InvalidCommand:     "invalid command",
	InvalidImgID:       "invalid image ID",
	ImgfsFull:          "imgFS is full",
	ImageNotFound:      "image not found",
	DuplicateID:        "duplicate ID",
	Resolutions:        "invalid resolutions",
	MaxFiles:           "invalid max_files",
	ImgLib:             "image library error",
	Debug:              "debug error",
}

// String returns the human-readable message for k, matching the
// reference implementation's ERR_MSG table.
func (k Kind) String() string {
	if m, ok := messages[k]; ok {
		return m
	}
	return "unknown error"
}

// Error is the concrete error type returned by imgFS operations. It
// pairs a Kind with an optional underlying cause.
type Error struct {
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error of the given kind with no underlying cause.
func New(k Kind) *Error { return &Error{Kind: k} }

// Wrap builds an *Error of the given kind around cause. Wrap(None, nil)
// returns nil; any other kind yields a non-nil *Error even when cause
// is nil.
func Wrap(k Kind, cause error) error {
	if k == None && cause == nil {
		return nil
	}
	return &Error{Kind: k, Cause: cause}
}

// KindOf extracts the Kind from err, defaulting to Runtime for any
// error that didn't originate in this package (e.g. a bare os.PathError
// that escaped an I/O call site without being wrapped).
func KindOf(err error) Kind {
	if err == nil {
		return None
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Runtime
}
