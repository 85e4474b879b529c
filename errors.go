//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialsend

import (
	"errors"
	"fmt"
)

// TransmitError reports which step of a transmission failed.
type TransmitError struct {
	code     ErrorCode
	device   string
	causedBy error
}

// ErrorCode identifies the failed step of a transmission
type ErrorCode int

const (
	// UsageError the command line or the line configuration is invalid
	UsageError ErrorCode = iota
	// OpenFailed the device could not be opened
	OpenFailed
	// QueryFailed the current device state could not be read
	QueryFailed
	// ConfigureFailed the line parameters could not be applied
	ConfigureFailed
	// TimeoutConfigFailed the timeouts could not be applied
	TimeoutConfigFailed
	// WriteFailed the payload could not be written
	WriteFailed
	// CloseFailed the device could not be closed
	CloseFailed
)

// NewUsageError returns a UsageError TransmitError wrapping cause.
func NewUsageError(cause error) *TransmitError {
	return &TransmitError{code: UsageError, causedBy: cause}
}

// EncodedErrorString returns a string explaining the error code
func (e TransmitError) EncodedErrorString() string {
	switch e.code {
	case UsageError:
		return "invalid usage"
	case OpenFailed:
		return fmt.Sprintf("serial port %s could not be opened", e.device)
	case QueryFailed:
		return "error getting device state"
	case ConfigureFailed:
		return "error setting device parameters"
	case TimeoutConfigFailed:
		return "error setting timeouts"
	case WriteFailed:
		return fmt.Sprintf("error writing text to %s", e.device)
	case CloseFailed:
		return fmt.Sprintf("error closing serial device %s", e.device)
	default:
		return "other error"
	}
}

// Error returns the complete error code with details on the cause of the error
func (e TransmitError) Error() string {
	if e.causedBy != nil {
		return e.EncodedErrorString() + ": " + e.causedBy.Error()
	}
	return e.EncodedErrorString()
}

// Unwrap returns the underlying platform error.
func (e TransmitError) Unwrap() error {
	return e.causedBy
}

// Code returns the failed step
func (e TransmitError) Code() ErrorCode {
	return e.code
}

// Device returns the name of the device involved, if any.
func (e TransmitError) Device() string {
	return e.device
}

// Errors flattens err into the list of TransmitErrors it carries, in the
// order they happened. Errors joined with errors.Join are expanded.
func Errors(err error) []*TransmitError {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var res []*TransmitError
		for _, e := range joined.Unwrap() {
			res = append(res, Errors(e)...)
		}
		return res
	}
	var te *TransmitError
	if errors.As(err, &te) {
		return []*TransmitError{te}
	}
	return []*TransmitError{{code: -1, causedBy: err}}
}

// IsFatal reports whether err should end the program with a failure
// status. A failed write alone is not fatal: the device was still opened
// and closed cleanly.
func IsFatal(err error) bool {
	for _, e := range Errors(err) {
		if e.code != WriteFailed {
			return true
		}
	}
	return false
}
