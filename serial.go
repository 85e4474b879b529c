//
// Copyright 2014-2017 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialsend // import "github.com/abakum/serialsend"

import (
	"fmt"
	"time"
)

// Driver gives access to the serial devices of the host.
type Driver interface {
	// Open acquires exclusive read/write access to an existing serial
	// device. It fails if the device is missing or already in use.
	Open(name string) (Device, error)
}

// Device is an open serial device handle.
type Device interface {
	// GetState reads the current line state of the device. The returned
	// value is the baseline that SetState writes back.
	GetState() (*LineState, error)

	// SetState pushes the line state back to the device.
	SetState(state *LineState) error

	// SetTimeouts configures how long reads and writes may block.
	SetTimeouts(t *Timeouts) error

	// Send the content of the data byte array to the serial port.
	// Returns the number of bytes written.
	Write(p []byte) (n int, err error)

	// Close the serial port
	Close() error
}

// LineState is the line configuration of a device as reported by the
// platform. Native holds the platform control block the Mode was decoded
// from, so that fields not covered by Mode survive a round trip.
type LineState struct {
	Mode
	Native interface{}
}

// Named defaults of the line configuration: 38400 baud, 8N1.
const (
	DefaultBaudRate = 38400
	DefaultDataBits = 8
	DefaultParity   = NoParity
	DefaultStopBits = OneStopBit
)

// Mode describes a serial port configuration.
type Mode struct {
	BaudRate int      // The serial port bitrate (aka Baudrate)
	DataBits int      // Size of the character (must be 5, 6, 7 or 8)
	Parity   Parity   // Parity (see Parity type for more info)
	StopBits StopBits // Stop bits (see StopBits type for more info)
}

// DefaultMode returns the 38400_N81 configuration.
func DefaultMode() Mode {
	return Mode{
		BaudRate: DefaultBaudRate,
		DataBits: DefaultDataBits,
		Parity:   DefaultParity,
		StopBits: DefaultStopBits,
	}
}

// Validate checks that every field holds a supported value. 1.5 stop
// bits are refused on Linux, where termios cannot express them.
func (m Mode) Validate() error {
	if m.BaudRate <= 0 {
		return &PortError{code: InvalidSpeed}
	}
	if m.DataBits < 5 || m.DataBits > 8 {
		return &PortError{code: InvalidDataBits}
	}
	if _, ok := parityChars[m.Parity]; !ok {
		return &PortError{code: InvalidParity}
	}
	if m.StopBits < OneStopBit || m.StopBits > TwoStopBits {
		return &PortError{code: InvalidStopBits}
	}
	if m.StopBits == OnePointFiveStopBits && !nativeOnePointFiveStopBits {
		return &PortError{code: InvalidStopBits}
	}
	return nil
}

// String formats the mode as "38400_N81".
func (m Mode) String() string {
	stop := "1"
	switch m.StopBits {
	case OnePointFiveStopBits:
		stop = "1.5"
	case TwoStopBits:
		stop = "2"
	}
	return fmt.Sprintf("%d_%c%d%s", m.BaudRate, parityChars[m.Parity], m.DataBits, stop)
}

// ModeFromString parses a frame description like "8N1" or "7E2" (data
// bits, parity letter, stop bits) into mode. The baud rate is left
// untouched.
func ModeFromString(s string, mode *Mode) error {
	if len(s) != 3 {
		return &PortError{code: InvalidFrame, causedBy: fmt.Errorf("malformed frame %q", s)}
	}
	dataBits := int(s[0] - '0')
	if dataBits < 5 || dataBits > 8 {
		return &PortError{code: InvalidDataBits}
	}
	parity, ok := parityLetters[s[1]]
	if !ok {
		return &PortError{code: InvalidParity}
	}
	var stopBits StopBits
	switch s[2] {
	case '1':
		stopBits = OneStopBit
	case '2':
		stopBits = TwoStopBits
	default:
		return &PortError{code: InvalidStopBits}
	}
	mode.DataBits = dataBits
	mode.Parity = parity
	mode.StopBits = stopBits
	return nil
}

// Parity describes a serial port parity setting
type Parity int

const (
	// NoParity disable parity control (default)
	NoParity Parity = iota
	// OddParity enable odd-parity check
	OddParity
	// EvenParity enable even-parity check
	EvenParity
	// MarkParity enable mark-parity (always 1) check
	MarkParity
	// SpaceParity enable space-parity (always 0) check
	SpaceParity
)

var parityChars = map[Parity]byte{
	NoParity:    'N',
	OddParity:   'O',
	EvenParity:  'E',
	MarkParity:  'M',
	SpaceParity: 'S',
}

var parityLetters = map[byte]Parity{
	'N': NoParity, 'n': NoParity,
	'O': OddParity, 'o': OddParity,
	'E': EvenParity, 'e': EvenParity,
	'M': MarkParity, 'm': MarkParity,
	'S': SpaceParity, 's': SpaceParity,
}

// StopBits describe a serial port stop bits setting
type StopBits int

const (
	// OneStopBit sets 1 stop bit (default)
	OneStopBit StopBits = iota
	// OnePointFiveStopBits sets 1.5 stop bits
	OnePointFiveStopBits
	// TwoStopBits sets 2 stop bits
	TwoStopBits
)

// Named defaults of the timeout policy.
const (
	DefaultReadIntervalTimeout         = 50 * time.Millisecond
	DefaultReadTotalTimeoutConstant    = 50 * time.Millisecond
	DefaultReadTotalTimeoutMultiplier  = 10 * time.Millisecond
	DefaultWriteTotalTimeoutConstant   = 50 * time.Millisecond
	DefaultWriteTotalTimeoutMultiplier = 10 * time.Millisecond
)

// Timeouts bound the time a read or a write may block. A total timeout is
// computed as Constant + Multiplier * number of bytes. Zero values
// disable the respective bound.
type Timeouts struct {
	ReadInterval         time.Duration
	ReadTotalConstant    time.Duration
	ReadTotalMultiplier  time.Duration
	WriteTotalConstant   time.Duration
	WriteTotalMultiplier time.Duration
}

// DefaultTimeouts returns the policy applied to every transmission:
// 50ms constants and 10ms per byte in both directions.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		ReadInterval:         DefaultReadIntervalTimeout,
		ReadTotalConstant:    DefaultReadTotalTimeoutConstant,
		ReadTotalMultiplier:  DefaultReadTotalTimeoutMultiplier,
		WriteTotalConstant:   DefaultWriteTotalTimeoutConstant,
		WriteTotalMultiplier: DefaultWriteTotalTimeoutMultiplier,
	}
}

// WriteTotal returns the time allowed to write n bytes, 0 if unbounded.
func (t *Timeouts) WriteTotal(n int) time.Duration {
	return t.WriteTotalConstant + time.Duration(n)*t.WriteTotalMultiplier
}

// PortError is a platform independent error type for serial ports
type PortError struct {
	code     PortErrorCode
	causedBy error
}

// PortErrorCode is a code to easily identify the type of error
type PortErrorCode int

const (
	// PortBusy the serial port is already in used by another process
	PortBusy PortErrorCode = iota
	// PortNotFound the requested port doesn't exist
	PortNotFound
	// InvalidSerialPort the requested port is not a serial port
	InvalidSerialPort
	// PermissionDenied the user doesn't have enough priviledges
	PermissionDenied
	// InvalidSpeed the requested speed is not valid or not supported
	InvalidSpeed
	// InvalidDataBits the number of data bits is not valid or not supported
	InvalidDataBits
	// InvalidParity the selected parity is not valid or not supported
	InvalidParity
	// InvalidStopBits the selected number of stop bits is not valid or not supported
	InvalidStopBits
	// InvalidTimeoutValue the timeout value is not valid or not supported
	InvalidTimeoutValue
	// FunctionNotImplemented the requested function is not implemented
	FunctionNotImplemented
	// OsError operating system function error
	OsError
	// InvalidFrame the frame description is not of the "8N1" form
	InvalidFrame
)

// EncodedErrorString returns a string explaining the error code
func (e PortError) EncodedErrorString() string {
	switch e.code {
	case PortBusy:
		return "Serial port busy"
	case PortNotFound:
		return "Serial port not found"
	case InvalidSerialPort:
		return "Invalid serial port"
	case PermissionDenied:
		return "Permission denied"
	case InvalidSpeed:
		return "Port speed invalid or not supported"
	case InvalidDataBits:
		return "Port data bits invalid or not supported"
	case InvalidParity:
		return "Port parity invalid or not supported"
	case InvalidStopBits:
		return "Port stop bits invalid or not supported"
	case InvalidTimeoutValue:
		return "Timeout value invalid or not supported"
	case FunctionNotImplemented:
		return "Function not implemented"
	case OsError:
		return "Operating system error"
	case InvalidFrame:
		return "Frame format invalid"
	default:
		return "Other error"
	}
}

// Error returns the complete error code with details on the cause of the error
func (e PortError) Error() string {
	if e.causedBy != nil {
		return e.EncodedErrorString() + ": " + e.causedBy.Error()
	}
	return e.EncodedErrorString()
}

// Unwrap returns the platform error behind e, if any.
func (e PortError) Unwrap() error {
	return e.causedBy
}

// Code returns an identifier for the kind of error occurred
func (e PortError) Code() PortErrorCode {
	return e.code
}
