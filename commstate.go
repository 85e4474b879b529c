//
// Copyright 2014-2016 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialsend

import "time"

// Win32 communications structures. They are plain data and build on every
// platform; only serial_windows.go hands them to the kernel.

type dcb struct {
	DCBlength uint32
	BaudRate  uint32

	// Flags field is a bitfield
	//  fBinary            :1
	//  fParity            :1
	//  fOutxCtsFlow       :1
	//  fOutxDsrFlow       :1
	//  fDtrControl        :2
	//  fDsrSensitivity    :1
	//  fTXContinueOnXoff  :1
	//  fOutX              :1
	//  fInX               :1
	//  fErrorChar         :1
	//  fNull              :1
	//  fRtsControl        :2
	//  fAbortOnError      :1
	//  fDummy2            :17
	Flags uint32

	wReserved  uint16
	XonLim     uint16
	XoffLim    uint16
	ByteSize   byte
	Parity     byte
	StopBits   byte
	XonChar    byte
	XoffChar   byte
	ErrorChar  byte
	EOFChar    byte
	EvtChar    byte
	wReserved1 uint16
}

type commTimeouts struct {
	ReadIntervalTimeout         uint32
	ReadTotalTimeoutMultiplier  uint32
	ReadTotalTimeoutConstant    uint32
	WriteTotalTimeoutMultiplier uint32
	WriteTotalTimeoutConstant   uint32
}

const (
	noParity    = 0
	oddParity   = 1
	evenParity  = 2
	markParity  = 3
	spaceParity = 4
)

var parityMap = map[Parity]byte{
	NoParity:    noParity,
	OddParity:   oddParity,
	EvenParity:  evenParity,
	MarkParity:  markParity,
	SpaceParity: spaceParity,
}

const (
	oneStopBit   = 0
	one5StopBits = 1
	twoStopBits  = 2
)

var stopBitsMap = map[StopBits]byte{
	OneStopBit:           oneStopBit,
	OnePointFiveStopBits: one5StopBits,
	TwoStopBits:          twoStopBits,
}

// dcbToMode decodes the line parameters held in params.
func dcbToMode(params *dcb) Mode {
	mode := Mode{
		BaudRate: int(params.BaudRate),
		DataBits: int(params.ByteSize),
	}
	for p, v := range parityMap {
		if v == params.Parity {
			mode.Parity = p
		}
	}
	for s, v := range stopBitsMap {
		if v == params.StopBits {
			mode.StopBits = s
		}
	}
	return mode
}

// modeToDCB overwrites the line parameters of params, leaving the flow
// control flags and special characters as the device reported them.
func modeToDCB(mode Mode, params *dcb) {
	params.BaudRate = uint32(mode.BaudRate)
	params.ByteSize = byte(mode.DataBits)
	params.StopBits = stopBitsMap[mode.StopBits]
	params.Parity = parityMap[mode.Parity]
}

func toCommTimeouts(t *Timeouts) *commTimeouts {
	return &commTimeouts{
		ReadIntervalTimeout:         milliseconds(t.ReadInterval),
		ReadTotalTimeoutMultiplier:  milliseconds(t.ReadTotalMultiplier),
		ReadTotalTimeoutConstant:    milliseconds(t.ReadTotalConstant),
		WriteTotalTimeoutMultiplier: milliseconds(t.WriteTotalMultiplier),
		WriteTotalTimeoutConstant:   milliseconds(t.WriteTotalConstant),
	}
}

func milliseconds(d time.Duration) uint32 {
	return uint32(d / time.Millisecond)
}
