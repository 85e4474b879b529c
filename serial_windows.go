//
// Copyright 2014-2016 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialsend

/*

// MSDN article on Serial Communications:
// http://msdn.microsoft.com/en-us/library/ff802693.aspx

// Arduino Playground article on serial communication with Windows API:
// http://playground.arduino.cc/Interfacing/CPPWindows

*/

import (
	"errors"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowsDriver struct{}

// NativeDriver returns the Driver backed by the Win32 communications API.
func NativeDriver() Driver {
	return windowsDriver{}
}

type windowsPort struct {
	handle windows.Handle
}

// The DCB carries a 1.5 stop bits setting of its own.
const nativeOnePointFiveStopBits = true

func (windowsDriver) Open(portName string) (Device, error) {
	if portName == "" {
		return nil, &PortError{code: PortNotFound}
	}
	if !strings.HasPrefix(portName, `\\.\`) {
		portName = `\\.\` + portName
	}
	path, err := windows.UTF16PtrFromString(portName)
	if err != nil {
		return nil, &PortError{code: InvalidSerialPort, causedBy: err}
	}
	handle, err := windows.CreateFile(
		path,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0, nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0)
	if err != nil {
		switch {
		case errors.Is(err, windows.ERROR_ACCESS_DENIED):
			return nil, &PortError{code: PortBusy, causedBy: err}
		case errors.Is(err, windows.ERROR_FILE_NOT_FOUND):
			return nil, &PortError{code: PortNotFound, causedBy: err}
		}
		return nil, &PortError{code: OsError, causedBy: err}
	}
	return &windowsPort{handle: handle}, nil
}

func (port *windowsPort) GetState() (*LineState, error) {
	params := &dcb{}
	params.DCBlength = uint32(unsafe.Sizeof(*params))
	if err := getCommState(port.handle, params); err != nil {
		return nil, &PortError{code: InvalidSerialPort, causedBy: err}
	}
	return &LineState{Mode: dcbToMode(params), Native: params}, nil
}

func (port *windowsPort) SetState(state *LineState) error {
	params, ok := state.Native.(*dcb)
	if !ok {
		return &PortError{code: InvalidSerialPort}
	}
	modeToDCB(state.Mode, params)
	if err := setCommState(port.handle, params); err != nil {
		return &PortError{code: InvalidSerialPort, causedBy: err}
	}
	return nil
}

func (port *windowsPort) SetTimeouts(t *Timeouts) error {
	if err := setCommTimeouts(port.handle, toCommTimeouts(t)); err != nil {
		return &PortError{code: InvalidTimeoutValue, causedBy: err}
	}
	return nil
}

func (port *windowsPort) Write(p []byte) (int, error) {
	var written uint32
	err := windows.WriteFile(port.handle, p, &written, nil)
	return int(written), err
}

func (port *windowsPort) Close() error {
	return windows.CloseHandle(port.handle)
}
