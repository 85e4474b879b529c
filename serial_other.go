//
// Copyright 2014-2024 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

//go:build !linux && !windows

package serialsend

import (
	"fmt"
	"runtime"
)

const nativeOnePointFiveStopBits = true

type unsupportedDriver struct{}

// NativeDriver returns a Driver that refuses to open any device: only
// Windows and Linux serial ports are supported.
func NativeDriver() Driver {
	return unsupportedDriver{}
}

func (unsupportedDriver) Open(portName string) (Device, error) {
	return nil, &PortError{
		code:     FunctionNotImplemented,
		causedBy: fmt.Errorf("serial ports are not supported on %s", runtime.GOOS),
	}
}
