//
// Copyright 2014-2017 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package serialsend

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetCommState    = modkernel32.NewProc("GetCommState")
	procSetCommState    = modkernel32.NewProc("SetCommState")
	procSetCommTimeouts = modkernel32.NewProc("SetCommTimeouts")
)

func getCommState(handle windows.Handle, dcb *dcb) (err error) {
	r1, _, e1 := procGetCommState.Call(uintptr(handle), uintptr(unsafe.Pointer(dcb)))
	if r1 == 0 {
		err = errnoErr(e1)
	}
	return
}

func setCommState(handle windows.Handle, dcb *dcb) (err error) {
	r1, _, e1 := procSetCommState.Call(uintptr(handle), uintptr(unsafe.Pointer(dcb)))
	if r1 == 0 {
		err = errnoErr(e1)
	}
	return
}

func setCommTimeouts(handle windows.Handle, timeouts *commTimeouts) (err error) {
	r1, _, e1 := procSetCommTimeouts.Call(uintptr(handle), uintptr(unsafe.Pointer(timeouts)))
	if r1 == 0 {
		err = errnoErr(e1)
	}
	return
}

func errnoErr(e error) error {
	if errno, ok := e.(windows.Errno); ok && errno == 0 {
		return windows.ERROR_INVALID_PARAMETER
	}
	return e
}
